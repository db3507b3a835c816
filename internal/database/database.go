package database

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/collectflow/collections-campaign-backend/internal/models"
)

// InitDB initializes the database connection, migrates the schema and seeds
// reference data when the tables are empty
func InitDB() (*gorm.DB, error) {
	host := getEnv("DB_HOST", "")
	port := getEnv("DB_PORT", "")
	user := getEnv("DB_USER", "")
	password := getEnv("DB_PASSWORD", "")
	dbname := getEnv("DB_NAME", "")
	sslmode := getEnv("DB_SSLMODE", "disable")

	if host == "" || port == "" || user == "" || password == "" || dbname == "" {
		return nil, fmt.Errorf("missing required database environment variables. Please check your .env file")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	gormLogger := logger.New(
		logrus.New(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Reference tables first, then everything that references them
	err = db.AutoMigrate(
		&models.State{},
		&models.DpdBucket{},
		&models.Channel{},
		&models.Template{},
		&models.Language{},
		&models.User{},
		&models.Campaign{},
		&models.CampaignFilter{},
		&models.ApprovalAudit{},
		&models.Customer{},
		&models.CampaignAssignment{},
		&models.AssignmentAudit{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedReferenceData(db); err != nil {
		return nil, fmt.Errorf("failed to seed reference data: %w", err)
	}
	if err := seedUsers(db); err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}
	if err := seedCustomers(db); err != nil {
		return nil, fmt.Errorf("failed to seed customers: %w", err)
	}

	logrus.Info("Database connection established and migrations completed")
	return db, nil
}

// seedReferenceData populates the lookup tables on first start
func seedReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.State{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logrus.Info("Seeding reference data...")

	states := []models.State{
		{Name: "Maharashtra"},
		{Name: "Karnataka"},
		{Name: "Delhi"},
	}
	if err := db.Create(&states).Error; err != nil {
		return err
	}

	buckets := []models.DpdBucket{
		{Name: "T-6"},
		{Name: "T+5"},
		{Name: "T+30"},
		{Name: "T+60"},
	}
	if err := db.Create(&buckets).Error; err != nil {
		return err
	}

	channels := []models.Channel{
		{Name: "SMS"},
		{Name: "WhatsApp"},
		{Name: "IVR"},
	}
	if err := db.Create(&channels).Error; err != nil {
		return err
	}

	languages := []models.Language{
		{Name: "English"},
		{Name: "Hindi"},
	}
	if err := db.Create(&languages).Error; err != nil {
		return err
	}

	templates := []models.Template{
		{ChannelID: channels[0].ID, Name: "SMS Default Template"},
		{ChannelID: channels[1].ID, Name: "WhatsApp Default Template"},
		{ChannelID: channels[2].ID, Name: "IVR Default Template"},
	}
	return db.Create(&templates).Error
}

// seedUsers creates the default admin and checker accounts on first start
func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logrus.Info("Seeding default users...")

	defaults := []struct {
		emailEnv string
		passEnv  string
		email    string
		password string
		fullName string
		role     string
	}{
		{"ADMIN_EMAIL", "ADMIN_PASSWORD", "admin@example.com", "admin123", "Default Admin", models.RoleAdmin},
		{"CHECKER_EMAIL", "CHECKER_PASSWORD", "checker@example.com", "checker123", "Default Checker", models.RoleChecker},
	}

	for _, d := range defaults {
		email := getEnv(d.emailEnv, d.email)
		password := getEnv(d.passEnv, d.password)
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Email:        email,
			PasswordHash: string(hash),
			FullName:     d.fullName,
			Role:         d.role,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }

// seedCustomers loads a small demo customer population on first start
func seedCustomers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logrus.Info("Seeding demo customers...")

	customers := []models.Customer{
		{StateID: 1, DpdID: 1, BorrowerType: strPtr("New"), Segment: strPtr("Retail"), ProductGroup: strPtr("Lending"), ProductType: strPtr("PL"), SubProductType: strPtr("PL-Std"), ProductVariant: strPtr("Variant-A"), SchemeName: strPtr("Festive"), SchemeCode: strPtr("FSTV25")},
		{StateID: 1, DpdID: 1, BorrowerType: strPtr("Old"), Segment: strPtr("SME"), ProductGroup: strPtr("Cards"), ProductType: strPtr("Credit Card"), SubProductType: strPtr("Gold"), ProductVariant: strPtr("Visa"), SchemeName: strPtr("Diwali"), SchemeCode: strPtr("DIW25")},
		{StateID: 2, DpdID: 3, BorrowerType: strPtr("New"), Segment: strPtr("Corporate"), ProductGroup: strPtr("Lending"), ProductType: strPtr("Home Loan"), SubProductType: strPtr("HL-Floating"), ProductVariant: strPtr("Variant-B"), SchemeName: strPtr("New Year"), SchemeCode: strPtr("NY26")},
		{StateID: 3, DpdID: 2, BorrowerType: strPtr("Old"), Segment: strPtr("Retail"), ProductGroup: strPtr("Lending"), ProductType: strPtr("Auto Loan"), SubProductType: strPtr("AL-Std"), ProductVariant: strPtr("Variant-C"), SchemeName: strPtr("Festive-Plus"), SchemeCode: strPtr("FSTV25P")},
	}
	return db.Create(&customers).Error
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

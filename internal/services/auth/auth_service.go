package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/collectflow/collections-campaign-backend/internal/database/repository"
	"github.com/collectflow/collections-campaign-backend/internal/models"
)

// ErrInvalidCredentials deliberately hides whether the email or the password
// was wrong
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken reports a registration attempt with an already-used email
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidRole reports a registration attempt with an unknown role
var ErrInvalidRole = errors.New("role must be Admin or Checker")

// TokenInfo is the validated identity extracted from a bearer token
type TokenInfo struct {
	UserID uint
	Email  string
	Role   string
}

type AuthService struct {
	userRepo       repository.UserRepositoryInterface
	jwtSecret      []byte
	accessTokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepositoryInterface) *AuthService {
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		jwtSecret = []byte("default-secret-key-change-in-production")
	}

	accessTokenTTL := 8 * time.Hour
	if ttl := os.Getenv("ACCESS_TOKEN_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			accessTokenTTL = parsed
		}
	}

	logrus.Infof("Access token TTL: %s", accessTokenTTL)

	return &AuthService{
		userRepo:       userRepo,
		jwtSecret:      jwtSecret,
		accessTokenTTL: accessTokenTTL,
	}
}

// Register creates a new active user account
func (s *AuthService) Register(req *models.RegisterRequest) (*models.UserResponse, error) {
	if req.Role != models.RoleAdmin && req.Role != models.RoleChecker {
		return nil, ErrInvalidRole
	}

	existing, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}).Info("User registered")

	response := user.ToResponse()
	return &response, nil
}

// Login authenticates a user by email and password
func (s *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.accessTokenTTL)
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User logged in")

	return &models.AuthResponse{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		User:        user.ToResponse(),
	}, nil
}

// ValidateToken parses and verifies a bearer token and returns its identity
func (s *AuthService) ValidateToken(tokenString string) (*TokenInfo, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, errors.New("invalid token subject")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &TokenInfo{
		UserID: uint(sub),
		Email:  email,
		Role:   role,
	}, nil
}

// GetProfile returns the profile of the authenticated user
func (s *AuthService) GetProfile(userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	response := user.ToResponse()
	return &response, nil
}

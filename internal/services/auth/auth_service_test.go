package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/collectflow/collections-campaign-backend/internal/models"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID uint
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = user
	return nil
}

func newFixture(t *testing.T) (*AuthService, *models.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           1,
		Email:        "checker@example.com",
		PasswordHash: string(hash),
		FullName:     "Test Checker",
		Role:         models.RoleChecker,
		IsActive:     true,
	}
	repo := &fakeUserRepo{users: map[string]*models.User{user.Email: user}, nextID: 2}
	return NewAuthService(repo), user
}

func TestLogin_Success(t *testing.T) {
	service, user := newFixture(t)

	response, err := service.Login(&models.LoginRequest{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.Equal(t, user.Email, response.User.Email)
	assert.Equal(t, models.RoleChecker, response.User.Role)
	assert.True(t, response.ExpiresAt.After(time.Now()))
}

func TestLogin_WrongPassword(t *testing.T) {
	service, user := newFixture(t)

	_, err := service.Login(&models.LoginRequest{Email: user.Email, Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	service, _ := newFixture(t)

	_, err := service.Login(&models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	service, user := newFixture(t)
	user.IsActive = false

	_, err := service.Login(&models.LoginRequest{Email: user.Email, Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	service, user := newFixture(t)

	response, err := service.Login(&models.LoginRequest{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)

	info, err := service.ValidateToken(response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, info.UserID)
	assert.Equal(t, user.Email, info.Email)
	assert.Equal(t, models.RoleChecker, info.Role)
}

func TestValidateToken_Garbage(t *testing.T) {
	service, _ := newFixture(t)

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestGetProfile(t *testing.T) {
	service, user := newFixture(t)

	profile, err := service.GetProfile(user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, user.Email, profile.Email)
	assert.Equal(t, user.FullName, profile.FullName)
	assert.Equal(t, user.Role, profile.Role)

	_, err = service.GetProfile(99)
	assert.Error(t, err)
}

func TestRegister_Success(t *testing.T) {
	service, _ := newFixture(t)

	response, err := service.Register(&models.RegisterRequest{
		Email:    "maker@example.com",
		Password: "secret123",
		FullName: "New Maker",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotZero(t, response.ID)
	assert.Equal(t, "maker@example.com", response.Email)
	assert.Equal(t, models.RoleAdmin, response.Role)

	// The new account can log in right away
	login, err := service.Login(&models.LoginRequest{Email: "maker@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, login.User.Role)
}

func TestRegister_EmailTaken(t *testing.T) {
	service, user := newFixture(t)

	_, err := service.Register(&models.RegisterRequest{
		Email:    user.Email,
		Password: "secret123",
		Role:     models.RoleChecker,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_InvalidRole(t *testing.T) {
	service, _ := newFixture(t)

	_, err := service.Register(&models.RegisterRequest{
		Email:    "someone@example.com",
		Password: "secret123",
		Role:     "Executor",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

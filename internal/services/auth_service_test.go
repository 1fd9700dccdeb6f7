package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"launchtracker/internal/models"
	"launchtracker/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Test successful registration
	user := &models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", user.Username).Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("GetByEmail", user.Email).Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.True(t, user.Active)
	// Password must be stored hashed, not in the clear
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", user.Username).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user)
	assert.Error(t, err)
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByUsername", user.Username).Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user)
	assert.Error(t, err)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Authenticate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Active:   true,
	}

	// Correct credentials
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	got, err := authService.Authenticate("testuser", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	mockRepo.AssertExpectations(t)

	// Wrong password and unknown user must fail identically
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	got, err = authService.Authenticate("testuser", "wrongpassword")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, fmt.Errorf("user with username nonexistentuser: %w", gorm.ErrRecordNotFound)).Once()
	got, err = authService.Authenticate("nonexistentuser", "password123")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Deactivated accounts cannot authenticate
	inactive := &models.User{
		ID:       "user-456",
		Username: "gone",
		Password: string(hashedPassword),
		Active:   false,
	}
	mockRepo.On("GetByUsername", "gone").Return(inactive, nil).Once()
	got, err = authService.Authenticate("gone", "password123")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Active:   true,
	}

	// Test successful login
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	token, loggedIn, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	// Validate the token structure
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	_, _, err = authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])

	// Test invalid token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestAuthService_EditProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Bio:      "original bio",
		Location: "Houston",
		Active:   true,
	}

	// Empty fields fall back to the stored values
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err := authService.EditProfile(user.ID, services.ProfileUpdate{
		Bio: "new bio",
	})
	assert.NoError(t, err)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "testuser", updated.Username)
	assert.Equal(t, "test@example.com", updated.Email)
	assert.Equal(t, "Houston", updated.Location)
	mockRepo.AssertExpectations(t)

	// Changing to a taken username is rejected
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("GetByUsername", "taken").Return(&models.User{ID: "other"}, nil).Once()
	_, err = authService.EditProfile(user.ID, services.ProfileUpdate{Username: "taken"})
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)

	// Unknown user
	mockRepo.On("GetByID", "missing").Return(nil, fmt.Errorf("user with ID missing: %w", gorm.ErrRecordNotFound)).Once()
	_, err = authService.EditProfile("missing", services.ProfileUpdate{Bio: "x"})
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_DeactivateUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Password: string(hashedPassword),
		Active:   true,
	}

	// Wrong password blocks deactivation
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	err := authService.DeactivateUser(user.ID, "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.True(t, user.Active)
	mockRepo.AssertExpectations(t)

	// Correct password deactivates
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	err = authService.DeactivateUser(user.ID, "password123")
	assert.NoError(t, err)
	assert.False(t, user.Active)
	mockRepo.AssertExpectations(t)
}

package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"launchtracker/internal/models"
	"launchtracker/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles business logic for accounts and authentication.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterUser registers a new user, hashes their password, and saves them to
// the database. Duplicate usernames and emails are rejected before the insert
// so the caller gets a specific condition rather than a driver error.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return fmt.Errorf("username %q: %w", user.Username, ErrUsernameTaken)
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email %q: %w", user.Email, ErrEmailTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword) // Store the hashed password
	user.Active = true

	if err := s.userRepo.Create(user); err != nil {
		// Unique indexes are the backstop when two registrations race.
		if isUniqueViolation(err) {
			return fmt.Errorf("username or email: %w", ErrUsernameTaken)
		}
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Authenticate verifies a username/password pair. Unknown usernames, wrong
// passwords and deactivated accounts all come back as ErrInvalidCredentials
// so callers cannot be used for username enumeration.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(username, password string) (string, *models.User, error) {
	user, err := s.Authenticate(username, password)
	if err != nil {
		return "", nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":      time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// ProfileUpdate carries the editable profile fields. Empty fields keep the
// user's current values.
type ProfileUpdate struct {
	Username     string
	Email        string
	ImgURL       string
	HeaderImgURL string
	Bio          string
	Location     string
}

// EditProfile updates the acting user's own profile. Each empty incoming
// field falls back to the stored value.
func (s *AuthService) EditProfile(userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}

	if update.Username != "" && update.Username != user.Username {
		if existing, err := s.userRepo.GetByUsername(update.Username); err == nil && existing != nil {
			return nil, fmt.Errorf("username %q: %w", update.Username, ErrUsernameTaken)
		}
		user.Username = update.Username
	}
	if update.Email != "" && update.Email != user.Email {
		if existing, err := s.userRepo.GetByEmail(update.Email); err == nil && existing != nil {
			return nil, fmt.Errorf("email %q: %w", update.Email, ErrEmailTaken)
		}
		user.Email = update.Email
	}
	if update.ImgURL != "" {
		user.ImgURL = update.ImgURL
	}
	if update.HeaderImgURL != "" {
		user.HeaderImgURL = update.HeaderImgURL
	}
	if update.Bio != "" {
		user.Bio = update.Bio
	}
	if update.Location != "" {
		user.Location = update.Location
	}

	if err := s.userRepo.Update(user); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("username or email: %w", ErrUsernameTaken)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// DeactivateUser turns off the acting user's account after re-verifying their
// password. Accounts are never hard-deleted; collections stay consistent.
func (s *AuthService) DeactivateUser(userID, password string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	user.Active = false
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// GetUserByID retrieves one user.
func (s *AuthService) GetUserByID(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves all active users.
func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

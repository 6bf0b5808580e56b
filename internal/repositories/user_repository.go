package repositories

import (
	"errors"

	"amparo/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create creates a new user in the database
	Create(user *models.User) error

	// GetByID retrieves a user by their ID
	GetByID(id uint) (*models.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(email string) (*models.User, error)

	// Update updates an existing user's information
	Update(user *models.User) error

	// UpdateStatus updates the user's account status
	UpdateStatus(userID uint, status string) error

	// SetDeviceToken stores the user's FCM registration token
	SetDeviceToken(userID uint, token string) error

	// Delete removes a user from the database
	Delete(id uint) error

	// List retrieves all users
	List() ([]models.User, error)
}

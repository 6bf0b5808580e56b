package repositories

import (
	"context"
	"log"

	"amparo/internal/models"
	"amparo/internal/repositories/cache"

	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB, cache *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cache,
	}
}

func (r *userRepository) Create(user *models.User) error {
	result := r.db.Create(user)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	if r.cache != nil {
		key := r.cache.GenerateKey("user", "id", id)
		if user, err := r.cache.GetUser(context.Background(), key); err == nil {
			return user, nil
		}
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.CacheUser(context.Background(), &user); err != nil {
			log.Printf("failed to cache user %d: %v", user.ID, err)
		}
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(user.ID)
	return nil
}

func (r *userRepository) UpdateStatus(userID uint, status string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("status", status)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidate(userID)
	return nil
}

func (r *userRepository) SetDeviceToken(userID uint, token string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("device_token", token)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidate(userID)
	return nil
}

func (r *userRepository) Delete(id uint) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidate(id)
	return nil
}

func (r *userRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return users, nil
}

func (r *userRepository) invalidate(userID uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateUser(context.Background(), userID); err != nil {
		log.Printf("failed to invalidate user cache %d: %v", userID, err)
	}
}

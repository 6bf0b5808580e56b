package repositories

import (
	"context"
	"log"

	"amparo/internal/models"
	"amparo/internal/repositories/cache"

	"gorm.io/gorm"
)

type elderRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewElderRepository creates a new instance of ElderRepository.
func NewElderRepository(db *gorm.DB, cache *cache.CacheService) ElderRepository {
	return &elderRepository{
		db:    db,
		cache: cache,
	}
}

func (r *elderRepository) GetByID(id uint) (*models.Elder, error) {
	if r.cache != nil {
		if elder, err := r.cache.GetElder(context.Background(), id); err == nil {
			return elder, nil
		}
	}

	var elder models.Elder
	if err := r.db.First(&elder, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrElderNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.CacheElder(context.Background(), &elder); err != nil {
			log.Printf("failed to cache elder %d: %v", elder.ID, err)
		}
	}

	return &elder, nil
}

func (r *elderRepository) GetByCPF(cpf string) (*models.Elder, error) {
	var elder models.Elder
	result := r.db.Where("cpf = ?", cpf).First(&elder)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrElderNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &elder, nil
}

func (r *elderRepository) GetOwned(id, chiefID uint) (*models.Elder, error) {
	var elder models.Elder
	result := r.db.Where("id = ? AND chief_id = ?", id, chiefID).First(&elder)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrElderNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &elder, nil
}

func (r *elderRepository) ListByChief(chiefID uint) ([]models.Elder, error) {
	var elders []models.Elder
	err := r.db.Where("chief_id = ?", chiefID).
		Preload("UserAccount").
		Preload("Collaborators.User").
		Find(&elders).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return elders, nil
}

func (r *elderRepository) List() ([]models.Elder, error) {
	var elders []models.Elder
	if err := r.db.Order("created_at desc").Find(&elders).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return elders, nil
}

func (r *elderRepository) Update(elder *models.Elder) error {
	result := r.db.Save(elder)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(elder.ID)
	return nil
}

func (r *elderRepository) DeleteWithLogin(elder *models.Elder) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("elder_profile_id = ?", elder.ID).
			Delete(&models.User{}).Error; err != nil {
			return err
		}
		return tx.Delete(elder).Error
	})
	if err != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(elder.ID)
	return nil
}

func (r *elderRepository) invalidate(elderID uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateElder(context.Background(), elderID); err != nil {
		log.Printf("failed to invalidate elder cache %d: %v", elderID, err)
	}
}

package repositories

import (
	"errors"

	"amparo/internal/models"

	"gorm.io/gorm"
)

var ErrAlertNotFound = errors.New("emergency alert not found")

// EmergencyRepository persists emergency alerts.
type EmergencyRepository interface {
	// Create inserts an unresolved alert
	Create(alert *models.Emergency) error

	// ListVisibleTo returns alerts where the user is the owning chief or a
	// collaborator linked to the alert's elder, newest first
	ListVisibleTo(userID uint) ([]models.Emergency, error)

	// Resolve flips the resolved flag
	Resolve(alertID uint) error
}

type emergencyRepository struct {
	db *gorm.DB
}

// NewEmergencyRepository creates a new instance of EmergencyRepository.
func NewEmergencyRepository(db *gorm.DB) EmergencyRepository {
	return &emergencyRepository{db: db}
}

func (r *emergencyRepository) Create(alert *models.Emergency) error {
	if err := r.db.Create(alert).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *emergencyRepository) ListVisibleTo(userID uint) ([]models.Emergency, error) {
	var alerts []models.Emergency
	err := r.db.
		Where("chief_id = ?", userID).
		Or("elder_id IN (?)",
			r.db.Model(&models.Collaborator{}).
				Select("elder_id").
				Where("user_id = ?", userID)).
		Preload("Elder").
		Order("created_at desc").
		Find(&alerts).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return alerts, nil
}

func (r *emergencyRepository) Resolve(alertID uint) error {
	result := r.db.Model(&models.Emergency{}).
		Where("id = ?", alertID).
		Update("resolved", true)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

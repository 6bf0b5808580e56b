package repositories

import (
	"errors"

	"amparo/internal/models"

	"gorm.io/gorm"
)

var ErrCollaboratorNotFound = errors.New("collaborator not found")

// CollaboratorRepository defines collaborator link persistence operations.
type CollaboratorRepository interface {
	// GetByUserID returns the link row for a collaborator-role user
	GetByUserID(userID uint) (*models.Collaborator, error)

	// ListUserIDsByElder returns the user ids of every collaborator on an elder
	ListUserIDsByElder(elderID uint) ([]uint, error)

	// ListByChief returns all collaborator links under a chief
	ListByChief(chiefID uint) ([]models.Collaborator, error)

	// Delete removes a collaborator link
	Delete(id uint) error
}

type collaboratorRepository struct {
	db *gorm.DB
}

// NewCollaboratorRepository creates a new instance of CollaboratorRepository.
func NewCollaboratorRepository(db *gorm.DB) CollaboratorRepository {
	return &collaboratorRepository{db: db}
}

func (r *collaboratorRepository) GetByUserID(userID uint) (*models.Collaborator, error) {
	var link models.Collaborator
	result := r.db.Where("user_id = ?", userID).First(&link)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrCollaboratorNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &link, nil
}

func (r *collaboratorRepository) ListUserIDsByElder(elderID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Collaborator{}).
		Where("elder_id = ?", elderID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return ids, nil
}

func (r *collaboratorRepository) ListByChief(chiefID uint) ([]models.Collaborator, error) {
	var links []models.Collaborator
	err := r.db.Where("chief_id = ?", chiefID).
		Preload("User").
		Find(&links).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return links, nil
}

func (r *collaboratorRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Collaborator{}, id)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrCollaboratorNotFound
	}
	return nil
}

package repositories

import (
	"errors"

	"amparo/internal/models"
)

var ErrElderNotFound = errors.New("elder not found")

// ElderRepository defines elder profile persistence operations.
type ElderRepository interface {
	// GetByID retrieves an elder by primary key
	GetByID(id uint) (*models.Elder, error)

	// GetByCPF retrieves an elder by its CPF natural key
	GetByCPF(cpf string) (*models.Elder, error)

	// GetOwned retrieves an elder only if it belongs to the given chief
	GetOwned(id, chiefID uint) (*models.Elder, error)

	// ListByChief returns a chief's elders with login and collaborators preloaded
	ListByChief(chiefID uint) ([]models.Elder, error)

	// List returns all elders
	List() ([]models.Elder, error)

	// Update saves field-level changes to an elder
	Update(elder *models.Elder) error

	// DeleteWithLogin removes the elder and its linked login atomically
	DeleteWithLogin(elder *models.Elder) error
}

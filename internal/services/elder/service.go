package elder

import (
	"time"

	domainerrors "amparo/internal/errors"
	"amparo/internal/models"
	"amparo/internal/repositories"
	"amparo/internal/services/ledger"
	"amparo/internal/validation"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// CreateInput carries the elder profile fields plus the optional login
// credentials for the elder's own account.
type CreateInput struct {
	Name              string     `json:"name"`
	CPF               string     `json:"cpf"`
	Age               int        `json:"age"`
	Phone             string     `json:"phone"`
	Address           string     `json:"address"`
	EmergencyContact  string     `json:"emergencyContact"`
	BloodType         string     `json:"bloodType"`
	Allergies         []string   `json:"allergies"`
	MedicalConditions []string   `json:"medicalConditions"`
	Medications       []string   `json:"medications"`
	Observations      string     `json:"observations"`
	BirthDate         *time.Time `json:"birthDate"`

	CreateLogin bool   `json:"createLogin"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// UpdateInput holds the editable profile fields.
type UpdateInput struct {
	Name              *string    `json:"name"`
	Age               *int       `json:"age"`
	Phone             *string    `json:"phone"`
	Address           *string    `json:"address"`
	EmergencyContact  *string    `json:"emergencyContact"`
	BloodType         *string    `json:"bloodType"`
	Allergies         []string   `json:"allergies"`
	MedicalConditions []string   `json:"medicalConditions"`
	Medications       []string   `json:"medications"`
	Observations      *string    `json:"observations"`
	BirthDate         *time.Time `json:"birthDate"`
}

type Service interface {
	// Create registers an elder under the chief's quota. The first elder
	// is free; beyond that a credit is consumed atomically with the insert.
	Create(chiefID uint, input CreateInput) (*models.Elder, error)

	// ListByChief returns the chief's elders with logins and collaborators.
	ListByChief(chiefID uint) ([]models.Elder, error)

	// List returns every elder (admin).
	List() ([]models.Elder, error)

	// Update edits an elder owned by the chief.
	Update(id, chiefID uint, input UpdateInput) (*models.Elder, error)

	// Delete removes an elder owned by the chief along with its login.
	Delete(id, chiefID uint) error
}

type service struct {
	repo   repositories.ElderRepository
	ledger ledger.Service
}

// NewService creates a new elder service.
func NewService(repo repositories.ElderRepository, ledger ledger.Service) Service {
	return &service{
		repo:   repo,
		ledger: ledger,
	}
}

func (s *service) Create(chiefID uint, input CreateInput) (*models.Elder, error) {
	if !validation.ValidCPF(input.CPF) {
		return nil, &domainerrors.DomainError{
			Code:    "INVALID_CPF",
			Message: "invalid CPF",
			Status:  400,
		}
	}

	// CPF is globally unique: one elder record per citizen, any chief.
	if _, err := s.repo.GetByCPF(input.CPF); err == nil {
		return nil, domainerrors.ErrElderAlreadyExists
	}

	elder := &models.Elder{
		Name:              input.Name,
		CPF:               input.CPF,
		Age:               input.Age,
		Phone:             input.Phone,
		Address:           input.Address,
		EmergencyContact:  input.EmergencyContact,
		BloodType:         input.BloodType,
		Allergies:         pq.StringArray(input.Allergies),
		MedicalConditions: pq.StringArray(input.MedicalConditions),
		Medications:       pq.StringArray(input.Medications),
		Observations:      input.Observations,
		BirthDate:         input.BirthDate,
		ChiefID:           chiefID,
	}

	err := s.ledger.ConsumeElderSlot(chiefID, func(tx repositories.LedgerStore) error {
		if err := tx.CreateElder(elder); err != nil {
			return err
		}

		if !input.CreateLogin {
			return nil
		}
		if input.Email == "" || input.Password == "" {
			return domainerrors.ErrMissingCredentials
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		// The elder login skips OTP onboarding: the chief vouches for it.
		login := &models.User{
			Name:           input.Name,
			Email:          input.Email,
			Password:       string(hash),
			Role:           models.RoleElder,
			Status:         models.StatusActive,
			ElderProfileID: &elder.ID,
		}
		return tx.CreateUser(login)
	})
	if err != nil {
		return nil, err
	}

	return elder, nil
}

func (s *service) ListByChief(chiefID uint) ([]models.Elder, error) {
	return s.repo.ListByChief(chiefID)
}

func (s *service) List() ([]models.Elder, error) {
	return s.repo.List()
}

func (s *service) Update(id, chiefID uint, input UpdateInput) (*models.Elder, error) {
	elder, err := s.repo.GetOwned(id, chiefID)
	if err != nil {
		return nil, domainerrors.ErrElderNotFound
	}

	if input.Name != nil {
		elder.Name = *input.Name
	}
	if input.Age != nil {
		elder.Age = *input.Age
	}
	if input.Phone != nil {
		elder.Phone = *input.Phone
	}
	if input.Address != nil {
		elder.Address = *input.Address
	}
	if input.EmergencyContact != nil {
		elder.EmergencyContact = *input.EmergencyContact
	}
	if input.BloodType != nil {
		elder.BloodType = *input.BloodType
	}
	if input.Allergies != nil {
		elder.Allergies = pq.StringArray(input.Allergies)
	}
	if input.MedicalConditions != nil {
		elder.MedicalConditions = pq.StringArray(input.MedicalConditions)
	}
	if input.Medications != nil {
		elder.Medications = pq.StringArray(input.Medications)
	}
	if input.Observations != nil {
		elder.Observations = *input.Observations
	}
	if input.BirthDate != nil {
		elder.BirthDate = input.BirthDate
	}

	if err := s.repo.Update(elder); err != nil {
		return nil, err
	}
	return elder, nil
}

func (s *service) Delete(id, chiefID uint) error {
	elder, err := s.repo.GetOwned(id, chiefID)
	if err != nil {
		return domainerrors.ErrElderNotFound
	}
	return s.repo.DeleteWithLogin(elder)
}

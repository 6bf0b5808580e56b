package collaborator

import (
	domainerrors "amparo/internal/errors"
	"amparo/internal/models"
	"amparo/internal/repositories"
	"amparo/internal/services/ledger"
	"amparo/internal/services/otp"

	"golang.org/x/crypto/bcrypt"
)

// RegisterInput identifies the elder by CPF, the way invitations are
// shared inside a family.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	ElderCPF string `json:"elderCpf"`
}

type Service interface {
	// Register creates the collaborator account (PENDING) and its link to
	// the elder under the owning chief's quota, then emails the first
	// verification code. Everything rolls back if the email fails.
	Register(input RegisterInput) error

	// ListByChief returns the collaborator links under a chief.
	ListByChief(chiefID uint) ([]models.Collaborator, error)

	// Remove deletes a collaborator link owned by the chief.
	Remove(linkID, chiefID uint) error
}

type service struct {
	userRepo   repositories.UserRepository
	elderRepo  repositories.ElderRepository
	collabRepo repositories.CollaboratorRepository
	ledger     ledger.Service
	otpService otp.Service
}

// NewService creates a new collaborator service.
func NewService(
	userRepo repositories.UserRepository,
	elderRepo repositories.ElderRepository,
	collabRepo repositories.CollaboratorRepository,
	ledger ledger.Service,
	otpService otp.Service,
) Service {
	return &service{
		userRepo:   userRepo,
		elderRepo:  elderRepo,
		collabRepo: collabRepo,
		ledger:     ledger,
		otpService: otpService,
	}
}

func (s *service) Register(input RegisterInput) error {
	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return domainerrors.ErrEmailAlreadyRegistered
	}

	elder, err := s.elderRepo.GetByCPF(input.ElderCPF)
	if err != nil {
		return domainerrors.ErrElderNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.ledger.ConsumeCollaboratorSlot(elder.ChiefID, func(tx repositories.LedgerStore) error {
		account := &models.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hash),
			Role:     models.RoleCollaborator,
			Status:   models.StatusPending,
		}
		if err := tx.CreateUser(account); err != nil {
			return err
		}

		link := &models.Collaborator{
			UserID:  account.ID,
			ElderID: elder.ID,
			ChiefID: elder.ChiefID,
		}
		if err := tx.CreateCollaborator(link); err != nil {
			return err
		}

		// A failed verification email aborts the whole admission; the
		// credit is not consumed for an account that cannot verify.
		return s.otpService.Issue(input.Email)
	})
}

func (s *service) ListByChief(chiefID uint) ([]models.Collaborator, error) {
	return s.collabRepo.ListByChief(chiefID)
}

func (s *service) Remove(linkID, chiefID uint) error {
	links, err := s.collabRepo.ListByChief(chiefID)
	if err != nil {
		return err
	}
	for _, link := range links {
		if link.ID == linkID {
			return s.collabRepo.Delete(linkID)
		}
	}
	return &domainerrors.DomainError{
		Code:    "NOT_FOUND",
		Message: "collaborator not found",
		Status:  404,
	}
}

// Package emergency persists panic alerts raised by elder logins and fans
// them out to everyone responsible for the elder. Persistence is the core;
// notification is a best-effort sink that never rolls the record back.
package emergency

import (
	"fmt"
	"time"

	domainerrors "amparo/internal/errors"
	"amparo/internal/models"
	"amparo/internal/repositories"
)

// Alert is the notification payload delivered to each target.
type Alert struct {
	AlertID   uint      `json:"id"`
	ElderName string    `json:"elderName"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier is the outbound event sink. Implementations must not block on
// slow consumers; failures are theirs to log.
type Notifier interface {
	Notify(targetID uint, alert Alert)
}

type Service interface {
	// Trigger creates an alert for the calling elder login and notifies
	// the chief and every collaborator on the profile.
	Trigger(elderProfileID *uint) (*models.Emergency, error)

	// List returns alerts visible to the user, most recent first.
	List(userID uint) ([]models.Emergency, error)

	// Resolve acknowledges an alert. Any authenticated user may resolve;
	// ownership narrowing is an open product question.
	Resolve(alertID uint) error
}

type service struct {
	repo       repositories.EmergencyRepository
	elderRepo  repositories.ElderRepository
	collabRepo repositories.CollaboratorRepository
	notifier   Notifier
}

// NewService creates a new emergency service.
func NewService(
	repo repositories.EmergencyRepository,
	elderRepo repositories.ElderRepository,
	collabRepo repositories.CollaboratorRepository,
	notifier Notifier,
) Service {
	return &service{
		repo:       repo,
		elderRepo:  elderRepo,
		collabRepo: collabRepo,
		notifier:   notifier,
	}
}

func (s *service) Trigger(elderProfileID *uint) (*models.Emergency, error) {
	// Only elder-linked logins can raise alerts.
	if elderProfileID == nil {
		return nil, domainerrors.ErrForbidden
	}

	elder, err := s.elderRepo.GetByID(*elderProfileID)
	if err != nil {
		return nil, domainerrors.ErrElderNotFound
	}

	alert := &models.Emergency{
		ElderID:  elder.ID,
		ChiefID:  elder.ChiefID,
		Resolved: false,
	}
	if err := s.repo.Create(alert); err != nil {
		return nil, err
	}

	targets := []uint{elder.ChiefID}
	collaboratorIDs, err := s.collabRepo.ListUserIDsByElder(elder.ID)
	if err == nil {
		targets = append(targets, collaboratorIDs...)
	}

	notification := Alert{
		AlertID:   alert.ID,
		ElderName: elder.Name,
		Message:   fmt.Sprintf("🚨 EMERGÊNCIA: %s precisa de ajuda!", elder.Name),
		Timestamp: time.Now().UTC(),
	}
	for _, target := range targets {
		s.notifier.Notify(target, notification)
	}

	return alert, nil
}

func (s *service) List(userID uint) ([]models.Emergency, error) {
	return s.repo.ListVisibleTo(userID)
}

func (s *service) Resolve(alertID uint) error {
	err := s.repo.Resolve(alertID)
	if err == repositories.ErrAlertNotFound {
		return &domainerrors.DomainError{
			Code:    "NOT_FOUND",
			Message: "alert not found",
			Status:  404,
		}
	}
	return err
}

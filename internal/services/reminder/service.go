// Package reminder manages weekday-recurring care reminders and the daily
// completion cycle: every reminder completed today becomes pending again at
// the next reset.
package reminder

import (
	"time"

	domainerrors "amparo/internal/errors"
	"amparo/internal/models"
	"amparo/internal/repositories"

	"github.com/lib/pq"
)

// DailyLimit caps how many reminders an elder sees per day.
const DailyLimit = 3

// CreateInput carries the reminder fields. DaysOfWeek uses ISO numbering,
// Monday is 1 and Sunday is 7.
type CreateInput struct {
	ElderID    uint    `json:"elderId"`
	Title      string  `json:"title"`
	Time       string  `json:"time"`
	Type       string  `json:"type"`
	DaysOfWeek []int64 `json:"daysOfWeek"`
}

// UpdateInput holds the editable reminder fields.
type UpdateInput struct {
	Title      *string `json:"title"`
	Time       *string `json:"time"`
	Type       *string `json:"type"`
	DaysOfWeek []int64 `json:"daysOfWeek"`
}

type Service interface {
	// Create adds a reminder to an elder owned by the chief.
	Create(chiefID uint, input CreateInput) (*models.Reminder, error)

	// Update edits a reminder owned by the chief. Any edit clears the
	// completed flag so the new schedule takes effect today.
	Update(id, chiefID uint, input UpdateInput) (*models.Reminder, error)

	// Delete removes a reminder owned by the chief.
	Delete(id, chiefID uint) error

	// Daily returns today's pending reminders for the elder, earliest
	// first, capped at DailyLimit.
	Daily(elderID uint) ([]models.Reminder, error)

	// MarkDone completes a reminder on behalf of the elder login.
	MarkDone(id uint, elderProfileID *uint) error

	// ResetCycle clears all completed flags and returns how many were
	// cleared. Called once a day by the scheduler.
	ResetCycle() (int64, error)
}

type service struct {
	repo      repositories.ReminderRepository
	elderRepo repositories.ElderRepository
	now       func() time.Time
}

// NewService creates a new reminder service.
func NewService(repo repositories.ReminderRepository, elderRepo repositories.ElderRepository) Service {
	return &service{
		repo:      repo,
		elderRepo: elderRepo,
		now:       time.Now,
	}
}

// isoWeekday maps Go's Sunday-first weekday to ISO numbering.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (s *service) Create(chiefID uint, input CreateInput) (*models.Reminder, error) {
	if _, err := s.elderRepo.GetOwned(input.ElderID, chiefID); err != nil {
		return nil, domainerrors.ErrElderNotFound
	}

	reminder := &models.Reminder{
		ElderID:    input.ElderID,
		Title:      input.Title,
		Time:       input.Time,
		Type:       input.Type,
		DaysOfWeek: pq.Int64Array(input.DaysOfWeek),
	}
	if err := s.repo.Create(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *service) Update(id, chiefID uint, input UpdateInput) (*models.Reminder, error) {
	reminder, err := s.owned(id, chiefID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		reminder.Title = *input.Title
	}
	if input.Time != nil {
		reminder.Time = *input.Time
	}
	if input.Type != nil {
		reminder.Type = *input.Type
	}
	if input.DaysOfWeek != nil {
		reminder.DaysOfWeek = pq.Int64Array(input.DaysOfWeek)
	}
	reminder.IsCompleted = false

	if err := s.repo.Update(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *service) Delete(id, chiefID uint) error {
	if _, err := s.owned(id, chiefID); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *service) Daily(elderID uint) ([]models.Reminder, error) {
	return s.repo.DailyForElder(elderID, isoWeekday(s.now()), DailyLimit)
}

func (s *service) MarkDone(id uint, elderProfileID *uint) error {
	if elderProfileID == nil {
		return domainerrors.ErrForbidden
	}
	reminder, err := s.repo.GetByID(id)
	if err != nil {
		return reminderNotFound()
	}
	if reminder.ElderID != *elderProfileID {
		return domainerrors.ErrForbidden
	}
	return s.repo.MarkDone(id, s.now().UTC())
}

func (s *service) ResetCycle() (int64, error) {
	return s.repo.ResetCompleted()
}

// owned loads a reminder and checks the elder it belongs to is the chief's.
func (s *service) owned(id, chiefID uint) (*models.Reminder, error) {
	reminder, err := s.repo.GetByID(id)
	if err != nil {
		return nil, reminderNotFound()
	}
	if _, err := s.elderRepo.GetOwned(reminder.ElderID, chiefID); err != nil {
		return nil, reminderNotFound()
	}
	return reminder, nil
}

func reminderNotFound() error {
	return &domainerrors.DomainError{
		Code:    "NOT_FOUND",
		Message: "reminder not found",
		Status:  404,
	}
}

package repositories

import (
	"errors"
	"time"

	"amparo/internal/models"

	"gorm.io/gorm"
)

var ErrReminderNotFound = errors.New("reminder not found")

// ReminderRepository persists weekday-recurring care reminders.
type ReminderRepository interface {
	// Create inserts a reminder
	Create(reminder *models.Reminder) error

	// GetByID retrieves a reminder by primary key
	GetByID(id uint) (*models.Reminder, error)

	// Update saves field-level changes to a reminder
	Update(reminder *models.Reminder) error

	// Delete removes a reminder
	Delete(id uint) error

	// DailyForElder returns up to limit incomplete reminders whose days-of-
	// week set contains the given ISO weekday, ordered by time ascending
	DailyForElder(elderID uint, weekday int, limit int) ([]models.Reminder, error)

	// MarkDone completes a reminder and stamps lastDone
	MarkDone(id uint, at time.Time) error

	// ResetCompleted clears every completed flag for the new day
	ResetCompleted() (int64, error)
}

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Create(reminder *models.Reminder) error {
	if err := r.db.Create(reminder).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *reminderRepository) GetByID(id uint) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.First(&reminder, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrReminderNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &reminder, nil
}

func (r *reminderRepository) Update(reminder *models.Reminder) error {
	if err := r.db.Save(reminder).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *reminderRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Reminder{}, id)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrReminderNotFound
	}
	return nil
}

func (r *reminderRepository) DailyForElder(elderID uint, weekday int, limit int) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.Where("elder_id = ? AND is_completed = ? AND ? = ANY(days_of_week)",
		elderID, false, weekday).
		Order("time asc").
		Limit(limit).
		Find(&reminders).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return reminders, nil
}

func (r *reminderRepository) MarkDone(id uint, at time.Time) error {
	result := r.db.Model(&models.Reminder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_completed": true,
			"last_done":    at,
		})
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrReminderNotFound
	}
	return nil
}

func (r *reminderRepository) ResetCompleted() (int64, error) {
	result := r.db.Model(&models.Reminder{}).
		Where("is_completed = ?", true).
		Update("is_completed", false)
	if result.Error != nil {
		return 0, ErrDatabaseOperation
	}
	return result.RowsAffected, nil
}

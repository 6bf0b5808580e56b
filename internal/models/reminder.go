package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Reminder is a weekday-recurring care task. DaysOfWeek holds ISO weekday
// numbers 1-7 (Sunday normalized to 7). IsCompleted is cleared by the daily
// cycle reset regardless of which day it was completed, so recurrence is
// purely weekly.
type Reminder struct {
	gorm.Model
	ElderID     uint          `gorm:"index;not null" json:"elderId"`
	Title       string        `gorm:"not null" json:"title"`
	Time        string        `gorm:"not null" json:"time"` // HH:MM
	Type        string        `json:"type"`
	DaysOfWeek  pq.Int64Array `gorm:"type:integer[]" json:"daysOfWeek"`
	IsCompleted bool          `gorm:"default:false" json:"isCompleted"`
	LastDone    *time.Time    `json:"lastDone,omitempty"`
}

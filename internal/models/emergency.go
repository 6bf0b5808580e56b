package models

import "gorm.io/gorm"

// Emergency is a persisted alert raised by an elder login. Rows are never
// deleted; Resolved flips true on explicit acknowledgement.
type Emergency struct {
	gorm.Model
	ElderID  uint `gorm:"index;not null" json:"elderId"`
	ChiefID  uint `gorm:"index;not null" json:"chiefId"`
	Resolved bool `gorm:"default:false" json:"resolved"`

	Elder *Elder `gorm:"foreignKey:ElderID" json:"elder,omitempty"`
}

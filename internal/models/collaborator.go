package models

import "gorm.io/gorm"

// Collaborator links a COLLABORATOR-role user to one elder. ChiefID is
// denormalized from the elder so quota checks and alert fan-out never need
// a join through elders.
type Collaborator struct {
	gorm.Model
	UserID  uint `gorm:"index;not null" json:"userId"`
	ElderID uint `gorm:"index;not null" json:"elderId"`
	ChiefID uint `gorm:"index;not null" json:"chiefId"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

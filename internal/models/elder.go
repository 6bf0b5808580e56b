package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Elder is a dependent senior profile owned by a chief. CPF is the natural
// key: one elder record per citizen ID, globally.
type Elder struct {
	gorm.Model
	Name             string `gorm:"not null" json:"name"`
	CPF              string `gorm:"column:cpf;uniqueIndex;not null" json:"cpf"`
	Age              int    `json:"age"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`

	BloodType         string         `json:"bloodType"`
	Allergies         pq.StringArray `gorm:"type:text[]" json:"allergies"`
	MedicalConditions pq.StringArray `gorm:"type:text[]" json:"medicalConditions"`
	Medications       pq.StringArray `gorm:"type:text[]" json:"medications"`
	Observations      string         `json:"observations"`
	BirthDate         *time.Time     `json:"birthDate,omitempty"`

	ChiefID uint `gorm:"index;not null" json:"chiefId"`

	// UserAccount is the optional IDOSO login backing this profile.
	UserAccount   *User          `gorm:"foreignKey:ElderProfileID" json:"userAccount,omitempty"`
	Collaborators []Collaborator `gorm:"foreignKey:ElderID" json:"collaborators,omitempty"`
}

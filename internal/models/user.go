package models

import (
	"gorm.io/gorm"
)

// Roles mirror the product's family structure: the FAMILIAR (chief) owns
// elder profiles, IDOSO is an elder's own login, COLLABORATOR is a secondary
// caregiver admitted under the chief's quota.
const (
	RoleChief        = "FAMILIAR"
	RoleAdmin        = "ADMIN"
	RoleElder        = "IDOSO"
	RoleCollaborator = "COLLABORATOR"
)

// Account statuses. PENDING accounts become ACTIVE only through OTP
// verification.
const (
	StatusPending = "PENDING"
	StatusActive  = "ACTIVE"
)

type User struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"default:'FAMILIAR'" json:"role"`
	Status   string `gorm:"default:'PENDING'" json:"status"`

	// Credit counters are mutated only by the ledger service.
	ElderCredits        int `gorm:"default:0" json:"elderCredits"`
	CollaboratorCredits int `gorm:"default:0" json:"collaboratorCredits"`

	// PlanPaid predates the credit counters and is kept for old clients;
	// nothing server-side consults it anymore.
	PlanPaid bool `gorm:"default:false" json:"planPaid"`

	// ElderProfileID is set when this login belongs to an elder (role IDOSO).
	ElderProfileID *uint `json:"elderProfileId,omitempty"`

	// DeviceToken is the FCM registration token for emergency push.
	DeviceToken string `json:"-"`
}

// IsChief reports whether the user owns elder profiles.
func (u *User) IsChief() bool {
	return u.Role == RoleChief || u.Role == RoleAdmin
}

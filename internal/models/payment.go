package models

import "gorm.io/gorm"

// Payment product types map one-to-one onto credit kinds.
const (
	PaymentTypeElderExtra   = "ELDER_EXTRA"
	PaymentTypeCollaborator = "COLLABORATOR"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
)

// Payment tracks one checkout session. StripeSessionID is the idempotency
// key for webhook reconciliation; status moves PENDING -> COMPLETED at most
// once regardless of redeliveries.
type Payment struct {
	gorm.Model
	UserID          uint    `gorm:"index;not null" json:"userId"`
	Type            string  `gorm:"not null" json:"type"`
	Amount          float64 `json:"amount"`
	Reference       string  `gorm:"uniqueIndex" json:"reference"`
	StripeSessionID string  `gorm:"uniqueIndex;not null" json:"stripeSessionId"`
	Status          string  `gorm:"default:'PENDING'" json:"status"`
}

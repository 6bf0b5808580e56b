package repositories

import "amparo/internal/models"

// LedgerStore is the atomic unit for credit-consuming creations. Inside
// ExecuteInTransaction the chief row is locked, so count-then-decrement-
// then-insert is serialized per chief.
type LedgerStore interface {
	// GetChiefForUpdate loads the chief row with a row-level lock.
	GetChiefForUpdate(id uint) (*models.User, error)

	// CountEldersByChief counts existing elder profiles under a chief
	CountEldersByChief(chiefID uint) (int64, error)

	// CountCollaboratorsByChief counts collaborator links under a chief
	CountCollaboratorsByChief(chiefID uint) (int64, error)

	// DecrementElderCredits takes one elder slot from the chief
	DecrementElderCredits(chiefID uint) error

	// DecrementCollaboratorCredits takes one collaborator slot from the chief
	DecrementCollaboratorCredits(chiefID uint) error

	// CreateElder inserts an elder profile
	CreateElder(elder *models.Elder) error

	// CreateUser inserts a user (elder login or collaborator account)
	CreateUser(user *models.User) error

	// CreateCollaborator inserts a collaborator link
	CreateCollaborator(link *models.Collaborator) error

	// ExecuteInTransaction runs fn against a store bound to one transaction
	ExecuteInTransaction(fn func(LedgerStore) error) error

	// InvalidateChief drops the chief's cached user row. Called after a
	// committed transaction that changed the credit balance; best-effort.
	InvalidateChief(chiefID uint)
}

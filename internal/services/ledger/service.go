// Package ledger enforces the freemium credit quota. The first elder and
// the first collaborator under a chief are free; every one beyond that
// consumes a purchased credit. Check, decrement and insert run in one
// row-locked transaction so concurrent creations for the same chief are
// serialized.
package ledger

import (
	domainerrors "amparo/internal/errors"
	"amparo/internal/repositories"
)

type Service interface {
	// ConsumeElderSlot runs create inside the atomic unit that charges an
	// elder slot. Fails PlanRequired when the free slot is taken and
	// elderCredits is zero.
	ConsumeElderSlot(chiefID uint, create func(tx repositories.LedgerStore) error) error

	// ConsumeCollaboratorSlot is the collaborator-side equivalent.
	ConsumeCollaboratorSlot(chiefID uint, create func(tx repositories.LedgerStore) error) error
}

type service struct {
	store repositories.LedgerStore
}

// NewService creates a new ledger service.
func NewService(store repositories.LedgerStore) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store}
}

func (s *service) ConsumeElderSlot(chiefID uint, create func(tx repositories.LedgerStore) error) error {
	err := s.store.ExecuteInTransaction(func(tx repositories.LedgerStore) error {
		chief, err := tx.GetChiefForUpdate(chiefID)
		if err != nil {
			if err == repositories.ErrUserNotFound {
				return domainerrors.ErrUserNotFound
			}
			return err
		}

		count, err := tx.CountEldersByChief(chiefID)
		if err != nil {
			return err
		}

		if count >= 1 {
			if chief.ElderCredits <= 0 {
				return domainerrors.ErrPlanRequired
			}
			if err := tx.DecrementElderCredits(chiefID); err != nil {
				return err
			}
		}

		return create(tx)
	})
	if err != nil {
		return err
	}

	// The cached user row still carries the pre-decrement balance.
	s.store.InvalidateChief(chiefID)
	return nil
}

func (s *service) ConsumeCollaboratorSlot(chiefID uint, create func(tx repositories.LedgerStore) error) error {
	err := s.store.ExecuteInTransaction(func(tx repositories.LedgerStore) error {
		chief, err := tx.GetChiefForUpdate(chiefID)
		if err != nil {
			if err == repositories.ErrUserNotFound {
				return domainerrors.ErrUserNotFound
			}
			return err
		}

		count, err := tx.CountCollaboratorsByChief(chiefID)
		if err != nil {
			return err
		}

		if count >= 1 {
			if chief.CollaboratorCredits <= 0 {
				return domainerrors.ErrPlanRequired
			}
			if err := tx.DecrementCollaboratorCredits(chiefID); err != nil {
				return err
			}
		}

		return create(tx)
	})
	if err != nil {
		return err
	}

	s.store.InvalidateChief(chiefID)
	return nil
}

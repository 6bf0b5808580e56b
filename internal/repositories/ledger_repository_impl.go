package repositories

import (
	"context"
	"log"

	"amparo/internal/models"
	"amparo/internal/repositories/cache"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerStore struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewLedgerStore creates a new instance of LedgerStore.
func NewLedgerStore(db *gorm.DB, cache *cache.CacheService) LedgerStore {
	return &ledgerStore{db: db, cache: cache}
}

func (s *ledgerStore) GetChiefForUpdate(id uint) (*models.User, error) {
	var chief models.User
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&chief, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &chief, nil
}

func (s *ledgerStore) CountEldersByChief(chiefID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Elder{}).
		Where("chief_id = ?", chiefID).Count(&count).Error
	return count, err
}

func (s *ledgerStore) CountCollaboratorsByChief(chiefID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Collaborator{}).
		Where("chief_id = ?", chiefID).Count(&count).Error
	return count, err
}

func (s *ledgerStore) DecrementElderCredits(chiefID uint) error {
	return s.db.Model(&models.User{}).
		Where("id = ? AND elder_credits > 0", chiefID).
		UpdateColumn("elder_credits", gorm.Expr("elder_credits - 1")).Error
}

func (s *ledgerStore) DecrementCollaboratorCredits(chiefID uint) error {
	return s.db.Model(&models.User{}).
		Where("id = ? AND collaborator_credits > 0", chiefID).
		UpdateColumn("collaborator_credits", gorm.Expr("collaborator_credits - 1")).Error
}

func (s *ledgerStore) CreateElder(elder *models.Elder) error {
	return s.db.Create(elder).Error
}

func (s *ledgerStore) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *ledgerStore) CreateCollaborator(link *models.Collaborator) error {
	return s.db.Create(link).Error
}

func (s *ledgerStore) ExecuteInTransaction(fn func(LedgerStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerStore{db: tx, cache: s.cache})
	})
}

func (s *ledgerStore) InvalidateChief(chiefID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(context.Background(), chiefID); err != nil {
		log.Printf("failed to invalidate user cache %d: %v", chiefID, err)
	}
}

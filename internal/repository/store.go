package repository

import (
	"go.uber.org/zap"

	"ilmkids/internal/database"
)

// Store bundles the SQL repositories over one connection pool
type Store struct {
	Users         *UserRepository
	Relationships *RelationshipRepository
	Progress      *ProgressRepository
	SurahProgress *SurahProgressRepository
}

// NewStore creates the SQL-backed repositories
func NewStore(db *database.DB, logger *zap.Logger) *Store {
	return &Store{
		Users:         NewUserRepository(db),
		Relationships: NewRelationshipRepository(db),
		Progress:      NewProgressRepository(db),
		SurahProgress: NewSurahProgressRepository(db, logger),
	}
}

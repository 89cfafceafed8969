// Package memory provides the default process-local store.
//
// Each table is guarded by its own RWMutex. Mutations run as read-modify-write
// closures under the table's write lock, so a record only ever has one writer
// at a time. State is lost on restart.
package memory

import "time"

// Store bundles the in-memory repositories behind one constructor
type Store struct {
	Users         *UserRepository
	Relationships *RelationshipRepository
	Progress      *ProgressRepository
	SurahProgress *SurahProgressRepository
}

// NewStore creates an empty, isolated store
func NewStore() *Store {
	return &Store{
		Users:         NewUserRepository(),
		Relationships: NewRelationshipRepository(),
		Progress:      NewProgressRepository(),
		SurahProgress: NewSurahProgressRepository(),
	}
}

// now is swapped in tests that need deterministic timestamps
var now = func() time.Time { return time.Now().UTC() }

type pairKey struct {
	a, b int64
}

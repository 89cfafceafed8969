package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"ilmkids/internal/models"
)

// SurahProgressRepository holds per-(user, surah) memorization records in memory.
// Verse entries live inside the record as structured data, not as an encoded blob.
type SurahProgressRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records map[pairKey]*models.UserSurahProgress
}

// NewSurahProgressRepository creates an empty surah progress repository
func NewSurahProgressRepository() *SurahProgressRepository {
	return &SurahProgressRepository{
		records: make(map[pairKey]*models.UserSurahProgress),
	}
}

// UpsertSurahProgress loads or creates the record for (userID, surahID) and applies fn to it
func (r *SurahProgressRepository) UpsertSurahProgress(_ context.Context, userID, surahID int64, fn func(*models.UserSurahProgress) error) (*models.UserSurahProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{userID, surahID}
	current, exists := r.records[key]

	var working *models.UserSurahProgress
	if exists {
		working = current.Clone()
	} else {
		working = &models.UserSurahProgress{
			UserID:            userID,
			SurahID:           surahID,
			MemorizationLevel: models.LevelNotStarted,
			Verses:            []models.VerseProgress{},
		}
	}

	if err := fn(working); err != nil {
		return nil, err
	}

	if exists {
		working.ID = current.ID
	} else {
		r.nextID++
		working.ID = r.nextID
	}
	working.UserID = userID
	working.SurahID = surahID

	r.records[key] = working
	return working.Clone(), nil
}

// GetSurahProgress retrieves the record for (userID, surahID)
func (r *SurahProgressRepository) GetSurahProgress(_ context.Context, userID, surahID int64) (*models.UserSurahProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.records[pairKey{userID, surahID}]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

// ListSurahProgressByUser returns all of a user's surah records ordered by surah
func (r *SurahProgressRepository) ListSurahProgressByUser(_ context.Context, userID int64) ([]models.UserSurahProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.UserSurahProgress{}
	for key, p := range r.records {
		if key.a == userID {
			result = append(result, *p.Clone())
		}
	}
	slices.SortFunc(result, func(a, b models.UserSurahProgress) int { return cmp.Compare(a.SurahID, b.SurahID) })
	return result, nil
}

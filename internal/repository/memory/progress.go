package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"ilmkids/internal/models"
)

// ProgressRepository holds per-(user, quiz) progress records in memory
type ProgressRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records map[pairKey]*models.UserProgress
}

// NewProgressRepository creates an empty progress repository
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{
		records: make(map[pairKey]*models.UserProgress),
	}
}

// UpsertProgress loads or creates the record for (userID, quizID) and applies fn to it.
// isNew tells fn whether the record was just created. Nothing is stored if fn fails.
func (r *ProgressRepository) UpsertProgress(_ context.Context, userID, quizID int64, fn func(p *models.UserProgress, isNew bool) error) (*models.UserProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{userID, quizID}
	current, exists := r.records[key]

	var working *models.UserProgress
	if exists {
		working = current.Clone()
	} else {
		working = &models.UserProgress{UserID: userID, QuizID: quizID}
	}

	if err := fn(working, !exists); err != nil {
		return nil, err
	}

	if exists {
		working.ID = current.ID
	} else {
		r.nextID++
		working.ID = r.nextID
	}
	working.UserID = userID
	working.QuizID = quizID

	r.records[key] = working
	return working.Clone(), nil
}

// GetProgress retrieves the record for (userID, quizID)
func (r *ProgressRepository) GetProgress(_ context.Context, userID, quizID int64) (*models.UserProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.records[pairKey{userID, quizID}]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

// ListProgressByUser returns all of a user's records ordered by ID
func (r *ProgressRepository) ListProgressByUser(_ context.Context, userID int64) ([]models.UserProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.UserProgress{}
	for key, p := range r.records {
		if key.a == userID {
			result = append(result, *p.Clone())
		}
	}
	slices.SortFunc(result, func(a, b models.UserProgress) int { return cmp.Compare(a.ID, b.ID) })
	return result, nil
}

package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"ilmkids/internal/models"
	"ilmkids/internal/repository"
)

// RelationshipRepository holds parent/child links in memory
type RelationshipRepository struct {
	mu     sync.RWMutex
	nextID int64
	links  map[pairKey]*models.ParentChildRelationship
}

// NewRelationshipRepository creates an empty relationship repository
func NewRelationshipRepository() *RelationshipRepository {
	return &RelationshipRepository{
		links: make(map[pairKey]*models.ParentChildRelationship),
	}
}

// GetOrCreateRelationship returns the existing link for the pair, or creates one.
// The boolean reports whether a new row was created.
func (r *RelationshipRepository) GetOrCreateRelationship(_ context.Context, parentID, childID int64) (*models.ParentChildRelationship, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{parentID, childID}
	if existing, ok := r.links[key]; ok {
		c := *existing
		return &c, false, nil
	}

	r.nextID++
	rel := &models.ParentChildRelationship{
		ID:        r.nextID,
		ParentID:  parentID,
		ChildID:   childID,
		CreatedAt: now(),
	}
	r.links[key] = rel

	c := *rel
	return &c, true, nil
}

// GetRelationship retrieves the link for a pair
func (r *RelationshipRepository) GetRelationship(_ context.Context, parentID, childID int64) (*models.ParentChildRelationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rel, ok := r.links[pairKey{parentID, childID}]
	if !ok {
		return nil, nil
	}
	c := *rel
	return &c, nil
}

// DeleteRelationship removes the link for a pair
func (r *RelationshipRepository) DeleteRelationship(_ context.Context, parentID, childID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{parentID, childID}
	if _, ok := r.links[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.links, key)
	return nil
}

// ListByParent returns every link where parentID is the parent
func (r *RelationshipRepository) ListByParent(_ context.Context, parentID int64) ([]models.ParentChildRelationship, error) {
	return r.filter(func(rel *models.ParentChildRelationship) bool { return rel.ParentID == parentID }), nil
}

// ListByChild returns every link where childID is the child
func (r *RelationshipRepository) ListByChild(_ context.Context, childID int64) ([]models.ParentChildRelationship, error) {
	return r.filter(func(rel *models.ParentChildRelationship) bool { return rel.ChildID == childID }), nil
}

func (r *RelationshipRepository) filter(match func(*models.ParentChildRelationship) bool) []models.ParentChildRelationship {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.ParentChildRelationship{}
	for _, rel := range r.links {
		if match(rel) {
			result = append(result, *rel)
		}
	}
	slices.SortFunc(result, func(a, b models.ParentChildRelationship) int { return cmp.Compare(a.ID, b.ID) })
	return result
}

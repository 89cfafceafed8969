package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"ilmkids/internal/models"
	"ilmkids/internal/repository"
)

// UserRepository holds user accounts in memory
type UserRepository struct {
	mu         sync.RWMutex
	nextID     int64
	users      map[int64]*models.User
	byUsername map[string]int64
}

// NewUserRepository creates an empty user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:      make(map[int64]*models.User),
		byUsername: make(map[string]int64),
	}
}

func usernameKey(username string) string {
	return strings.ToLower(username)
}

// CreateUser stores a new user and assigns its ID
func (r *UserRepository) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := usernameKey(user.Username)
	if _, taken := r.byUsername[key]; taken {
		return nil, repository.ErrConflict
	}

	r.nextID++
	stored := user.Clone()
	stored.ID = r.nextID
	ts := now()
	stored.CreatedAt = ts
	stored.UpdatedAt = ts

	r.users[stored.ID] = stored
	r.byUsername[key] = stored.ID

	return stored.Clone(), nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return user.Clone(), nil
}

// GetUserByUsername retrieves a user by username, case-insensitively
func (r *UserRepository) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[usernameKey(username)]
	if !ok {
		return nil, nil
	}
	return r.users[id].Clone(), nil
}

// GetUsersByIDs retrieves the users that exist among ids, ordered by ID
func (r *UserRepository) GetUsersByIDs(_ context.Context, ids []int64) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users = append(users, *user.Clone())
		}
	}
	slices.SortFunc(users, func(a, b models.User) int { return cmp.Compare(a.ID, b.ID) })
	return users, nil
}

// UpdateUser applies fn to the stored user under the write lock.
// If fn returns an error nothing is written.
func (r *UserRepository) UpdateUser(_ context.Context, id int64, fn func(*models.User) error) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}

	// identity fields are not mutable through updates
	working.ID = current.ID
	working.Username = current.Username
	working.CreatedAt = current.CreatedAt
	working.UpdatedAt = now()

	r.users[id] = working
	return working.Clone(), nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ilmkids/internal/database"
	"ilmkids/internal/models"
)

const userColumns = `id, username, password_hash, role, display_name, email, avatar_url,
	points, quizzes_completed, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// UserRepository handles database operations for users and their badges
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var role string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&role,
		&user.DisplayName,
		&user.Email,
		&user.AvatarURL,
		&user.Points,
		&user.QuizzesCompleted,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	user.Badges = []string{}
	return user, nil
}

// CreateUser inserts a new user and returns it with its assigned ID
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	stored := user.Clone()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		query := `
			INSERT INTO users (username, password_hash, role, display_name, email, avatar_url,
				points, quizzes_completed, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		id, err := tx.ExecReturningID(ctx, query,
			stored.Username, stored.PasswordHash, string(stored.Role), stored.DisplayName,
			stored.Email, stored.AvatarURL, stored.Points, stored.QuizzesCompleted,
			stored.CreatedAt, stored.UpdatedAt,
		)
		if err != nil {
			return err
		}
		stored.ID = id
		return insertBadges(ctx, tx, id, stored.Badges)
	})
	if database.IsUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return stored, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return r.getOne(ctx, r.db, query, id)
}

// GetUserByUsername retrieves a user by username, case-insensitively
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE LOWER(username) = LOWER(?)"
	return r.getOne(ctx, r.db, query, username)
}

func (r *UserRepository) getOne(ctx context.Context, q database.DBTX, query string, args ...any) (*models.User, error) {
	user, err := scanUser(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	badges, err := loadBadges(ctx, q, user.ID)
	if err != nil {
		return nil, err
	}
	user.Badges = badges
	return user, nil
}

// GetUsersByIDs retrieves the users that exist among ids, ordered by ID
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := "SELECT " + userColumns + " FROM users WHERE id IN (" + placeholders + ") ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	for i := range users {
		badges, err := loadBadges(ctx, r.db, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Badges = badges
	}
	return users, nil
}

// UpdateUser locks the user row, applies fn and writes the result back.
// If fn returns an error the transaction is rolled back.
func (r *UserRepository) UpdateUser(ctx context.Context, id int64, fn func(*models.User) error) (*models.User, error) {
	var updated *models.User

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		query := "SELECT " + userColumns + " FROM users WHERE id = ?" + tx.GetDialect().ForUpdate()
		current, err := r.getOne(ctx, tx, query, id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotFound
		}

		working := current.Clone()
		if err := fn(working); err != nil {
			return err
		}

		// identity fields are not mutable through updates
		working.ID = current.ID
		working.Username = current.Username
		working.CreatedAt = current.CreatedAt
		working.UpdatedAt = time.Now().UTC()

		update := `
			UPDATE users
			SET display_name = ?, email = ?, avatar_url = ?, points = ?, quizzes_completed = ?, updated_at = ?
			WHERE id = ?
		`
		if _, err := tx.ExecContext(ctx, update,
			working.DisplayName, working.Email, working.AvatarURL,
			working.Points, working.QuizzesCompleted, working.UpdatedAt, id,
		); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		if err := insertBadges(ctx, tx, id, working.Badges); err != nil {
			return err
		}

		updated = working
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// loadBadges returns a user's badges in the order they were granted
func loadBadges(ctx context.Context, q database.DBTX, userID int64) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT badge FROM user_badges WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get badges: %w", err)
	}
	defer rows.Close()

	badges := []string{}
	for rows.Next() {
		var badge string
		if err := rows.Scan(&badge); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, badge)
	}
	return badges, rows.Err()
}

// insertBadges adds any badges not yet stored; badges are never removed
func insertBadges(ctx context.Context, tx *database.Tx, userID int64, badges []string) error {
	query := tx.GetDialect().InsertIgnore("INSERT INTO user_badges (user_id, badge) VALUES (?, ?)")
	for _, badge := range badges {
		if _, err := tx.ExecContext(ctx, query, userID, badge); err != nil {
			return fmt.Errorf("failed to save badge: %w", err)
		}
	}
	return nil
}

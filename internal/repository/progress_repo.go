package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ilmkids/internal/database"
	"ilmkids/internal/models"
)

const progressColumns = `id, user_id, quiz_id, score, completed, correct_answers, incorrect_answers, last_completed`

// ProgressRepository handles database operations for quiz progress
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func scanProgress(row rowScanner) (*models.UserProgress, error) {
	p := &models.UserProgress{}
	var (
		score         sql.NullInt64
		lastCompleted sql.NullTime
	)
	err := row.Scan(&p.ID, &p.UserID, &p.QuizID, &score, &p.Completed,
		&p.CorrectAnswers, &p.IncorrectAnswers, &lastCompleted)
	if err != nil {
		return nil, err
	}
	if score.Valid {
		v := int(score.Int64)
		p.Score = &v
	}
	if lastCompleted.Valid {
		t := lastCompleted.Time.UTC()
		p.LastCompleted = &t
	}
	return p, nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// UpsertProgress loads or creates the (userID, quizID) row under a row lock,
// applies fn and writes it back. isNew tells fn whether the row was just created.
func (r *ProgressRepository) UpsertProgress(ctx context.Context, userID, quizID int64, fn func(p *models.UserProgress, isNew bool) error) (*models.UserProgress, error) {
	var saved *models.UserProgress

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		dialect := tx.GetDialect()

		insert := dialect.InsertIgnore(
			"INSERT INTO user_progress (user_id, quiz_id, completed, correct_answers, incorrect_answers) VALUES (?, ?, ?, 0, 0)")
		result, err := tx.ExecContext(ctx, insert, userID, quizID, false)
		if err != nil {
			return fmt.Errorf("failed to create progress: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to create progress: %w", err)
		}
		isNew := affected == 1

		query := "SELECT " + progressColumns + " FROM user_progress WHERE user_id = ? AND quiz_id = ?" + dialect.ForUpdate()
		working, err := scanProgress(tx.QueryRowContext(ctx, query, userID, quizID))
		if err != nil {
			return fmt.Errorf("failed to get progress: %w", err)
		}

		if err := fn(working, isNew); err != nil {
			return err
		}
		working.UserID = userID
		working.QuizID = quizID

		update := `
			UPDATE user_progress
			SET score = ?, completed = ?, correct_answers = ?, incorrect_answers = ?, last_completed = ?
			WHERE id = ?
		`
		var lastCompleted sql.NullTime
		if working.LastCompleted != nil {
			lastCompleted = sql.NullTime{Time: working.LastCompleted.UTC(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, update,
			nullableInt(working.Score), working.Completed, working.CorrectAnswers,
			working.IncorrectAnswers, lastCompleted, working.ID,
		); err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}

		saved = working
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetProgress retrieves the record for (userID, quizID)
func (r *ProgressRepository) GetProgress(ctx context.Context, userID, quizID int64) (*models.UserProgress, error) {
	query := "SELECT " + progressColumns + " FROM user_progress WHERE user_id = ? AND quiz_id = ?"
	p, err := scanProgress(r.db.QueryRowContext(ctx, query, userID, quizID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return p, nil
}

// ListProgressByUser returns all of a user's records ordered by ID
func (r *ProgressRepository) ListProgressByUser(ctx context.Context, userID int64) ([]models.UserProgress, error) {
	query := "SELECT " + progressColumns + " FROM user_progress WHERE user_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	records := []models.UserProgress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		records = append(records, *p)
	}
	return records, rows.Err()
}

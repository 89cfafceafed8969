package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ilmkids/internal/database"
	"ilmkids/internal/models"
)

const surahProgressColumns = `id, user_id, surah_id, completed_verses, memorization_level, last_practiced, verses_json`

// SurahProgressRepository handles database operations for Quran memorization records.
// The verse list is stored whole in verses_json and rewritten on every update.
type SurahProgressRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewSurahProgressRepository creates a new surah progress repository
func NewSurahProgressRepository(db *database.DB, logger *zap.Logger) *SurahProgressRepository {
	return &SurahProgressRepository{db: db, logger: logger}
}

func (r *SurahProgressRepository) scan(row rowScanner) (*models.UserSurahProgress, error) {
	p := &models.UserSurahProgress{}
	var (
		level         int
		lastPracticed sql.NullTime
		versesJSON    string
	)
	err := row.Scan(&p.ID, &p.UserID, &p.SurahID, &p.CompletedVerses, &level, &lastPracticed, &versesJSON)
	if err != nil {
		return nil, err
	}
	p.MemorizationLevel = models.MasteryLevel(level)
	if lastPracticed.Valid {
		t := lastPracticed.Time.UTC()
		p.LastPracticed = &t
	}

	verses, err := DecodeVerses(versesJSON)
	if err != nil {
		// unreadable lists degrade to empty and are rewritten on the next update
		r.logger.Warn("discarding unreadable verse progress",
			zap.Int64("surah_progress_id", p.ID),
			zap.Error(err),
		)
	}
	p.Verses = verses
	return p, nil
}

// UpsertSurahProgress loads or creates the (userID, surahID) row under a row
// lock, applies fn and writes the whole record back.
func (r *SurahProgressRepository) UpsertSurahProgress(ctx context.Context, userID, surahID int64, fn func(*models.UserSurahProgress) error) (*models.UserSurahProgress, error) {
	var saved *models.UserSurahProgress

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		dialect := tx.GetDialect()

		insert := dialect.InsertIgnore(`
			INSERT INTO user_surah_progress (user_id, surah_id, completed_verses, memorization_level, verses_json)
			VALUES (?, ?, 0, ?, '[]')`)
		if _, err := tx.ExecContext(ctx, insert, userID, surahID, int(models.LevelNotStarted)); err != nil {
			return fmt.Errorf("failed to create surah progress: %w", err)
		}

		query := "SELECT " + surahProgressColumns + " FROM user_surah_progress WHERE user_id = ? AND surah_id = ?" + dialect.ForUpdate()
		working, err := r.scan(tx.QueryRowContext(ctx, query, userID, surahID))
		if err != nil {
			return fmt.Errorf("failed to get surah progress: %w", err)
		}

		if err := fn(working); err != nil {
			return err
		}
		working.UserID = userID
		working.SurahID = surahID

		versesJSON, err := EncodeVerses(working.Verses)
		if err != nil {
			return err
		}
		var lastPracticed sql.NullTime
		if working.LastPracticed != nil {
			lastPracticed = sql.NullTime{Time: working.LastPracticed.UTC(), Valid: true}
		}

		update := `
			UPDATE user_surah_progress
			SET completed_verses = ?, memorization_level = ?, last_practiced = ?, verses_json = ?
			WHERE id = ?
		`
		if _, err := tx.ExecContext(ctx, update,
			working.CompletedVerses, int(working.MemorizationLevel), lastPracticed, versesJSON, working.ID,
		); err != nil {
			return fmt.Errorf("failed to update surah progress: %w", err)
		}

		saved = working
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetSurahProgress retrieves the record for (userID, surahID)
func (r *SurahProgressRepository) GetSurahProgress(ctx context.Context, userID, surahID int64) (*models.UserSurahProgress, error) {
	query := "SELECT " + surahProgressColumns + " FROM user_surah_progress WHERE user_id = ? AND surah_id = ?"
	p, err := r.scan(r.db.QueryRowContext(ctx, query, userID, surahID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get surah progress: %w", err)
	}
	return p, nil
}

// ListSurahProgressByUser returns a user's records ordered by surah
func (r *SurahProgressRepository) ListSurahProgressByUser(ctx context.Context, userID int64) ([]models.UserSurahProgress, error) {
	query := "SELECT " + surahProgressColumns + " FROM user_surah_progress WHERE user_id = ? ORDER BY surah_id"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list surah progress: %w", err)
	}
	defer rows.Close()

	records := []models.UserSurahProgress{}
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan surah progress: %w", err)
		}
		records = append(records, *p)
	}
	return records, rows.Err()
}

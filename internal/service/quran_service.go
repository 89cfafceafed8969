package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ilmkids/internal/metrics"
	"ilmkids/internal/models"
)

// QuranService tracks verse and surah memorization
type QuranService struct {
	surahProgress SurahProgressRepository
	users         UserRepository
	catalog       Catalog
	logger        *zap.Logger
	now           func() time.Time
}

// NewQuranService creates a new memorization tracker
func NewQuranService(surahProgress SurahProgressRepository, users UserRepository, catalog Catalog, logger *zap.Logger) *QuranService {
	return &QuranService{
		surahProgress: surahProgress,
		users:         users,
		catalog:       catalog,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SetVerseLevel records the user's level for a verse inside its surah record.
// CompletedVerses is recomputed from the verse entries on every call.
func (s *QuranService) SetVerseLevel(ctx context.Context, userID, verseID int64, level models.MasteryLevel) (*models.VerseLevelResult, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	verse, err := s.catalog.GetVerse(ctx, verseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get verse: %w", err)
	}
	if verse == nil {
		return nil, ErrVerseNotFound
	}

	progress, err := s.surahProgress.UpsertSurahProgress(ctx, userID, verse.SurahID, func(p *models.UserSurahProgress) error {
		p.SetVerseLevel(verseID, level)
		ts := s.now()
		p.LastPracticed = &ts
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save surah progress: %w", err)
	}

	metrics.VerseUpdates.WithLabelValues(level.String()).Inc()
	s.logger.Debug("verse level set",
		zap.Int64("user_id", userID),
		zap.Int64("verse_id", verseID),
		zap.Int64("surah_id", verse.SurahID),
		zap.Stringer("level", level),
		zap.Int("completed_verses", progress.CompletedVerses),
	)

	return &models.VerseLevelResult{
		UserID:        userID,
		VerseID:       verseID,
		Level:         level,
		SurahProgress: progress,
	}, nil
}

// SetSurahProgress creates or updates the surah-level record.
// A caller-supplied CompletedVerses is ignored; the count always comes from
// the verse entries.
func (s *QuranService) SetSurahProgress(ctx context.Context, userID, surahID int64, update models.SurahProgressUpdate) (*models.UserSurahProgress, error) {
	if update.MemorizationLevel != nil && !update.MemorizationLevel.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, *update.MemorizationLevel)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	surah, err := s.catalog.GetSurah(ctx, surahID)
	if err != nil {
		return nil, fmt.Errorf("failed to get surah: %w", err)
	}
	if surah == nil {
		return nil, ErrSurahNotFound
	}

	if update.CompletedVerses != nil {
		s.logger.Debug("ignoring caller-supplied completed verse count",
			zap.Int64("user_id", userID),
			zap.Int64("surah_id", surahID),
			zap.Int("supplied", *update.CompletedVerses),
		)
	}

	progress, err := s.surahProgress.UpsertSurahProgress(ctx, userID, surahID, func(p *models.UserSurahProgress) error {
		if update.MemorizationLevel != nil {
			p.MemorizationLevel = *update.MemorizationLevel
		}
		p.RecomputeCompleted()
		ts := s.now()
		p.LastPracticed = &ts
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save surah progress: %w", err)
	}
	return progress, nil
}

// GetSurahProgress returns the user's record for one surah
func (s *QuranService) GetSurahProgress(ctx context.Context, userID, surahID int64) (*models.UserSurahProgress, error) {
	progress, err := s.surahProgress.GetSurahProgress(ctx, userID, surahID)
	if err != nil {
		return nil, fmt.Errorf("failed to get surah progress: %w", err)
	}
	if progress == nil {
		return nil, ErrSurahProgressNotFound
	}
	return progress, nil
}

// ListSurahProgress returns all of the user's surah records ordered by surah
func (s *QuranService) ListSurahProgress(ctx context.Context, userID int64) ([]models.UserSurahProgress, error) {
	records, err := s.surahProgress.ListSurahProgressByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list surah progress: %w", err)
	}
	return records, nil
}

func (s *QuranService) requireUser(ctx context.Context, userID int64) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"ilmkids/internal/metrics"
	"ilmkids/internal/models"
	"ilmkids/internal/validation"
)

// ProgressService records quiz submissions and drives point and badge awards
type ProgressService struct {
	progress      ProgressRepository
	users         *UserService
	relationships *RelationshipService
	catalog       Catalog
	notifier      BadgeNotifier
	logger        *zap.Logger
	now           func() time.Time
	notifyTimeout time.Duration
}

// defaultNotifyTimeout caps how long a submission waits on badge e-mails
const defaultNotifyTimeout = 3 * time.Second

// NewProgressService creates a new progress service.
// notifier may be nil, in which case no badge notifications are sent.
func NewProgressService(progress ProgressRepository, users *UserService, relationships *RelationshipService, catalog Catalog, notifier BadgeNotifier, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		progress:      progress,
		users:         users,
		relationships: relationships,
		catalog:       catalog,
		notifier:      notifier,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
		notifyTimeout: defaultNotifyTimeout,
	}
}

// Submit stores a quiz result for the user, overwriting any earlier
// submission for the same quiz, then applies its rewards.
//
// The steps are not atomic as a group: the progress record is written first,
// followed by the completion counter, the points award and the badge grant.
// If a later step fails its error is returned and earlier effects remain.
func (s *ProgressService) Submit(ctx context.Context, userID, quizID int64, result models.QuizResult) (*models.UserProgress, error) {
	if err := validation.Struct(result); err != nil {
		return nil, invalidInput(err)
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	quiz, err := s.catalog.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}

	var newlyCompleted bool
	progress, err := s.progress.UpsertProgress(ctx, userID, quizID, func(p *models.UserProgress, isNew bool) error {
		newlyCompleted = result.Completed && (isNew || !p.Completed)

		p.Score = result.Score
		p.Completed = result.Completed
		p.CorrectAnswers = result.CorrectAnswers
		p.IncorrectAnswers = result.IncorrectAnswers
		if !isNew || result.Completed {
			ts := s.now()
			p.LastCompleted = &ts
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	metrics.QuizSubmissions.WithLabelValues(strconv.FormatBool(result.Completed)).Inc()
	s.logger.Debug("quiz progress saved",
		zap.Int64("user_id", userID),
		zap.Int64("quiz_id", quizID),
		zap.Bool("completed", result.Completed),
		zap.Bool("first_completion", newlyCompleted),
	)

	if newlyCompleted {
		if _, err := s.users.markQuizCompleted(ctx, userID); err != nil {
			return progress, err
		}
	}

	if !result.Completed || result.Score == nil {
		return progress, nil
	}

	if _, err := s.users.AwardPoints(ctx, userID, *result.Score); err != nil {
		return progress, err
	}

	if result.EarnsBadge() {
		if err := s.grantCategoryBadge(ctx, userID, quiz); err != nil {
			return progress, err
		}
	}

	return progress, nil
}

func (s *ProgressService) grantCategoryBadge(ctx context.Context, userID int64, quiz *models.Quiz) error {
	category, err := s.catalog.GetCategory(ctx, quiz.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	badge := models.BadgeName(category.Name)
	child, granted, err := s.users.GrantBadge(ctx, userID, badge)
	if err != nil {
		return err
	}
	if granted {
		s.notifyParents(ctx, child, badge)
	}
	return nil
}

// notifyParents is best effort; failures are logged and dropped.
// The send is bounded by notifyTimeout.
func (s *ProgressService) notifyParents(ctx context.Context, child *models.User, badge string) {
	if s.notifier == nil || s.relationships == nil {
		return
	}

	parents, err := s.relationships.ListParents(ctx, child.ID)
	if err != nil {
		s.logger.Warn("failed to list parents for badge notification",
			zap.Int64("child_id", child.ID),
			zap.Error(err),
		)
		return
	}
	if len(parents) == 0 {
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyBadgeEarned(sendCtx, child, parents, badge); err != nil {
		s.logger.Warn("failed to send badge notification",
			zap.Int64("child_id", child.ID),
			zap.String("badge", badge),
			zap.Error(err),
		)
	}
}

// GetUserProgress lists every quiz record for the user
func (s *ProgressService) GetUserProgress(ctx context.Context, userID int64) ([]models.UserProgress, error) {
	records, err := s.progress.ListProgressByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return records, nil
}

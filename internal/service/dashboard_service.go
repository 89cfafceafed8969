package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"ilmkids/internal/models"
)

// DashboardService builds parent-facing summaries of children's progress.
// Summaries are computed from the stores on every call.
type DashboardService struct {
	progress      ProgressRepository
	users         UserRepository
	relationships *RelationshipService
	catalog       Catalog
	logger        *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(progress ProgressRepository, users UserRepository, relationships *RelationshipService, catalog Catalog, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		progress:      progress,
		users:         users,
		relationships: relationships,
		catalog:       catalog,
		logger:        logger,
	}
}

// SummarizeForParent summarizes every child linked to the parent
func (s *DashboardService) SummarizeForParent(ctx context.Context, parentID int64) (map[int64]models.ChildSummary, error) {
	parent, err := s.users.GetUserByID(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if parent == nil {
		return nil, ErrUserNotFound
	}
	if parent.Role != models.RoleParent {
		return nil, fmt.Errorf("%w: user %d is not a parent", ErrRoleMismatch, parentID)
	}

	childIDs, err := s.relationships.ListChildIDs(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return s.SummarizeChildren(ctx, childIDs)
}

// SummarizeChildren computes one summary per id. Unknown or inactive
// children get zero-valued statistics rather than an error.
func (s *DashboardService) SummarizeChildren(ctx context.Context, childIDs []int64) (map[int64]models.ChildSummary, error) {
	totalQuizzes, err := s.catalog.CountQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quizzes: %w", err)
	}

	points := make(map[int64]int, len(childIDs))
	if len(childIDs) > 0 {
		users, err := s.users.GetUsersByIDs(ctx, childIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to get children: %w", err)
		}
		for _, u := range users {
			points[u.ID] = u.Points
		}
	}

	summaries := make(map[int64]models.ChildSummary, len(childIDs))
	for _, childID := range childIDs {
		records, err := s.progress.ListProgressByUser(ctx, childID)
		if err != nil {
			return nil, fmt.Errorf("failed to list progress for child %d: %w", childID, err)
		}

		summary := summarize(records)
		summary.TotalQuizzes = totalQuizzes
		summary.TotalPoints = points[childID]
		summaries[childID] = summary
	}

	s.logger.Debug("children summarized", zap.Int("children", len(childIDs)))
	return summaries, nil
}

// summarize derives the per-record statistics of a ChildSummary
func summarize(records []models.UserProgress) models.ChildSummary {
	var summary models.ChildSummary

	scoreTotal, scored := 0, 0
	for _, r := range records {
		if !r.Completed {
			continue
		}
		summary.CompletedQuizzes++
		if r.Score != nil {
			scoreTotal += *r.Score
			scored++
		}
	}
	if scored > 0 {
		summary.AverageScore = float64(scoreTotal) / float64(scored)
	}

	recent := slices.Clone(records)
	slices.SortStableFunc(recent, compareRecent)
	if len(recent) > models.RecentActivityLimit {
		recent = recent[:models.RecentActivityLimit]
	}
	if recent == nil {
		recent = []models.UserProgress{}
	}
	summary.RecentActivity = recent

	return summary
}

// compareRecent orders by LastCompleted descending with unset timestamps last
func compareRecent(a, b models.UserProgress) int {
	switch {
	case a.LastCompleted == nil && b.LastCompleted == nil:
		return cmp.Compare(b.ID, a.ID)
	case a.LastCompleted == nil:
		return 1
	case b.LastCompleted == nil:
		return -1
	}
	if c := b.LastCompleted.Compare(*a.LastCompleted); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ilmkids/internal/models"
	"ilmkids/internal/repository"
)

// RelationshipService manages parent/child links
type RelationshipService struct {
	relationships RelationshipRepository
	users         UserRepository
	logger        *zap.Logger
}

// NewRelationshipService creates a new relationship service
func NewRelationshipService(relationships RelationshipRepository, users UserRepository, logger *zap.Logger) *RelationshipService {
	return &RelationshipService{
		relationships: relationships,
		users:         users,
		logger:        logger,
	}
}

// Link connects a parent to a child. Linking an existing pair returns the
// existing relationship.
func (s *RelationshipService) Link(ctx context.Context, parentID, childID int64) (*models.ParentChildRelationship, error) {
	if err := s.checkRole(ctx, parentID, models.RoleParent); err != nil {
		return nil, err
	}
	if err := s.checkRole(ctx, childID, models.RoleChild); err != nil {
		return nil, err
	}

	rel, created, err := s.relationships.GetOrCreateRelationship(ctx, parentID, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to link child: %w", err)
	}

	if created {
		s.logger.Info("child linked",
			zap.Int64("parent_id", parentID),
			zap.Int64("child_id", childID),
		)
	}
	return rel, nil
}

// Unlink removes a parent/child link
func (s *RelationshipService) Unlink(ctx context.Context, parentID, childID int64) error {
	err := s.relationships.DeleteRelationship(ctx, parentID, childID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRelationshipNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to unlink child: %w", err)
	}

	s.logger.Info("child unlinked",
		zap.Int64("parent_id", parentID),
		zap.Int64("child_id", childID),
	)
	return nil
}

// IsLinked reports whether the parent is linked to the child
func (s *RelationshipService) IsLinked(ctx context.Context, parentID, childID int64) (bool, error) {
	rel, err := s.relationships.GetRelationship(ctx, parentID, childID)
	if err != nil {
		return false, fmt.Errorf("failed to get relationship: %w", err)
	}
	return rel != nil, nil
}

// ListChildIDs returns the ids of a parent's children in link order
func (s *RelationshipService) ListChildIDs(ctx context.Context, parentID int64) ([]int64, error) {
	rels, err := s.relationships.ListByParent(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	ids := make([]int64, 0, len(rels))
	for _, rel := range rels {
		ids = append(ids, rel.ChildID)
	}
	return ids, nil
}

// ListChildren returns the children linked to a parent
func (s *RelationshipService) ListChildren(ctx context.Context, parentID int64) ([]models.User, error) {
	ids, err := s.ListChildIDs(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return s.usersByIDs(ctx, ids)
}

// ListParents returns the parents linked to a child
func (s *RelationshipService) ListParents(ctx context.Context, childID int64) ([]models.User, error) {
	rels, err := s.relationships.ListByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	ids := make([]int64, 0, len(rels))
	for _, rel := range rels {
		ids = append(ids, rel.ParentID)
	}
	return s.usersByIDs(ctx, ids)
}

func (s *RelationshipService) usersByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

func (s *RelationshipService) checkRole(ctx context.Context, userID int64, want models.Role) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Role != want {
		return fmt.Errorf("%w: user %d is not a %s", ErrRoleMismatch, userID, want)
	}
	return nil
}

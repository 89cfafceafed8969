package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ilmkids/internal/metrics"
	"ilmkids/internal/models"
	"ilmkids/internal/repository"
	"ilmkids/internal/security"
	"ilmkids/internal/validation"
)

// UserService owns accounts, points and badges
type UserService struct {
	users  UserRepository
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// Register creates a new account with zero points and no badges
func (s *UserService) Register(ctx context.Context, input models.RegisterInput) (*models.User, error) {
	if err := validation.Struct(input); err != nil {
		return nil, invalidInput(err)
	}

	existing, err := s.users.GetUserByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	user, err := s.users.CreateUser(ctx, &models.User{
		Username:     input.Username,
		PasswordHash: hash,
		Role:         input.Role,
		DisplayName:  displayName,
		Email:        input.Email,
		AvatarURL:    input.AvatarURL,
		Badges:       []string{},
	})
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrDuplicateUsername
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// Authenticate checks a username/password pair
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		s.logger.Debug("authentication failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListUsers returns the existing users among ids, ordered by ID
func (s *UserService) ListUsers(ctx context.Context, ids []int64) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateProfile applies the non-nil profile fields
func (s *UserService) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (*models.User, error) {
	if err := validation.Struct(update); err != nil {
		return nil, invalidInput(err)
	}

	user, err := s.users.UpdateUser(ctx, id, func(u *models.User) error {
		update.Apply(u)
		return nil
	})
	if err != nil {
		return nil, s.mapUpdateError("update profile", err)
	}
	return user, nil
}

// AwardPoints adds delta to the user's points. Points only ever grow.
func (s *UserService) AwardPoints(ctx context.Context, id int64, delta int) (*models.User, error) {
	if delta < 0 {
		return nil, fmt.Errorf("%w: points delta must not be negative", ErrInvalidInput)
	}

	user, err := s.users.UpdateUser(ctx, id, func(u *models.User) error {
		u.Points += delta
		return nil
	})
	if err != nil {
		return nil, s.mapUpdateError("award points", err)
	}

	metrics.PointsAwarded.Add(float64(delta))
	s.logger.Debug("points awarded",
		zap.Int64("user_id", id),
		zap.Int("delta", delta),
		zap.Int("total", user.Points),
	)
	return user, nil
}

// GrantBadge adds a badge to the user's set.
// granted is false when the user already held it.
func (s *UserService) GrantBadge(ctx context.Context, id int64, name string) (user *models.User, granted bool, err error) {
	if name == "" {
		return nil, false, fmt.Errorf("%w: badge name is required", ErrInvalidInput)
	}

	user, err = s.users.UpdateUser(ctx, id, func(u *models.User) error {
		granted = u.AddBadge(name)
		return nil
	})
	if err != nil {
		return nil, false, s.mapUpdateError("grant badge", err)
	}

	if granted {
		metrics.BadgesGranted.Inc()
		s.logger.Info("badge granted",
			zap.Int64("user_id", id),
			zap.String("badge", name),
		)
	}
	return user, granted, nil
}

// markQuizCompleted bumps the completed-quiz counter
func (s *UserService) markQuizCompleted(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.UpdateUser(ctx, id, func(u *models.User) error {
		u.QuizzesCompleted++
		return nil
	})
	if err != nil {
		return nil, s.mapUpdateError("record quiz completion", err)
	}
	return user, nil
}

func (s *UserService) mapUpdateError(action string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

package service

//go:generate mockgen -destination=mock/contracts_mock.go -package=mock_service ilmkids/internal/service BadgeNotifier,Catalog

import (
	"context"

	"ilmkids/internal/models"
)

// UserRepository persists user accounts.
// Getters return (nil, nil) when the user does not exist.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, fn func(*models.User) error) (*models.User, error)
}

// RelationshipRepository persists parent/child links
type RelationshipRepository interface {
	GetOrCreateRelationship(ctx context.Context, parentID, childID int64) (*models.ParentChildRelationship, bool, error)
	GetRelationship(ctx context.Context, parentID, childID int64) (*models.ParentChildRelationship, error)
	DeleteRelationship(ctx context.Context, parentID, childID int64) error
	ListByParent(ctx context.Context, parentID int64) ([]models.ParentChildRelationship, error)
	ListByChild(ctx context.Context, childID int64) ([]models.ParentChildRelationship, error)
}

// ProgressRepository persists per-quiz progress records
type ProgressRepository interface {
	UpsertProgress(ctx context.Context, userID, quizID int64, fn func(p *models.UserProgress, isNew bool) error) (*models.UserProgress, error)
	GetProgress(ctx context.Context, userID, quizID int64) (*models.UserProgress, error)
	ListProgressByUser(ctx context.Context, userID int64) ([]models.UserProgress, error)
}

// SurahProgressRepository persists per-surah memorization records
type SurahProgressRepository interface {
	UpsertSurahProgress(ctx context.Context, userID, surahID int64, fn func(*models.UserSurahProgress) error) (*models.UserSurahProgress, error)
	GetSurahProgress(ctx context.Context, userID, surahID int64) (*models.UserSurahProgress, error)
	ListSurahProgressByUser(ctx context.Context, userID int64) ([]models.UserSurahProgress, error)
}

// Catalog is the read-only content catalog.
// Getters return (nil, nil) for unknown ids.
type Catalog interface {
	GetQuiz(ctx context.Context, id int64) (*models.Quiz, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetSurah(ctx context.Context, id int64) (*models.Surah, error)
	GetVerse(ctx context.Context, id int64) (*models.Verse, error)
	CountQuizzes(ctx context.Context) (int, error)
}

// BadgeNotifier tells a child's parents about a newly earned badge
type BadgeNotifier interface {
	NotifyBadgeEarned(ctx context.Context, child *models.User, parents []models.User, badge string) error
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ilmkids/internal/catalog"
	"ilmkids/internal/models"
	"ilmkids/internal/repository/memory"
)

const (
	quizAqeedah int64 = 1
	quizHistory int64 = 3

	surahFatiha  int64 = 1
	surahIkhlas  int64 = 112
	verseFatiha1 int64 = 11
	verseFatiha2 int64 = 12
	verseIkhlas1 int64 = 21
)

// testEnv wires every service against a fresh in-memory store
type testEnv struct {
	store         *memory.Store
	catalog       *catalog.Catalog
	users         *UserService
	relationships *RelationshipService
	progress      *ProgressService
	quran         *QuranService
	dashboard     *DashboardService
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]models.Category{
			{ID: 1, Name: "Aqeedah"},
			{ID: 2, Name: "History"},
		},
		[]models.Quiz{
			{ID: quizAqeedah, CategoryID: 1, Title: "Pillars of Iman"},
			{ID: 2, CategoryID: 1, Title: "Names of Allah"},
			{ID: quizHistory, CategoryID: 2, Title: "Prophets of Allah"},
		},
		[]models.Surah{
			{ID: surahFatiha, Number: 1, Name: "The Opening", VerseCount: 7},
			{ID: surahIkhlas, Number: 112, Name: "Sincerity", VerseCount: 4},
		},
		[]models.Verse{
			{ID: verseFatiha1, SurahID: surahFatiha, Number: 1},
			{ID: verseFatiha2, SurahID: surahFatiha, Number: 2},
			{ID: verseIkhlas1, SurahID: surahIkhlas, Number: 1},
		},
	)
	require.NoError(t, err)
	return c
}

func newTestEnv(t *testing.T, notifier BadgeNotifier) *testEnv {
	t.Helper()
	return newTestEnvWithCatalog(t, newTestCatalog(t), notifier)
}

func newTestEnvWithCatalog(t *testing.T, cat Catalog, notifier BadgeNotifier) *testEnv {
	t.Helper()
	log := zap.NewNop()
	store := memory.NewStore()

	users := NewUserService(store.Users, log)
	relationships := NewRelationshipService(store.Relationships, store.Users, log)

	env := &testEnv{
		store:         store,
		users:         users,
		relationships: relationships,
		progress:      NewProgressService(store.Progress, users, relationships, cat, notifier, log),
		quran:         NewQuranService(store.SurahProgress, store.Users, cat, log),
		dashboard:     NewDashboardService(store.Progress, store.Users, relationships, cat, log),
	}
	if c, ok := cat.(*catalog.Catalog); ok {
		env.catalog = c
	}
	return env
}

func (e *testEnv) register(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), models.RegisterInput{
		Username: username,
		Password: "bismillah",
		Role:     role,
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return user
}

// steppingClock returns a clock advancing one minute per call
func steppingClock() func() time.Time {
	ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		ts = ts.Add(time.Minute)
		return ts
	}
}

func intPtr(v int) *int { return &v }

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ilmkids/internal/catalog"
	"ilmkids/internal/models"
	"ilmkids/internal/repository/memory"
	"ilmkids/internal/security"
	"ilmkids/internal/service"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithRate(t, 100)
}

func newTestServerWithRate(t *testing.T, rate int) *testServer {
	t.Helper()
	log := zap.NewNop()

	f, err := os.Open("../../data/catalog.json")
	require.NoError(t, err)
	defer f.Close()
	cat, err := catalog.Load(f)
	require.NoError(t, err)

	store := memory.NewStore()
	users := service.NewUserService(store.Users, log)
	relationships := service.NewRelationshipService(store.Relationships, store.Users, log)
	progress := service.NewProgressService(store.Progress, users, relationships, cat, nil, log)
	quran := service.NewQuranService(store.SurahProgress, store.Users, cat, log)
	dashboard := service.NewDashboardService(store.Progress, store.Users, relationships, cat, log)

	tokens := security.NewTokenManager("test-secret", "ilmkids-test", time.Hour)
	limiter := security.NewRateLimiter(rate, time.Minute)

	mux := http.NewServeMux()
	RegisterRoutes(mux, NewMiddleware(tokens, users, limiter, nil, log), Handlers{
		Auth:     NewAuthHandler(users, tokens, log),
		Progress: NewProgressHandler(progress, relationships, log),
		Family:   NewFamilyHandler(relationships, dashboard, log),
		Quran:    NewQuranHandler(quran, log),
		Catalog:  NewCatalogHandler(cat, log),
	})

	srv := httptest.NewServer(Logging(log, mux))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// signup registers an account and logs it in, returning the user and token
func (s *testServer) signup(t *testing.T, username string, role models.Role) (models.User, string) {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": username,
		"password": "bismillah",
		"role":     string(role),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": "bismillah",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeBody[loginResponse](t, resp)
	require.NotEmpty(t, login.Token)
	return *login.User, login.Token
}

func TestRegisterDuplicateUsername(t *testing.T) {
	srv := newTestServer(t)
	srv.signup(t, "amina", models.RoleChild)

	resp := srv.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": "Amina",
		"password": "bismillah",
		"role":     "child",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	srv.signup(t, "yusuf", models.RoleChild)

	resp := srv.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": "yusuf",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := srv.do(t, http.MethodGet, "/api/me", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestMeAndProfileUpdate(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.signup(t, "maryam", models.RoleChild)

	resp := srv.do(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody[models.User](t, resp)
	assert.Equal(t, "maryam", me.Username)
	assert.Equal(t, "maryam", me.DisplayName)

	resp = srv.do(t, http.MethodPatch, "/api/me", token, map[string]string{"displayName": "Maryam A."})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[models.User](t, resp)
	assert.Equal(t, "Maryam A.", updated.DisplayName)
}

func TestProfileUpdateIgnoresNonProfileFields(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.signup(t, "sumayya", models.RoleChild)

	resp := srv.do(t, http.MethodPatch, "/api/me", token, map[string]any{
		"displayName":      "New",
		"points":           1000,
		"role":             "parent",
		"quizzesCompleted": 7,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[models.User](t, resp)
	assert.Equal(t, "New", updated.DisplayName)
	assert.Equal(t, 0, updated.Points)
	assert.Equal(t, models.RoleChild, updated.Role)
	assert.Equal(t, 0, updated.QuizzesCompleted)

	resp = srv.do(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody[models.User](t, resp)
	assert.Equal(t, 0, me.Points)
	assert.Equal(t, models.RoleChild, me.Role)
}

func TestProfileUpdateRejectsMalformedJSON(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.signup(t, "ruqayya", models.RoleChild)

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/me", bytes.NewBufferString(`{"displayName":`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitProgressAwardsPointsAndBadge(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.signup(t, "ibrahim", models.RoleChild)

	resp := srv.do(t, http.MethodPost, "/api/progress", token, map[string]any{
		"quizId":           1,
		"score":            90,
		"completed":        true,
		"correctAnswers":   9,
		"incorrectAnswers": 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	record := decodeBody[models.UserProgress](t, resp)
	assert.True(t, record.Completed)
	require.NotNil(t, record.Score)
	assert.Equal(t, 90, *record.Score)

	resp = srv.do(t, http.MethodGet, "/api/me", token, nil)
	me := decodeBody[models.User](t, resp)
	assert.Equal(t, 90, me.Points)
	assert.Equal(t, 1, me.QuizzesCompleted)
	assert.Equal(t, []string{"Aqeedah Master"}, me.Badges)

	resp = srv.do(t, http.MethodGet, "/api/progress", token, nil)
	records := decodeBody[[]models.UserProgress](t, resp)
	assert.Len(t, records, 1)
}

func TestSubmitProgressErrors(t *testing.T) {
	srv := newTestServer(t)
	_, child := srv.signup(t, "khadija", models.RoleChild)
	_, parent := srv.signup(t, "abu-khadija", models.RoleParent)

	tests := []struct {
		name  string
		token string
		body  any
		want  int
	}{
		{"unknown quiz", child, map[string]any{"quizId": 999, "completed": true}, http.StatusNotFound},
		{"negative counts", child, map[string]any{"quizId": 1, "correctAnswers": -1}, http.StatusBadRequest},
		{"unknown field", child, map[string]any{"quizId": 1, "bonus": 5}, http.StatusBadRequest},
		{"parent cannot submit", parent, map[string]any{"quizId": 1, "completed": true}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := srv.do(t, http.MethodPost, "/api/progress", tt.token, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestParentLinksChildAndSeesDashboard(t *testing.T) {
	srv := newTestServer(t)
	child, childToken := srv.signup(t, "zaid", models.RoleChild)
	_, parentToken := srv.signup(t, "umm-zaid", models.RoleParent)

	resp := srv.do(t, http.MethodPost, fmt.Sprintf("/api/children/%d", child.ID), parentToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = srv.do(t, http.MethodGet, "/api/children", parentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	children := decodeBody[[]models.User](t, resp)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)

	resp = srv.do(t, http.MethodGet, "/api/parents", childToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	parents := decodeBody[[]models.User](t, resp)
	require.Len(t, parents, 1)

	for _, score := range []int{60, 100} {
		quizID := 1
		if score == 100 {
			quizID = 2
		}
		resp = srv.do(t, http.MethodPost, "/api/progress", childToken, map[string]any{
			"quizId": quizID, "score": score, "completed": true,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp = srv.do(t, http.MethodGet, "/api/dashboard", parentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summaries := decodeBody[map[string]models.ChildSummary](t, resp)
	summary, ok := summaries[fmt.Sprint(child.ID)]
	require.True(t, ok, "dashboard missing linked child")
	assert.Equal(t, 5, summary.TotalQuizzes)
	assert.Equal(t, 2, summary.CompletedQuizzes)
	assert.InDelta(t, 80.0, summary.AverageScore, 0.001)
	assert.Equal(t, 160, summary.TotalPoints)
	assert.Len(t, summary.RecentActivity, 2)

	resp = srv.do(t, http.MethodGet, fmt.Sprintf("/api/children/%d/progress", child.ID), parentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/children/%d", child.ID), parentToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/children/%d", child.ID), parentToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = srv.do(t, http.MethodGet, fmt.Sprintf("/api/children/%d/progress", child.ID), parentToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLinkRejectsWrongRoles(t *testing.T) {
	srv := newTestServer(t)
	_, parentToken := srv.signup(t, "parent-one", models.RoleParent)
	other, _ := srv.signup(t, "parent-two", models.RoleParent)

	resp := srv.do(t, http.MethodPost, fmt.Sprintf("/api/children/%d", other.ID), parentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/children/424242", parentToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/children/abc", parentToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerseAndSurahProgress(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.signup(t, "hafsa", models.RoleChild)

	resp := srv.do(t, http.MethodGet, "/api/quran/surahs/112", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = srv.do(t, http.MethodPut, "/api/quran/verses/8", token, map[string]any{"level": "mastered"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[models.VerseLevelResult](t, resp)
	assert.Equal(t, models.LevelMastered, result.Level)
	require.NotNil(t, result.SurahProgress)
	assert.Equal(t, int64(112), result.SurahProgress.SurahID)
	assert.Equal(t, 1, result.SurahProgress.CompletedVerses)

	resp = srv.do(t, http.MethodPut, "/api/quran/verses/9", token, map[string]any{"level": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = srv.do(t, http.MethodPut, "/api/quran/surahs/112", token, map[string]any{
		"memorizationLevel": "mostly_memorized",
		"completedVerses":   4,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	surah := decodeBody[models.UserSurahProgress](t, resp)
	assert.Equal(t, models.LevelMostlyMemorized, surah.MemorizationLevel)
	assert.Equal(t, 1, surah.CompletedVerses)
	assert.Len(t, surah.Verses, 2)

	resp = srv.do(t, http.MethodGet, "/api/quran/surahs", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	all := decodeBody[[]models.UserSurahProgress](t, resp)
	assert.Len(t, all, 1)
}

func TestVerseLevelErrors(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.signup(t, "bilal", models.RoleChild)

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"out of range", "/api/quran/verses/1", map[string]any{"level": 6}, http.StatusUnprocessableEntity},
		{"unknown name", "/api/quran/verses/1", map[string]any{"level": "perfect"}, http.StatusUnprocessableEntity},
		{"missing level", "/api/quran/verses/1", map[string]any{}, http.StatusBadRequest},
		{"unknown verse", "/api/quran/verses/9999", map[string]any{"level": 1}, http.StatusNotFound},
		{"unknown surah", "/api/quran/surahs/2", map[string]any{"memorizationLevel": 1}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := srv.do(t, http.MethodPut, tt.path, token, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestCatalogRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.do(t, http.MethodGet, "/api/catalog/quizzes/3", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	quiz := decodeBody[models.Quiz](t, resp)
	assert.Equal(t, "Prophets of Allah", quiz.Title)

	resp = srv.do(t, http.MethodGet, "/api/catalog/quizzes/404", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = srv.do(t, http.MethodGet, "/api/catalog/quizzes", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]models.Quiz](t, resp), 5)

	resp = srv.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimitOnLogin(t *testing.T) {
	srv := newTestServerWithRate(t, 1)

	body := map[string]string{"username": "nobody", "password": "whatever"}
	resp := srv.do(t, http.MethodPost, "/api/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	srv := newTestServerWithRate(t, 1)

	statuses := make([]int, 0, 2)
	for _, forwarded := range []string{"198.51.100.1", "198.51.100.2"} {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/login",
			bytes.NewBufferString(`{"username":"nobody","password":"whatever"}`))
		require.NoError(t, err)
		req.Header.Set("X-Forwarded-For", forwarded)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusTooManyRequests}, statuses)
}

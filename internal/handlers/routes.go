package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ilmkids/internal/models"
)

// Handlers groups the route handlers served by the API
type Handlers struct {
	Auth     *AuthHandler
	Progress *ProgressHandler
	Family   *FamilyHandler
	Quran    *QuranHandler
	Catalog  *CatalogHandler
}

// RegisterRoutes wires every API route onto mux
func RegisterRoutes(mux *http.ServeMux, m *Middleware, h Handlers) {
	mux.HandleFunc("GET /healthz", Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public routes
	mux.HandleFunc("POST /api/register", m.RateLimit(h.Auth.Register))
	mux.HandleFunc("POST /api/login", m.RateLimit(h.Auth.Login))
	mux.HandleFunc("GET /api/catalog/quizzes", h.Catalog.ListQuizzes)
	mux.HandleFunc("GET /api/catalog/quizzes/{quizId}", h.Catalog.GetQuiz)

	// Any authenticated user
	mux.HandleFunc("GET /api/me", m.RequireAuth(h.Auth.Me))
	mux.HandleFunc("PATCH /api/me", m.RequireAuth(h.Auth.UpdateMe))
	mux.HandleFunc("GET /api/progress", m.RequireAuth(h.Progress.ListOwn))
	mux.HandleFunc("GET /api/quran/surahs", m.RequireAuth(h.Quran.ListSurahs))
	mux.HandleFunc("GET /api/quran/surahs/{surahId}", m.RequireAuth(h.Quran.GetSurah))

	// Child routes
	mux.HandleFunc("POST /api/progress", m.RequireRole(models.RoleChild, h.Progress.Submit))
	mux.HandleFunc("GET /api/parents", m.RequireRole(models.RoleChild, h.Family.ListParents))
	mux.HandleFunc("PUT /api/quran/surahs/{surahId}", m.RequireRole(models.RoleChild, h.Quran.UpdateSurah))
	mux.HandleFunc("PUT /api/quran/verses/{verseId}", m.RequireRole(models.RoleChild, h.Quran.UpdateVerse))

	// Parent routes
	mux.HandleFunc("GET /api/children", m.RequireRole(models.RoleParent, h.Family.ListChildren))
	mux.HandleFunc("POST /api/children/{childId}", m.RequireRole(models.RoleParent, h.Family.LinkChild))
	mux.HandleFunc("DELETE /api/children/{childId}", m.RequireRole(models.RoleParent, h.Family.UnlinkChild))
	mux.HandleFunc("GET /api/children/{childId}/progress", m.RequireRole(models.RoleParent, h.Progress.ListChild))
	mux.HandleFunc("GET /api/dashboard", m.RequireRole(models.RoleParent, h.Family.Dashboard))
}

package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"ilmkids/internal/catalog"
	"ilmkids/internal/service"
)

// CatalogHandler serves read-only quiz content
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(c *catalog.Catalog, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: c,
		logger:  logger,
	}
}

// ListQuizzes returns every quiz ordered by id
func (h *CatalogHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.catalog.ListQuizzes(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, quizzes)
}

// GetQuiz returns one quiz with its questions
func (h *CatalogHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quizId")
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	quiz, err := h.catalog.GetQuiz(r.Context(), quizID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if quiz == nil {
		respondWithServiceError(w, h.logger, service.ErrQuizNotFound)
		return
	}

	respondJSON(w, http.StatusOK, quiz)
}

// Health reports that the server is up
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

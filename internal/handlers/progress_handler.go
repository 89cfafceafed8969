package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"ilmkids/internal/models"
	"ilmkids/internal/service"
)

// ProgressHandler exposes the quiz progress ledger
type ProgressHandler struct {
	progress      *service.ProgressService
	relationships *service.RelationshipService
	logger        *zap.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progress *service.ProgressService, relationships *service.RelationshipService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		progress:      progress,
		relationships: relationships,
		logger:        logger,
	}
}

type submitProgressRequest struct {
	QuizID int64 `json:"quizId"`
	models.QuizResult
}

// ListOwn returns every progress record of the authenticated user
func (h *ProgressHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	records, err := h.progress.GetUserProgress(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// Submit records a quiz result for the authenticated child
func (h *ProgressHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req submitProgressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	record, err := h.progress.Submit(r.Context(), user.ID, req.QuizID, req.QuizResult)
	if err != nil {
		if record != nil {
			h.logger.Warn("quiz result stored but rewards incomplete",
				zap.Int64("user_id", user.ID),
				zap.Int64("quiz_id", req.QuizID),
				zap.Error(err),
			)
		}
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// ListChild returns a linked child's progress records to their parent
func (h *ProgressHandler) ListChild(w http.ResponseWriter, r *http.Request) {
	parent := GetUserFromContext(r.Context())

	childID, err := pathID(r, "childId")
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	linked, err := h.relationships.IsLinked(r.Context(), parent.ID, childID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if !linked {
		respondWithServiceError(w, h.logger, service.ErrRelationshipNotFound)
		return
	}

	records, err := h.progress.GetUserProgress(r.Context(), childID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

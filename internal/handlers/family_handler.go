package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"ilmkids/internal/service"
)

// FamilyHandler handles parent-child links and the parent dashboard
type FamilyHandler struct {
	relationships *service.RelationshipService
	dashboard     *service.DashboardService
	logger        *zap.Logger
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(relationships *service.RelationshipService, dashboard *service.DashboardService, logger *zap.Logger) *FamilyHandler {
	return &FamilyHandler{
		relationships: relationships,
		dashboard:     dashboard,
		logger:        logger,
	}
}

// ListChildren returns the children linked to the authenticated parent
func (h *FamilyHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	parent := GetUserFromContext(r.Context())

	children, err := h.relationships.ListChildren(r.Context(), parent.ID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, children)
}

// LinkChild links a child account to the authenticated parent
func (h *FamilyHandler) LinkChild(w http.ResponseWriter, r *http.Request) {
	parent := GetUserFromContext(r.Context())

	childID, err := pathID(r, "childId")
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	rel, err := h.relationships.Link(r.Context(), parent.ID, childID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, rel)
}

// UnlinkChild removes a link between the authenticated parent and a child
func (h *FamilyHandler) UnlinkChild(w http.ResponseWriter, r *http.Request) {
	parent := GetUserFromContext(r.Context())

	childID, err := pathID(r, "childId")
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	if err := h.relationships.Unlink(r.Context(), parent.ID, childID); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListParents returns the parents linked to the authenticated child
func (h *FamilyHandler) ListParents(w http.ResponseWriter, r *http.Request) {
	child := GetUserFromContext(r.Context())

	parents, err := h.relationships.ListParents(r.Context(), child.ID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, parents)
}

// Dashboard returns a progress summary for every linked child
func (h *FamilyHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	parent := GetUserFromContext(r.Context())

	summaries, err := h.dashboard.SummarizeForParent(r.Context(), parent.ID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}

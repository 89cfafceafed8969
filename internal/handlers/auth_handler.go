package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"ilmkids/internal/models"
	"ilmkids/internal/security"
	"ilmkids/internal/service"
)

// AuthHandler handles registration, login and the caller's own profile
type AuthHandler struct {
	users  *service.UserService
	tokens *security.TokenManager
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *service.UserService, tokens *security.TokenManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// Register creates a new child or parent account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input models.RegisterInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	user, err := h.users.Register(r.Context(), input)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and issues a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, "Failed to issue token", "", err)
		return
	}

	h.logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	respondJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, GetUserFromContext(r.Context()))
}

// UpdateMe applies a partial profile update to the authenticated user
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var update models.ProfileUpdate
	if err := decodePartialJSON(w, r, &update); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), user.ID, update)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

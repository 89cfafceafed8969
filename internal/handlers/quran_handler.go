package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"ilmkids/internal/models"
	"ilmkids/internal/service"
)

// QuranHandler exposes the memorization tracker
type QuranHandler struct {
	quran  *service.QuranService
	logger *zap.Logger
}

// NewQuranHandler creates a new Quran handler
func NewQuranHandler(quran *service.QuranService, logger *zap.Logger) *QuranHandler {
	return &QuranHandler{
		quran:  quran,
		logger: logger,
	}
}

type verseLevelRequest struct {
	Level json.RawMessage `json:"level"`
}

type surahProgressRequest struct {
	CompletedVerses   *int            `json:"completedVerses"`
	MemorizationLevel json.RawMessage `json:"memorizationLevel"`
}

// ListSurahs returns all surah records of the authenticated user
func (h *QuranHandler) ListSurahs(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	records, err := h.quran.ListSurahProgress(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// GetSurah returns the authenticated user's record for one surah
func (h *QuranHandler) GetSurah(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	surahID, err := pathID(r, "surahId")
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	record, err := h.quran.GetSurahProgress(r.Context(), user.ID, surahID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// UpdateSurah sets the surah-level memorization state
func (h *QuranHandler) UpdateSurah(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	surahID, err := pathID(r, "surahId")
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	var req surahProgressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	update := models.SurahProgressUpdate{CompletedVerses: req.CompletedVerses}
	if len(req.MemorizationLevel) > 0 && string(req.MemorizationLevel) != "null" {
		level, err := parseLevel(req.MemorizationLevel)
		if err != nil {
			respondWithServiceError(w, h.logger, err)
			return
		}
		update.MemorizationLevel = &level
	}

	record, err := h.quran.SetSurahProgress(r.Context(), user.ID, surahID, update)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// UpdateVerse sets the memorization level of a single verse
func (h *QuranHandler) UpdateVerse(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	verseID, err := pathID(r, "verseId")
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	var req verseLevelRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if len(req.Level) == 0 {
		respondWithServiceError(w, h.logger, fmt.Errorf("%w: level is required", service.ErrInvalidInput))
		return
	}

	level, err := parseLevel(req.Level)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	result, err := h.quran.SetVerseLevel(r.Context(), user.ID, verseID, level)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

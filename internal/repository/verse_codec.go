package repository

import (
	"encoding/json"
	"fmt"

	"ilmkids/internal/models"
)

// EncodeVerses serializes a surah record's verse list for the verses_json column
func EncodeVerses(verses []models.VerseProgress) (string, error) {
	if verses == nil {
		verses = []models.VerseProgress{}
	}
	data, err := json.Marshal(verses)
	if err != nil {
		return "", fmt.Errorf("failed to encode verses: %w", err)
	}
	return string(data), nil
}

// DecodeVerses parses the verses_json column. On any problem it returns an
// empty, non-nil list together with the error so callers can degrade softly.
func DecodeVerses(raw string) ([]models.VerseProgress, error) {
	empty := []models.VerseProgress{}
	if raw == "" {
		return empty, nil
	}

	var verses []models.VerseProgress
	if err := json.Unmarshal([]byte(raw), &verses); err != nil {
		return empty, fmt.Errorf("failed to decode verses: %w", err)
	}

	seen := make(map[int64]bool, len(verses))
	for _, v := range verses {
		if !v.Level.Valid() {
			return empty, fmt.Errorf("verse %d has invalid level %d", v.VerseID, v.Level)
		}
		if seen[v.VerseID] {
			return empty, fmt.Errorf("verse %d listed twice", v.VerseID)
		}
		seen[v.VerseID] = true
	}

	if verses == nil {
		return empty, nil
	}
	return verses, nil
}

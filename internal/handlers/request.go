package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"ilmkids/internal/models"
	"ilmkids/internal/service"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON object from the request body and rejects
// keys that dst does not declare
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return readJSON(w, r, dst, true)
}

// decodePartialJSON is decodeJSON for whitelisted updates: keys dst does not
// declare are dropped
func decodePartialJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return readJSON(w, r, dst, false)
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty request body", service.ErrInvalidInput)
		}
		return fmt.Errorf("%w: malformed JSON: %v", service.ErrInvalidInput, err)
	}
	return nil
}

// pathID parses a positive integer path parameter
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", service.ErrInvalidInput, name)
	}
	return id, nil
}

// parseLevel accepts a mastery level as a JSON number or a level name
func parseLevel(raw json.RawMessage) (models.MasteryLevel, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, fmt.Errorf("%w: %s", service.ErrInvalidLevel, string(raw))
		}
		s = strconv.Itoa(n)
	}
	level, err := models.ParseMasteryLevel(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", service.ErrInvalidLevel, err)
	}
	return level, nil
}

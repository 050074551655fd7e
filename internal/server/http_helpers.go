package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bluff-this/internal/game"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeEngineError maps engine sentinels to responses. Storage outages
// come back as a generic "connecting" state, never a raw error trace.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "connecting, try again shortly")
	case errors.Is(err, game.ErrNotFound), errors.Is(err, game.ErrNoMoreQuestions):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrAlreadyRecorded),
		errors.Is(err, game.ErrNotReady),
		errors.Is(err, game.ErrIneligible):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"oasis/models"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// StatusFor maps an error kind to the HTTP status the API answers with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrMissingFields), errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrDatesUnavailable):
		return http.StatusConflict
	case failedKind(err) != nil:
		// a store error under a failed write stays a server failure even if it is a miss
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// RespondWithErr writes err with the status of its kind. Server-side failures are logged
// and answered with the kind's message only, never the driver error.
func RespondWithErr(w http.ResponseWriter, err error) {
	code := StatusFor(err)
	if code < http.StatusInternalServerError {
		RespondWithError(w, code, err.Error())
		return
	}
	log.Printf("request failed: %v", err)
	msg := "internal server error"
	if kind := failedKind(err); kind != nil {
		msg = kind.Error()
	}
	RespondWithError(w, code, msg)
}

func failedKind(err error) error {
	for _, kind := range []error{models.ErrCreateFailed, models.ErrUpdateFailed, models.ErrDeleteFailed, models.ErrLoadFailed} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

type M map[string]interface{}

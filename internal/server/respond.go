package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"creditlens/pkg/types"
)

var errInvalidAuthHeader = errors.New("authorization header is not a bearer token")

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Service) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}

// respondStoreError maps repository sentinels to 404, everything else
// to 500 with a generic message.
func (s *Service) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrReportNotFound),
		errors.Is(err, types.ErrAccountNotFound),
		errors.Is(err, types.ErrNegativeItemNotFound),
		errors.Is(err, types.ErrViolationNotFound),
		errors.Is(err, types.ErrLetterNotFound):
		s.respondError(w, http.StatusNotFound, "not found")
	default:
		s.logger.WithError(err).Error("store operation failed")
		s.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

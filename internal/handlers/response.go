package handlers

import (
	"PassVault/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Стабильные машинные коды ошибок API.
const (
	KindMalformedToken   = "malformed_token"
	KindTokenExpired     = "token_expired"
	KindInvalidSignature = "invalid_signature"
	KindUnauthorized     = "unauthorized"
	KindNotFound         = "not_found"
	KindInvalidReference = "invalid_reference"
	KindBadRequest       = "bad_request"
	KindMethodNotAllowed = "method_not_allowed"
	KindInternal         = "internal"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: kind, Message: message})
}

// writeServiceError переводит ошибки бизнес-слоя в HTTP-ответы.
// Неожиданные ошибки логируются целиком, наружу уходит общий 500.
func writeServiceError(logger *zap.SugaredLogger, w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, KindNotFound, "record not found")
	case errors.Is(err, service.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, KindInvalidReference, "groupId does not reference an existing group")
	case errors.Is(err, service.ErrNothingToUpdate):
		writeError(w, http.StatusBadRequest, KindBadRequest, "no fields to update")
	default:
		logger.Errorw(op+": service error", "error", err)
		writeError(w, http.StatusInternalServerError, KindInternal, "internal error")
	}
}

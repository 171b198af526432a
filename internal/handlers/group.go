package handlers

import (
	"PassVault/internal/middleware"
	"PassVault/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GroupHandler обрабатывает CRUD групп записей.
type GroupHandler struct {
	Service *service.GroupService
	Logger  *zap.SugaredLogger
}

// NewGroupHandler создаёт хендлер групп.
func NewGroupHandler(svc *service.GroupService, logger *zap.SugaredLogger) *GroupHandler {
	return &GroupHandler{Service: svc, Logger: logger}
}

type groupRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// List отдаёт все группы владельца с актуальным числом записей в каждой.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, KindUnauthorized, "authentication required")
		return
	}

	groups, err := h.Service.List(r.Context(), sess.SubjectID)
	if err != nil {
		writeServiceError(h.Logger, w, "List groups", err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// Create создаёт группу; name обязателен.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, KindUnauthorized, "authentication required")
		return
	}

	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, KindBadRequest, "invalid request body")
		return
	}
	if req.Name == nil || *req.Name == "" {
		writeError(w, http.StatusBadRequest, KindBadRequest, "name is required")
		return
	}

	group, err := h.Service.Create(r.Context(), sess.SubjectID, service.GroupData{Name: req.Name, Color: req.Color})
	if err != nil {
		writeServiceError(h.Logger, w, "Create group", err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// Update применяет частичное обновление группы.
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, KindUnauthorized, "authentication required")
		return
	}

	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, KindBadRequest, "invalid request body")
		return
	}

	group, err := h.Service.Update(r.Context(), sess.SubjectID, chi.URLParam(r, "id"), service.GroupData{Name: req.Name, Color: req.Color})
	if err != nil {
		writeServiceError(h.Logger, w, "Update group", err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// Delete удаляет группу; её записи переводятся в "без группы".
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, KindUnauthorized, "authentication required")
		return
	}

	if err := h.Service.Delete(r.Context(), sess.SubjectID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(h.Logger, w, "Delete group", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

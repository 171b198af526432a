package handlers

import (
	"PassVault/internal/middleware"
	"PassVault/internal/service"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PasswordHandler обрабатывает CRUD записей хранилища паролей.
type PasswordHandler struct {
	Service *service.PasswordService
	Logger  *zap.SugaredLogger
}

// NewPasswordHandler создаёт хендлер записей.
func NewPasswordHandler(svc *service.PasswordService, logger *zap.SugaredLogger) *PasswordHandler {
	return &PasswordHandler{Service: svc, Logger: logger}
}

// entryRequest — тело create/update. groupId принимаем сырым, чтобы
// отличать отсутствие поля от явного null.
type entryRequest struct {
	Title    *string         `json:"title"`
	Username *string         `json:"username"`
	Password *string         `json:"password"`
	URL      *string         `json:"url"`
	Notes    *string         `json:"notes"`
	GroupID  json.RawMessage `json:"groupId"`
}

func (req *entryRequest) data() (service.EntryData, bool) {
	d := service.EntryData{
		Title:    req.Title,
		Username: req.Username,
		Password: req.Password,
		URL:      req.URL,
		Notes:    req.Notes,
	}
	if len(req.GroupID) > 0 {
		d.GroupSet = true
		if string(req.GroupID) != "null" {
			var id string
			if err := json.Unmarshal(req.GroupID, &id); err != nil {
				return d, false
			}
			d.GroupID = &id
		}
	}
	return d, true
}

// List отдаёт страницу записей владельца.
// Параметры: page, pageSize, groupId ("null" — записи без группы), q — поиск.
func (h *PasswordHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, KindUnauthorized, "authentication required")
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	size, _ := strconv.Atoi(query.Get("pageSize"))
	lq := service.ListQuery{Page: page, PageSize: size, Search: query.Get("q")}
	if g := query.Get("groupId"); g != "" {
		if g == "null" {
			lq.Ungrouped = true
		} else {
			lq.GroupID = &g
		}
	}

	result, err := h.Service.List(r.Context(), sess.SubjectID, lq)
	if err != nil {
		writeServiceError(h.Logger, w, "List passwords", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Create создаёт запись; title обязателен.
func (h *PasswordHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, KindUnauthorized, "authentication required")
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, KindBadRequest, "invalid request body")
		return
	}
	if req.Title == nil || *req.Title == "" {
		writeError(w, http.StatusBadRequest, KindBadRequest, "title is required")
		return
	}
	d, ok := req.data()
	if !ok {
		writeError(w, http.StatusBadRequest, KindBadRequest, "groupId must be a string or null")
		return
	}

	entry, err := h.Service.Create(r.Context(), sess.SubjectID, d)
	if err != nil {
		writeServiceError(h.Logger, w, "Create password", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Update применяет частичное обновление записи.
func (h *PasswordHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, KindUnauthorized, "authentication required")
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, KindBadRequest, "invalid request body")
		return
	}
	d, ok := req.data()
	if !ok {
		writeError(w, http.StatusBadRequest, KindBadRequest, "groupId must be a string or null")
		return
	}

	entry, err := h.Service.Update(r.Context(), sess.SubjectID, chi.URLParam(r, "id"), d)
	if err != nil {
		writeServiceError(h.Logger, w, "Update password", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Delete удаляет запись.
func (h *PasswordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, KindUnauthorized, "authentication required")
		return
	}

	if err := h.Service.Delete(r.Context(), sess.SubjectID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(h.Logger, w, "Delete password", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

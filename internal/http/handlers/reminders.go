package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/famfin/famfin-be/internal/http/respond"
	"github.com/famfin/famfin-be/internal/middleware"
	"github.com/famfin/famfin-be/internal/models"
	"github.com/famfin/famfin-be/internal/models/dto"
	"github.com/famfin/famfin-be/internal/storage"
)

// ReminderHandler owns the reminder CRUD endpoints. Every route is
// authenticated and reminders are scoped to the calling user.
type ReminderHandler struct {
	reminders storage.ReminderStore
}

// NewReminderHandler constructs the handler.
func NewReminderHandler(reminders storage.ReminderStore) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

// Register attaches the reminder routes behind the authn middleware.
func (h *ReminderHandler) Register(mux *http.ServeMux, authn func(http.Handler) http.Handler) {
	mux.Handle("/reminders", authn(http.HandlerFunc(h.handleCollection)))
	mux.Handle("/reminders/{id}", authn(http.HandlerFunc(h.handleItem)))
}

func (h *ReminderHandler) handleCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.list(w, r, userID)
	case http.MethodPost:
		h.create(w, r, userID)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ReminderHandler) handleItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid reminder id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id, userID)
	case http.MethodPut:
		h.update(w, r, id, userID)
	case http.MethodDelete:
		h.delete(w, r, id, userID)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ReminderHandler) list(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	reminders, err := h.reminders.ListReminders(r.Context(), userID)
	if err != nil {
		log.Printf("list reminders: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list reminders")
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	respond.JSON(w, http.StatusOK, reminders)
}

func (h *ReminderHandler) get(w http.ResponseWriter, r *http.Request, id, userID uuid.UUID) {
	reminder, err := h.reminders.GetReminder(r.Context(), id, userID)
	if err != nil {
		writeReminderError(w, err, "get reminder")
		return
	}
	respond.JSON(w, http.StatusOK, reminder)
}

func (h *ReminderHandler) create(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	req, ok := decodeReminder(w, r, true)
	if !ok {
		return
	}
	reminder, err := h.reminders.CreateReminder(r.Context(), models.Reminder{
		Content:   req.Content,
		ExpiresAt: req.ExpiresAt,
		Status:    req.Status,
		UserID:    userID,
	})
	if err != nil {
		log.Printf("create reminder: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create reminder")
		return
	}
	respond.JSON(w, http.StatusOK, reminder)
}

func (h *ReminderHandler) update(w http.ResponseWriter, r *http.Request, id, userID uuid.UUID) {
	req, ok := decodeReminder(w, r, false)
	if !ok {
		return
	}
	reminder, err := h.reminders.UpdateReminder(r.Context(), models.Reminder{
		ID:        id,
		Content:   req.Content,
		ExpiresAt: req.ExpiresAt,
		Status:    req.Status,
		UserID:    userID,
	})
	if err != nil {
		writeReminderError(w, err, "update reminder")
		return
	}
	respond.JSON(w, http.StatusOK, reminder)
}

func (h *ReminderHandler) delete(w http.ResponseWriter, r *http.Request, id, userID uuid.UUID) {
	if err := h.reminders.DeleteReminder(r.Context(), id, userID); err != nil {
		writeReminderError(w, err, "delete reminder")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "reminder deleted"})
}

// decodeReminder parses and validates the shared create/update payload.
// Create defaults a missing status to open; update requires one.
func decodeReminder(w http.ResponseWriter, r *http.Request, defaultStatus bool) (dto.ReminderRequest, bool) {
	var req dto.ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return req, false
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Error(w, http.StatusBadRequest, "content is required")
		return req, false
	}
	if req.ExpiresAt.IsZero() {
		respond.Error(w, http.StatusBadRequest, "expires_at is required")
		return req, false
	}
	if req.Status == "" && defaultStatus {
		req.Status = models.ReminderOpen
	}
	if req.Status != models.ReminderOpen && req.Status != models.ReminderClosed {
		respond.Error(w, http.StatusBadRequest, "status must be open or closed")
		return req, false
	}
	return req, true
}

func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	userID, err := claims.UserID()
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

func writeReminderError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "reminder not found")
		return
	}
	log.Printf("%s: %v", op, err)
	respond.Error(w, http.StatusInternalServerError, "operation failed")
}

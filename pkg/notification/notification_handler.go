package notification

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type NotificationDTO struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	MessageAm string `json:"messageAm,omitempty"`
	Data      string `json:"data,omitempty"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAllNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.service.GetAllNotifications(r.Context())
	if err != nil {
		log.Errorf("Error fetching notifications: %v", err)
		http.Error(w, "Failed to fetch notifications", http.StatusInternalServerError)
		return
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dto := NotificationDTO{
			ID:        n.ID,
			Type:      string(n.Type),
			Message:   n.Message,
			MessageAm: n.MessageAm,
			Data:      n.Data,
			IsRead:    n.IsRead,
		}
		if !n.CreatedAt.IsZero() {
			dto.CreatedAt = n.CreatedAt.Format("2006-01-02 15:04:05")
		}
		dtos = append(dtos, dto)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationId, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid notification ID", http.StatusBadRequest)
		return
	}

	updated, err := h.service.MarkRead(r.Context(), notificationId)
	if err != nil {
		log.Errorf("Error marking notification read: %v", err)
		http.Error(w, "Failed to mark notification read", http.StatusInternalServerError)
		return
	}
	if !updated {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkAllRead(r.Context()); err != nil {
		log.Errorf("Error marking notifications read: %v", err)
		http.Error(w, "Failed to mark notifications read", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

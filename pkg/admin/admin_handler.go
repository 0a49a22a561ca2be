package admin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DashboardDTO struct {
	TotalUsers     int               `json:"totalUsers"`
	NewUsers       int               `json:"newUsers"`
	TotalBills     int               `json:"totalBills"`
	TotalIncomes   int               `json:"totalIncomes"`
	TotalPayments  int               `json:"totalPayments"`
	UserGrowth     []MonthlyCountDTO `json:"userGrowth"`
	BillTypes      []TypeCountDTO    `json:"billTypes"`
	RecentActivity []ActivityDTO     `json:"recentActivity"`
}

type MonthlyCountDTO struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type TypeCountDTO struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type ActivityDTO struct {
	Kind      string  `json:"kind"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

type UserDTO struct {
	ID        int64  `json:"id"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
	LastLogin string `json:"lastLogin,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.service.GetDashboardMetrics(r.Context())
	if err != nil {
		log.Errorf("Error fetching dashboard metrics: %v", err)
		http.Error(w, "Failed to fetch dashboard metrics", http.StatusInternalServerError)
		return
	}

	dto := DashboardDTO{
		TotalUsers:     metrics.TotalUsers,
		NewUsers:       metrics.NewUsers,
		TotalBills:     metrics.TotalBills,
		TotalIncomes:   metrics.TotalIncomes,
		TotalPayments:  metrics.TotalPayments,
		UserGrowth:     []MonthlyCountDTO{},
		BillTypes:      []TypeCountDTO{},
		RecentActivity: []ActivityDTO{},
	}
	for _, mc := range metrics.UserGrowth {
		dto.UserGrowth = append(dto.UserGrowth, MonthlyCountDTO{Month: mc.Month, Count: mc.Count})
	}
	for _, tc := range metrics.BillTypes {
		dto.BillTypes = append(dto.BillTypes, TypeCountDTO{Type: tc.Type, Count: tc.Count})
	}
	for _, a := range metrics.RecentActivity {
		adto := ActivityDTO{Kind: a.Kind, Name: a.Name, Amount: a.Amount}
		if !a.CreatedAt.IsZero() {
			adto.CreatedAt = a.CreatedAt.Format(time.RFC3339)
		}
		dto.RecentActivity = append(dto.RecentActivity, adto)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.Errorf("Error listing users: %v", err)
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dto := UserDTO{ID: u.ID, Phone: u.Phone, Email: u.Email, Username: u.Username, IsAdmin: u.IsAdmin}
		if !u.LastLogin.IsZero() {
			dto.LastLogin = u.LastLogin.Format(time.RFC3339)
		}
		if !u.CreatedAt.IsZero() {
			dto.CreatedAt = u.CreatedAt.Format(time.RFC3339)
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

func (h *Handler) SetUserAdmin(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var body struct {
		IsAdmin bool `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SetUserAdmin(r.Context(), userId, body.IsAdmin); err != nil {
		log.Errorf("Error updating admin status: %v", err)
		http.Error(w, "Failed to update admin status", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteUser(r.Context(), userId)
	if err != nil {
		log.Errorf("Error deleting user: %v", err)
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

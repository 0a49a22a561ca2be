package savings

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type GoalDTO struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	TargetDate    string  `json:"targetDate,omitempty"`
	Progress      float64 `json:"progress"`
}

type TransactionDTO struct {
	ID     int64   `json:"id"`
	GoalID int64   `json:"goalId"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func toGoalDTO(g Goal) GoalDTO {
	dto := GoalDTO{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Progress:      g.Progress(),
	}
	if !g.TargetDate.IsZero() {
		dto.TargetDate = g.TargetDate.Format("2006-01-02")
	}
	return dto
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var dto GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	g := Goal{Name: dto.Name, TargetAmount: dto.TargetAmount, CurrentAmount: dto.CurrentAmount}
	if dto.TargetDate != "" {
		if t, err := time.Parse("2006-01-02", dto.TargetDate); err == nil {
			g.TargetDate = t
		}
	}

	created, err := h.service.CreateGoal(r.Context(), g)
	if err != nil {
		if err == ErrNameRequired || err == ErrTargetRequired {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error creating savings goal: %v", err)
		http.Error(w, "Failed to create savings goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toGoalDTO(created)); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.GetGoals(r.Context())
	if err != nil {
		log.Errorf("Error fetching savings goals: %v", err)
		http.Error(w, "Failed to fetch savings goals", http.StatusInternalServerError)
		return
	}

	dtos := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		dtos = append(dtos, toGoalDTO(g))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Contribute(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Contribute(r.Context(), goalId, body.Amount)
	if err != nil {
		if err == ErrAmountRequired {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error recording contribution: %v", err)
		http.Error(w, "Failed to record contribution", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toGoalDTO(updated)); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	txs, err := h.service.GetTransactions(r.Context(), goalId)
	if err != nil {
		log.Errorf("Error fetching savings transactions: %v", err)
		http.Error(w, "Failed to fetch savings transactions", http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		dto := TransactionDTO{ID: tx.ID, GoalID: tx.GoalID, Amount: tx.Amount}
		if !tx.Date.IsZero() {
			dto.Date = tx.Date.Format("2006-01-02")
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

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteGoal(r.Context(), goalId)
	if err != nil {
		log.Errorf("Error deleting savings goal: %v", err)
		http.Error(w, "Failed to delete savings goal", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Savings goal not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package expense

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	ID          int64   `json:"id"`
	AccountID   int64   `json:"accountId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func toDTO(e Expense) ExpenseDTO {
	dto := ExpenseDTO{
		ID:          e.ID,
		AccountID:   e.AccountID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    string(e.Category),
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format("2006-01-02 15:04:05")
	}
	return dto
}

func (h *Handler) RecordExpense(w http.ResponseWriter, r *http.Request) {
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.RecordExpense(r.Context(), Expense{
		AccountID:   dto.AccountID,
		Amount:      dto.Amount,
		Description: dto.Description,
		Category:    Category(dto.Category),
	})
	if err != nil {
		if err == ErrAmountRequired {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error recording expense: %v", err)
		http.Error(w, "Failed to record expense", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAllExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.service.GetAllExpenses(r.Context())
	if err != nil {
		log.Errorf("Error fetching expenses: %v", err)
		http.Error(w, "Failed to fetch expenses", http.StatusInternalServerError)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, toDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetDailyAverage(w http.ResponseWriter, r *http.Request) {
	avg, err := h.service.AverageDailySpending(r.Context())
	if err != nil {
		log.Errorf("Error computing daily average: %v", err)
		http.Error(w, "Failed to compute daily average", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]float64{"averageDaily": avg}); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	expenseId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid expense ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteExpense(r.Context(), expenseId)
	if err != nil {
		log.Errorf("Error deleting expense: %v", err)
		http.Error(w, "Failed to delete expense", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

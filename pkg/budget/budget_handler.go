package budget

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const dtoDateLayout = "2006-01-02"

type CategoryDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type BudgetDTO struct {
	ID         int64   `json:"id"`
	CategoryID int64   `json:"categoryId"`
	Amount     float64 `json:"amount"`
	Period     string  `json:"period"`
	StartDate  string  `json:"startDate,omitempty"`
	EndDate    string  `json:"endDate,omitempty"`
	IsActive   bool    `json:"isActive"`
}

type TransactionDTO struct {
	ID          int64   `json:"id"`
	BudgetID    int64   `json:"budgetId,omitempty"`
	CategoryID  int64   `json:"categoryId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date,omitempty"`
	Type        string  `json:"type"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Error encoding response: %v", err)
	}
}

func badRequest(err error) bool {
	return err == ErrNameRequired || err == ErrCategoryRequired || err == ErrAmountRequired
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateCategory(r.Context(), Category{
		Name: dto.Name, Type: CategoryType(dto.Type), Color: dto.Color, Icon: dto.Icon,
	})
	if err != nil {
		if badRequest(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error creating budget category: %v", err)
		http.Error(w, "Failed to create budget category", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, CategoryDTO{
		ID: created.ID, Name: created.Name, Type: string(created.Type), Color: created.Color, Icon: created.Icon,
	})
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		log.Errorf("Error fetching budget categories: %v", err)
		http.Error(w, "Failed to fetch budget categories", http.StatusInternalServerError)
		return
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryDTO{ID: c.ID, Name: c.Name, Type: string(c.Type), Color: c.Color, Icon: c.Icon})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryId, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}
	deleted, err := h.service.DeleteCategory(r.Context(), categoryId)
	if err != nil {
		log.Errorf("Error deleting budget category: %v", err)
		http.Error(w, "Failed to delete budget category", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Budget category not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toBudgetDTO(b Budget) BudgetDTO {
	dto := BudgetDTO{ID: b.ID, CategoryID: b.CategoryID, Amount: b.Amount, Period: string(b.Period), IsActive: b.IsActive}
	if !b.StartDate.IsZero() {
		dto.StartDate = b.StartDate.Format(dtoDateLayout)
	}
	if !b.EndDate.IsZero() {
		dto.EndDate = b.EndDate.Format(dtoDateLayout)
	}
	return dto
}

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	b := Budget{CategoryID: dto.CategoryID, Amount: dto.Amount, Period: Period(dto.Period)}
	if dto.StartDate != "" {
		if t, err := time.Parse(dtoDateLayout, dto.StartDate); err == nil {
			b.StartDate = t
		}
	}
	if dto.EndDate != "" {
		if t, err := time.Parse(dtoDateLayout, dto.EndDate); err == nil {
			b.EndDate = t
		}
	}

	created, err := h.service.CreateBudget(r.Context(), b)
	if err != nil {
		if badRequest(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error creating budget: %v", err)
		http.Error(w, "Failed to create budget", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetDTO(created))
}

func (h *Handler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.service.GetBudgets(r.Context())
	if err != nil {
		log.Errorf("Error fetching budgets: %v", err)
		http.Error(w, "Failed to fetch budgets", http.StatusInternalServerError)
		return
	}
	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		dtos = append(dtos, toBudgetDTO(b))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	budgetId, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid budget ID", http.StatusBadRequest)
		return
	}
	deleted, err := h.service.DeleteBudget(r.Context(), budgetId)
	if err != nil {
		log.Errorf("Error deleting budget: %v", err)
		http.Error(w, "Failed to delete budget", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Budget not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t := Transaction{
		BudgetID:    dto.BudgetID,
		CategoryID:  dto.CategoryID,
		Amount:      dto.Amount,
		Description: dto.Description,
		Type:        CategoryType(dto.Type),
	}
	if dto.Date != "" {
		if parsed, err := time.Parse(dtoDateLayout, dto.Date); err == nil {
			t.Date = parsed
		}
	}

	created, err := h.service.RecordTransaction(r.Context(), t)
	if err != nil {
		if badRequest(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error recording budget transaction: %v", err)
		http.Error(w, "Failed to record budget transaction", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, TransactionDTO{
		ID:          created.ID,
		BudgetID:    created.BudgetID,
		CategoryID:  created.CategoryID,
		Amount:      created.Amount,
		Description: created.Description,
		Date:        created.Date.Format(dtoDateLayout),
		Type:        string(created.Type),
	})
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	if v := r.URL.Query().Get("from"); v != "" {
		if t, err := time.Parse(dtoDateLayout, v); err == nil {
			from = t
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if t, err := time.Parse(dtoDateLayout, v); err == nil {
			to = t
		}
	}

	txs, err := h.service.GetTransactions(r.Context(), from, to)
	if err != nil {
		log.Errorf("Error fetching budget transactions: %v", err)
		http.Error(w, "Failed to fetch budget transactions", http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(txs))
	for _, t := range txs {
		dtos = append(dtos, TransactionDTO{
			ID:          t.ID,
			BudgetID:    t.BudgetID,
			CategoryID:  t.CategoryID,
			Amount:      t.Amount,
			Description: t.Description,
			Date:        t.Date.Format(dtoDateLayout),
			Type:        string(t.Type),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.CurrentMonthSummary(r.Context())
	if err != nil {
		log.Errorf("Error computing budget summary: %v", err)
		http.Error(w, "Failed to compute budget summary", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

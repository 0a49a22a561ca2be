package bill

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const handlerDateLayout = "2006-01-02"

type BillDTO struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	DueDate         string  `json:"dueDate,omitempty"`
	Type            string  `json:"type"`
	Recurrence      string  `json:"recurrence"`
	IsPaid          bool    `json:"isPaid"`
	OriginalAmount  float64 `json:"originalAmount,omitempty"`
	LoanStartDate   string  `json:"loanStartDate,omitempty"`
	FacilitationFee float64 `json:"facilitationFee,omitempty"`
	InterestRate    float64 `json:"interestRate,omitempty"`
	PenaltyRate     float64 `json:"penaltyRate,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(handlerDateLayout)
}

// parseDate returns the zero time for empty or malformed input;
// the service and generators apply their own fallbacks.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(handlerDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func toDTO(b Bill) BillDTO {
	return BillDTO{
		ID:              b.ID,
		Name:            b.Name,
		Amount:          b.Amount,
		DueDate:         formatDate(b.DueDate),
		Type:            string(b.Type),
		Recurrence:      string(b.Recurrence),
		IsPaid:          b.IsPaid,
		OriginalAmount:  b.OriginalAmount,
		LoanStartDate:   formatDate(b.LoanStartDate),
		FacilitationFee: b.FacilitationFee,
		InterestRate:    b.InterestRate,
		PenaltyRate:     b.PenaltyRate,
	}
}

func fromDTO(dto BillDTO) Bill {
	return Bill{
		ID:              dto.ID,
		Name:            dto.Name,
		Amount:          dto.Amount,
		DueDate:         parseDate(dto.DueDate),
		Type:            BillType(dto.Type),
		Recurrence:      Recurrence(dto.Recurrence),
		IsPaid:          dto.IsPaid,
		OriginalAmount:  dto.OriginalAmount,
		LoanStartDate:   parseDate(dto.LoanStartDate),
		FacilitationFee: dto.FacilitationFee,
		InterestRate:    dto.InterestRate,
		PenaltyRate:     dto.PenaltyRate,
	}
}

func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var dto BillDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateBill(r.Context(), fromDTO(dto))
	if err != nil {
		if err == ErrNameRequired || err == ErrLoanTermsNeeded {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error creating bill: %v", err)
		http.Error(w, "Failed to create bill", http.StatusInternalServerError)
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

func (h *Handler) GetAllBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.service.GetAllBills(r.Context())
	if err != nil {
		log.Errorf("Error fetching bills: %v", err)
		http.Error(w, "Failed to fetch bills", http.StatusInternalServerError)
		return
	}

	dtos := make([]BillDTO, 0, len(bills))
	for _, b := range bills {
		dtos = append(dtos, toDTO(b))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	billId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid bill ID", http.StatusBadRequest)
		return
	}

	var dto BillDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	dto.ID = billId

	updated, err := h.service.UpdateBill(r.Context(), fromDTO(dto))
	if err != nil {
		if err == ErrNameRequired || err == ErrLoanTermsNeeded {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error updating bill: %v", err)
		http.Error(w, "Failed to update bill", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	billId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid bill ID", http.StatusBadRequest)
		return
	}

	body := struct {
		IsPaid bool `json:"isPaid"`
	}{IsPaid: true}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			log.Errorf("Error decoding request body: %v", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	updated, err := h.service.MarkPaid(r.Context(), billId, body.IsPaid)
	if err != nil {
		log.Errorf("Error marking bill paid: %v", err)
		http.Error(w, "Failed to update bill", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	billId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid bill ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteBill(r.Context(), billId)
	if err != nil {
		log.Errorf("Error deleting bill: %v", err)
		http.Error(w, "Failed to delete bill", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Bill not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

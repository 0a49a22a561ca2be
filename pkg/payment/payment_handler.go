package payment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type PaymentDTO struct {
	ID            int64   `json:"id"`
	BillID        int64   `json:"billId,omitempty"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	PaymentURL    string  `json:"paymentUrl,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) PayBill(w http.ResponseWriter, r *http.Request) {
	billId, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid bill ID", http.StatusBadRequest)
		return
	}

	p, paymentURL, err := h.service.PayBill(r.Context(), billId)
	if err != nil {
		switch err {
		case ErrBillNotFound:
			http.Error(w, err.Error(), http.StatusNotFound)
		case ErrAlreadyPaid:
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Errorf("Error initiating payment: %v", err)
			http.Error(w, "Failed to initiate payment", http.StatusBadGateway)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(PaymentDTO{
		ID:            p.ID,
		BillID:        p.BillID,
		Amount:        p.Amount,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		PaymentURL:    paymentURL,
	}); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Webhook is called by the gateway, not by an authenticated user.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TransactionID string `json:"transactionId"`
		Status        string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Errorf("Error decoding webhook body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.HandleCallback(r.Context(), body.TransactionID, body.Status == "success")
	if err != nil {
		if err == ErrUnknownPayment {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Errorf("Error handling payment callback: %v", err)
		http.Error(w, "Failed to handle payment callback", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.GetPayments(r.Context())
	if err != nil {
		log.Errorf("Error fetching payments: %v", err)
		http.Error(w, "Failed to fetch payments", http.StatusInternalServerError)
		return
	}

	dtos := make([]PaymentDTO, 0, len(payments))
	for _, p := range payments {
		dtos = append(dtos, PaymentDTO{
			ID:            p.ID,
			BillID:        p.BillID,
			Amount:        p.Amount,
			TransactionID: p.TransactionID,
			Status:        string(p.Status),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

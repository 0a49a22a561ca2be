package forecast

import (
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	Date   string     `json:"date"`
	Kind   string     `json:"kind"`
	Amount float64    `json:"amount"`
	Name   string     `json:"name"`
	Ref    EventRef   `json:"ref"`
	Loan   *LoanTerms `json:"loan,omitempty"`
}

type DayDTO struct {
	Date         string     `json:"date"`
	TotalBalance float64    `json:"totalBalance"`
	Events       []EventDTO `json:"events"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func toDayDTO(d Day) DayDTO {
	dto := DayDTO{
		Date:         d.Date.Format(dateLayout),
		TotalBalance: d.TotalBalance,
		Events:       make([]EventDTO, 0, len(d.Events)),
	}
	for _, e := range d.Events {
		dto.Events = append(dto.Events, EventDTO{
			Date:   e.Date.Format(dateLayout),
			Kind:   string(e.Kind),
			Amount: e.Amount,
			Name:   e.Name,
			Ref:    e.Ref,
			Loan:   e.Loan,
		})
	}
	return dto
}

func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Invalid days parameter", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	timeline, err := h.service.Forecast(r.Context(), days)
	if err != nil {
		if err == ErrRangeTooLarge {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error generating forecast: %v", err)
		http.Error(w, "Failed to generate forecast", http.StatusInternalServerError)
		return
	}

	dtos := make([]DayDTO, 0, len(timeline))
	for _, d := range timeline {
		dtos = append(dtos, toDayDTO(d))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

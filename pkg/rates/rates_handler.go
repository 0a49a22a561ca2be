package rates

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	provider Provider
}

func NewHandler(provider Provider) *Handler {
	return &Handler{provider: provider}
}

func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	payload, err := h.provider.FetchRates(r.Context())
	if err != nil {
		log.Errorf("Error fetching exchange rates: %v", err)
		http.Error(w, "Failed to fetch exchange rates", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(payload); err != nil {
		log.Errorf("Error writing response: %v", err)
	}
}

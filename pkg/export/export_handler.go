package export

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ExportFinancialData(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.service.ExportFinancialData(r.Context())
	if err != nil {
		log.Errorf("Error exporting financial data: %v", err)
		http.Error(w, "Failed to export financial data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="birrflow-export.json"`)
	if err := json.NewEncoder(w).Encode(bundle); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

package income

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type SourceDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Frequency   string  `json:"frequency"`
	NextPayDate string  `json:"nextPayDate,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func toDTO(s Source) SourceDTO {
	dto := SourceDTO{ID: s.ID, Name: s.Name, Amount: s.Amount, Frequency: string(s.Frequency)}
	if !s.NextPayDate.IsZero() {
		dto.NextPayDate = s.NextPayDate.Format("2006-01-02")
	}
	return dto
}

func (h *Handler) CreateSource(w http.ResponseWriter, r *http.Request) {
	var dto SourceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	src := Source{Name: dto.Name, Amount: dto.Amount, Frequency: Frequency(dto.Frequency)}
	if dto.NextPayDate != "" {
		if t, err := time.Parse("2006-01-02", dto.NextPayDate); err == nil {
			src.NextPayDate = t
		}
	}

	created, err := h.service.CreateSource(r.Context(), src)
	if err != nil {
		if err == ErrNameRequired {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error creating income source: %v", err)
		http.Error(w, "Failed to create income source", http.StatusInternalServerError)
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

func (h *Handler) GetAllSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.service.GetAllSources(r.Context())
	if err != nil {
		log.Errorf("Error fetching income sources: %v", err)
		http.Error(w, "Failed to fetch income sources", http.StatusInternalServerError)
		return
	}

	dtos := make([]SourceDTO, 0, len(sources))
	for _, s := range sources {
		dtos = append(dtos, toDTO(s))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sourceId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid income source ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteSource(r.Context(), sourceId)
	if err != nil {
		log.Errorf("Error deleting income source: %v", err)
		http.Error(w, "Failed to delete income source", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Income source not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

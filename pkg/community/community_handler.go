package community

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type TipDTO struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Region    string `json:"region,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type PriceComparisonDTO struct {
	ID        int64   `json:"id"`
	ItemName  string  `json:"itemName"`
	Price     float64 `json:"price"`
	Market    string  `json:"market"`
	Region    string  `json:"region,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func toTipDTO(t Tip) TipDTO {
	dto := TipDTO{ID: t.ID, Content: t.Content, Region: t.Region}
	if !t.CreatedAt.IsZero() {
		dto.CreatedAt = t.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toPriceDTO(p PriceComparison) PriceComparisonDTO {
	dto := PriceComparisonDTO{ID: p.ID, ItemName: p.ItemName, Price: p.Price, Market: p.Market, Region: p.Region}
	if !p.CreatedAt.IsZero() {
		dto.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func (h *Handler) ShareTip(w http.ResponseWriter, r *http.Request) {
	var dto TipDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.ShareTip(r.Context(), Tip{Content: dto.Content, Region: dto.Region})
	if err != nil {
		if err == ErrContentRequired {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error sharing community tip: %v", err)
		http.Error(w, "Failed to share tip", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toTipDTO(created)); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetTips(w http.ResponseWriter, r *http.Request) {
	tips, err := h.service.GetTips(r.Context(), r.URL.Query().Get("region"))
	if err != nil {
		log.Errorf("Error fetching community tips: %v", err)
		http.Error(w, "Failed to fetch tips", http.StatusInternalServerError)
		return
	}

	dtos := make([]TipDTO, 0, len(tips))
	for _, t := range tips {
		dtos = append(dtos, toTipDTO(t))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) SharePrice(w http.ResponseWriter, r *http.Request) {
	var dto PriceComparisonDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.SharePrice(r.Context(), PriceComparison{
		ItemName: dto.ItemName,
		Price:    dto.Price,
		Market:   dto.Market,
		Region:   dto.Region,
	})
	if err != nil {
		if err == ErrPriceIncomplete {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error sharing price comparison: %v", err)
		http.Error(w, "Failed to share price", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toPriceDTO(created)); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	prices, err := h.service.GetPrices(r.Context(), query.Get("item"), query.Get("region"))
	if err != nil {
		log.Errorf("Error fetching price comparisons: %v", err)
		http.Error(w, "Failed to fetch prices", http.StatusInternalServerError)
		return
	}

	dtos := make([]PriceComparisonDTO, 0, len(prices))
	for _, p := range prices {
		dtos = append(dtos, toPriceDTO(p))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

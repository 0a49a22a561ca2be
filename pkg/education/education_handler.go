package education

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type ArticleDTO struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Language string `json:"language"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func toArticleDTO(a Article) ArticleDTO {
	return ArticleDTO{
		ID:       a.ID,
		Title:    a.Title,
		Content:  a.Content,
		Category: string(a.Category),
		Language: string(a.Language),
	}
}

func (h *Handler) GetArticles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	articles, err := h.service.GetArticles(r.Context(), Category(query.Get("category")), Language(query.Get("language")))
	if err != nil {
		if err == ErrInvalidCategory || err == ErrInvalidLanguage {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error fetching education articles: %v", err)
		http.Error(w, "Failed to fetch articles", http.StatusInternalServerError)
		return
	}

	dtos := make([]ArticleDTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toArticleDTO(a))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var dto ArticleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Errorf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateArticle(r.Context(), Article{
		Title:    dto.Title,
		Content:  dto.Content,
		Category: Category(dto.Category),
		Language: Language(dto.Language),
	})
	if err != nil {
		if err == ErrTitleRequired || err == ErrInvalidCategory || err == ErrInvalidLanguage {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("Error creating education article: %v", err)
		http.Error(w, "Failed to create article", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toArticleDTO(created)); err != nil {
		log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

package education

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubRepo struct {
	articles []Article
}

func (s *stubRepo) Store(ctx context.Context, a Article) (int64, error) {
	a.ID = int64(len(s.articles) + 1)
	s.articles = append(s.articles, a)
	return a.ID, nil
}

func (s *stubRepo) GetAll(ctx context.Context, category Category, language Language) ([]Article, error) {
	var out []Article
	for _, a := range s.articles {
		if category != "" && a.Category != category {
			continue
		}
		if language != "" && a.Language != language {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func TestServiceImpl_CreateArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("should default the language to English", func(t *testing.T) {
		service := NewService(&stubRepo{})

		created, err := service.CreateArticle(ctx, Article{Title: "Why save", Content: "…", Category: CategorySaving})

		assert.NoError(t, err)
		assert.Equal(t, LanguageEnglish, created.Language)
		assert.Equal(t, int64(1), created.ID)
	})

	t.Run("should reject an unknown category", func(t *testing.T) {
		service := NewService(&stubRepo{})

		_, err := service.CreateArticle(ctx, Article{Title: "Crypto", Content: "…", Category: "speculation"})

		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("should require title and content", func(t *testing.T) {
		service := NewService(&stubRepo{})

		_, err := service.CreateArticle(ctx, Article{Category: CategorySaving})

		assert.ErrorIs(t, err, ErrTitleRequired)
	})
}

func TestServiceImpl_GetArticles(t *testing.T) {
	ctx := context.Background()

	t.Run("should filter by category and language", func(t *testing.T) {
		// given
		repo := &stubRepo{}
		service := NewService(repo)
		_, err := service.CreateArticle(ctx, Article{Title: "Inflation basics", Content: "…", Category: CategoryInflation, Language: LanguageEnglish})
		assert.NoError(t, err)
		_, err = service.CreateArticle(ctx, Article{Title: "የዋጋ ግሽበት", Content: "…", Category: CategoryInflation, Language: LanguageAmharic})
		assert.NoError(t, err)
		_, err = service.CreateArticle(ctx, Article{Title: "Budget 101", Content: "…", Category: CategoryBudgeting, Language: LanguageEnglish})
		assert.NoError(t, err)

		// when
		articles, err := service.GetArticles(ctx, CategoryInflation, LanguageAmharic)

		// then
		assert.NoError(t, err)
		assert.Len(t, articles, 1)
		assert.Equal(t, "የዋጋ ግሽበት", articles[0].Title)
	})

	t.Run("should reject an unknown language filter", func(t *testing.T) {
		service := NewService(&stubRepo{})

		_, err := service.GetArticles(ctx, "", "fr")

		assert.ErrorIs(t, err, ErrInvalidLanguage)
	})
}

package education

import (
	"context"
	"errors"
)

var (
	ErrTitleRequired   = errors.New("article title and content are required")
	ErrInvalidCategory = errors.New("unknown article category")
	ErrInvalidLanguage = errors.New("unknown article language")
)

type Service interface {
	GetArticles(ctx context.Context, category Category, language Language) ([]Article, error)
	// CreateArticle adds new content. Restricted to admins at the routing
	// layer.
	CreateArticle(ctx context.Context, a Article) (Article, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func validCategory(c Category) bool {
	switch c {
	case CategorySaving, CategoryInvesting, CategoryInflation, CategoryBudgeting:
		return true
	}
	return false
}

func validLanguage(l Language) bool {
	return l == LanguageEnglish || l == LanguageAmharic
}

func (s *ServiceImpl) GetArticles(ctx context.Context, category Category, language Language) ([]Article, error) {
	if category != "" && !validCategory(category) {
		return nil, ErrInvalidCategory
	}
	if language != "" && !validLanguage(language) {
		return nil, ErrInvalidLanguage
	}
	return s.repo.GetAll(ctx, category, language)
}

func (s *ServiceImpl) CreateArticle(ctx context.Context, a Article) (Article, error) {
	if a.Title == "" || a.Content == "" {
		return Article{}, ErrTitleRequired
	}
	if !validCategory(a.Category) {
		return Article{}, ErrInvalidCategory
	}
	if a.Language == "" {
		a.Language = LanguageEnglish
	}
	if !validLanguage(a.Language) {
		return Article{}, ErrInvalidLanguage
	}
	id, err := s.repo.Store(ctx, a)
	if err != nil {
		return Article{}, err
	}
	a.ID = id
	return a, nil
}

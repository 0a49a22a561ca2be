package budget

import (
	"context"
	"errors"
	"time"

	"github.com/birrflow/birrflow/internal/utils"
	"github.com/birrflow/birrflow/pkg/user"
)

var (
	ErrNameRequired     = errors.New("category name is required")
	ErrCategoryRequired = errors.New("a category is required")
	ErrAmountRequired   = errors.New("amount must be positive")
)

type Service interface {
	CreateCategory(ctx context.Context, c Category) (Category, error)
	GetCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, categoryId int64) (bool, error)

	CreateBudget(ctx context.Context, b Budget) (Budget, error)
	GetBudgets(ctx context.Context) ([]Budget, error)
	DeleteBudget(ctx context.Context, budgetId int64) (bool, error)

	RecordTransaction(ctx context.Context, t Transaction) (Transaction, error)
	GetTransactions(ctx context.Context, from, to time.Time) ([]Transaction, error)
	CurrentMonthSummary(ctx context.Context) (Summary, error)
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) CreateCategory(ctx context.Context, c Category) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, err
	}
	if c.Name == "" {
		return Category{}, ErrNameRequired
	}
	if c.Type == "" {
		c.Type = CategoryExpense
	}
	id, err := s.repo.StoreCategory(ctx, userId, c)
	if err != nil {
		return Category{}, err
	}
	c.ID = id
	return c, nil
}

func (s *ServiceImpl) GetCategories(ctx context.Context) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetCategories(ctx, userId)
}

func (s *ServiceImpl) DeleteCategory(ctx context.Context, categoryId int64) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, err
	}
	return s.repo.DeleteCategory(ctx, userId, categoryId)
}

func (s *ServiceImpl) CreateBudget(ctx context.Context, b Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, err
	}
	if b.CategoryID == 0 {
		return Budget{}, ErrCategoryRequired
	}
	if b.Amount <= 0 {
		return Budget{}, ErrAmountRequired
	}
	if b.Period == "" {
		b.Period = PeriodMonthly
	}
	if b.StartDate.IsZero() {
		b.StartDate = s.clock.Now()
	}
	b.IsActive = true
	id, err := s.repo.StoreBudget(ctx, userId, b)
	if err != nil {
		return Budget{}, err
	}
	b.ID = id
	return b, nil
}

func (s *ServiceImpl) GetBudgets(ctx context.Context) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetBudgets(ctx, userId)
}

func (s *ServiceImpl) DeleteBudget(ctx context.Context, budgetId int64) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, err
	}
	return s.repo.DeleteBudget(ctx, userId, budgetId)
}

func (s *ServiceImpl) RecordTransaction(ctx context.Context, t Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, err
	}
	if t.CategoryID == 0 {
		return Transaction{}, ErrCategoryRequired
	}
	if t.Amount <= 0 {
		return Transaction{}, ErrAmountRequired
	}
	if t.Type == "" {
		t.Type = CategoryExpense
	}
	if t.Date.IsZero() {
		t.Date = s.clock.Now()
	}
	id, err := s.repo.StoreTransaction(ctx, userId, t)
	if err != nil {
		return Transaction{}, err
	}
	t.ID = id
	return t, nil
}

func (s *ServiceImpl) GetTransactions(ctx context.Context, from, to time.Time) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetTransactions(ctx, userId, from, to)
}

func (s *ServiceImpl) CurrentMonthSummary(ctx context.Context) (Summary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Summary{}, err
	}
	return s.repo.MonthlySummary(ctx, userId, s.clock.Now())
}

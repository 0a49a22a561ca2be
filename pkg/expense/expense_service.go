package expense

import (
	"context"
	"errors"

	"github.com/birrflow/birrflow/pkg/user"
)

var ErrAmountRequired = errors.New("expense amount must be positive")

type Service interface {
	RecordExpense(ctx context.Context, e Expense) (Expense, error)
	GetAllExpenses(ctx context.Context) ([]Expense, error)
	AverageDailySpending(ctx context.Context) (float64, error)
	DeleteExpense(ctx context.Context, expenseId int64) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) RecordExpense(ctx context.Context, e Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, err
	}
	if e.Amount <= 0 {
		return Expense{}, ErrAmountRequired
	}
	if e.Category == "" {
		e.Category = CategoryOther
	}
	id, err := s.repo.Store(ctx, userId, e)
	if err != nil {
		return Expense{}, err
	}
	e.ID = id
	return e, nil
}

func (s *ServiceImpl) GetAllExpenses(ctx context.Context) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) AverageDailySpending(ctx context.Context) (float64, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.AverageDaily(ctx, userId)
}

func (s *ServiceImpl) DeleteExpense(ctx context.Context, expenseId int64) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, userId, expenseId)
}

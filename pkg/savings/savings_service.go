package savings

import (
	"context"
	"errors"

	"github.com/birrflow/birrflow/pkg/user"
)

var (
	ErrNameRequired   = errors.New("goal name is required")
	ErrTargetRequired = errors.New("goal target amount must be positive")
	ErrAmountRequired = errors.New("contribution amount must be positive")
)

type Service interface {
	CreateGoal(ctx context.Context, g Goal) (Goal, error)
	GetGoals(ctx context.Context) ([]Goal, error)
	Contribute(ctx context.Context, goalId int64, amount float64) (Goal, error)
	GetTransactions(ctx context.Context, goalId int64) ([]Transaction, error)
	DeleteGoal(ctx context.Context, goalId int64) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateGoal(ctx context.Context, g Goal) (Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Goal{}, err
	}
	if g.Name == "" {
		return Goal{}, ErrNameRequired
	}
	if g.TargetAmount <= 0 {
		return Goal{}, ErrTargetRequired
	}
	id, err := s.repo.StoreGoal(ctx, userId, g)
	if err != nil {
		return Goal{}, err
	}
	g.ID = id
	return g, nil
}

func (s *ServiceImpl) GetGoals(ctx context.Context) ([]Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetGoals(ctx, userId)
}

func (s *ServiceImpl) Contribute(ctx context.Context, goalId int64, amount float64) (Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Goal{}, err
	}
	if amount <= 0 {
		return Goal{}, ErrAmountRequired
	}
	if _, err := s.repo.AddTransaction(ctx, userId, goalId, amount); err != nil {
		return Goal{}, err
	}
	return s.repo.GetGoal(ctx, userId, goalId)
}

func (s *ServiceImpl) GetTransactions(ctx context.Context, goalId int64) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetTransactions(ctx, userId, goalId)
}

func (s *ServiceImpl) DeleteGoal(ctx context.Context, goalId int64) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, err
	}
	return s.repo.DeleteGoal(ctx, userId, goalId)
}

package account

import (
	"context"
	"errors"

	"github.com/birrflow/birrflow/pkg/user"
)

var ErrNameRequired = errors.New("account name is required")

type Service interface {
	CreateAccount(ctx context.Context, account Account) (Account, error)
	GetAllAccounts(ctx context.Context) ([]Account, error)
	UpdateBalance(ctx context.Context, accountId int64, balance float64) (Account, error)
	DeleteAccount(ctx context.Context, accountId int64) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateAccount(ctx context.Context, account Account) (Account, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Account{}, err
	}
	if account.Name == "" {
		return Account{}, ErrNameRequired
	}
	id, err := s.repo.Store(ctx, userId, account)
	if err != nil {
		return Account{}, err
	}
	account.ID = id
	return account, nil
}

func (s *ServiceImpl) GetAllAccounts(ctx context.Context) ([]Account, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) UpdateBalance(ctx context.Context, accountId int64, balance float64) (Account, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Account{}, err
	}
	ok, err := s.repo.UpdateBalance(ctx, userId, accountId, balance)
	if err != nil {
		return Account{}, err
	}
	if !ok {
		return Account{}, errors.New("account not found")
	}
	return s.repo.Get(ctx, userId, accountId)
}

func (s *ServiceImpl) DeleteAccount(ctx context.Context, accountId int64) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, userId, accountId)
}

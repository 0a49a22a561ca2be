package account

import (
	"context"
	"database/sql"
)

type StubRepo struct {
	accounts map[int64][]Account
	nextID   int64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{accounts: make(map[int64][]Account), nextID: 1}
}

func (s *StubRepo) Store(ctx context.Context, userId int64, account Account) (int64, error) {
	account.ID = s.nextID
	s.nextID++
	s.accounts[userId] = append(s.accounts[userId], account)
	return account.ID, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int64) ([]Account, error) {
	return s.accounts[userId], nil
}

func (s *StubRepo) Get(ctx context.Context, userId int64, accountId int64) (Account, error) {
	for _, a := range s.accounts[userId] {
		if a.ID == accountId {
			return a, nil
		}
	}
	return Account{}, sql.ErrNoRows
}

func (s *StubRepo) UpdateBalance(ctx context.Context, userId int64, accountId int64, balance float64) (bool, error) {
	for i, a := range s.accounts[userId] {
		if a.ID == accountId {
			s.accounts[userId][i].Balance = balance
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) DebitPrimary(ctx context.Context, userId int64, amount float64) error {
	if len(s.accounts[userId]) > 0 {
		s.accounts[userId][0].Balance -= amount
	}
	return nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int64, accountId int64) (bool, error) {
	list := s.accounts[userId]
	for i, a := range list {
		if a.ID == accountId {
			s.accounts[userId] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Cleanup() {
	s.accounts = make(map[int64][]Account)
	s.nextID = 1
}

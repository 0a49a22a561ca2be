package payment

import (
	"context"
	"database/sql"
)

type stored struct {
	payment Payment
	userId  int64
}

type StubRepo struct {
	payments []stored
	nextID   int64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{nextID: 1}
}

func (s *StubRepo) Store(ctx context.Context, userId int64, p Payment) (int64, error) {
	p.ID = s.nextID
	s.nextID++
	s.payments = append(s.payments, stored{payment: p, userId: userId})
	return p.ID, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int64) ([]Payment, error) {
	var out []Payment
	for _, entry := range s.payments {
		if entry.userId == userId {
			out = append(out, entry.payment)
		}
	}
	return out, nil
}

func (s *StubRepo) FindByTransactionID(ctx context.Context, transactionId string) (Payment, int64, error) {
	for _, entry := range s.payments {
		if entry.payment.TransactionID == transactionId {
			return entry.payment, entry.userId, nil
		}
	}
	return Payment{}, 0, sql.ErrNoRows
}

func (s *StubRepo) UpdateStatus(ctx context.Context, paymentId int64, status Status) error {
	for i, entry := range s.payments {
		if entry.payment.ID == paymentId {
			s.payments[i].payment.Status = status
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *StubRepo) Cleanup() {
	s.payments = nil
	s.nextID = 1
}

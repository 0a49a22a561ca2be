package payment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/birrflow/birrflow/internal/event_bus"
	"github.com/birrflow/birrflow/pkg/account"
	"github.com/birrflow/birrflow/pkg/bill"
	"github.com/birrflow/birrflow/pkg/user"
)

var (
	ErrBillNotFound   = errors.New("bill not found")
	ErrAlreadyPaid    = errors.New("bill is already paid")
	ErrUnknownPayment = errors.New("unknown transaction")
)

type Service interface {
	// PayBill registers a pending payment for the bill and returns it
	// together with the gateway URL the user completes it at.
	PayBill(ctx context.Context, billId int64) (Payment, string, error)
	// HandleCallback settles a gateway webhook. It carries no user
	// context; the transaction id identifies the payment and its owner.
	HandleCallback(ctx context.Context, transactionId string, succeeded bool) error
	GetPayments(ctx context.Context) ([]Payment, error)
}

type ServiceImpl struct {
	repo     Repo
	bills    bill.Repo
	accounts account.Repo
	gateway  Gateway
	bus      *event_bus.EventBus
}

func NewService(repo Repo, bills bill.Repo, accounts account.Repo, gateway Gateway, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bills: bills, accounts: accounts, gateway: gateway, bus: bus}
}

func (s *ServiceImpl) PayBill(ctx context.Context, billId int64) (Payment, string, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Payment{}, "", err
	}

	b, err := s.bills.Get(ctx, userId, billId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Payment{}, "", ErrBillNotFound
		}
		return Payment{}, "", err
	}
	if b.IsPaid {
		return Payment{}, "", ErrAlreadyPaid
	}

	p := Payment{
		BillID:        b.ID,
		Amount:        b.Amount,
		TransactionID: uuid.NewString(),
		Status:        StatusPending,
	}
	id, err := s.repo.Store(ctx, userId, p)
	if err != nil {
		return Payment{}, "", err
	}
	p.ID = id

	paymentURL, err := s.gateway.InitiatePayment(ctx, p.TransactionID, p.Amount, b.Name)
	if err != nil {
		if markErr := s.repo.UpdateStatus(ctx, p.ID, StatusFailed); markErr != nil {
			log.Errorf("Could not mark payment %d failed: %v", p.ID, markErr)
		}
		return Payment{}, "", err
	}

	return p, paymentURL, nil
}

func (s *ServiceImpl) HandleCallback(ctx context.Context, transactionId string, succeeded bool) error {
	p, userId, err := s.repo.FindByTransactionID(ctx, transactionId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnknownPayment
		}
		return err
	}
	if p.Status != StatusPending {
		// webhook retries are expected; settle once
		return nil
	}

	if !succeeded {
		return s.repo.UpdateStatus(ctx, p.ID, StatusFailed)
	}

	if err := s.repo.UpdateStatus(ctx, p.ID, StatusCompleted); err != nil {
		return err
	}

	billerName := ""
	if p.BillID != 0 {
		if _, err := s.bills.SetPaid(ctx, userId, p.BillID, true); err != nil {
			log.Errorf("Could not mark bill %d paid: %v", p.BillID, err)
		}
		if b, err := s.bills.Get(ctx, userId, p.BillID); err == nil {
			billerName = b.Name
		}
	}
	if err := s.accounts.DebitPrimary(ctx, userId, p.Amount); err != nil {
		log.Errorf("Could not debit account for payment %d: %v", p.ID, err)
	}

	s.bus.Publish(event_bus.NewEvent(ctx, event_bus.PaymentCompleted, event_bus.PaymentCompletedData{
		UserID:        userId,
		BillID:        p.BillID,
		BillerName:    billerName,
		Amount:        p.Amount,
		TransactionID: p.TransactionID,
	}))
	return nil
}

func (s *ServiceImpl) GetPayments(ctx context.Context) ([]Payment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId)
}

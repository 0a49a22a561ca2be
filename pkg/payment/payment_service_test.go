package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/internal/event_bus"
	"github.com/birrflow/birrflow/pkg/account"
	"github.com/birrflow/birrflow/pkg/bill"
	"github.com/birrflow/birrflow/pkg/user"
)

type fixture struct {
	repo     *StubRepo
	bills    *bill.StubRepo
	accounts *account.StubRepo
	gateway  *StubGateway
	bus      *event_bus.EventBus
	service  Service
}

func setup(t *testing.T) *fixture {
	f := &fixture{
		repo:     NewStubRepo(),
		bills:    bill.NewStubRepo(),
		accounts: account.NewStubRepo(),
		gateway:  &StubGateway{},
		bus:      event_bus.NewEventBus(),
	}
	f.service = NewService(f.repo, f.bills, f.accounts, f.gateway, f.bus)
	t.Cleanup(func() {
		f.repo.Cleanup()
		f.bills.Cleanup()
		f.accounts.Cleanup()
	})
	return f
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestServiceImpl_PayBill(t *testing.T) {
	ctx := user.WithId(context.Background(), 1)

	t.Run("should create a pending payment and return the gateway URL", func(t *testing.T) {
		f := setup(t)
		billId, err := f.bills.Store(ctx, 1, bill.Bill{Name: "Ethio Telecom", Amount: 350, DueDate: date("2025-02-15")})
		assert.NoError(t, err)

		// when
		p, paymentURL, err := f.service.PayBill(ctx, billId)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, p.Status)
		assert.Equal(t, 350.0, p.Amount)
		assert.NotEmpty(t, p.TransactionID)
		assert.Contains(t, paymentURL, p.TransactionID)
		assert.Equal(t, []string{p.TransactionID}, f.gateway.Initiated)
	})

	t.Run("should refuse paying an already paid bill", func(t *testing.T) {
		f := setup(t)
		billId, err := f.bills.Store(ctx, 1, bill.Bill{Name: "Water", Amount: 100, IsPaid: true})
		assert.NoError(t, err)

		_, _, err = f.service.PayBill(ctx, billId)

		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})

	t.Run("should refuse paying another user's bill", func(t *testing.T) {
		f := setup(t)
		billId, err := f.bills.Store(ctx, 2, bill.Bill{Name: "Water", Amount: 100})
		assert.NoError(t, err)

		_, _, err = f.service.PayBill(ctx, billId)

		assert.ErrorIs(t, err, ErrBillNotFound)
	})

	t.Run("should mark the payment failed when the gateway rejects it", func(t *testing.T) {
		f := setup(t)
		f.gateway.Err = errors.New("gateway down")
		billId, err := f.bills.Store(ctx, 1, bill.Bill{Name: "Water", Amount: 100})
		assert.NoError(t, err)

		_, _, err = f.service.PayBill(ctx, billId)

		assert.Error(t, err)
		payments, err := f.service.GetPayments(ctx)
		assert.NoError(t, err)
		assert.Len(t, payments, 1)
		assert.Equal(t, StatusFailed, payments[0].Status)
	})
}

func TestServiceImpl_HandleCallback(t *testing.T) {
	ctx := user.WithId(context.Background(), 1)

	t.Run("should settle the bill, debit the account and publish the event on success", func(t *testing.T) {
		f := setup(t)
		_, err := f.accounts.Store(ctx, 1, account.Account{Name: "Main", Balance: 1000})
		assert.NoError(t, err)
		billId, err := f.bills.Store(ctx, 1, bill.Bill{Name: "Ethio Telecom", Amount: 350})
		assert.NoError(t, err)
		p, _, err := f.service.PayBill(ctx, billId)
		assert.NoError(t, err)

		var published []event_bus.PaymentCompletedData
		f.bus.Subscribe(event_bus.PaymentCompleted, func(e event_bus.Event) error {
			published = append(published, e.Data.(event_bus.PaymentCompletedData))
			return nil
		})

		// when
		err = f.service.HandleCallback(context.Background(), p.TransactionID, true)

		// then
		assert.NoError(t, err)
		settled, err := f.bills.Get(ctx, 1, billId)
		assert.NoError(t, err)
		assert.True(t, settled.IsPaid)

		accounts, err := f.accounts.GetAll(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, 650.0, accounts[0].Balance)

		assert.Len(t, published, 1)
		assert.Equal(t, int64(1), published[0].UserID)
		assert.Equal(t, "Ethio Telecom", published[0].BillerName)
	})

	t.Run("should only mark the payment failed on a failure callback", func(t *testing.T) {
		f := setup(t)
		billId, err := f.bills.Store(ctx, 1, bill.Bill{Name: "Water", Amount: 100})
		assert.NoError(t, err)
		p, _, err := f.service.PayBill(ctx, billId)
		assert.NoError(t, err)

		err = f.service.HandleCallback(context.Background(), p.TransactionID, false)

		assert.NoError(t, err)
		b, err := f.bills.Get(ctx, 1, billId)
		assert.NoError(t, err)
		assert.False(t, b.IsPaid)
		payments, err := f.service.GetPayments(ctx)
		assert.NoError(t, err)
		assert.Equal(t, StatusFailed, payments[0].Status)
	})

	t.Run("should ignore a repeated callback for a settled payment", func(t *testing.T) {
		f := setup(t)
		_, err := f.accounts.Store(ctx, 1, account.Account{Name: "Main", Balance: 1000})
		assert.NoError(t, err)
		billId, err := f.bills.Store(ctx, 1, bill.Bill{Name: "Water", Amount: 100})
		assert.NoError(t, err)
		p, _, err := f.service.PayBill(ctx, billId)
		assert.NoError(t, err)

		assert.NoError(t, f.service.HandleCallback(context.Background(), p.TransactionID, true))
		assert.NoError(t, f.service.HandleCallback(context.Background(), p.TransactionID, true))

		// debited once, not twice
		accounts, err := f.accounts.GetAll(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, 900.0, accounts[0].Balance)
	})

	t.Run("should reject an unknown transaction", func(t *testing.T) {
		f := setup(t)

		err := f.service.HandleCallback(context.Background(), "no-such-tx", true)

		assert.ErrorIs(t, err, ErrUnknownPayment)
	})
}

package bill

import (
	"context"
	"errors"

	"github.com/birrflow/birrflow/pkg/user"
)

var (
	ErrNameRequired    = errors.New("bill name is required")
	ErrLoanTermsNeeded = errors.New("loan bills require an original amount and a start date")
)

// Default loan terms applied when a loan bill is created without explicit rates.
// Fee and rates are percentages; interest and penalty accrue per day.
const (
	DefaultFacilitationFee = 6.0
	DefaultInterestRate    = 0.66
	DefaultPenaltyRate     = 0.11
)

type Service interface {
	CreateBill(ctx context.Context, b Bill) (Bill, error)
	GetAllBills(ctx context.Context) ([]Bill, error)
	GetUnpaidBills(ctx context.Context) ([]Bill, error)
	UpdateBill(ctx context.Context, b Bill) (Bill, error)
	MarkPaid(ctx context.Context, billId int64, paid bool) (Bill, error)
	DeleteBill(ctx context.Context, billId int64) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func validate(b *Bill) error {
	if b.Name == "" {
		return ErrNameRequired
	}
	if b.Type == "" {
		b.Type = TypeOther
	}
	if b.Recurrence == "" {
		b.Recurrence = RecurrenceNone
	}
	if b.IsLoan() {
		if b.OriginalAmount <= 0 || b.LoanStartDate.IsZero() {
			return ErrLoanTermsNeeded
		}
		if b.FacilitationFee == 0 {
			b.FacilitationFee = DefaultFacilitationFee
		}
		if b.InterestRate == 0 {
			b.InterestRate = DefaultInterestRate
		}
		if b.PenaltyRate == 0 {
			b.PenaltyRate = DefaultPenaltyRate
		}
	}
	return nil
}

func (s *ServiceImpl) CreateBill(ctx context.Context, b Bill) (Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bill{}, err
	}
	if err := validate(&b); err != nil {
		return Bill{}, err
	}
	id, err := s.repo.Store(ctx, userId, b)
	if err != nil {
		return Bill{}, err
	}
	b.ID = id
	return b, nil
}

func (s *ServiceImpl) GetAllBills(ctx context.Context) ([]Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetUnpaidBills(ctx context.Context) ([]Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListUnpaid(ctx, userId)
}

func (s *ServiceImpl) UpdateBill(ctx context.Context, b Bill) (Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bill{}, err
	}
	if err := validate(&b); err != nil {
		return Bill{}, err
	}
	ok, err := s.repo.Update(ctx, userId, b)
	if err != nil {
		return Bill{}, err
	}
	if !ok {
		return Bill{}, errors.New("bill not found")
	}
	return s.repo.Get(ctx, userId, b.ID)
}

func (s *ServiceImpl) MarkPaid(ctx context.Context, billId int64, paid bool) (Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bill{}, err
	}
	ok, err := s.repo.SetPaid(ctx, userId, billId, paid)
	if err != nil {
		return Bill{}, err
	}
	if !ok {
		return Bill{}, errors.New("bill not found")
	}
	return s.repo.Get(ctx, userId, billId)
}

func (s *ServiceImpl) DeleteBill(ctx context.Context, billId int64) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, userId, billId)
}

package forecast

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/birrflow/birrflow/internal/config"
	"github.com/birrflow/birrflow/internal/utils"
	"github.com/birrflow/birrflow/pkg/account"
	"github.com/birrflow/birrflow/pkg/bill"
	"github.com/birrflow/birrflow/pkg/income"
	"github.com/birrflow/birrflow/pkg/preferences"
)

var ErrRangeTooLarge = errors.New("forecast range exceeds the maximum number of days")

type Service interface {
	// Forecast projects the current user's cash flow for the given
	// number of days from today. days <= 0 selects the default horizon.
	Forecast(ctx context.Context, days int) ([]Day, error)
}

type ServiceImpl struct {
	accounts account.Service
	bills    bill.Service
	income   income.Service
	prefs    preferences.Service
	expenses AverageDailyProvider
	clock    utils.Clock

	defaultDays int
	maxDays     int
}

// AverageDailyProvider supplies the historical daily spending buffer.
type AverageDailyProvider interface {
	AverageDailySpending(ctx context.Context) (float64, error)
}

func NewService(
	accounts account.Service,
	bills bill.Service,
	incomeSvc income.Service,
	prefs preferences.Service,
	expenses AverageDailyProvider,
	clock utils.Clock,
	cfg config.Forecast,
) *ServiceImpl {
	return &ServiceImpl{
		accounts:    accounts,
		bills:       bills,
		income:      incomeSvc,
		prefs:       prefs,
		expenses:    expenses,
		clock:       clock,
		defaultDays: cfg.DefaultDays,
		maxDays:     cfg.MaxDays,
	}
}

func (s *ServiceImpl) Forecast(ctx context.Context, days int) ([]Day, error) {
	if days <= 0 {
		days = s.defaultDays
	}
	if days > s.maxDays {
		return nil, ErrRangeTooLarge
	}

	start := dateOnly(s.clock.Now())
	end := start.AddDate(0, 0, days)

	accounts, err := s.accounts.GetAllAccounts(ctx)
	if err != nil {
		return nil, err
	}
	bills, err := s.bills.GetUnpaidBills(ctx)
	if err != nil {
		return nil, err
	}
	sources, err := s.income.GetAllSources(ctx)
	if err != nil {
		return nil, err
	}

	// a broken preferences row or expense history must not take the
	// forecast down with it
	prefs, err := s.prefs.GetPreferences(ctx)
	if err != nil {
		log.Warnf("Falling back to default preferences: %v", err)
		prefs = preferences.DefaultPreferences()
	}
	buffer, err := s.expenses.AverageDailySpending(ctx)
	if err != nil {
		log.Warnf("Could not compute daily spending buffer, using 0: %v", err)
		buffer = 0
	}

	events := GenerateEvents(bills, sources, prefs, start, end)
	return Project(start, end, accounts, events, prefs, buffer)
}

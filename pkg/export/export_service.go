package export

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/birrflow/birrflow/pkg/account"
	"github.com/birrflow/birrflow/pkg/bill"
	"github.com/birrflow/birrflow/pkg/forecast"
	"github.com/birrflow/birrflow/pkg/income"
	"github.com/birrflow/birrflow/pkg/user"
)

// Bundle is everything a user can take with them: accounts, bills,
// income sources and the latest cached projection.
type Bundle struct {
	ExportedAt time.Time        `json:"exportedAt"`
	Accounts   []AccountExport  `json:"accounts"`
	Bills      []BillExport     `json:"bills"`
	Income     []IncomeExport   `json:"income"`
	Forecast   []ForecastExport `json:"forecast"`
}

type AccountExport struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency,omitempty"`
}

type BillExport struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Amount  float64 `json:"amount"`
	DueDate string  `json:"dueDate,omitempty"`
	IsPaid  bool    `json:"isPaid"`
}

type IncomeExport struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Frequency   string  `json:"frequency"`
	NextPayDate string  `json:"nextPayDate,omitempty"`
}

type ForecastExport struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

type Service interface {
	ExportFinancialData(ctx context.Context) (Bundle, error)
}

type ServiceImpl struct {
	accounts account.Service
	bills    bill.Service
	income   income.Service
	cache    forecast.CacheRepo
}

func NewService(accounts account.Service, bills bill.Service, income income.Service, cache forecast.CacheRepo) *ServiceImpl {
	return &ServiceImpl{accounts: accounts, bills: bills, income: income, cache: cache}
}

func (s *ServiceImpl) ExportFinancialData(ctx context.Context) (Bundle, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bundle{}, err
	}

	bundle := Bundle{
		ExportedAt: time.Now(),
		Accounts:   []AccountExport{},
		Bills:      []BillExport{},
		Income:     []IncomeExport{},
		Forecast:   []ForecastExport{},
	}

	accounts, err := s.accounts.GetAllAccounts(ctx)
	if err != nil {
		err := fmt.Errorf("could not export accounts: %w", err)
		log.Error(err)
		return Bundle{}, err
	}
	for _, a := range accounts {
		bundle.Accounts = append(bundle.Accounts, AccountExport{
			ID:       a.ID,
			Name:     a.Name,
			Balance:  a.Balance,
			Currency: a.Currency,
		})
	}

	bills, err := s.bills.GetAllBills(ctx)
	if err != nil {
		err := fmt.Errorf("could not export bills: %w", err)
		log.Error(err)
		return Bundle{}, err
	}
	for _, b := range bills {
		e := BillExport{ID: b.ID, Name: b.Name, Type: string(b.Type), Amount: b.Amount, IsPaid: b.IsPaid}
		if !b.DueDate.IsZero() {
			e.DueDate = b.DueDate.Format("2006-01-02")
		}
		bundle.Bills = append(bundle.Bills, e)
	}

	sources, err := s.income.GetAllSources(ctx)
	if err != nil {
		err := fmt.Errorf("could not export income sources: %w", err)
		log.Error(err)
		return Bundle{}, err
	}
	for _, src := range sources {
		e := IncomeExport{ID: src.ID, Name: src.Name, Amount: src.Amount, Frequency: string(src.Frequency)}
		if !src.NextPayDate.IsZero() {
			e.NextPayDate = src.NextPayDate.Format("2006-01-02")
		}
		bundle.Income = append(bundle.Income, e)
	}

	days, err := s.cache.GetCached(ctx, userId)
	if err != nil {
		err := fmt.Errorf("could not export cached forecast: %w", err)
		log.Error(err)
		return Bundle{}, err
	}
	for _, d := range days {
		bundle.Forecast = append(bundle.Forecast, ForecastExport{
			Date:    d.Date.Format("2006-01-02"),
			Balance: d.TotalBalance,
		})
	}

	return bundle, nil
}

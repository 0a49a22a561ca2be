package budget

import "time"

type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

type Category struct {
	ID    int64
	Name  string
	Type  CategoryType
	Color string
	Icon  string
}

type Period string

const (
	PeriodWeekly    Period = "weekly"
	PeriodBiweekly  Period = "bi-weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// Budget is a spending limit for one category over a recurring period.
type Budget struct {
	ID         int64
	CategoryID int64
	Amount     float64
	Period     Period
	StartDate  time.Time
	EndDate    time.Time
	IsActive   bool
}

type Transaction struct {
	ID          int64
	BudgetID    int64
	CategoryID  int64
	Amount      float64
	Description string
	Date        time.Time
	Type        CategoryType
}

// Summary aggregates a month of budget activity.
type Summary struct {
	TotalIncome   float64           `json:"totalIncome"`
	TotalExpenses float64           `json:"totalExpenses"`
	Net           float64           `json:"net"`
	ByCategory    []CategorySummary `json:"byCategory"`
}

type CategorySummary struct {
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Budgeted     float64 `json:"budgeted"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
}

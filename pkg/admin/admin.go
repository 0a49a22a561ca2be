package admin

import "time"

// DashboardMetrics is the aggregate view shown on the admin dashboard.
type DashboardMetrics struct {
	TotalUsers     int
	NewUsers       int
	TotalBills     int
	TotalIncomes   int
	TotalPayments  int
	UserGrowth     []MonthlyCount
	BillTypes      []TypeCount
	RecentActivity []Activity
}

// MonthlyCount is a per-month signup tally, month in "2006-01" form.
type MonthlyCount struct {
	Month string
	Count int
}

type TypeCount struct {
	Type  string
	Count int
}

// Activity is a recent bill or income entry, merged into one feed.
type Activity struct {
	Kind      string
	Name      string
	Amount    float64
	CreatedAt time.Time
}

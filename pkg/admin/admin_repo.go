package admin

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// newUserWindowDays is how far back a signup still counts as "new".
const newUserWindowDays = 30

// recentActivityLimit caps the merged bill and income feed.
const recentActivityLimit = 10

type Repo interface {
	GetDashboardMetrics(ctx context.Context) (DashboardMetrics, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) GetDashboardMetrics(ctx context.Context) (DashboardMetrics, error) {
	var m DashboardMetrics

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM users", &m.TotalUsers},
		{fmt.Sprintf("SELECT COUNT(*) FROM users WHERE created_at >= date('now', '-%d days')", newUserWindowDays), &m.NewUsers},
		{"SELECT COUNT(*) FROM bills", &m.TotalBills},
		{"SELECT COUNT(*) FROM income_sources", &m.TotalIncomes},
		{"SELECT COUNT(*) FROM payments", &m.TotalPayments},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			err := fmt.Errorf("could not count rows: %w", err)
			log.Error(err)
			return DashboardMetrics{}, err
		}
	}

	growth, err := r.userGrowth(ctx)
	if err != nil {
		return DashboardMetrics{}, err
	}
	m.UserGrowth = growth

	billTypes, err := r.billTypeDistribution(ctx)
	if err != nil {
		return DashboardMetrics{}, err
	}
	m.BillTypes = billTypes

	activity, err := r.recentActivity(ctx)
	if err != nil {
		return DashboardMetrics{}, err
	}
	m.RecentActivity = activity

	return m, nil
}

func (r *RepoImpl) userGrowth(ctx context.Context) ([]MonthlyCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT strftime('%Y-%m', created_at) AS month, COUNT(*)
		FROM users GROUP BY month ORDER BY month`)
	if err != nil {
		err := fmt.Errorf("could not query user growth: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var growth []MonthlyCount
	for rows.Next() {
		var mc MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			err := fmt.Errorf("could not scan user growth row: %w", err)
			log.Error(err)
			return nil, err
		}
		growth = append(growth, mc)
	}
	return growth, rows.Err()
}

func (r *RepoImpl) billTypeDistribution(ctx context.Context) ([]TypeCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT bill_type, COUNT(*) AS count
		FROM bills GROUP BY bill_type ORDER BY count DESC`)
	if err != nil {
		err := fmt.Errorf("could not query bill type distribution: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var types []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			err := fmt.Errorf("could not scan bill type row: %w", err)
			log.Error(err)
			return nil, err
		}
		types = append(types, tc)
	}
	return types, rows.Err()
}

func (r *RepoImpl) recentActivity(ctx context.Context) ([]Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT 'bill' AS kind, biller_name AS name, amount, created_at FROM bills
		UNION ALL
		SELECT 'income' AS kind, name, amount, created_at FROM income_sources
		ORDER BY created_at DESC
		LIMIT ?`, recentActivityLimit)
	if err != nil {
		err := fmt.Errorf("could not query recent activity: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var activity []Activity
	for rows.Next() {
		var a Activity
		var createdAt sql.NullString
		if err := rows.Scan(&a.Kind, &a.Name, &a.Amount, &createdAt); err != nil {
			err := fmt.Errorf("could not scan activity row: %w", err)
			log.Error(err)
			return nil, err
		}
		if createdAt.Valid {
			if t, err := time.Parse("2006-01-02 15:04:05", createdAt.String); err == nil {
				a.CreatedAt = t
			}
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

package forecast

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// CacheRepo persists the latest projection per user so the alerting job
// can inspect it without recomputing.
type CacheRepo interface {
	// Replace drops the user's cached projection and stores the new one.
	Replace(ctx context.Context, userId int64, days []Day) error
	// MinCachedBalance returns the lowest cached daily balance. The bool
	// is false when nothing is cached for the user.
	MinCachedBalance(ctx context.Context, userId int64) (float64, bool, error)
	GetCached(ctx context.Context, userId int64) ([]Day, error)
}

type CacheRepoImpl struct {
	db *sql.DB
}

func NewCacheRepo(db *sql.DB) *CacheRepoImpl {
	return &CacheRepoImpl{db: db}
}

func (r *CacheRepoImpl) Replace(ctx context.Context, userId int64, days []Day) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM forecast_cache WHERE user_id = ?", userId); err != nil {
		err := fmt.Errorf("could not clear forecast cache: %v", err)
		log.Error(err)
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO forecast_cache (user_id, date, total_balance) VALUES (?, ?, ?)")
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	for _, day := range days {
		if _, err := stmt.ExecContext(ctx, userId, day.Date.Format(dateLayout), day.TotalBalance); err != nil {
			err := fmt.Errorf("could not insert forecast row: %v", err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *CacheRepoImpl) MinCachedBalance(ctx context.Context, userId int64) (float64, bool, error) {
	var min sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		"SELECT MIN(total_balance) FROM forecast_cache WHERE user_id = ?", userId).Scan(&min)
	if err != nil {
		err := fmt.Errorf("could not query forecast cache: %w", err)
		log.Error(err)
		return 0, false, err
	}
	if !min.Valid {
		return 0, false, nil
	}
	return min.Float64, true, nil
}

func (r *CacheRepoImpl) GetCached(ctx context.Context, userId int64) ([]Day, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT date, total_balance FROM forecast_cache WHERE user_id = ? ORDER BY date", userId)
	if err != nil {
		err := fmt.Errorf("could not query forecast cache: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var days []Day
	for rows.Next() {
		var day Day
		var date string
		if err := rows.Scan(&date, &day.TotalBalance); err != nil {
			err := fmt.Errorf("could not scan forecast row: %w", err)
			log.Error(err)
			return nil, err
		}
		if t, err := time.Parse(dateLayout, date); err == nil {
			day.Date = t
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return days, nil
}

package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int64, e Expense) (int64, error)
	GetAll(ctx context.Context, userId int64) ([]Expense, error)
	// AverageDaily averages the per-day expense totals. Days without
	// any spending do not count; no expenses at all yields 0.
	AverageDaily(ctx context.Context, userId int64) (float64, error)
	Delete(ctx context.Context, userId int64, expenseId int64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int64, e Expense) (int64, error) {
	query := `INSERT INTO expenses (user_id, account_id, amount, description, category) VALUES (?, ?, ?, ?, ?)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, userId, e.AccountID, e.Amount, e.Description, string(e.Category))
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int64) ([]Expense, error) {
	query := `SELECT id, account_id, amount, description, category, created_at
			FROM expenses WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		var category sql.NullString
		var createdAt string
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Amount, &e.Description, &category, &createdAt); err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		if category.Valid {
			e.Category = Category(category.String)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			e.CreatedAt = t
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func (r *RepoImpl) AverageDaily(ctx context.Context, userId int64) (float64, error) {
	query := `SELECT COALESCE(AVG(daily_total), 0) FROM (
			SELECT SUM(amount) AS daily_total FROM expenses
			WHERE user_id = ? GROUP BY DATE(created_at))`
	var avg float64
	if err := r.db.QueryRowContext(ctx, query, userId).Scan(&avg); err != nil {
		err := fmt.Errorf("could not compute daily average: %w", err)
		log.Error(err)
		return 0, err
	}
	return avg, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int64, expenseId int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND user_id = ?", expenseId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

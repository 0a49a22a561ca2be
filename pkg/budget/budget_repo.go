package budget

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type Repo interface {
	StoreCategory(ctx context.Context, userId int64, c Category) (int64, error)
	GetCategories(ctx context.Context, userId int64) ([]Category, error)
	DeleteCategory(ctx context.Context, userId int64, categoryId int64) (bool, error)

	StoreBudget(ctx context.Context, userId int64, b Budget) (int64, error)
	GetBudgets(ctx context.Context, userId int64) ([]Budget, error)
	DeleteBudget(ctx context.Context, userId int64, budgetId int64) (bool, error)

	StoreTransaction(ctx context.Context, userId int64, t Transaction) (int64, error)
	GetTransactions(ctx context.Context, userId int64, from, to time.Time) ([]Transaction, error)

	// MonthlySummary aggregates income, spending and per-category budget
	// usage for the month containing the given date.
	MonthlySummary(ctx context.Context, userId int64, month time.Time) (Summary, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) StoreCategory(ctx context.Context, userId int64, c Category) (int64, error) {
	if c.Color == "" {
		c.Color = "#3B82F6"
	}
	if c.Icon == "" {
		c.Icon = "💰"
	}
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO budget_categories (user_id, name, type, color, icon) VALUES (?, ?, ?, ?, ?)",
		userId, c.Name, string(c.Type), c.Color, c.Icon)
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

func (r *RepoImpl) GetCategories(ctx context.Context, userId int64) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, type, color, icon FROM budget_categories WHERE user_id = ? ORDER BY name", userId)
	if err != nil {
		err := fmt.Errorf("could not query budget categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, (*string)(&c.Type), &c.Color, &c.Icon); err != nil {
			err := fmt.Errorf("could not scan budget category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r *RepoImpl) DeleteCategory(ctx context.Context, userId int64, categoryId int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM budget_categories WHERE id = ? AND user_id = ?", categoryId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete budget category: %v", err)
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

func (r *RepoImpl) StoreBudget(ctx context.Context, userId int64, b Budget) (int64, error) {
	var endDate any
	if !b.EndDate.IsZero() {
		endDate = b.EndDate.Format(dateLayout)
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, category_id, amount, period, start_date, end_date, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userId, b.CategoryID, b.Amount, string(b.Period), b.StartDate.Format(dateLayout), endDate, b.IsActive)
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

func (r *RepoImpl) GetBudgets(ctx context.Context, userId int64) ([]Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category_id, amount, period, start_date, end_date, is_active
		FROM budgets WHERE user_id = ? ORDER BY id`, userId)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		var b Budget
		var start, end sql.NullString
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.Amount, (*string)(&b.Period), &start, &end, &b.IsActive); err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		if start.Valid {
			if t, err := time.Parse(dateLayout, start.String); err == nil {
				b.StartDate = t
			}
		}
		if end.Valid {
			if t, err := time.Parse(dateLayout, end.String); err == nil {
				b.EndDate = t
			}
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (r *RepoImpl) DeleteBudget(ctx context.Context, userId int64, budgetId int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ? AND user_id = ?", budgetId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete budget: %v", err)
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

func (r *RepoImpl) StoreTransaction(ctx context.Context, userId int64, t Transaction) (int64, error) {
	var budgetId any
	if t.BudgetID != 0 {
		budgetId = t.BudgetID
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO budget_transactions (user_id, budget_id, category_id, amount, description, date, type)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userId, budgetId, t.CategoryID, t.Amount, t.Description, t.Date.Format(dateLayout), string(t.Type))
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

func (r *RepoImpl) GetTransactions(ctx context.Context, userId int64, from, to time.Time) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, budget_id, category_id, amount, description, date, type
		FROM budget_transactions WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date DESC`,
		userId, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		err := fmt.Errorf("could not query budget transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var t Transaction
		var budgetId sql.NullInt64
		var date string
		if err := rows.Scan(&t.ID, &budgetId, &t.CategoryID, &t.Amount, &t.Description, &date, (*string)(&t.Type)); err != nil {
			err := fmt.Errorf("could not scan budget transaction: %w", err)
			log.Error(err)
			return nil, err
		}
		t.BudgetID = budgetId.Int64
		if parsed, err := time.Parse(dateLayout, date); err == nil {
			t.Date = parsed
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return txs, nil
}

func (r *RepoImpl) MonthlySummary(ctx context.Context, userId int64, month time.Time) (Summary, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var summary Summary
	err := r.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM budget_transactions WHERE user_id = ? AND date >= ? AND date <= ?`,
		userId, first.Format(dateLayout), last.Format(dateLayout)).
		Scan(&summary.TotalIncome, &summary.TotalExpenses)
	if err != nil {
		err := fmt.Errorf("could not compute summary totals: %w", err)
		log.Error(err)
		return Summary{}, err
	}
	summary.Net = summary.TotalIncome - summary.TotalExpenses

	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.name,
			COALESCE((SELECT SUM(b.amount) FROM budgets b WHERE b.category_id = c.id AND b.is_active = 1), 0),
			COALESCE((SELECT SUM(t.amount) FROM budget_transactions t
				WHERE t.category_id = c.id AND t.type = 'expense' AND t.date >= ? AND t.date <= ?), 0)
		FROM budget_categories c WHERE c.user_id = ? AND c.type = 'expense' ORDER BY c.name`,
		first.Format(dateLayout), last.Format(dateLayout), userId)
	if err != nil {
		err := fmt.Errorf("could not query category summaries: %w", err)
		log.Error(err)
		return Summary{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var cs CategorySummary
		if err := rows.Scan(&cs.CategoryID, &cs.CategoryName, &cs.Budgeted, &cs.Spent); err != nil {
			err := fmt.Errorf("could not scan category summary: %w", err)
			log.Error(err)
			return Summary{}, err
		}
		cs.Remaining = cs.Budgeted - cs.Spent
		summary.ByCategory = append(summary.ByCategory, cs)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return Summary{}, err
	}
	return summary, nil
}

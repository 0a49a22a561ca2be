package savings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type Repo interface {
	StoreGoal(ctx context.Context, userId int64, g Goal) (int64, error)
	GetGoals(ctx context.Context, userId int64) ([]Goal, error)
	GetGoal(ctx context.Context, userId int64, goalId int64) (Goal, error)
	// AddTransaction records a contribution and bumps the goal's
	// current amount in the same transaction.
	AddTransaction(ctx context.Context, userId int64, goalId int64, amount float64) (Transaction, error)
	GetTransactions(ctx context.Context, userId int64, goalId int64) ([]Transaction, error)
	DeleteGoal(ctx context.Context, userId int64, goalId int64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) StoreGoal(ctx context.Context, userId int64, g Goal) (int64, error) {
	var targetDate any
	if !g.TargetDate.IsZero() {
		targetDate = g.TargetDate.Format(dateLayout)
	}
	query := `INSERT INTO savings_goals (user_id, name, target_amount, current_amount, target_date) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, userId, g.Name, g.TargetAmount, g.CurrentAmount, targetDate)
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

func scanGoal(scan func(dest ...any) error) (Goal, error) {
	var g Goal
	var targetDate sql.NullString
	if err := scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &targetDate); err != nil {
		return Goal{}, err
	}
	if targetDate.Valid {
		if t, err := time.Parse(dateLayout, targetDate.String); err == nil {
			g.TargetDate = t
		}
	}
	return g, nil
}

func (r *RepoImpl) GetGoals(ctx context.Context, userId int64) ([]Goal, error) {
	query := `SELECT id, name, target_amount, current_amount, target_date FROM savings_goals WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query savings goals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan savings goal: %w", err)
			log.Error(err)
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return goals, nil
}

func (r *RepoImpl) GetGoal(ctx context.Context, userId int64, goalId int64) (Goal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, target_amount, current_amount, target_date FROM savings_goals WHERE id = ? AND user_id = ?`,
		goalId, userId)
	g, err := scanGoal(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Goal{}, err
		}
		err := fmt.Errorf("could not scan savings goal: %w", err)
		log.Error(err)
		return Goal{}, err
	}
	return g, nil
}

func (r *RepoImpl) AddTransaction(ctx context.Context, userId int64, goalId int64, amount float64) (Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE savings_goals SET current_amount = current_amount + ? WHERE id = ? AND user_id = ?",
		amount, goalId, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Transaction{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	if rowsAffected == 0 {
		return Transaction{}, sql.ErrNoRows
	}

	result, err = tx.ExecContext(ctx,
		"INSERT INTO savings_transactions (goal_id, amount) VALUES (?, ?)", goalId, amount)
	if err != nil {
		err := fmt.Errorf("could not record savings transaction: %v", err)
		log.Error(err)
		return Transaction{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	return Transaction{ID: id, GoalID: goalId, Amount: amount}, nil
}

func (r *RepoImpl) GetTransactions(ctx context.Context, userId int64, goalId int64) ([]Transaction, error) {
	query := `SELECT st.id, st.goal_id, st.amount, st.transaction_date
			FROM savings_transactions st
			JOIN savings_goals sg ON sg.id = st.goal_id
			WHERE st.goal_id = ? AND sg.user_id = ? ORDER BY st.id DESC`
	rows, err := r.db.QueryContext(ctx, query, goalId, userId)
	if err != nil {
		err := fmt.Errorf("could not query savings transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var t Transaction
		var date sql.NullString
		if err := rows.Scan(&t.ID, &t.GoalID, &t.Amount, &date); err != nil {
			err := fmt.Errorf("could not scan savings transaction: %w", err)
			log.Error(err)
			return nil, err
		}
		if date.Valid {
			if parsed, err := time.Parse(dateLayout, date.String); err == nil {
				t.Date = parsed
			}
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

func (r *RepoImpl) DeleteGoal(ctx context.Context, userId int64, goalId int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM savings_goals WHERE id = ? AND user_id = ?", goalId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete savings goal: %v", err)
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

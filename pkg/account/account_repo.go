package account

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int64, account Account) (int64, error)
	GetAll(ctx context.Context, userId int64) ([]Account, error)
	Get(ctx context.Context, userId int64, accountId int64) (Account, error)
	// UpdateBalance sets a new balance and appends a balance_history row.
	UpdateBalance(ctx context.Context, userId int64, accountId int64, balance float64) (bool, error)
	// DebitPrimary subtracts from the user's first account, the one the
	// projection treats as the settlement account. Used by the payment
	// webhook.
	DebitPrimary(ctx context.Context, userId int64, amount float64) error
	Delete(ctx context.Context, userId int64, accountId int64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int64, account Account) (int64, error) {
	query := `INSERT INTO accounts (user_id, name, balance, currency) VALUES (?, ?, ?, ?)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, userId, account.Name, account.Balance, account.Currency)
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

func (r *RepoImpl) GetAll(ctx context.Context, userId int64) ([]Account, error) {
	query := `SELECT id, name, balance, currency FROM accounts WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query accounts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Balance, &a.Currency); err != nil {
			err := fmt.Errorf("could not scan account: %w", err)
			log.Error(err)
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return accounts, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int64, accountId int64) (Account, error) {
	query := `SELECT id, name, balance, currency FROM accounts WHERE id = ? AND user_id = ?`
	var a Account
	err := r.db.QueryRowContext(ctx, query, accountId, userId).Scan(&a.ID, &a.Name, &a.Balance, &a.Currency)
	if err != nil {
		if err == sql.ErrNoRows {
			return Account{}, err
		}
		err := fmt.Errorf("could not scan account: %w", err)
		log.Error(err)
		return Account{}, err
	}
	return a, nil
}

func (r *RepoImpl) UpdateBalance(ctx context.Context, userId int64, accountId int64, balance float64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE accounts SET balance = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?",
		balance, accountId, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	if rowsAffected == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO balance_history (account_id, balance) VALUES (?, ?)",
		accountId, balance); err != nil {
		err := fmt.Errorf("could not record balance history: %v", err)
		log.Error(err)
		return false, err
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return false, err
	}
	return true, nil
}

func (r *RepoImpl) DebitPrimary(ctx context.Context, userId int64, amount float64) error {
	query := `UPDATE accounts SET balance = balance - ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = (SELECT MIN(id) FROM accounts WHERE user_id = ?)`
	if _, err := r.db.ExecContext(ctx, query, amount, userId); err != nil {
		err := fmt.Errorf("could not debit account: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int64, accountId int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ? AND user_id = ?", accountId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete account: %v", err)
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

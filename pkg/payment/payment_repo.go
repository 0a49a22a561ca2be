package payment

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int64, p Payment) (int64, error)
	GetAll(ctx context.Context, userId int64) ([]Payment, error)
	// FindByTransactionID resolves a gateway callback to the payment and
	// its owning user.
	FindByTransactionID(ctx context.Context, transactionId string) (Payment, int64, error)
	UpdateStatus(ctx context.Context, paymentId int64, status Status) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int64, p Payment) (int64, error) {
	var billId any
	if p.BillID != 0 {
		billId = p.BillID
	}
	query := `INSERT INTO payments (user_id, bill_id, amount, transaction_id, status) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, userId, billId, p.Amount, p.TransactionID, string(p.Status))
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

func (r *RepoImpl) GetAll(ctx context.Context, userId int64) ([]Payment, error) {
	query := `SELECT id, bill_id, amount, transaction_id, status FROM payments WHERE user_id = ? ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query payments: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		var billId sql.NullInt64
		if err := rows.Scan(&p.ID, &billId, &p.Amount, &p.TransactionID, (*string)(&p.Status)); err != nil {
			err := fmt.Errorf("could not scan payment: %w", err)
			log.Error(err)
			return nil, err
		}
		p.BillID = billId.Int64
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return payments, nil
}

func (r *RepoImpl) FindByTransactionID(ctx context.Context, transactionId string) (Payment, int64, error) {
	query := `SELECT id, user_id, bill_id, amount, transaction_id, status FROM payments WHERE transaction_id = ?`
	var p Payment
	var userId int64
	var billId sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, transactionId).
		Scan(&p.ID, &userId, &billId, &p.Amount, &p.TransactionID, (*string)(&p.Status))
	if err != nil {
		if err == sql.ErrNoRows {
			return Payment{}, 0, err
		}
		err := fmt.Errorf("could not scan payment: %w", err)
		log.Error(err)
		return Payment{}, 0, err
	}
	p.BillID = billId.Int64
	return p, userId, nil
}

func (r *RepoImpl) UpdateStatus(ctx context.Context, paymentId int64, status Status) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE payments SET status = ? WHERE id = ?", string(status), paymentId); err != nil {
		err := fmt.Errorf("could not update payment status: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

package bill

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type Repo interface {
	Store(ctx context.Context, userId int64, b Bill) (int64, error)
	GetAll(ctx context.Context, userId int64) ([]Bill, error)
	Get(ctx context.Context, userId int64, billId int64) (Bill, error)
	// ListUnpaid returns unpaid bills ordered by due date, soonest first.
	ListUnpaid(ctx context.Context, userId int64) ([]Bill, error)
	Update(ctx context.Context, userId int64, b Bill) (bool, error)
	SetPaid(ctx context.Context, userId int64, billId int64, paid bool) (bool, error)
	Delete(ctx context.Context, userId int64, billId int64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func dateParam(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

// scanDate leaves the target zero when the column is NULL or malformed,
// so downstream fallbacks apply instead of failing the whole query.
func scanDate(s sql.NullString, target *time.Time) {
	if !s.Valid || s.String == "" {
		return
	}
	if t, err := time.Parse(dateLayout, s.String); err == nil {
		*target = t
	}
}

func (r *RepoImpl) Store(ctx context.Context, userId int64, b Bill) (int64, error) {
	query := `INSERT INTO bills (user_id, biller_name, amount, due_date, bill_type, recurrence, is_paid,
			original_loan_amount, loan_start_date, facilitation_fee, interest_rate, penalty_rate)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, userId, b.Name, b.Amount, dateParam(b.DueDate),
		string(b.Type), string(b.Recurrence), b.IsPaid,
		b.OriginalAmount, dateParam(b.LoanStartDate), b.FacilitationFee, b.InterestRate, b.PenaltyRate)
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

const billColumns = `id, biller_name, amount, due_date, bill_type, recurrence, is_paid,
		original_loan_amount, loan_start_date, facilitation_fee, interest_rate, penalty_rate`

func scanBill(scan func(dest ...any) error) (Bill, error) {
	var b Bill
	var due, loanStart sql.NullString
	err := scan(&b.ID, &b.Name, &b.Amount, &due, (*string)(&b.Type), (*string)(&b.Recurrence), &b.IsPaid,
		&b.OriginalAmount, &loanStart, &b.FacilitationFee, &b.InterestRate, &b.PenaltyRate)
	if err != nil {
		return Bill{}, err
	}
	scanDate(due, &b.DueDate)
	scanDate(loanStart, &b.LoanStartDate)
	return b, nil
}

func (r *RepoImpl) queryBills(ctx context.Context, query string, args ...any) ([]Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query bills: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		b, err := scanBill(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan bill: %w", err)
			log.Error(err)
			return nil, err
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return bills, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int64) ([]Bill, error) {
	return r.queryBills(ctx, `SELECT `+billColumns+` FROM bills WHERE user_id = ? ORDER BY due_date`, userId)
}

func (r *RepoImpl) ListUnpaid(ctx context.Context, userId int64) ([]Bill, error) {
	return r.queryBills(ctx, `SELECT `+billColumns+` FROM bills WHERE user_id = ? AND is_paid = 0 ORDER BY due_date`, userId)
}

func (r *RepoImpl) Get(ctx context.Context, userId int64, billId int64) (Bill, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills WHERE id = ? AND user_id = ?`, billId, userId)
	b, err := scanBill(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Bill{}, err
		}
		err := fmt.Errorf("could not scan bill: %w", err)
		log.Error(err)
		return Bill{}, err
	}
	return b, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int64, b Bill) (bool, error) {
	query := `UPDATE bills SET biller_name = ?, amount = ?, due_date = ?, bill_type = ?, recurrence = ?, is_paid = ?,
			original_loan_amount = ?, loan_start_date = ?, facilitation_fee = ?, interest_rate = ?, penalty_rate = ?,
			updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, b.Name, b.Amount, dateParam(b.DueDate),
		string(b.Type), string(b.Recurrence), b.IsPaid,
		b.OriginalAmount, dateParam(b.LoanStartDate), b.FacilitationFee, b.InterestRate, b.PenaltyRate,
		b.ID, userId)
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
	return rowsAffected == 1, nil
}

func (r *RepoImpl) SetPaid(ctx context.Context, userId int64, billId int64, paid bool) (bool, error) {
	result, err := r.db.ExecContext(ctx, "UPDATE bills SET is_paid = ? WHERE id = ? AND user_id = ?", paid, billId, userId)
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
	return rowsAffected == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int64, billId int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ? AND user_id = ?", billId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete bill: %v", err)
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

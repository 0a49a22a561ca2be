package income

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type Repo interface {
	Store(ctx context.Context, userId int64, src Source) (int64, error)
	GetAll(ctx context.Context, userId int64) ([]Source, error)
	Delete(ctx context.Context, userId int64, sourceId int64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int64, src Source) (int64, error) {
	var nextPay any
	if !src.NextPayDate.IsZero() {
		nextPay = src.NextPayDate.Format(dateLayout)
	}
	query := `INSERT INTO income_sources (user_id, name, amount, frequency, next_pay_date) VALUES (?, ?, ?, ?, ?)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, userId, src.Name, src.Amount, string(src.Frequency), nextPay)
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

func (r *RepoImpl) GetAll(ctx context.Context, userId int64) ([]Source, error) {
	query := `SELECT id, name, amount, frequency, next_pay_date FROM income_sources WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query income sources: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		var nextPay sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Amount, (*string)(&s.Frequency), &nextPay); err != nil {
			err := fmt.Errorf("could not scan income source: %w", err)
			log.Error(err)
			return nil, err
		}
		if nextPay.Valid {
			if t, err := time.Parse(dateLayout, nextPay.String); err == nil {
				s.NextPayDate = t
			}
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return sources, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int64, sourceId int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM income_sources WHERE id = ? AND user_id = ?", sourceId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete income source: %v", err)
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

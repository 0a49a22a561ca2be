package notification

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int64, n Notification) (int64, error)
	GetAll(ctx context.Context, userId int64) ([]Notification, error)
	MarkRead(ctx context.Context, userId int64, notificationId int64) (bool, error)
	MarkAllRead(ctx context.Context, userId int64) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int64, n Notification) (int64, error) {
	var data any
	if n.Data != "" {
		data = n.Data
	}
	query := `INSERT INTO notifications (user_id, type, message, message_am, data) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, userId, string(n.Type), n.Message, n.MessageAm, data)
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

func (r *RepoImpl) GetAll(ctx context.Context, userId int64) ([]Notification, error) {
	query := `SELECT id, type, message, message_am, data, is_read, created_at
			FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query notifications: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		var data sql.NullString
		var createdAt string
		if err := rows.Scan(&n.ID, (*string)(&n.Type), &n.Message, &n.MessageAm, &data, &n.IsRead, &createdAt); err != nil {
			err := fmt.Errorf("could not scan notification: %w", err)
			log.Error(err)
			return nil, err
		}
		n.Data = data.String
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			n.CreatedAt = t
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return notifications, nil
}

func (r *RepoImpl) MarkRead(ctx context.Context, userId int64, notificationId int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?", notificationId, userId)
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

func (r *RepoImpl) MarkAllRead(ctx context.Context, userId int64) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE user_id = ?", userId); err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

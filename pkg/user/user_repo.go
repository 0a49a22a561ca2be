package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	Store(ctx context.Context, u User) (int64, error)
	FindByID(ctx context.Context, id int64) (User, error)
	// FindByIdentifier matches either phone or email.
	FindByIdentifier(ctx context.Context, identifier string) (User, error)
	UpdateProfile(ctx context.Context, u User) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context) ([]User, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, u User) (int64, error) {
	query := `INSERT INTO users (phone, email, username, password_hash) VALUES (?, ?, ?, ?)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, nullable(u.Phone), nullable(u.Email), u.Username, u.PasswordHash)
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

func (r *RepoImpl) FindByID(ctx context.Context, id int64) (User, error) {
	query := `SELECT id, phone, email, username, password_hash, is_admin, last_login, created_at
			FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *RepoImpl) FindByIdentifier(ctx context.Context, identifier string) (User, error) {
	query := `SELECT id, phone, email, username, password_hash, is_admin, last_login, created_at
			FROM users WHERE phone = ? OR email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, identifier, identifier))
}

func (r *RepoImpl) scanOne(row *sql.Row) (User, error) {
	var u User
	var phone, email, username, lastLogin sql.NullString
	var createdAt sql.NullString
	if err := row.Scan(&u.ID, &phone, &email, &username, &u.PasswordHash, &u.IsAdmin, &lastLogin, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		err := fmt.Errorf("could not scan user: %w", err)
		log.Error(err)
		return User{}, err
	}
	u.Phone = phone.String
	u.Email = email.String
	u.Username = username.String
	if lastLogin.Valid {
		if t, err := time.Parse(time.RFC3339, lastLogin.String); err == nil {
			u.LastLogin = t
		}
	}
	if createdAt.Valid {
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt.String); err == nil {
			u.CreatedAt = t
		}
	}
	return u, nil
}

func (r *RepoImpl) UpdateProfile(ctx context.Context, u User) error {
	query := `UPDATE users SET phone = ?, email = ?, username = ? WHERE id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()
	if _, err := stmt.ExecContext(ctx, nullable(u.Phone), nullable(u.Email), u.Username, u.ID); err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", hash, id)
	if err != nil {
		err := fmt.Errorf("could not update password: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET last_login = ? WHERE id = ?", at.Format(time.RFC3339), id)
	if err != nil {
		err := fmt.Errorf("could not update last login: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) List(ctx context.Context) ([]User, error) {
	query := `SELECT id, phone, email, username, password_hash, is_admin, last_login, created_at
			FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query users: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var phone, email, username, lastLogin, createdAt sql.NullString
		if err := rows.Scan(&u.ID, &phone, &email, &username, &u.PasswordHash, &u.IsAdmin, &lastLogin, &createdAt); err != nil {
			err := fmt.Errorf("could not scan user: %w", err)
			log.Error(err)
			return nil, err
		}
		u.Phone = phone.String
		u.Email = email.String
		u.Username = username.String
		if lastLogin.Valid {
			if t, err := time.Parse(time.RFC3339, lastLogin.String); err == nil {
				u.LastLogin = t
			}
		}
		if createdAt.Valid {
			if t, err := time.Parse("2006-01-02 15:04:05", createdAt.String); err == nil {
				u.CreatedAt = t
			}
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return users, nil
}

func (r *RepoImpl) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET is_admin = ? WHERE id = ?", isAdmin, id)
	if err != nil {
		err := fmt.Errorf("could not update admin flag: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		err := fmt.Errorf("could not delete user: %v", err)
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

// nullable maps "" to NULL so the partial unique indexes on phone/email
// do not collide on empty strings.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

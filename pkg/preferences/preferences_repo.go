package preferences

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// Get returns the raw preferences blob, or sql.ErrNoRows when the
	// user has never saved any.
	Get(ctx context.Context, userId int64) ([]byte, error)
	Save(ctx context.Context, userId int64, blob []byte) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Get(ctx context.Context, userId int64) ([]byte, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx, "SELECT preferences FROM user_preferences WHERE user_id = ?", userId).Scan(&blob)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		err := fmt.Errorf("could not query preferences: %w", err)
		log.Error(err)
		return nil, err
	}
	return blob, nil
}

func (r *RepoImpl) Save(ctx context.Context, userId int64, blob []byte) error {
	query := `INSERT INTO user_preferences (user_id, preferences) VALUES (?, ?)
			ON CONFLICT(user_id) DO UPDATE SET preferences = excluded.preferences, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, query, userId, blob); err != nil {
		err := fmt.Errorf("could not save preferences: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

package education

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, a Article) (int64, error)
	// GetAll lists articles, optionally narrowed by category and language.
	GetAll(ctx context.Context, category Category, language Language) ([]Article, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, a Article) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO financial_education (title, content, category, language) VALUES (?, ?, ?, ?)",
		a.Title, a.Content, a.Category, a.Language)
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

func (r *RepoImpl) GetAll(ctx context.Context, category Category, language Language) ([]Article, error) {
	query := "SELECT id, title, content, category, language FROM financial_education"
	var conditions []string
	var args []any
	if category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, category)
	}
	if language != "" {
		conditions = append(conditions, "language = ?")
		args = append(args, language)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query financial education articles: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Category, &a.Language); err != nil {
			err := fmt.Errorf("could not scan financial education article: %w", err)
			log.Error(err)
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return articles, nil
}

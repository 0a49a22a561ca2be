package community

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// listLimit caps community listings so a busy region cannot flood the feed.
const listLimit = 50

type Repo interface {
	StoreTip(ctx context.Context, userId int64, tip Tip) (Tip, error)
	// GetTips returns the newest tips, optionally narrowed to a region.
	GetTips(ctx context.Context, region string) ([]Tip, error)
	StorePrice(ctx context.Context, userId int64, price PriceComparison) (PriceComparison, error)
	// GetPrices returns the newest price observations. itemName matches as
	// a substring, region matches exactly; either may be empty.
	GetPrices(ctx context.Context, itemName string, region string) ([]PriceComparison, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) StoreTip(ctx context.Context, userId int64, tip Tip) (Tip, error) {
	var region any
	if tip.Region != "" {
		region = tip.Region
	}
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO community_tips (user_id, content, region) VALUES (?, ?, ?)",
		userId, tip.Content, region)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Tip{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return Tip{}, err
	}
	tip.ID = id
	tip.UserID = userId
	tip.CreatedAt = time.Now()
	return tip, nil
}

func (r *RepoImpl) GetTips(ctx context.Context, region string) ([]Tip, error) {
	query := "SELECT id, user_id, content, region, created_at FROM community_tips"
	var args []any
	if region != "" {
		query += " WHERE region = ?"
		args = append(args, region)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, listLimit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query community tips: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var tips []Tip
	for rows.Next() {
		var t Tip
		var tipRegion sql.NullString
		var createdAt sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &t.Content, &tipRegion, &createdAt); err != nil {
			err := fmt.Errorf("could not scan community tip: %w", err)
			log.Error(err)
			return nil, err
		}
		t.Region = tipRegion.String
		t.CreatedAt = parseTimestamp(createdAt)
		tips = append(tips, t)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return tips, nil
}

func (r *RepoImpl) StorePrice(ctx context.Context, userId int64, price PriceComparison) (PriceComparison, error) {
	var region any
	if price.Region != "" {
		region = price.Region
	}
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO price_comparisons (user_id, item_name, price, market, region) VALUES (?, ?, ?, ?, ?)",
		userId, price.ItemName, price.Price, price.Market, region)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return PriceComparison{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return PriceComparison{}, err
	}
	price.ID = id
	price.UserID = userId
	price.CreatedAt = time.Now()
	return price, nil
}

func (r *RepoImpl) GetPrices(ctx context.Context, itemName string, region string) ([]PriceComparison, error) {
	query := "SELECT id, user_id, item_name, price, market, region, created_at FROM price_comparisons"
	var conditions []string
	var args []any
	if itemName != "" {
		conditions = append(conditions, "item_name LIKE ?")
		args = append(args, "%"+itemName+"%")
	}
	if region != "" {
		conditions = append(conditions, "region = ?")
		args = append(args, region)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, listLimit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query price comparisons: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var prices []PriceComparison
	for rows.Next() {
		var p PriceComparison
		var priceRegion sql.NullString
		var createdAt sql.NullString
		if err := rows.Scan(&p.ID, &p.UserID, &p.ItemName, &p.Price, &p.Market, &priceRegion, &createdAt); err != nil {
			err := fmt.Errorf("could not scan price comparison: %w", err)
			log.Error(err)
			return nil, err
		}
		p.Region = priceRegion.String
		p.CreatedAt = parseTimestamp(createdAt)
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return prices, nil
}

func parseTimestamp(v sql.NullString) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, v.String); err == nil {
			return t
		}
	}
	return time.Time{}
}

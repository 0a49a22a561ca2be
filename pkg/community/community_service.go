package community

import (
	"context"
	"errors"

	"github.com/birrflow/birrflow/pkg/user"
)

var (
	ErrContentRequired = errors.New("tip content is required")
	ErrPriceIncomplete = errors.New("item name, price and market are required")
)

type Service interface {
	ShareTip(ctx context.Context, tip Tip) (Tip, error)
	GetTips(ctx context.Context, region string) ([]Tip, error)
	SharePrice(ctx context.Context, price PriceComparison) (PriceComparison, error)
	GetPrices(ctx context.Context, itemName string, region string) ([]PriceComparison, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ShareTip(ctx context.Context, tip Tip) (Tip, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Tip{}, err
	}
	if tip.Content == "" {
		return Tip{}, ErrContentRequired
	}
	return s.repo.StoreTip(ctx, userId, tip)
}

func (s *ServiceImpl) GetTips(ctx context.Context, region string) ([]Tip, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetTips(ctx, region)
}

func (s *ServiceImpl) SharePrice(ctx context.Context, price PriceComparison) (PriceComparison, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return PriceComparison{}, err
	}
	if price.ItemName == "" || price.Price <= 0 || price.Market == "" {
		return PriceComparison{}, ErrPriceIncomplete
	}
	return s.repo.StorePrice(ctx, userId, price)
}

func (s *ServiceImpl) GetPrices(ctx context.Context, itemName string, region string) ([]PriceComparison, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetPrices(ctx, itemName, region)
}

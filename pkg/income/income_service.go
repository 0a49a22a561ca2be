package income

import (
	"context"
	"errors"

	"github.com/birrflow/birrflow/pkg/user"
)

var ErrNameRequired = errors.New("income source name is required")

type Service interface {
	CreateSource(ctx context.Context, src Source) (Source, error)
	GetAllSources(ctx context.Context) ([]Source, error)
	DeleteSource(ctx context.Context, sourceId int64) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateSource(ctx context.Context, src Source) (Source, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Source{}, err
	}
	if src.Name == "" {
		return Source{}, ErrNameRequired
	}
	if src.Frequency == "" {
		src.Frequency = FrequencyMonthly
	}
	id, err := s.repo.Store(ctx, userId, src)
	if err != nil {
		return Source{}, err
	}
	src.ID = id
	return src, nil
}

func (s *ServiceImpl) GetAllSources(ctx context.Context) ([]Source, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) DeleteSource(ctx context.Context, sourceId int64) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, userId, sourceId)
}

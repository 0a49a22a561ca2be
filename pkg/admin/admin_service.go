package admin

import (
	"context"

	"github.com/birrflow/birrflow/pkg/user"
)

type Service interface {
	GetDashboardMetrics(ctx context.Context) (DashboardMetrics, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	SetUserAdmin(ctx context.Context, userId int64, isAdmin bool) error
	DeleteUser(ctx context.Context, userId int64) (bool, error)
}

type ServiceImpl struct {
	repo  Repo
	users user.Repo
}

func NewService(repo Repo, users user.Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo, users: users}
}

func (s *ServiceImpl) GetDashboardMetrics(ctx context.Context) (DashboardMetrics, error) {
	return s.repo.GetDashboardMetrics(ctx)
}

func (s *ServiceImpl) ListUsers(ctx context.Context) ([]user.User, error) {
	return s.users.List(ctx)
}

func (s *ServiceImpl) SetUserAdmin(ctx context.Context, userId int64, isAdmin bool) error {
	return s.users.SetAdmin(ctx, userId, isAdmin)
}

func (s *ServiceImpl) DeleteUser(ctx context.Context, userId int64) (bool, error) {
	return s.users.Delete(ctx, userId)
}

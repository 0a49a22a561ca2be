package notification

import (
	"context"

	"github.com/birrflow/birrflow/pkg/user"
)

type Service interface {
	GetAllNotifications(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, notificationId int64) (bool, error)
	MarkAllRead(ctx context.Context) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAllNotifications(ctx context.Context) ([]Notification, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) MarkRead(ctx context.Context, notificationId int64) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, err
	}
	return s.repo.MarkRead(ctx, userId, notificationId)
}

func (s *ServiceImpl) MarkAllRead(ctx context.Context) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	return s.repo.MarkAllRead(ctx, userId)
}

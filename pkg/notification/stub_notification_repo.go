package notification

import "context"

type StubRepo struct {
	notifications map[int64][]Notification
	nextID        int64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{notifications: make(map[int64][]Notification), nextID: 1}
}

func (s *StubRepo) Store(ctx context.Context, userId int64, n Notification) (int64, error) {
	n.ID = s.nextID
	s.nextID++
	s.notifications[userId] = append(s.notifications[userId], n)
	return n.ID, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int64) ([]Notification, error) {
	return s.notifications[userId], nil
}

func (s *StubRepo) MarkRead(ctx context.Context, userId int64, notificationId int64) (bool, error) {
	for i, n := range s.notifications[userId] {
		if n.ID == notificationId {
			s.notifications[userId][i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) MarkAllRead(ctx context.Context, userId int64) error {
	for i := range s.notifications[userId] {
		s.notifications[userId][i].IsRead = true
	}
	return nil
}

func (s *StubRepo) Cleanup() {
	s.notifications = make(map[int64][]Notification)
	s.nextID = 1
}

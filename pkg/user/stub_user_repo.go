package user

import (
	"context"
	"time"
)

type StubRepo struct {
	nextId int64
	data   map[int64]User
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int64]User{}}
}

func (s *StubRepo) Store(ctx context.Context, u User) (int64, error) {
	s.nextId++
	u.ID = s.nextId
	s.data[u.ID] = u
	return u.ID, nil
}

func (s *StubRepo) FindByID(ctx context.Context, id int64) (User, error) {
	u, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *StubRepo) FindByIdentifier(ctx context.Context, identifier string) (User, error) {
	for _, u := range s.data {
		if (u.Phone != "" && u.Phone == identifier) || (u.Email != "" && u.Email == identifier) {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubRepo) UpdateProfile(ctx context.Context, u User) error {
	existing := s.data[u.ID]
	existing.Phone = u.Phone
	existing.Email = u.Email
	existing.Username = u.Username
	s.data[u.ID] = existing
	return nil
}

func (s *StubRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	u := s.data[id]
	u.PasswordHash = hash
	s.data[id] = u
	return nil
}

func (s *StubRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	u := s.data[id]
	u.LastLogin = at
	s.data[id] = u
	return nil
}

func (s *StubRepo) List(ctx context.Context) ([]User, error) {
	users := make([]User, 0, len(s.data))
	for _, u := range s.data {
		users = append(users, u)
	}
	return users, nil
}

func (s *StubRepo) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	u := s.data[id]
	u.IsAdmin = isAdmin
	s.data[id] = u
	return nil
}

func (s *StubRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepo) Cleanup() {
	s.data = map[int64]User{}
}

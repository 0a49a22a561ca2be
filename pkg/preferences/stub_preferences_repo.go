package preferences

import (
	"context"
	"database/sql"
)

type StubRepo struct {
	blobs map[int64][]byte
}

func NewStubRepo() *StubRepo {
	return &StubRepo{blobs: make(map[int64][]byte)}
}

func (s *StubRepo) Get(ctx context.Context, userId int64) ([]byte, error) {
	blob, ok := s.blobs[userId]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return blob, nil
}

func (s *StubRepo) Save(ctx context.Context, userId int64, blob []byte) error {
	s.blobs[userId] = blob
	return nil
}

func (s *StubRepo) Cleanup() {
	s.blobs = make(map[int64][]byte)
}

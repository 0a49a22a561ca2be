package income

import "context"

type StubRepo struct {
	sources map[int64][]Source
	nextID  int64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{sources: make(map[int64][]Source), nextID: 1}
}

func (s *StubRepo) Store(ctx context.Context, userId int64, src Source) (int64, error) {
	src.ID = s.nextID
	s.nextID++
	s.sources[userId] = append(s.sources[userId], src)
	return src.ID, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int64) ([]Source, error) {
	return s.sources[userId], nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int64, sourceId int64) (bool, error) {
	list := s.sources[userId]
	for i, src := range list {
		if src.ID == sourceId {
			s.sources[userId] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Cleanup() {
	s.sources = make(map[int64][]Source)
	s.nextID = 1
}

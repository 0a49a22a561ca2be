package forecast

import "context"

type StubCacheRepo struct {
	cached map[int64][]Day
}

func NewStubCacheRepo() *StubCacheRepo {
	return &StubCacheRepo{cached: make(map[int64][]Day)}
}

func (s *StubCacheRepo) Replace(ctx context.Context, userId int64, days []Day) error {
	s.cached[userId] = append([]Day(nil), days...)
	return nil
}

func (s *StubCacheRepo) MinCachedBalance(ctx context.Context, userId int64) (float64, bool, error) {
	days, ok := s.cached[userId]
	if !ok || len(days) == 0 {
		return 0, false, nil
	}
	min := days[0].TotalBalance
	for _, d := range days[1:] {
		if d.TotalBalance < min {
			min = d.TotalBalance
		}
	}
	return min, true, nil
}

func (s *StubCacheRepo) GetCached(ctx context.Context, userId int64) ([]Day, error) {
	return s.cached[userId], nil
}

func (s *StubCacheRepo) Cleanup() {
	s.cached = make(map[int64][]Day)
}

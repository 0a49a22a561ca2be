package expense

import "context"

type StubRepo struct {
	expenses map[int64][]Expense
	nextID   int64
	// DailyAverage is returned by AverageDaily regardless of stored rows.
	DailyAverage float64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{expenses: make(map[int64][]Expense), nextID: 1}
}

func (s *StubRepo) Store(ctx context.Context, userId int64, e Expense) (int64, error) {
	e.ID = s.nextID
	s.nextID++
	s.expenses[userId] = append(s.expenses[userId], e)
	return e.ID, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int64) ([]Expense, error) {
	return s.expenses[userId], nil
}

func (s *StubRepo) AverageDaily(ctx context.Context, userId int64) (float64, error) {
	return s.DailyAverage, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int64, expenseId int64) (bool, error) {
	list := s.expenses[userId]
	for i, e := range list {
		if e.ID == expenseId {
			s.expenses[userId] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Cleanup() {
	s.expenses = make(map[int64][]Expense)
	s.nextID = 1
	s.DailyAverage = 0
}

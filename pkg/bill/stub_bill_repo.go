package bill

import (
	"context"
	"database/sql"
	"sort"
)

type StubRepo struct {
	bills  map[int64][]Bill
	nextID int64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{bills: make(map[int64][]Bill), nextID: 1}
}

func (s *StubRepo) Store(ctx context.Context, userId int64, b Bill) (int64, error) {
	b.ID = s.nextID
	s.nextID++
	s.bills[userId] = append(s.bills[userId], b)
	return b.ID, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int64) ([]Bill, error) {
	out := append([]Bill(nil), s.bills[userId]...)
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (s *StubRepo) ListUnpaid(ctx context.Context, userId int64) ([]Bill, error) {
	var out []Bill
	for _, b := range s.bills[userId] {
		if !b.IsPaid {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (s *StubRepo) Get(ctx context.Context, userId int64, billId int64) (Bill, error) {
	for _, b := range s.bills[userId] {
		if b.ID == billId {
			return b, nil
		}
	}
	return Bill{}, sql.ErrNoRows
}

func (s *StubRepo) Update(ctx context.Context, userId int64, b Bill) (bool, error) {
	for i, existing := range s.bills[userId] {
		if existing.ID == b.ID {
			s.bills[userId][i] = b
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) SetPaid(ctx context.Context, userId int64, billId int64, paid bool) (bool, error) {
	for i, b := range s.bills[userId] {
		if b.ID == billId {
			s.bills[userId][i].IsPaid = paid
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int64, billId int64) (bool, error) {
	list := s.bills[userId]
	for i, b := range list {
		if b.ID == billId {
			s.bills[userId] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Cleanup() {
	s.bills = make(map[int64][]Bill)
	s.nextID = 1
}

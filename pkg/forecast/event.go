package forecast

import "time"

type EventKind string

const (
	EventBill     EventKind = "bill"
	EventIncome   EventKind = "income"
	EventExpense  EventKind = "expense"
	EventFee      EventKind = "fee"
	EventInterest EventKind = "interest"
	EventPenalty  EventKind = "penalty"
)

// EventRef identifies an event within a single projection run. SourceID is
// the id of the originating bill or income source; events synthesized from
// preferences or inside the walk carry reserved negative ids instead.
// Offset disambiguates the per-day events a single source fans out into.
// No two events in one run share the same ref.
type EventRef struct {
	Kind     EventKind `json:"kind"`
	SourceID int64     `json:"sourceId,omitempty"`
	Offset   int       `json:"offset,omitempty"`
}

// LoanTerms is a copy of the originating loan's pricing, carried on
// loan-derived events for traceability. Never recomputed downstream.
type LoanTerms struct {
	Principal       float64 `json:"principal"`
	FacilitationFee float64 `json:"facilitationFee"`
	InterestRate    float64 `json:"interestRate"`
	PenaltyRate     float64 `json:"penaltyRate"`
}

// Event is a single cash-flow occurrence on the timeline. Negative
// amounts are outflows. Events are immutable once generated.
type Event struct {
	Date   time.Time
	Kind   EventKind
	Amount float64
	Ref    EventRef
	Name   string
	Loan   *LoanTerms
}

// Day is one step of the projection: the date, the aggregate balance
// across all accounts at end of day, and the events applied that day.
// The first day of a run always has an empty event list; it is the
// opening snapshot.
type Day struct {
	Date         time.Time
	TotalBalance float64
	Events       []Event
}

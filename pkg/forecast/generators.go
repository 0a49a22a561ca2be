package forecast

import (
	"sort"
	"time"

	"github.com/birrflow/birrflow/pkg/bill"
	"github.com/birrflow/birrflow/pkg/income"
	"github.com/birrflow/birrflow/pkg/preferences"
)

// BillEvents emits one bill event for each unpaid bill due within
// [start, end]. Loan bills are valued at their due date; other bills
// carry their nominal amount. Amounts are negated: bills are outflows.
func BillEvents(bills []bill.Bill, start, end time.Time) []Event {
	start, end = dateOnly(start), dateOnly(end)
	var events []Event
	for _, b := range bills {
		if b.IsPaid || b.DueDate.IsZero() {
			continue
		}
		due := dateOnly(b.DueDate)
		if due.Before(start) || due.After(end) {
			continue
		}
		e := Event{
			Date:   due,
			Kind:   EventBill,
			Name:   b.Name,
			Ref:    EventRef{Kind: EventBill, SourceID: b.ID},
			Amount: -b.Amount,
		}
		if b.IsLoan() {
			v := ValueLoan(b, due)
			e.Amount = -v.Amount
			e.Loan = &LoanTerms{
				Principal:       loanPrincipal(b),
				FacilitationFee: b.FacilitationFee,
				InterestRate:    b.InterestRate,
				PenaltyRate:     b.PenaltyRate,
			}
		}
		events = append(events, e)
	}
	return events
}

// LoanAccrualEvents emits the daily interest and penalty charges for
// unpaid loan bills. Interest runs from the loan start date through the
// earlier of the due date and the window end, clamped to the window
// start; penalty runs from the day after the due date through the window
// end, and only when the due date falls before the end.
func LoanAccrualEvents(bills []bill.Bill, start, end time.Time) []Event {
	start, end = dateOnly(start), dateOnly(end)
	var events []Event
	for _, b := range bills {
		if b.IsPaid || !b.IsLoan() || b.LoanStartDate.IsZero() || b.DueDate.IsZero() {
			continue
		}
		principal := loanPrincipal(b)
		terms := &LoanTerms{
			Principal:       principal,
			FacilitationFee: b.FacilitationFee,
			InterestRate:    b.InterestRate,
			PenaltyRate:     b.PenaltyRate,
		}

		loanStart := dateOnly(b.LoanStartDate)
		due := dateOnly(b.DueDate)

		interestEnd := due
		if end.Before(interestEnd) {
			interestEnd = end
		}
		for d := loanStart; !d.After(interestEnd); d = d.AddDate(0, 0, 1) {
			if d.Before(start) {
				continue
			}
			events = append(events, Event{
				Date:   d,
				Kind:   EventInterest,
				Name:   b.Name + " interest",
				Ref:    EventRef{Kind: EventInterest, SourceID: b.ID, Offset: wholeDays(loanStart, d)},
				Amount: -principal * (b.InterestRate / 100),
				Loan:   terms,
			})
		}

		if due.Before(end) {
			for d := due.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
				events = append(events, Event{
					Date:   d,
					Kind:   EventPenalty,
					Name:   b.Name + " penalty",
					Ref:    EventRef{Kind: EventPenalty, SourceID: b.ID, Offset: wholeDays(due, d)},
					Amount: -principal * (b.PenaltyRate / 100),
					Loan:   terms,
				})
			}
		}
	}
	return events
}

// frequencyStep advances a date by one occurrence of the frequency.
// The false return marks an unrecognized frequency.
func frequencyStep(d time.Time, f income.Frequency) (time.Time, bool) {
	switch f {
	case income.FrequencyDaily:
		return d.AddDate(0, 0, 1), true
	case income.FrequencyWeekly:
		return d.AddDate(0, 0, 7), true
	case income.FrequencyBiweekly:
		return d.AddDate(0, 0, 14), true
	case income.FrequencyMonthly:
		return d.AddDate(0, 1, 0), true
	case income.FrequencyQuarterly:
		return d.AddDate(0, 3, 0), true
	case income.FrequencyYearly:
		return d.AddDate(1, 0, 0), true
	}
	return d, false
}

// IncomeEvents projects each source forward from its next pay date,
// stepping by its frequency until past the window end. A missing or
// unparseable next pay date falls back to the day after the window
// start. A source with an unrecognized frequency generates nothing;
// the other sources are unaffected.
func IncomeEvents(sources []income.Source, start, end time.Time) []Event {
	start, end = dateOnly(start), dateOnly(end)
	var events []Event
	for _, src := range sources {
		next := dateOnly(src.NextPayDate)
		if src.NextPayDate.IsZero() {
			next = start.AddDate(0, 0, 1)
		}
		if _, ok := frequencyStep(next, src.Frequency); !ok {
			continue
		}
		offset := 0
		for !next.After(end) {
			if !next.Before(start) {
				events = append(events, Event{
					Date:   next,
					Kind:   EventIncome,
					Name:   src.Name,
					Ref:    EventRef{Kind: EventIncome, SourceID: src.ID, Offset: offset},
					Amount: src.Amount,
				})
			}
			next, _ = frequencyStep(next, src.Frequency)
			offset++
		}
	}
	return events
}

// monthOccurrence places day within the month of first (the month's
// first day), clamping days 29 to 31 onto the month's last day rather
// than spilling into the next month.
func monthOccurrence(first time.Time, day int) time.Time {
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// RecurringExpenseEvents expands the enabled recurring expenses from the
// preferences bundle into monthly outflow events. The first occurrence
// lands in the start month at the configured day; if that already passed
// it moves to the next month. A configured day beyond a month's length
// lands on that month's last day.
func RecurringExpenseEvents(prefs preferences.Preferences, start, end time.Time) []Event {
	start, end = dateOnly(start), dateOnly(end)
	var events []Event
	for i, exp := range prefs.RecurringExpenses {
		if !exp.Enabled {
			continue
		}
		month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		if monthOccurrence(month, exp.DayOfMonth).Before(start) {
			month = month.AddDate(0, 1, 0)
		}
		offset := 0
		for occurrence := monthOccurrence(month, exp.DayOfMonth); !occurrence.After(end); occurrence = monthOccurrence(month, exp.DayOfMonth) {
			events = append(events, Event{
				Date:   occurrence,
				Kind:   EventExpense,
				Name:   exp.Name,
				Ref:    EventRef{Kind: EventExpense, SourceID: int64(-(i + 1)), Offset: offset},
				Amount: -exp.Amount,
			})
			month = month.AddDate(0, 1, 0)
			offset++
		}
	}
	return events
}

// GenerateEvents runs every generator and merges the results into a
// single list sorted by date. The sort is stable: same-day events keep
// generator order.
func GenerateEvents(bills []bill.Bill, sources []income.Source, prefs preferences.Preferences, start, end time.Time) []Event {
	var events []Event
	events = append(events, BillEvents(bills, start, end)...)
	events = append(events, LoanAccrualEvents(bills, start, end)...)
	events = append(events, IncomeEvents(sources, start, end)...)
	events = append(events, RecurringExpenseEvents(prefs, start, end)...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/birrflow/birrflow/pkg/account"
	"github.com/birrflow/birrflow/pkg/preferences"
)

var ErrInvalidRange = errors.New("start date must not be after end date")

// Transaction fee charged on outflows strictly larger than the threshold.
const (
	transactionFee          = 2.0
	transactionFeeThreshold = 100.0
)

// monthEndDay starts the elevated-spending window at the tail of a month.
const monthEndDay = 25

// Reserved SourceIDs for the events the walk itself synthesizes.
// Recurring preference expenses count down from -1, so these sit far
// below anything a preferences bundle can produce.
const (
	spendingBufferSource  int64 = -1_000_000
	significantDateSource int64 = -1_000_001
)

func significantDateFor(prefs preferences.Preferences, d time.Time) (preferences.SignificantDate, bool) {
	monthDay := d.Format("01-02")
	for _, sd := range prefs.SignificantDates {
		if sd.Enabled && sd.MonthDay == monthDay {
			return sd, true
		}
	}
	return preferences.SignificantDate{}, false
}

func bufferMultiplier(prefs preferences.Preferences, d time.Time, significant bool) float64 {
	if significant {
		return prefs.Multipliers.SignificantDate
	}
	if d.Day() >= monthEndDay {
		return prefs.Multipliers.MonthEnd
	}
	return prefs.Multipliers.Regular
}

// Project walks [start, end] one calendar day at a time and returns a
// balance snapshot per day. The first day is the opening snapshot: the
// raw sum of account balances with no events applied, even when events
// fall on that date. Every later day applies the daily spending buffer,
// that day's generated events, transaction fees, and inflation decay.
//
// Only the first account receives cash-flow events; the others
// contribute to the aggregate and decay with inflation but are never
// debited or credited directly.
//
// Amounts stay unrounded floats throughout; presentation rounding is
// the caller's concern.
func Project(start, end time.Time, accounts []account.Account, events []Event, prefs preferences.Preferences, dailyBuffer float64) ([]Day, error) {
	start, end = dateOnly(start), dateOnly(end)
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	if math.IsNaN(dailyBuffer) || math.IsInf(dailyBuffer, 0) {
		return nil, fmt.Errorf("daily expense buffer is not finite: %v", dailyBuffer)
	}
	for _, a := range accounts {
		if math.IsNaN(a.Balance) || math.IsInf(a.Balance, 0) {
			return nil, fmt.Errorf("balance of account %q is not finite: %v", a.Name, a.Balance)
		}
	}

	balances := make([]float64, len(accounts))
	total := 0.0
	for i, a := range accounts {
		balances[i] = a.Balance
		total += a.Balance
	}

	days := make([]Day, 0, wholeDays(start, end)+1)
	days = append(days, Day{Date: start, TotalBalance: total, Events: []Event{}})

	dailyDecay := 1 - prefs.InflationRate/365
	next := 0   // index into events; they are date-sorted
	feeSeq := 0 // fee refs are numbered per run, not per day

	// events dated on the opening day are never applied
	for next < len(events) && !events[next].Date.After(start) {
		next++
	}

	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		applied := []Event{}

		significant, isSignificant := significantDateFor(prefs, d)

		if dailyBuffer > 0 {
			effective := dailyBuffer * bufferMultiplier(prefs, d, isSignificant)
			balances[0] -= effective
			applied = append(applied, Event{
				Date:   d,
				Kind:   EventExpense,
				Name:   "Daily spending",
				Ref:    EventRef{Kind: EventExpense, SourceID: spendingBufferSource, Offset: wholeDays(start, d)},
				Amount: -effective,
			})
		}
		if isSignificant && significant.ExtraSpending != 0 {
			balances[0] -= significant.ExtraSpending
			applied = append(applied, Event{
				Date:   d,
				Kind:   EventExpense,
				Name:   significant.Name,
				Ref:    EventRef{Kind: EventExpense, SourceID: significantDateSource, Offset: wholeDays(start, d)},
				Amount: -significant.ExtraSpending,
			})
		}

		for ; next < len(events) && events[next].Date.Equal(d); next++ {
			e := events[next]
			balances[0] += e.Amount
			applied = append(applied, e)

			if e.Amount < 0 && math.Abs(e.Amount) > transactionFeeThreshold {
				balances[0] -= transactionFee
				applied = append(applied, Event{
					Date:   d,
					Kind:   EventFee,
					Name:   "Transaction fee",
					Ref:    EventRef{Kind: EventFee, SourceID: e.Ref.SourceID, Offset: feeSeq},
					Amount: -transactionFee,
				})
				feeSeq++
			}
		}

		total = 0
		for i := range balances {
			if !accounts[i].IsForeignCurrency() {
				balances[i] *= dailyDecay
			}
			total += balances[i]
		}

		days = append(days, Day{Date: d, TotalBalance: total, Events: applied})
	}

	return days, nil
}

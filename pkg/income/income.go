package income

import "time"

type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "bi-weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Source is a recurring income stream. A zero NextPayDate means the
// next payment date is unknown; the projection assumes tomorrow.
type Source struct {
	ID          int64
	Name        string
	Amount      float64
	Frequency   Frequency
	NextPayDate time.Time
	CreatedAt   time.Time
}

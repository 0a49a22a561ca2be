package preferences

// CurrentVersion is bumped whenever the stored shape changes. Blobs
// written by older releases are replaced with the defaults on read.
const CurrentVersion = 1

// RecurringExpense is a local expense billed on a fixed day each month.
type RecurringExpense struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	DayOfMonth int     `json:"dayOfMonth"`
	Enabled    bool    `json:"enabled"`
}

// SignificantDate is an annual date with extra expected spending.
// MonthDay is in "01-02" form (month-day), e.g. "09-11" for Ethiopian New Year.
type SignificantDate struct {
	Name          string  `json:"name"`
	MonthDay      string  `json:"monthDay"`
	ExtraSpending float64 `json:"extraSpending"`
	Enabled       bool    `json:"enabled"`
}

// Multipliers scale the daily spending buffer. SignificantDate takes
// precedence over MonthEnd when both apply.
type Multipliers struct {
	MonthEnd        float64 `json:"monthEnd"`
	SignificantDate float64 `json:"significantDate"`
	Regular         float64 `json:"regular"`
}

type Preferences struct {
	Version           int                `json:"version"`
	RecurringExpenses []RecurringExpense `json:"recurringExpenses"`
	SignificantDates  []SignificantDate  `json:"significantDates"`
	Multipliers       Multipliers        `json:"multipliers"`
	// InflationRate is annual, e.g. 0.13 for 13%.
	InflationRate float64 `json:"inflationRate"`
	// ExchangeRate is ETB per USD.
	ExchangeRate float64 `json:"exchangeRate"`
}

// DefaultPreferences returns the stock Ethiopian household profile used
// until a user saves their own.
func DefaultPreferences() Preferences {
	return Preferences{
		Version: CurrentVersion,
		RecurringExpenses: []RecurringExpense{
			{Name: "Ethio Telecom", Amount: 350, DayOfMonth: 15, Enabled: true},
			{Name: "Water Bill", Amount: 100, DayOfMonth: 10, Enabled: true},
			{Name: "Electricity", Amount: 500, DayOfMonth: 20, Enabled: true},
			{Name: "House Rent", Amount: 5000, DayOfMonth: 1, Enabled: true},
			{Name: "Internet", Amount: 1000, DayOfMonth: 5, Enabled: true},
		},
		SignificantDates: []SignificantDate{
			{Name: "Ethiopian Christmas", MonthDay: "01-07", ExtraSpending: 500, Enabled: true},
			{Name: "Timkat", MonthDay: "01-19", ExtraSpending: 300, Enabled: true},
			{Name: "Ethiopian New Year", MonthDay: "09-11", ExtraSpending: 400, Enabled: true},
			{Name: "Meskel", MonthDay: "09-27", ExtraSpending: 300, Enabled: true},
		},
		Multipliers: Multipliers{
			MonthEnd:        1.3,
			SignificantDate: 1.5,
			Regular:         1,
		},
		InflationRate: 0.13,
		ExchangeRate:  140.65,
	}
}

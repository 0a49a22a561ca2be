package savings

import "time"

// Goal is a savings target. CurrentAmount is the running sum of all
// contributions recorded against the goal.
type Goal struct {
	ID            int64
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	TargetDate    time.Time
	CreatedAt     time.Time
}

type Transaction struct {
	ID     int64
	GoalID int64
	Amount float64
	Date   time.Time
}

// Progress returns the completion ratio, capped at 1.
func (g Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	if p > 1 {
		return 1
	}
	return p
}

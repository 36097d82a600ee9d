package weights

import (
	"fmt"
	"math"
)

// Total is the budget every tree must account for.
const Total = 100

// Status is the fill state of a unit's budget.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
	StatusExceeded   Status = "exceeded"
)

// UnitAllocation is the derived state of one unit.
type UnitAllocation struct {
	UnitID    ID
	Weight    float64
	Consumed  float64
	Remaining float64
	Status    Status
}

// Allocation is the derived state of a whole tree.
type Allocation struct {
	Units          []UnitAllocation
	TotalUsed      float64
	TotalRemaining float64
	Valid          bool
	Errors         []string
}

// Unit returns the allocation of the unit with the given id.
func (a Allocation) Unit(id ID) (UnitAllocation, bool) {
	for _, u := range a.Units {
		if u.UnitID == id {
			return u, true
		}
	}
	return UnitAllocation{}, false
}

// Recompute derives per-unit fill and tree totals from t. Sums are carried
// in hundredths, so equality checks are exact at two-decimal precision.
func Recompute(t Tree) Allocation {
	a := Allocation{Units: make([]UnitAllocation, 0, len(t.Units))}

	var used int64
	for _, u := range t.Units {
		budget := hundredths(u.Weight)
		consumed := consumedHundredths(u)

		status := StatusIncomplete
		switch {
		case consumed == budget:
			status = StatusComplete
		case consumed > budget:
			status = StatusExceeded
		}

		a.Units = append(a.Units, UnitAllocation{
			UnitID:    u.ID,
			Weight:    fromHundredths(budget),
			Consumed:  fromHundredths(consumed),
			Remaining: fromHundredths(budget - consumed),
			Status:    status,
		})
		used += budget
	}
	if t.PostTest != nil {
		used += hundredths(t.PostTest.Weight)
	}

	const full = Total * 100
	a.TotalUsed = fromHundredths(used)
	a.TotalRemaining = fromHundredths(full - used)
	a.Valid = used == full

	switch {
	case used > full:
		a.Errors = []string{fmt.Sprintf("exceeds 100%% (%s%%)", FormatPercent(a.TotalUsed))}
	case used < full:
		a.Errors = []string{fmt.Sprintf("incomplete, below 100%% (%s%%)", FormatPercent(a.TotalUsed))}
	}
	return a
}

func consumedHundredths(u Unit) int64 {
	var sum int64
	if u.Quiz != nil {
		sum += hundredths(u.Quiz.Weight)
	}
	for _, l := range u.Lessons {
		sum += hundredths(l.Weight)
		if l.Quiz != nil {
			sum += hundredths(l.Quiz.Weight)
		}
	}
	return sum
}

func hundredths(w float64) int64 {
	return int64(math.Round(w * 100))
}

func fromHundredths(h int64) float64 {
	return float64(h) / 100
}

package weights

import "strings"

// GateResult is the outcome of the pre-save validation gate.
type GateResult struct {
	OK      bool
	Reasons []string

	// Total is the top-level sum the gate inspected.
	Total float64
}

// CanSave reports whether t may be persisted.
func CanSave(t Tree) GateResult {
	return gateFrom(Recompute(t))
}

func gateFrom(a Allocation) GateResult {
	if a.Valid {
		return GateResult{OK: true, Total: a.TotalUsed}
	}
	reasons := make([]string, len(a.Errors))
	copy(reasons, a.Errors)
	return GateResult{Reasons: reasons, Total: a.TotalUsed}
}

// Err returns nil when the gate passed, or a *GateError carrying the reasons.
func (g GateResult) Err() error {
	if g.OK {
		return nil
	}
	return &GateError{Reasons: g.Reasons, Total: g.Total}
}

// GateError is a save refused locally, before any request was made.
type GateError struct {
	Reasons []string
	Total   float64
}

func (e *GateError) Error() string {
	return "total must equal 100%: " + strings.Join(e.Reasons, "; ")
}

// Delta is the signed distance from 100, e.g. -10 for a 90% total.
func (e *GateError) Delta() float64 {
	return fromHundredths(hundredths(e.Total) - Total*100)
}

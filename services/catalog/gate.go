package catalog

import "strings"

// Readiness is the input gate's verdict for one turn.
type Readiness struct {
	Ready   bool
	Missing []string // subset of {"flights", "hotels", "points"}, fixed order
}

// Message renders a deterministic, locally generated clarification for a
// not-ready turn. No model call is spent on a turn the gate rejects.
func (r Readiness) Message() string {
	if r.Ready {
		return ""
	}
	return "I still need the following before I can plan your trip: " +
		strings.Join(r.Missing, ", ") + ". Please include them in your next message."
}

// Check decides whether enough inventory exists to run the pipeline.
// A points balance of exactly zero still counts as supplied when the
// caller set the field explicitly; hasPoints carries that presence flag.
func Check(cat Catalog, hasPoints bool) Readiness {
	var missing []string
	if len(cat.Flights) == 0 {
		missing = append(missing, "flights")
	}
	if len(cat.Hotels) == 0 {
		missing = append(missing, "hotels")
	}
	if !hasPoints {
		missing = append(missing, "points")
	}
	return Readiness{Ready: len(missing) == 0, Missing: missing}
}

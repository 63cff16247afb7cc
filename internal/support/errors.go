package support

import (
	"fmt"

	"github.com/agext/levenshtein"
)

// MissingGuardError reports a guard that the canonical header does not
// declare. It is a defect in the header or in the generator's guard table,
// never a condition to recover from.
type MissingGuardError struct {
	Guard string
	// Suggestion is the closest declared guard name, if any is close enough.
	Suggestion string
}

// Error implements the error interface.
func (e *MissingGuardError) Error() string {
	msg := fmt.Sprintf("guard %q not found in canonical support header", e.Guard)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (h *Header) missingGuard(guard string) error {
	return &MissingGuardError{Guard: guard, Suggestion: suggest(guard, h.Guards())}
}

// suggest returns the candidate closest to name, provided the edit distance
// is at most a third of the name's length.
func suggest(name string, candidates []string) string {
	best, bestDist := "", len(name)/3+1
	for _, c := range candidates {
		if d := levenshtein.Distance(name, c, nil); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

package namepath

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// ErrMalformedPath is matched by every *MalformedPathError via errors.Is.
var ErrMalformedPath = errors.New("malformed path")

// MalformedPathError reports a qualified name that does not satisfy the
// path grammar.
type MalformedPathError struct {
	Summary string
	Detail  string
	Range   hcl.Range
}

func newMalformed(rng hcl.Range, summary, detail string) *MalformedPathError {
	return &MalformedPathError{Summary: summary, Detail: detail, Range: rng}
}

// Error implements the error interface.
func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Range, ErrMalformedPath, e.Summary)
}

// Is makes errors.Is(err, ErrMalformedPath) succeed.
func (e *MalformedPathError) Is(target error) bool {
	return target == ErrMalformedPath
}

// Diagnostic converts the error for aggregation in hcl.Diagnostics.
func (e *MalformedPathError) Diagnostic() *hcl.Diagnostic {
	rng := e.Range
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Malformed path: " + e.Summary,
		Detail:   e.Detail,
		Subject:  &rng,
	}
}

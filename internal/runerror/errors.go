// Package runerror defines the error taxonomy of a register-building run.
// Every error here is fatal to the run: nothing is retried, each is caught
// once at the command boundary and surfaced with enough context to act on.
package runerror

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DiscoveryError reports a missing or ambiguous required input, or a
// malformed period in the target directory name.
type DiscoveryError struct {
	Directory string
	Reason    string
	Err       error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("discovery failed in %s: %s: %v", e.Directory, e.Reason, e.Err)
	}
	return fmt.Sprintf("discovery failed in %s: %s", e.Directory, e.Reason)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// ParseError reports malformed statement content.
type ParseError struct {
	File   string
	Line   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("statement parse failed in %s: %s", e.File, e.Reason)
	if e.Line != "" {
		msg += fmt.Sprintf(" (line: %q)", e.Line)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ClassificationError reports a record whose section is not one of the
// recognized bookkeeping sections. Unreachable when the parser holds its
// contract, but checked anyway.
type ClassificationError struct {
	Section     string
	Description string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("cannot classify transaction %q: unrecognized section %q",
		e.Description, e.Section)
}

// ReconciliationError reports a per-section sum that does not match the
// statement's printed subtotal to the cent.
type ReconciliationError struct {
	Section  string
	Computed decimal.Decimal
	Printed  decimal.Decimal
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed for section %s: computed %s, statement prints %s (discrepancy %s)",
		e.Section,
		e.Computed.StringFixed(2),
		e.Printed.StringFixed(2),
		e.Computed.Sub(e.Printed).StringFixed(2))
}

// WriteError reports a template or output spreadsheet problem.
type WriteError struct {
	Path   string
	Reason string
	Err    error
}

func (e *WriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("register write failed for %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("register write failed for %s: %s", e.Path, e.Reason)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

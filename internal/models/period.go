package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// StatementPeriod is the year and month a statement covers, derived once
// per run from the target directory name and immutable thereafter.
type StatementPeriod struct {
	Year  int
	Month time.Month
}

// periodPattern requires a zero-padded YYYY-MM directory name.
var periodPattern = regexp.MustCompile(`^(20\d{2})-(0[1-9]|1[0-2])$`)

// ParseStatementPeriod derives the statement period from a directory name.
// The name must match YYYY-MM exactly; "2024-7" is rejected.
func ParseStatementPeriod(name string) (StatementPeriod, error) {
	m := periodPattern.FindStringSubmatch(name)
	if m == nil {
		return StatementPeriod{}, fmt.Errorf("directory name must be YYYY-MM, got %q", name)
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return StatementPeriod{Year: year, Month: time.Month(month)}, nil
}

// FirstDay returns the first calendar day of the period's month.
func (p StatementPeriod) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Tag returns the YYYYMM suffix used in the output filename.
func (p StatementPeriod) Tag() string {
	return fmt.Sprintf("%04d%02d", p.Year, int(p.Month))
}

// String returns the period in its YYYY-MM directory form.
func (p StatementPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

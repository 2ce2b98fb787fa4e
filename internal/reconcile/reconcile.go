// Package reconcile verifies extracted transactions against the statement's
// own printed section subtotals. The printed subtotal is the ground truth;
// matching it to the cent is the acceptance criterion for the whole
// extraction pipeline, so this check is mandatory and unconditional.
package reconcile

import (
	"bookkeeping/corp-register/internal/logging"
	"bookkeeping/corp-register/internal/models"
	"bookkeeping/corp-register/internal/runerror"

	"github.com/shopspring/decimal"
)

// Result is the per-section outcome of a successful reconciliation, kept
// for the run report.
type Result struct {
	Section  models.Section
	Count    int
	Computed decimal.Decimal
	Printed  decimal.Decimal
}

// centTolerance is the smallest discrepancy that fails reconciliation.
var centTolerance = decimal.New(1, -2)

// Check recomputes per-section sums from the extracted records and compares
// them against the printed subtotals. The statement's sign convention may
// vary by section, so sums are taken over absolute values. A discrepancy of
// one cent or more in any section fails the whole run.
func Check(records []models.TransactionRecord, totals map[models.Section]models.SectionTotal) ([]Result, error) {
	log := logging.GetLogger().WithField("component", "ReconciliationChecker")

	sums := make(map[models.Section]decimal.Decimal)
	counts := make(map[models.Section]int)
	for _, rec := range records {
		sums[rec.Section] = sums[rec.Section].Add(rec.Amount.Abs())
		counts[rec.Section]++
	}

	var results []Result
	for _, section := range models.Sections {
		total, hasTotal := totals[section]
		computed := sums[section]

		if !hasTotal {
			if counts[section] == 0 {
				continue // section absent from this statement
			}
			return nil, &runerror.ReconciliationError{
				Section:  string(section),
				Computed: computed,
				Printed:  decimal.Zero,
			}
		}

		if computed.Sub(total.Printed).Abs().Cmp(centTolerance) >= 0 {
			return nil, &runerror.ReconciliationError{
				Section:  string(section),
				Computed: computed,
				Printed:  total.Printed,
			}
		}

		log.Debug("Section reconciled",
			logging.Field{Key: logging.FieldSection, Value: string(section)},
			logging.Field{Key: logging.FieldCount, Value: counts[section]},
			logging.Field{Key: logging.FieldAmount, Value: computed.StringFixed(2)})

		results = append(results, Result{
			Section:  section,
			Count:    counts[section],
			Computed: computed,
			Printed:  total.Printed,
		})
	}

	return results, nil
}

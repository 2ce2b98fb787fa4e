package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookkeeping/corp-register/internal/models"
	"bookkeeping/corp-register/internal/runerror"
)

func record(section models.Section, amount string) models.TransactionRecord {
	return models.TransactionRecord{
		Description: "tx",
		Amount:      decimal.RequireFromString(amount),
		Section:     section,
	}
}

func total(section models.Section, amount string) models.SectionTotal {
	return models.SectionTotal{
		Section: section,
		Printed: decimal.RequireFromString(amount),
	}
}

func TestCheckAllSectionsMatch(t *testing.T) {
	records := []models.TransactionRecord{
		record(models.SectionDeposits, "500.00"),
		record(models.SectionDeposits, "750.00"),
		record(models.SectionWithdrawals, "980.45"),
		record(models.SectionFees, "12.00"),
	}
	totals := map[models.Section]models.SectionTotal{
		models.SectionDeposits:    total(models.SectionDeposits, "1250.00"),
		models.SectionWithdrawals: total(models.SectionWithdrawals, "980.45"),
		models.SectionFees:        total(models.SectionFees, "12.00"),
	}

	results, err := Check(records, totals)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Results come back in canonical section order.
	assert.Equal(t, models.SectionDeposits, results[0].Section)
	assert.Equal(t, 2, results[0].Count)
	assert.Equal(t, "1250.00", results[0].Computed.StringFixed(2))
	assert.Equal(t, models.SectionWithdrawals, results[1].Section)
	assert.Equal(t, models.SectionFees, results[2].Section)
}

func TestCheckSignConventionIgnored(t *testing.T) {
	// Withdrawals printed as negatives must still reconcile against the
	// positive printed subtotal.
	records := []models.TransactionRecord{
		record(models.SectionWithdrawals, "-600.00"),
		record(models.SectionWithdrawals, "-380.45"),
	}
	totals := map[models.Section]models.SectionTotal{
		models.SectionWithdrawals: total(models.SectionWithdrawals, "980.45"),
	}

	_, err := Check(records, totals)
	assert.NoError(t, err)
}

func TestCheckOneCentDiscrepancyFails(t *testing.T) {
	records := []models.TransactionRecord{
		record(models.SectionDeposits, "1249.99"),
	}
	totals := map[models.Section]models.SectionTotal{
		models.SectionDeposits: total(models.SectionDeposits, "1250.00"),
	}

	_, err := Check(records, totals)

	var recErr *runerror.ReconciliationError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, string(models.SectionDeposits), recErr.Section)
	assert.Equal(t, "1249.99", recErr.Computed.StringFixed(2))
	assert.Equal(t, "1250.00", recErr.Printed.StringFixed(2))
	assert.Contains(t, err.Error(), "-0.01")
}

func TestCheckSubCentDiscrepancyPasses(t *testing.T) {
	records := []models.TransactionRecord{
		record(models.SectionFees, "12.004"),
	}
	totals := map[models.Section]models.SectionTotal{
		models.SectionFees: total(models.SectionFees, "12.00"),
	}

	_, err := Check(records, totals)
	assert.NoError(t, err)
}

func TestCheckRecordsWithoutPrintedTotal(t *testing.T) {
	records := []models.TransactionRecord{
		record(models.SectionFees, "12.00"),
	}

	_, err := Check(records, map[models.Section]models.SectionTotal{})

	var recErr *runerror.ReconciliationError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, string(models.SectionFees), recErr.Section)
	assert.True(t, recErr.Printed.IsZero())
}

func TestCheckAbsentSectionSkipped(t *testing.T) {
	// A statement with no fees section at all is fine.
	records := []models.TransactionRecord{
		record(models.SectionDeposits, "500.00"),
	}
	totals := map[models.Section]models.SectionTotal{
		models.SectionDeposits: total(models.SectionDeposits, "500.00"),
	}

	results, err := Check(records, totals)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.SectionDeposits, results[0].Section)
}

func TestCheckEmptyStatement(t *testing.T) {
	results, err := Check(nil, map[models.Section]models.SectionTotal{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

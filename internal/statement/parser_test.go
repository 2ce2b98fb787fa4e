package statement

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookkeeping/corp-register/internal/models"
	"bookkeeping/corp-register/internal/runerror"
)

// statementText mimics the pdftotext -layout output of a monthly statement:
// three recognized sections with printed subtotals, a Daily Ending Balance
// section that must be ignored, and one description wrapped across lines.
const statementText = `
JPMorgan Chase Bank, N.A.
P O Box 182051, Columbus, OH 43218-2051

CHECKING SUMMARY
Beginning Balance                                          $12,000.00
Deposits and Additions                                      $1,250.00
Electronic Withdrawals                                        $980.45
Fees                                                           $12.00
Ending Balance                                             $12,257.55

DEPOSITS AND ADDITIONS
07/01        Remote Online Deposit                                           $500.00
07/15        Fedwire Credit Via: E*Trade Bank/256074974 B/O: Acme Holdings   $700.00
             LLC Ref: Chase Nyc/Ctr/Bnf=Example Corp
07/22        Interest Payment                                                 $50.00
Total Deposits and Additions                                               $1,250.00

ELECTRONIC WITHDRAWALS
07/03        Online Transfer To Sav ...5678 Transaction#: 111                 $100.00
07/10 07/11  Orig CO Name: Comed Orig ID:1360000001 Desc Date: Jul 10        $400.00
07/14        Online Payment 22233344455 To City Utilities                    $300.45
07/21        Online ACH Payment 5556667778 To Webhost                         $80.00

ELECTRONIC WITHDRAWALS (continued)
07/28        Online Transfer To Sav ...5678 Transaction#: 112                 $100.00
Total Electronic Withdrawals                                                 $980.45

FEES
07/31        Service Charges For The Month of July                            $12.00
Total Fees                                                                    $12.00

DAILY ENDING BALANCE
07/01                                                                     $12,500.00
07/10                                                                     $12,000.00
`

func TestParseFile(t *testing.T) {
	parser := NewParser(NewMockExtractor(statementText, nil), 2024)

	records, totals, err := parser.ParseFile("statement.pdf")
	require.NoError(t, err)
	require.Len(t, records, 9)

	assert.Equal(t, models.TransactionRecord{
		Date:        time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		Description: "Remote Online Deposit",
		Amount:      decimal.RequireFromString("500.00"),
		Section:     models.SectionDeposits,
	}, records[0])

	// Wrapped description lines are merged into one record.
	assert.Equal(t, "Fedwire Credit Via: E*Trade Bank/256074974 B/O: Acme Holdings LLC Ref: Chase Nyc/Ctr/Bnf=Example Corp", records[1].Description)
	assert.Equal(t, "700.00", records[1].Amount.StringFixed(2))

	// The value date wins when a line prints both dates.
	assert.Equal(t, time.Date(2024, time.July, 11, 0, 0, 0, 0, time.UTC), records[4].Date)

	// The withdrawals section resumes after the page break.
	assert.Equal(t, models.SectionWithdrawals, records[7].Section)
	assert.Equal(t, time.Date(2024, time.July, 28, 0, 0, 0, 0, time.UTC), records[7].Date)

	assert.Equal(t, models.SectionFees, records[8].Section)
	assert.Equal(t, "Service Charges For The Month of July", records[8].Description)

	require.Len(t, totals, 3)
	assert.Equal(t, "1250.00", totals[models.SectionDeposits].Printed.StringFixed(2))
	assert.Equal(t, "980.45", totals[models.SectionWithdrawals].Printed.StringFixed(2))
	assert.Equal(t, "12.00", totals[models.SectionFees].Printed.StringFixed(2))
}

func TestParseFileIgnoresSummaryBlock(t *testing.T) {
	// The summary block repeats every section name with its amount. Those
	// lines must not open sections: back to back they would look like a
	// section abandoned without its printed subtotal.
	text := `
CHECKING SUMMARY
Deposits and Additions                                      $1,250.00
Electronic Withdrawals                                        $980.45
Fees                                                           $12.00

DEPOSITS AND ADDITIONS
07/01        Remote Online Deposit                                         $1,250.00
Total Deposits and Additions                                               $1,250.00

ELECTRONIC WITHDRAWALS
07/14        Online Payment 22233344455 To City Utilities                    $980.45
Total Electronic Withdrawals                                                 $980.45

FEES
07/31        Service Charges For The Month of July                            $12.00
Total Fees                                                                    $12.00
`
	parser := NewParser(NewMockExtractor(text, nil), 2024)

	records, totals, err := parser.ParseFile("statement.pdf")
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Len(t, totals, 3)
	assert.Equal(t, "1250.00", totals[models.SectionDeposits].Printed.StringFixed(2))
	assert.Equal(t, "980.45", totals[models.SectionWithdrawals].Printed.StringFixed(2))
	assert.Equal(t, "12.00", totals[models.SectionFees].Printed.StringFixed(2))
}

func TestParseFileIgnoresDailyEndingBalance(t *testing.T) {
	parser := NewParser(NewMockExtractor(statementText, nil), 2024)

	records, _, err := parser.ParseFile("statement.pdf")
	require.NoError(t, err)

	for _, rec := range records {
		assert.True(t, rec.Section.Valid(), "record from unrecognized section: %+v", rec)
		assert.NotEqual(t, "12500.00", rec.Amount.StringFixed(2))
	}
}

func TestParseFileExplicitYearOverridesDefault(t *testing.T) {
	text := `
DEPOSITS AND ADDITIONS
12/30/2023   Remote Online Deposit                                           $250.00
Total Deposits and Additions                                                 $250.00
`
	parser := NewParser(NewMockExtractor(text, nil), 2024)

	records, _, err := parser.ParseFile("statement.pdf")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2023, records[0].Date.Year())
}

func TestParseFileExtractionError(t *testing.T) {
	extractErr := errors.New("pdftotext not found")
	parser := NewParser(NewMockExtractor("", extractErr), 2024)

	_, _, err := parser.ParseFile("statement.pdf")
	require.Error(t, err)

	var parseErr *runerror.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "statement.pdf", parseErr.File)
	assert.ErrorIs(t, err, extractErr)
}

func TestParseFileSectionWithoutSubtotal(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			"section runs into daily ending balance",
			`
FEES
07/31        Service Charges For The Month of July                            $12.00
DAILY ENDING BALANCE
07/31                                                                     $12,000.00
`,
		},
		{
			"section open at end of document",
			`
DEPOSITS AND ADDITIONS
07/01        Remote Online Deposit                                           $500.00
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parser := NewParser(NewMockExtractor(tc.text, nil), 2024)

			_, _, err := parser.ParseFile("statement.pdf")

			var parseErr *runerror.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, parseErr.Reason, "no printed subtotal")
		})
	}
}

func TestParseFileSubtotalWithoutAmount(t *testing.T) {
	text := `
FEES
07/31        Service Charges For The Month of July                            $12.00
Total Fees
`
	parser := NewParser(NewMockExtractor(text, nil), 2024)

	_, _, err := parser.ParseFile("statement.pdf")

	var parseErr *runerror.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "no amount")
}

func TestParseFileInvalidCalendarDate(t *testing.T) {
	text := `
DEPOSITS AND ADDITIONS
02/30        Remote Online Deposit                                           $500.00
Total Deposits and Additions                                                 $500.00
`
	parser := NewParser(NewMockExtractor(text, nil), 2024)

	_, _, err := parser.ParseFile("statement.pdf")

	var parseErr *runerror.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "invalid calendar date")
}

func TestParseFileEmptyStatement(t *testing.T) {
	parser := NewParser(NewMockExtractor("nothing to see here\n", nil), 2024)

	records, totals, err := parser.ParseFile("statement.pdf")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, totals)
}

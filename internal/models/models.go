// Package models defines the data types that flow between the statement
// parser, the classifier, the reconciliation check and the register writer.
// Values are plain data threaded explicitly through the pipeline; nothing
// here carries mutable run state.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Section identifies one of the bookkeeping sections printed in the
// statement. Any other printed section (Daily Ending Balance in particular)
// is outside this allowlist and never produces records.
type Section string

const (
	SectionDeposits    Section = "Deposits"
	SectionWithdrawals Section = "Withdrawals"
	SectionFees        Section = "Fees"
)

// Sections lists the recognized sections in the order they are written to
// the register.
var Sections = []Section{SectionDeposits, SectionWithdrawals, SectionFees}

// Valid reports whether s is one of the recognized bookkeeping sections.
func (s Section) Valid() bool {
	switch s {
	case SectionDeposits, SectionWithdrawals, SectionFees:
		return true
	}
	return false
}

// TransactionRecord is one transaction line extracted from the statement.
// The description is the full merged text of the printed line plus any
// continuation lines, with whitespace normalized. Immutable once parsed.
type TransactionRecord struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Section     Section
}

// SectionTotal is a section subtotal as printed in the statement. It is the
// ground truth the extraction is reconciled against; it is never written to
// the output register.
type SectionTotal struct {
	Section Section
	Printed decimal.Decimal
}

// RegisterCategory is the register-facing category marker.
type RegisterCategory string

const (
	// CategoryDeposit marks records from the Deposits section.
	CategoryDeposit RegisterCategory = "E"
	// CategoryExpense marks records from the Withdrawals and Fees sections.
	CategoryExpense RegisterCategory = "D"
)

// ClassifiedTransaction is a TransactionRecord with its register category
// and the label text written into the category column.
type ClassifiedTransaction struct {
	TransactionRecord
	Category RegisterCategory
	Label    string
}

// RegisterRow is the spreadsheet-facing projection of a classified
// transaction. The amount is always non-negative; sign information is
// conveyed only by the category.
type RegisterRow struct {
	CheckNumber string
	Date        string
	Amount      decimal.Decimal
	Category    RegisterCategory
	Label       string
}

// RegisterDateLayout is the date format used in the register's date column.
const RegisterDateLayout = "01/02/2006"

// RegisterRow projects the transaction into the row shape the register
// writer populates.
func (t ClassifiedTransaction) RegisterRow() RegisterRow {
	return RegisterRow{
		CheckNumber: t.Description,
		Date:        t.Date.Format(RegisterDateLayout),
		Amount:      t.Amount.Abs(),
		Category:    t.Category,
		Label:       t.Label,
	}
}

// OrderForRegister returns the transactions grouped by section in canonical
// order (Deposits, Withdrawals, Fees), preserving document order within
// each section.
func OrderForRegister(txs []ClassifiedTransaction) []ClassifiedTransaction {
	ordered := make([]ClassifiedTransaction, 0, len(txs))
	for _, section := range Sections {
		for _, tx := range txs {
			if tx.Section == section {
				ordered = append(ordered, tx)
			}
		}
	}
	return ordered
}

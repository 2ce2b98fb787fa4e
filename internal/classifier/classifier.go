// Package classifier assigns each extracted transaction its register
// category and the label text written into the category column.
// Classification is a pure function of the record; there is no state.
package classifier

import (
	"bookkeeping/corp-register/internal/models"
	"bookkeeping/corp-register/internal/runerror"
)

// Classifier maps transaction records to register categories and labels.
type Classifier struct {
	rules LabelRules
}

// New creates a Classifier with the given label rules.
func New(rules LabelRules) *Classifier {
	return &Classifier{rules: rules}
}

// Classify assigns the register category and label for one record.
// Records from the Deposits section are category E (Deposit); records from
// the Withdrawals and Fees sections are category D (Expense). Any other
// section is a ClassificationError — unreachable when the parser holds its
// contract, but checked anyway.
func (c *Classifier) Classify(rec models.TransactionRecord) (models.ClassifiedTransaction, error) {
	var category models.RegisterCategory
	switch rec.Section {
	case models.SectionDeposits:
		category = models.CategoryDeposit
	case models.SectionWithdrawals, models.SectionFees:
		category = models.CategoryExpense
	default:
		return models.ClassifiedTransaction{}, &runerror.ClassificationError{
			Section:     string(rec.Section),
			Description: rec.Description,
		}
	}

	return models.ClassifiedTransaction{
		TransactionRecord: rec,
		Category:          category,
		Label:             c.rules.Label(category, rec.Description),
	}, nil
}

// ClassifyAll classifies a sequence of records, preserving order.
func (c *Classifier) ClassifyAll(records []models.TransactionRecord) ([]models.ClassifiedTransaction, error) {
	classified := make([]models.ClassifiedTransaction, 0, len(records))
	for _, rec := range records {
		tx, err := c.Classify(rec)
		if err != nil {
			return nil, err
		}
		classified = append(classified, tx)
	}
	return classified, nil
}

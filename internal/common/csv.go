// Package common provides the shared CSV output used by the export command.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"bookkeeping/corp-register/internal/fileutils"
	"bookkeeping/corp-register/internal/logging"
	"bookkeeping/corp-register/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.GetLogger()

// Delimiter is the CSV output delimiter, configurable via the csv.delimiter
// config key.
var Delimiter rune = ','

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// RecordRow is the CSV projection of an extracted transaction record.
type RecordRow struct {
	Date        string `csv:"Date"`
	Section     string `csv:"Section"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
}

// NewRecordRow projects a transaction record into its CSV row.
func NewRecordRow(rec models.TransactionRecord) RecordRow {
	return RecordRow{
		Date:        rec.Date.Format(models.RegisterDateLayout),
		Section:     string(rec.Section),
		Description: rec.Description,
		Amount:      rec.Amount.StringFixed(2),
	}
}

// WriteRecordsToCSV writes extracted transaction records to a CSV file.
func WriteRecordsToCSV(records []models.TransactionRecord, csvFile string) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}

	log.Info("Writing records to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)})

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(csvFile)); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]RecordRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, NewRecordRow(rec))
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}

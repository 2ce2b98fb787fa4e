// Package register populates the output spreadsheet from classified
// transactions. All side effects are confined to the copied output file;
// the template itself is never mutated.
package register

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bookkeeping/corp-register/internal/fileutils"
	"bookkeeping/corp-register/internal/logging"
	"bookkeeping/corp-register/internal/models"
	"bookkeeping/corp-register/internal/runerror"

	"github.com/xuri/excelize/v2"
)

// Options control where and how the register sheet is populated.
type Options struct {
	// Sheet is the primary register sheet; every other sheet is hidden.
	Sheet string
	// AsOfCell receives the first calendar day of the statement month.
	AsOfCell string
	// ExpenseColumn and DepositColumn receive the category label text.
	ExpenseColumn int
	DepositColumn int
	// MaxColWidth caps auto-fitted column widths.
	MaxColWidth float64
	// Overwrite allows replacing an existing output file.
	Overwrite bool
}

// DefaultOptions returns the options matching the corporate register template.
func DefaultOptions() Options {
	return Options{
		Sheet:         "Check Register-Corp",
		AsOfCell:      "B9",
		ExpenseColumn: 4,
		DepositColumn: 5,
		MaxColWidth:   80,
		Overwrite:     true,
	}
}

// Header synonyms used to locate the register's column anchors.
var (
	dateHeaders   = []string{"date", "transaction date", "posting date"}
	checkHeaders  = []string{"check #", "check#", "check no", "check number"}
	amountHeaders = []string{"amount", "amt", "amount (usd)", "debit/credit"}
)

// headerScanRows and headerScanCols bound the anchor search.
const (
	headerScanRows = 100
	headerScanCols = 40
)

// Writer populates a copy of the register template.
type Writer struct {
	opts Options
	log  logging.Logger
}

// NewWriter creates a Writer with the given options.
func NewWriter(opts Options) *Writer {
	return &Writer{
		opts: opts,
		log:  logging.GetLogger().WithField("component", "RegisterWriter"),
	}
}

// OutputPath derives the output filename from the template's naming pattern
// by inserting the period's YYYYMM tag before the extension.
func (w *Writer) OutputPath(templatePath string, period models.StatementPeriod) string {
	base := filepath.Base(templatePath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(filepath.Dir(templatePath), stem+period.Tag()+ext)
}

// Write copies the template to the period-tagged output file and populates
// it with the given transactions, which must already be in register order.
// On any failure after the copy, the partial output file is removed so no
// half-written register is left behind.
func (w *Writer) Write(templatePath string, period models.StatementPeriod, txs []models.ClassifiedTransaction) (string, error) {
	outPath := w.OutputPath(templatePath, period)

	if fileutils.FileExists(outPath) && !w.opts.Overwrite {
		return "", &runerror.WriteError{
			Path:   outPath,
			Reason: "output file already exists and overwrite is disabled",
		}
	}

	if err := fileutils.CopyFile(templatePath, outPath); err != nil {
		return "", &runerror.WriteError{
			Path:   outPath,
			Reason: "failed to copy template",
			Err:    err,
		}
	}

	if err := w.populate(outPath, period, txs); err != nil {
		_ = os.Remove(outPath)
		return "", err
	}

	w.log.Info("Register written",
		logging.Field{Key: logging.FieldOutputFile, Value: outPath},
		logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return outPath, nil
}

func (w *Writer) populate(outPath string, period models.StatementPeriod, txs []models.ClassifiedTransaction) error {
	f, err := excelize.OpenFile(outPath)
	if err != nil {
		return &runerror.WriteError{Path: outPath, Reason: "failed to open workbook", Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			w.log.WithError(err).Warn("Failed to close workbook",
				logging.Field{Key: logging.FieldFile, Value: outPath})
		}
	}()

	idx, err := f.GetSheetIndex(w.opts.Sheet)
	if err != nil || idx == -1 {
		return &runerror.WriteError{
			Path:   outPath,
			Reason: fmt.Sprintf("sheet %q not found in template", w.opts.Sheet),
			Err:    err,
		}
	}

	headerRow, dateCol, checkCol, amountCol, err := w.findHeaders(f)
	if err != nil {
		return &runerror.WriteError{Path: outPath, Reason: "register header anchors not found", Err: err}
	}

	if err := w.clearDataRows(f, headerRow); err != nil {
		return &runerror.WriteError{Path: outPath, Reason: "failed to clear existing rows", Err: err}
	}

	if err := f.SetCellValue(w.opts.Sheet, w.opts.AsOfCell, period.FirstDay()); err != nil {
		return &runerror.WriteError{Path: outPath, Reason: "failed to set as-of cell", Err: err}
	}

	if err := w.writeRows(f, headerRow, dateCol, checkCol, amountCol, txs); err != nil {
		return &runerror.WriteError{Path: outPath, Reason: "failed to write transaction rows", Err: err}
	}

	if err := w.hideAuxiliarySheets(f); err != nil {
		return &runerror.WriteError{Path: outPath, Reason: "failed to hide auxiliary sheets", Err: err}
	}

	if err := w.autoFitColumns(f); err != nil {
		return &runerror.WriteError{Path: outPath, Reason: "failed to auto-fit columns", Err: err}
	}

	if err := f.Save(); err != nil {
		return &runerror.WriteError{Path: outPath, Reason: "failed to save workbook", Err: err}
	}
	return nil
}

// findHeaders locates the header row and the date, check-number and amount
// column anchors by their printed headers.
func (w *Writer) findHeaders(f *excelize.File) (headerRow, dateCol, checkCol, amountCol int, err error) {
	rows, err := f.GetRows(w.opts.Sheet)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to read sheet rows: %w", err)
	}

	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	for r := 0; r < limit; r++ {
		var date, check, amount int
		cols := rows[r]
		if len(cols) > headerScanCols {
			cols = cols[:headerScanCols]
		}
		for c, raw := range cols {
			val := strings.ToLower(strings.TrimSpace(raw))
			switch {
			case date == 0 && contains(dateHeaders, val):
				date = c + 1
			case check == 0 && contains(checkHeaders, val):
				check = c + 1
			case amount == 0 && contains(amountHeaders, val):
				amount = c + 1
			}
		}
		if date > 0 && check > 0 && amount > 0 {
			return r + 1, date, check, amount, nil
		}
	}

	return 0, 0, 0, 0, fmt.Errorf("no row within the first %d rows carries date, check and amount headers", headerScanRows)
}

// clearDataRows removes every populated row below the header so a re-run
// replaces rather than appends.
func (w *Writer) clearDataRows(f *excelize.File, headerRow int) error {
	rows, err := f.GetRows(w.opts.Sheet)
	if err != nil {
		return err
	}
	for r := len(rows); r > headerRow; r-- {
		if err := f.RemoveRow(w.opts.Sheet, r); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeRows(f *excelize.File, headerRow, dateCol, checkCol, amountCol int, txs []models.ClassifiedTransaction) error {
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	dateFmt := "mm/dd/yyyy"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return err
	}

	currencyFmt := `"$"#,##0.00`
	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return err
	}

	for i, tx := range txs {
		row := tx.RegisterRow()
		r := headerRow + 1 + i

		dateCell, err := excelize.CoordinatesToCellName(dateCol, r)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(w.opts.Sheet, dateCell, tx.Date); err != nil {
			return err
		}
		if err := f.SetCellStyle(w.opts.Sheet, dateCell, dateCell, dateStyle); err != nil {
			return err
		}

		checkCell, err := excelize.CoordinatesToCellName(checkCol, r)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(w.opts.Sheet, checkCell, row.CheckNumber); err != nil {
			return err
		}
		if err := f.SetCellStyle(w.opts.Sheet, checkCell, checkCell, wrapStyle); err != nil {
			return err
		}

		amountCell, err := excelize.CoordinatesToCellName(amountCol, r)
		if err != nil {
			return err
		}
		amount, _ := row.Amount.Float64()
		if err := f.SetCellValue(w.opts.Sheet, amountCell, amount); err != nil {
			return err
		}
		if err := f.SetCellStyle(w.opts.Sheet, amountCell, amountCell, currencyStyle); err != nil {
			return err
		}

		categoryCol := w.opts.ExpenseColumn
		if row.Category == models.CategoryDeposit {
			categoryCol = w.opts.DepositColumn
		}
		categoryCell, err := excelize.CoordinatesToCellName(categoryCol, r)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(w.opts.Sheet, categoryCell, row.Label); err != nil {
			return err
		}
	}

	return nil
}

// hideAuxiliarySheets hides every worksheet except the primary register sheet.
func (w *Writer) hideAuxiliarySheets(f *excelize.File) error {
	for _, name := range f.GetSheetList() {
		if name == w.opts.Sheet {
			continue
		}
		if err := f.SetSheetVisible(name, false); err != nil {
			return err
		}
		w.log.Debug("Hid auxiliary sheet",
			logging.Field{Key: logging.FieldSheet, Value: name})
	}
	return nil
}

// autoFitColumns sizes each column to its longest rendered value, capped at
// the configured maximum width.
func (w *Writer) autoFitColumns(f *excelize.File) error {
	rows, err := f.GetRows(w.opts.Sheet)
	if err != nil {
		return err
	}

	widths := make(map[int]int)
	for _, row := range rows {
		for c, val := range row {
			if len(val) > widths[c] {
				widths[c] = len(val)
			}
		}
	}

	for c, maxLen := range widths {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		width := float64(maxLen) + 2
		if width > w.opts.MaxColWidth {
			width = w.opts.MaxColWidth
		}
		if err := f.SetColWidth(w.opts.Sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

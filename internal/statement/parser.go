// Package statement extracts transaction records and printed section
// subtotals from a bank-statement PDF. Only the three bookkeeping sections
// are recognized; everything else in the document, the Daily Ending Balance
// section included, is ignored.
package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bookkeeping/corp-register/internal/logging"
	"bookkeeping/corp-register/internal/models"
	"bookkeeping/corp-register/internal/runerror"

	"github.com/shopspring/decimal"
)

// sectionHeaders is the allowlist of recognized section headers. Sections
// not listed here never produce records, which keeps the parser robust if
// the statement format grows new irrelevant sections.
var sectionHeaders = []struct {
	pattern *regexp.Regexp
	section models.Section
}{
	{regexp.MustCompile(`(?i)^\s*DEPOSITS\s+AND\s+ADDITIONS\b`), models.SectionDeposits},
	{regexp.MustCompile(`(?i)^\s*ELECTRONIC\s+WITHDRAWALS\b`), models.SectionWithdrawals},
	{regexp.MustCompile(`(?i)^\s*FEES\b`), models.SectionFees},
}

var (
	dailyBalancePattern = regexp.MustCompile(`(?i)DAILY\s+ENDING\s+BALANCE`)
	totalLinePattern    = regexp.MustCompile(`(?i)^\s*TOTAL\b`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

const (
	datePart = `(0[1-9]|1[0-2])/(0[1-9]|[12]\d|3[01])(?:/(20\d{2}))?`
	// amountPart matches printed currency amounts; parentheses or a leading
	// minus denote negative values.
	amountPart = `[\(\-]?\$?\d{1,3}(?:,\d{3})*\.\d{2}\)?`
)

var (
	// txLinePattern matches a transaction header line: a posting date, an
	// optional value date, a description and a trailing amount.
	txLinePattern         = regexp.MustCompile(`^\s*` + datePart + `(?:\s+` + datePart + `)?\s+(.*?)\s+(` + amountPart + `)\s*$`)
	amountPattern         = regexp.MustCompile(amountPart)
	trailingAmountPattern = regexp.MustCompile(amountPart + `\s*$`)
)

// Parser extracts transaction records from one statement document. The
// default year is applied to transaction dates printed without a year,
// which is how the statement prints them for the covered month.
type Parser struct {
	extractor TextExtractor
	year      int
	log       logging.Logger
}

// NewParser creates a Parser using the given text extractor and default year.
func NewParser(extractor TextExtractor, year int) *Parser {
	return &Parser{
		extractor: extractor,
		year:      year,
		log:       logging.GetLogger().WithField("component", "StatementParser"),
	}
}

// ParseFile extracts the transaction records and printed section subtotals
// from the PDF at pdfPath. Records are returned in document order.
func (p *Parser) ParseFile(pdfPath string) ([]models.TransactionRecord, map[models.Section]models.SectionTotal, error) {
	text, err := p.extractor.ExtractText(pdfPath)
	if err != nil {
		return nil, nil, &runerror.ParseError{
			File:   pdfPath,
			Reason: "text extraction failed",
			Err:    err,
		}
	}

	records, totals, err := p.parseText(pdfPath, text)
	if err != nil {
		return nil, nil, err
	}

	p.log.Info("Extracted statement data",
		logging.Field{Key: logging.FieldFile, Value: pdfPath},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return records, totals, nil
}

// pendingRecord accumulates one transaction line plus any continuation
// lines produced by page wrapping. It is reset on each newly recognized
// transaction line.
type pendingRecord struct {
	date    time.Time
	amount  decimal.Decimal
	section models.Section
	lines   []string
}

func (r *pendingRecord) record() models.TransactionRecord {
	merged := strings.Join(r.lines, " ")
	merged = whitespacePattern.ReplaceAllString(merged, " ")
	return models.TransactionRecord{
		Date:        r.date,
		Description: strings.TrimSpace(merged),
		Amount:      r.amount,
		Section:     r.section,
	}
}

func (p *Parser) parseText(file, text string) ([]models.TransactionRecord, map[models.Section]models.SectionTotal, error) {
	var records []models.TransactionRecord
	totals := make(map[models.Section]models.SectionTotal)

	var section models.Section
	var current *pendingRecord

	flush := func() {
		if current != nil {
			records = append(records, current.record())
			current = nil
		}
	}

	// A section stays open until its printed subtotal line is seen; leaving
	// an open section any other way means the statement is malformed.
	requireClosed := func() error {
		if section == "" {
			return nil
		}
		return &runerror.ParseError{
			File:   file,
			Reason: fmt.Sprintf("section %s has no printed subtotal line", section),
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if dailyBalancePattern.MatchString(line) {
			flush()
			if err := requireClosed(); err != nil {
				return nil, nil, err
			}
			continue
		}

		if s, ok := matchSectionHeader(line); ok {
			flush()
			// A repeated header continues the same section across a page break.
			if s != section {
				if err := requireClosed(); err != nil {
					return nil, nil, err
				}
				section = s
			}
			continue
		}

		if section == "" {
			continue
		}

		if totalLinePattern.MatchString(line) {
			flush()
			amountStr := amountPattern.FindString(line)
			if amountStr == "" {
				return nil, nil, &runerror.ParseError{
					File:   file,
					Line:   line,
					Reason: fmt.Sprintf("subtotal line for section %s has no amount", section),
				}
			}
			printed, err := models.ParseCurrencyAmount(amountStr)
			if err != nil {
				return nil, nil, &runerror.ParseError{
					File:   file,
					Line:   line,
					Reason: fmt.Sprintf("cannot parse subtotal for section %s", section),
					Err:    err,
				}
			}
			totals[section] = models.SectionTotal{Section: section, Printed: printed}
			section = ""
			continue
		}

		if m := txLinePattern.FindStringSubmatch(line); m != nil {
			flush()
			rec, err := p.startRecord(file, line, section, m)
			if err != nil {
				return nil, nil, err
			}
			current = rec
			continue
		}

		// Continuation of the current transaction's wrapped description.
		if current != nil {
			current.lines = append(current.lines, line)
		}
	}

	flush()
	if err := requireClosed(); err != nil {
		return nil, nil, err
	}

	return records, totals, nil
}

// startRecord builds the accumulator for a newly recognized transaction
// line. When the line carries both a posting and a value date, the value
// date wins.
func (p *Parser) startRecord(file, line string, section models.Section, m []string) (*pendingRecord, error) {
	monthStr, dayStr, yearStr := m[1], m[2], m[3]
	if m[4] != "" {
		monthStr, dayStr, yearStr = m[4], m[5], m[6]
	}

	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)
	year := p.year
	if yearStr != "" {
		year, _ = strconv.Atoi(yearStr)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Month() != time.Month(month) || date.Day() != day {
		return nil, &runerror.ParseError{
			File:   file,
			Line:   line,
			Reason: fmt.Sprintf("invalid calendar date %02d/%02d/%04d", month, day, year),
		}
	}

	amount, err := models.ParseCurrencyAmount(m[8])
	if err != nil {
		return nil, &runerror.ParseError{
			File:   file,
			Line:   line,
			Reason: "cannot parse transaction amount",
			Err:    err,
		}
	}

	return &pendingRecord{
		date:    date,
		amount:  amount,
		section: section,
		lines:   []string{strings.TrimSpace(m[7])},
	}, nil
}

func matchSectionHeader(line string) (models.Section, bool) {
	// The checking summary block repeats each section name followed by its
	// amount; a true section header never carries a trailing amount.
	if trailingAmountPattern.MatchString(line) {
		return "", false
	}
	for _, h := range sectionHeaders {
		if h.pattern.MatchString(line) {
			return h.section, true
		}
	}
	return "", false
}

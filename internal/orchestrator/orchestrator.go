// Package orchestrator wires discovery, parsing, classification,
// reconciliation and the register write into one run. A run is a straight
// state machine: Discover → Parse → Classify → Reconcile →
// (Write | ReportOnly) → Done, with any failure transitioning to Aborted.
package orchestrator

import (
	"fmt"
	"strings"

	"bookkeeping/corp-register/internal/classifier"
	"bookkeeping/corp-register/internal/config"
	"bookkeeping/corp-register/internal/discover"
	"bookkeeping/corp-register/internal/logging"
	"bookkeeping/corp-register/internal/models"
	"bookkeeping/corp-register/internal/reconcile"
	"bookkeeping/corp-register/internal/register"
	"bookkeeping/corp-register/internal/statement"
)

// State names one phase of the run state machine.
type State string

const (
	StateDiscover   State = "Discover"
	StateParse      State = "Parse"
	StateClassify   State = "Classify"
	StateReconcile  State = "Reconcile"
	StateWrite      State = "Write"
	StateReportOnly State = "ReportOnly"
	StateDone       State = "Done"
	StateAborted    State = "Aborted"
)

// Orchestrator runs the register-building pipeline. All run data is
// threaded explicitly between phases; the orchestrator itself only tracks
// which state the run is in.
type Orchestrator struct {
	cfg       *config.Config
	extractor statement.TextExtractor
	log       logging.Logger
	state     State
}

// New creates an Orchestrator using the production pdftotext extractor.
func New(cfg *config.Config) *Orchestrator {
	return NewWithExtractor(cfg, statement.NewPdftotextExtractor())
}

// NewWithExtractor creates an Orchestrator with a custom text extractor.
func NewWithExtractor(cfg *config.Config, extractor statement.TextExtractor) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		extractor: extractor,
		log:       logging.GetLogger().WithField("component", "RunOrchestrator"),
		state:     StateDiscover,
	}
}

// State returns the run's current state.
func (o *Orchestrator) State() State {
	return o.state
}

func (o *Orchestrator) enter(s State) {
	o.state = s
	o.log.Debug("Entering state", logging.Field{Key: logging.FieldState, Value: string(s)})
}

func (o *Orchestrator) abort(err error) error {
	o.enter(StateAborted)
	return err
}

// ExtractResult carries the run data after the Discover and Parse phases.
type ExtractResult struct {
	Inputs  *discover.Inputs
	Records []models.TransactionRecord
	Totals  map[models.Section]models.SectionTotal
}

// Extract runs the Discover and Parse phases against the target directory.
func (o *Orchestrator) Extract(dir string) (*ExtractResult, error) {
	o.enter(StateDiscover)
	inputs, err := discover.Discover(dir, o.cfg.Statement.TemplateName, o.cfg.Statement.PDFMatch)
	if err != nil {
		return nil, o.abort(err)
	}

	o.enter(StateParse)
	parser := statement.NewParser(o.extractor, inputs.Period.Year)
	records, totals, err := parser.ParseFile(inputs.PDFPath)
	if err != nil {
		return nil, o.abort(err)
	}

	return &ExtractResult{
		Inputs:  inputs,
		Records: records,
		Totals:  totals,
	}, nil
}

// ExtractReconciled runs Discover, Parse and Reconcile. The export path
// goes through here so that even a plain CSV export never emits data the
// statement's own subtotals do not confirm.
func (o *Orchestrator) ExtractReconciled(dir string) (*ExtractResult, []reconcile.Result, error) {
	extracted, err := o.Extract(dir)
	if err != nil {
		return nil, nil, err
	}

	o.enter(StateReconcile)
	sections, err := reconcile.Check(extracted.Records, extracted.Totals)
	if err != nil {
		return nil, nil, o.abort(err)
	}

	return extracted, sections, nil
}

// Run executes the full pipeline against the target directory. In dry-run
// mode the write phase is replaced by a report-only phase that performs no
// filesystem mutation. Reconciliation is unconditional: no write proceeds
// past a failed reconciliation in either mode.
func (o *Orchestrator) Run(dir string, dryRun bool) (*RunReport, error) {
	extracted, err := o.Extract(dir)
	if err != nil {
		return nil, err
	}

	o.enter(StateClassify)
	rules, err := o.labelRules()
	if err != nil {
		return nil, o.abort(err)
	}
	classified, err := classifier.New(rules).ClassifyAll(extracted.Records)
	if err != nil {
		return nil, o.abort(err)
	}

	o.enter(StateReconcile)
	sections, err := reconcile.Check(extracted.Records, extracted.Totals)
	if err != nil {
		return nil, o.abort(err)
	}

	ordered := models.OrderForRegister(classified)
	writer := register.NewWriter(o.registerOptions())
	report := &RunReport{
		Directory:  dir,
		Period:     extracted.Inputs.Period,
		DryRun:     dryRun,
		Rows:       len(ordered),
		OutputFile: writer.OutputPath(extracted.Inputs.TemplatePath, extracted.Inputs.Period),
		Sections:   sections,
	}

	if dryRun {
		o.enter(StateReportOnly)
		o.enter(StateDone)
		return report, nil
	}

	o.enter(StateWrite)
	outPath, err := writer.Write(extracted.Inputs.TemplatePath, extracted.Inputs.Period, ordered)
	if err != nil {
		return nil, o.abort(err)
	}
	report.OutputFile = outPath

	o.enter(StateDone)
	return report, nil
}

func (o *Orchestrator) labelRules() (classifier.LabelRules, error) {
	if o.cfg.Labels.File == "" {
		return classifier.DefaultLabelRules(), nil
	}
	return classifier.LoadLabelRules(o.cfg.Labels.File)
}

func (o *Orchestrator) registerOptions() register.Options {
	return register.Options{
		Sheet:         o.cfg.Register.Sheet,
		AsOfCell:      o.cfg.Register.AsOfCell,
		ExpenseColumn: o.cfg.Register.ExpenseColumn,
		DepositColumn: o.cfg.Register.DepositColumn,
		MaxColWidth:   o.cfg.Register.MaxColWidth,
		Overwrite:     o.cfg.Register.Overwrite,
	}
}

// RunReport is the final report of a completed run.
type RunReport struct {
	Directory  string
	OutputFile string
	Period     models.StatementPeriod
	DryRun     bool
	Rows       int
	Sections   []reconcile.Result
}

// Render formats the report for the user.
func (r *RunReport) Render() string {
	var b strings.Builder

	if r.DryRun {
		b.WriteString("Dry run: no files were created or modified.\n")
		fmt.Fprintf(&b, "Would write %d rows to %s\n", r.Rows, r.OutputFile)
	} else {
		fmt.Fprintf(&b, "Wrote %d rows to %s\n", r.Rows, r.OutputFile)
	}
	fmt.Fprintf(&b, "Statement period: %s (as of %s)\n",
		r.Period.String(), r.Period.FirstDay().Format(models.RegisterDateLayout))

	b.WriteString("Section totals (extracted vs printed):\n")
	for _, s := range r.Sections {
		fmt.Fprintf(&b, "  %-12s %3d transactions  $%s / $%s  match\n",
			s.Section, s.Count, s.Computed.StringFixed(2), s.Printed.StringFixed(2))
	}

	return b.String()
}

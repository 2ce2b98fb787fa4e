// Package export handles CSV export of extracted statement transactions
package export

import (
	"fmt"
	"path/filepath"

	"bookkeeping/corp-register/cmd/root"
	"bookkeeping/corp-register/internal/common"
	"bookkeeping/corp-register/internal/orchestrator"

	"github.com/spf13/cobra"
)

var output string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export extracted transactions to CSV",
	Long: `Export parses the statement PDF in the target directory, reconciles
the extraction against the statement's printed section totals, and writes
the transaction records to a CSV file. The register template is not touched.`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file (default transactions_<YYYYMM>.csv in the target directory)")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	if root.Shared.Directory == "" {
		return fmt.Errorf("--directory is required")
	}

	orch := orchestrator.New(root.Cfg)
	extracted, sections, err := orch.ExtractReconciled(root.Shared.Directory)
	if err != nil {
		return err
	}

	outFile := output
	if outFile == "" {
		outFile = filepath.Join(root.Shared.Directory,
			fmt.Sprintf("transactions_%s.csv", extracted.Inputs.Period.Tag()))
	}

	if root.Shared.DryRun {
		cmd.Printf("Dry run: would export %d records to %s\n", len(extracted.Records), outFile)
		for _, s := range sections {
			cmd.Printf("  %-12s %3d transactions  $%s\n", s.Section, s.Count, s.Computed.StringFixed(2))
		}
		return nil
	}

	if err := common.WriteRecordsToCSV(extracted.Records, outFile); err != nil {
		return err
	}

	cmd.Printf("Exported %d records to %s\n", len(extracted.Records), outFile)
	return nil
}

// Package build handles the register-building command
package build

import (
	"fmt"

	"bookkeeping/corp-register/cmd/root"
	"bookkeeping/corp-register/internal/orchestrator"

	"github.com/spf13/cobra"
)

// Cmd represents the build command
var Cmd = &cobra.Command{
	Use:   "build",
	Short: "Build the register from the statement PDF",
	Long: `Build extracts transactions from the statement PDF in the target
directory, reconciles them against the statement's printed section totals,
and writes them into a period-tagged copy of the register template.`,
	RunE: buildFunc,
}

func buildFunc(cmd *cobra.Command, args []string) error {
	if root.Shared.Directory == "" {
		return fmt.Errorf("--directory is required")
	}

	orch := orchestrator.New(root.Cfg)
	report, err := orch.Run(root.Shared.Directory, root.Shared.DryRun)
	if err != nil {
		return err
	}

	cmd.Print(report.Render())
	return nil
}

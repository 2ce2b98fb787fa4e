// Package root contains the root command for the application
package root

import (
	"bookkeeping/corp-register/internal/common"
	"bookkeeping/corp-register/internal/config"
	"bookkeeping/corp-register/internal/logging"

	"github.com/spf13/cobra"
)

// Flags holds the persistent flags shared by all commands.
type Flags struct {
	Directory string
	DryRun    bool
	Verbose   bool
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cfg is the loaded application configuration, available after
	// PersistentPreRunE has run.
	Cfg *config.Config

	// Shared flags accessible to all commands
	Shared = Flags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "corp-register",
		Short: "Build the corporate check register from a bank-statement PDF.",
		Long: `corp-register extracts transactions from a monthly bank-statement PDF,
verifies them against the statement's printed section totals to the cent,
and populates a copy of the register spreadsheet template.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to corp-register!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			Cfg = cfg

			if Shared.Verbose {
				Cfg.Log.Level = "debug"
			}
			logging.SetLogger(logging.NewLogrusAdapterFromLogger(config.ConfigureLogging(Cfg)))
			Log = logging.GetLogger()

			common.SetDelimiter([]rune(Cfg.CSV.Delimiter)[0])
			return nil
		},
	}
)

// Init initializes the root command and all persistent flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&Shared.Directory, "directory", "d", "", "Target folder named YYYY-MM containing the template and statement PDF")
	Cmd.PersistentFlags().BoolVar(&Shared.DryRun, "dry-run", false, "Compute and report the plan without touching the filesystem")
	Cmd.PersistentFlags().BoolVarP(&Shared.Verbose, "verbose", "v", false, "Emit step-by-step progress")
}

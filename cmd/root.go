// =============================================================================
// Receipt Desk - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'export', 'gui') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (receiptdesk)
//   ├── listCmd    (receiptdesk list)
//   ├── exportCmd  (receiptdesk export)
//   ├── printCmd   (receiptdesk print)
//   ├── guiCmd     (receiptdesk gui)
//   └── versionCmd (receiptdesk version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --log-format)
//   2. Loading the configuration file before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// logFormat overrides the log_format configuration key when set.
var logFormat string

// rt is the runtime shared by subcommands, built in PersistentPreRunE.
var rt *runtimeEnv

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "receiptdesk",

	Short: "Receipt Desk - Generate and print fee receipts from a spreadsheet",

	Long: `Receipt Desk loads fee records from an .xlsx, .xls or .csv file and turns the
selected rows into one PDF "Fee Receipt" each, sending every receipt to the
default printer (or opening it when printing is not possible).

Key Features:
  - Search rows by the configured name column
  - Batch export of the selected, visible rows
  - Single-row export
  - Desktop window or headless command line

Example Usage:
  receiptdesk list fees.xlsx --filter asha
  receiptdesk export fees.xlsx --out ./receipts --select 0,2,5
  receiptdesk export fees.csv --out ./receipts --all --no-print
  receiptdesk print fees.xlsx --row 3 --out ./receipts
  receiptdesk gui fees.xlsx`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		env, err := newRuntime(cfgFile, logFormat, verbose)
		if err != nil {
			return err
		}
		rt = env
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	// --config flag: A missing file is not an error; defaults apply.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"receiptdesk.yaml",
		"Path to the configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// --log-format flag: console or json.
	rootCmd.PersistentFlags().StringVar(
		&logFormat,
		"log-format",
		"",
		"Log output format: console or json (overrides the config file)",
	)
}

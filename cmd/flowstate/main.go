package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/flowstate/internal/model"
)

// Version is set at build time via -ldflags "-X main.Version=X.Y.Z"
var Version = "0.0.0-dev"

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "flowstate",
		Short: "FlowState - a gamified team workspace in your terminal",
		Long: `FlowState is a collaborative workspace with nested pages, a kanban
board, team chat and XP, levels and badges for getting work done.

Quick Start:
  flowstate                       Launch the workspace (default)
  flowstate --name "Dana Scully"  Launch signed in as Dana
  flowstate themes                List available themes
  flowstate triage "fix login"    Guess a card's priority

Config: ~/.config/flowstate/config.yaml
Logs:   ~/.config/flowstate/flowstate.log`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			exportDir, _ := cmd.Flags().GetString("export-dir")
			return runTUI(cmd.Context(), opts, name, exportDir)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", model.DefaultConfigPath(), "path to the config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "minimum log level (debug, info, warn, error)")
	root.Flags().String("name", "", "display name to sign in with, skipping the launch form")
	root.Flags().String("export-dir", ".", "directory markdown exports are written to")

	root.AddCommand(
		newSummarizeCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newPrefsCmd(opts),
		newThemesCmd(opts),
		newTriageCmd(),
		newKeyCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

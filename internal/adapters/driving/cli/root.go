// Package cli provides the pagedeck command line interface.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagedeck/internal/core/ports/driving"
	"github.com/custodia-labs/pagedeck/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Session bundles the services working on one page collection.
type Session struct {
	Collection driving.CollectionService
	Preview    driving.PreviewService
	Export     driving.ExportService
}

// SessionFactory creates a fresh, empty session.
type SessionFactory func() *Session

var (
	settingsService driving.SettingsService
	newSession      SessionFactory
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pagedeck",
	Short: "Assemble PDFs from pages of other PDFs",
	Long: `pagedeck builds a new PDF from pages of several source PDFs.

Pages can be reordered, rotated, left out, and stamped with single-line
text before everything is merged into one document. Use the one-shot
commands (merge, build) from scripts, the tui command to edit interactively,
or mcp serve to let an AI assistant drive a session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects the settings service and the session factory.
func SetServices(settings driving.SettingsService, sessions SessionFactory) {
	settingsService = settings
	newSession = sessions
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func session() (*Session, error) {
	if newSession == nil {
		return nil, errors.New("page services not configured")
	}
	return newSession(), nil
}

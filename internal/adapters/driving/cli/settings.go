package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change pagedeck settings.

Available keys:
  preview.width      Preview width in pixels
  annotation.size    Default annotation font size
  annotation.color   Default annotation colour (#rrggbb or #rgb)
  export.file_name   Default output file name
  export.font        Standard PDF font for annotations (Helvetica, Times, Courier)`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("[Preview]")
	cmd.Printf("  Width: %d px\n", settings.Preview.Width)
	cmd.Println()
	cmd.Println("[Annotation]")
	cmd.Printf("  Size: %g\n", settings.Annotation.Size)
	cmd.Printf("  Color: %s\n", settings.Annotation.Color)
	cmd.Println()
	cmd.Println("[Export]")
	cmd.Printf("  File name: %s\n", settings.Export.FileName)
	cmd.Printf("  Font: %s\n", settings.Export.Font)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w (see 'pagedeck settings --help' for keys)", err)
		}
		return err
	}

	cmd.Printf("%s updated\n", args[0])
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return err
	}

	cmd.Println("Settings restored to defaults")
	return nil
}

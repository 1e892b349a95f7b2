package cli

import (
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE...",
	Short: "List the pages of PDFs",
	Long: `Show the page numbers pagedeck assigns to the pages of the given PDFs.

Use these numbers with merge --exclude/--rotate and in build plans.
Files that cannot be read are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	s, err := session()
	if err != nil {
		return err
	}
	files, err := readSourceFiles(args)
	if err != nil {
		return err
	}

	for _, r := range s.Collection.IngestFiles(cmd.Context(), files) {
		if r.Err != nil {
			cmd.Printf("%s: %v\n", r.Name, r.Err)
		}
	}

	for _, src := range s.Collection.Sources() {
		cmd.Printf("PDF %d: %s (%d pages)\n", src.Index+1, src.Name, src.PageCount)
	}
	if s.Collection.Len() == 0 {
		return nil
	}

	cmd.Println()
	for _, p := range s.Collection.Pages() {
		cmd.Printf("  %4s  %s\n", p.ID, p.Label())
	}
	cmd.Printf("\nTotal: %d pages\n", s.Collection.Len())
	return nil
}

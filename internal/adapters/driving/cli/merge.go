package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

var (
	mergeOutput  string
	mergeExclude []string
	mergeRotate  []string
)

var mergeCmd = &cobra.Command{
	Use:   "merge FILE...",
	Short: "Merge PDFs into one document",
	Long: `Merge the pages of the given PDFs, in order, into one document.

Pages are numbered across all inputs starting at 1, in the order they are
read: with a 3-page a.pdf and a 2-page b.pdf, pages 4 and 5 are b.pdf's.

Examples:
  pagedeck merge a.pdf b.pdf -o out.pdf
  pagedeck merge scan.pdf --exclude 2,5 --rotate 3=90 --rotate 4=180`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Output file (default: export.file_name setting)")
	mergeCmd.Flags().StringSliceVar(&mergeExclude, "exclude", nil, "Page numbers to leave out")
	mergeCmd.Flags().StringArrayVar(&mergeRotate, "rotate", nil, "Page rotation as PAGE=DEGREES, repeatable")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	s, err := session()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := ingestAll(ctx, s, args); err != nil {
		return err
	}

	for _, arg := range mergeRotate {
		id, rotation, err := parseRotateFlag(arg)
		if err != nil {
			return err
		}
		if err := rotateTo(s.Collection, id, rotation); err != nil {
			return fmt.Errorf("rotate page %s: %w", id, err)
		}
	}
	for _, id := range mergeExclude {
		id = strings.TrimSpace(id)
		if err := setExcluded(s.Collection, id, true); err != nil {
			return fmt.Errorf("exclude page %s: %w", id, err)
		}
	}

	return export(cmd, s, mergeOutput)
}

// export runs the export and writes the result to output, or to the
// configured file name when output is empty.
func export(cmd *cobra.Command, s *Session, output string) error {
	result, err := s.Export.Export(cmd.Context())
	if err != nil {
		return err
	}
	if output == "" {
		output = result.FileName
	}
	if err := writeOutput(output, result.Data); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	cmd.Printf("Wrote %d pages from %d sources to %s\n", result.PageCount, result.SourcesOpened, output)
	return nil
}

func parseRotateFlag(arg string) (string, domain.Rotation, error) {
	id, deg, ok := strings.Cut(arg, "=")
	if !ok {
		return "", 0, fmt.Errorf("%w: rotate %q must be PAGE=DEGREES", domain.ErrInvalidInput, arg)
	}
	n, err := strconv.Atoi(strings.TrimSpace(deg))
	if err != nil {
		return "", 0, fmt.Errorf("%w: rotate %q: degrees must be a number", domain.ErrInvalidInput, arg)
	}
	r, err := domain.ParseRotation(n)
	if err != nil {
		return "", 0, err
	}
	return strings.TrimSpace(id), r, nil
}

package cli

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

var (
	previewPage   int
	previewRotate int
	previewWidth  int
	previewOutput string
)

var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Render a page preview to PNG",
	Long: `Render one page of a PDF as pagedeck previews it: the page outline at
its rotation, fitted to the preview width.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewPage, "page", 1, "Page number within the file")
	previewCmd.Flags().IntVar(&previewRotate, "rotate", 0, "Rotation in degrees")
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "Width in pixels (default: preview.width setting)")
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "preview.png", "PNG file to write")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	rotation, err := domain.ParseRotation(previewRotate)
	if err != nil {
		return err
	}
	s, err := session()
	if err != nil {
		return err
	}
	files, err := readSourceFiles(args)
	if err != nil {
		return err
	}

	ids, err := s.Collection.Ingest(cmd.Context(), files[0].Name, files[0].Data)
	if err != nil {
		return err
	}
	if previewPage < 1 || previewPage > len(ids) {
		return fmt.Errorf("%w: page %d of %d", domain.ErrInvalidInput, previewPage, len(ids))
	}
	id := ids[previewPage-1]
	if err := rotateTo(s.Collection, id, rotation); err != nil {
		return err
	}

	preview, err := s.Preview.Render(cmd.Context(), id, previewWidth)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, preview.Image); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := writeOutput(previewOutput, buf.Bytes()); err != nil {
		return err
	}

	cmd.Printf("Wrote %.0fx%.0f preview to %s\n", preview.Size.Width, preview.Size.Height, previewOutput)
	return nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build PLAN",
	Short: "Build a PDF from a TOML plan",
	Long: `Build a PDF by replaying the steps of a TOML plan.

Relative file paths are resolved against the plan's directory. Pages are
numbered across all files starting at 1. Annotation positions are fractions
of the page as previewed at its rotation at that step, from the top-left.

  output = "booklet.pdf"
  files  = ["cover.pdf", "scan.pdf"]

  [[step]]
  op     = "move"
  page   = "4"
  before = "2"

  [[step]]
  op      = "rotate"
  page    = "3"
  degrees = 90

  [[step]]
  op   = "exclude"
  page = "5"

  [[step]]
  op    = "annotate"
  page  = "1"
  x     = 0.5
  y     = 0.1
  text  = "DRAFT"
  size  = 24
  color = "#cc0000"`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output file (overrides the plan)")
	rootCmd.AddCommand(buildCmd)
}

// Plan is a scripted editing session.
type Plan struct {
	Output string     `toml:"output"`
	Files  []string   `toml:"files"`
	Steps  []PlanStep `toml:"step"`
}

// PlanStep is one mutation of a plan. Fields not used by Op are ignored.
type PlanStep struct {
	Op      string  `toml:"op"`
	Page    string  `toml:"page"`
	Before  string  `toml:"before"`
	Degrees int     `toml:"degrees"`
	X       float64 `toml:"x"`
	Y       float64 `toml:"y"`
	Text    string  `toml:"text"`
	Size    float64 `toml:"size"`
	Color   string  `toml:"color"`
}

// LoadPlan reads a plan and resolves its file paths against the plan's directory.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := toml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan %s: %w", path, err)
	}
	if len(plan.Files) == 0 {
		return nil, fmt.Errorf("%w: plan %s lists no files", domain.ErrInvalidInput, path)
	}

	dir := filepath.Dir(path)
	for i, f := range plan.Files {
		if !filepath.IsAbs(f) {
			plan.Files[i] = filepath.Join(dir, f)
		}
	}
	if plan.Output != "" && !filepath.IsAbs(plan.Output) {
		plan.Output = filepath.Join(dir, plan.Output)
	}
	return &plan, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	plan, err := LoadPlan(args[0])
	if err != nil {
		return err
	}
	s, err := session()
	if err != nil {
		return err
	}

	if err := ingestAll(cmd.Context(), s, plan.Files); err != nil {
		return err
	}
	for i, step := range plan.Steps {
		if err := applyStep(cmd, s, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}

	output := plan.Output
	if buildOutput != "" {
		output = buildOutput
	}
	return export(cmd, s, output)
}

func applyStep(cmd *cobra.Command, s *Session, step PlanStep) error {
	c := s.Collection
	switch step.Op {
	case "move":
		if !c.Reorder(step.Page, step.Before) {
			return fmt.Errorf("%w: cannot move page %q before %q", domain.ErrInvalidInput, step.Page, step.Before)
		}
		return nil
	case "rotate":
		r, err := domain.ParseRotation(step.Degrees)
		if err != nil {
			return err
		}
		return rotateTo(c, step.Page, r)
	case "exclude":
		return setExcluded(c, step.Page, true)
	case "include":
		return setExcluded(c, step.Page, false)
	case "annotate":
		if step.X < 0 || step.X > 1 || step.Y < 0 || step.Y > 1 {
			return fmt.Errorf("%w: x and y must be between 0 and 1", domain.ErrInvalidInput)
		}
		surface, err := s.Preview.Size(cmd.Context(), step.Page, 0)
		if err != nil {
			return err
		}
		input, err := annotationInput(step.Text, step.Size, step.Color)
		if err != nil {
			return err
		}
		at := domain.Point{X: step.X * surface.Width, Y: step.Y * surface.Height}
		_, err = c.Annotate(step.Page, at, surface, input)
		return err
	default:
		return fmt.Errorf("%w: unknown op %q", domain.ErrInvalidInput, step.Op)
	}
}

// annotationInput fills missing size and color from settings.
func annotationInput(text string, size float64, color string) (domain.AnnotationInput, error) {
	defaults := domain.DefaultAppSettings().Annotation
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return domain.AnnotationInput{}, err
		}
		defaults = settings.Annotation
	}
	if size == 0 {
		size = defaults.Size
	}
	if color == "" {
		color = defaults.Color
	}
	return domain.AnnotationInput{Text: text, Size: size, Color: color}, nil
}

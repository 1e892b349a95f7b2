package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pagedeck/internal/adapters/driving/inbox"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/messages"
)

// errNotTerminal is returned when the TUI is started without a terminal.
var errNotTerminal = errors.New("tui needs an interactive terminal; use merge or build in scripts")

// isTerminal reports whether stdin is a terminal. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var (
	tuiWatch  string
	tuiOutput string
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [FILES...]",
	Short: "Edit pages interactively in the terminal",
	Long: `Launch the interactive page editor.

FILES are added on start. With --watch, PDFs copied into the folder
are added while the editor runs.

Controls:
  ↑/k, ↓/j   Select page
  K, J       Move page up / down
  r          Rotate 90°
  x          Delete / restore
  a          Annotate (type text, ↑/↓ and tab to place, enter to stamp)
  e          Export
  C          Clear all
  ?          Help
  q          Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiWatch, "watch", "", "Folder to watch for new PDF files")
	tuiCmd.Flags().StringVarP(&tuiOutput, "output", "o", "", "Export path (default: configured file name)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panic: %v", r)
		}
	}()

	if !isTerminal() {
		return errNotTerminal
	}

	s, err := session()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(s.Collection, s.Preview, s.Export, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app.WithContext(ctx).WithFiles(args).WithOutput(tuiOutput)
	program := app.NewProgram()

	if tuiWatch != "" {
		watcher, err := inbox.New(tuiWatch, func(paths []string) {
			program.Send(messages.FilesDropped{Paths: paths})
		}, inbox.DefaultConfig())
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				program.Send(messages.ErrorOccurred{Err: err})
			}
		}()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

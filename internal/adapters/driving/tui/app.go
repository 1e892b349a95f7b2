package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/components/thumb"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagedeck/internal/adapters/driving/tui/views/annotate"
	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// Collection mutations run inside Update, so the event loop serializes them.
// Ingest and export run as commands; while one is in flight the app is busy
// and ignores mutating keys. Files dropped while busy are queued.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	pageList     *list.PageList
	annotateView *annotate.View
	statusBar    *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// busy is set while an ingest or export command runs.
	busy bool

	// queued holds files dropped while busy.
	queued []string

	// initial files are ingested by Init.
	initial []string

	// output is the export path; empty means the configured file name.
	output string

	// preview is the last rendered preview of the selected page.
	preview *domain.Preview

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		pageList:     list.NewPageList(s),
		annotateView: annotate.NewView(s, km),
		statusBar:    status.NewBar(s, km),
		currentView:  messages.ViewPages,
	}
	app.refresh()
	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithOutput sets where exports are written.
func (a *App) WithOutput(path string) *App {
	a.output = path
	return a
}

// WithFiles sets files to ingest when the program starts.
func (a *App) WithFiles(paths []string) *App {
	a.initial = paths
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("pagedeck"),
	}
	if len(a.initial) > 0 {
		paths := a.initial
		cmds = append(cmds, func() tea.Msg { return messages.FilesDropped{Paths: paths} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewAnnotate:
			var cmd tea.Cmd
			a.annotateView, cmd = a.annotateView.Update(msg)
			return a, cmd
		case messages.ViewHelp:
			return a.handleHelpKey(msg)
		case messages.ViewPages:
		}
		return a.handlePagesKey(msg)

	case messages.ViewChanged:
		a.setView(msg.View)
		return a, nil

	case messages.FilesDropped:
		if a.busy {
			a.queued = append(a.queued, msg.Paths...)
			return a, nil
		}
		return a, a.startIngest(msg.Paths)

	case messages.PagesIngested:
		return a, a.finishIngest(msg)

	case messages.PreviewRendered:
		if msg.Err != nil {
			logger.Warn("preview of page %s: %v", msg.PageID, msg.Err)
			return a, nil
		}
		if page := a.pageList.SelectedPage(); page != nil && page.ID == msg.PageID {
			a.preview = msg.Preview
		}
		return a, nil

	case messages.AnnotationSubmitted:
		return a, a.placeAnnotation(msg)

	case messages.AnnotationCancelled:
		a.setView(messages.ViewPages)
		return a, nil

	case messages.ExportFinished:
		a.busy = false
		if msg.Err != nil {
			a.fail(msg.Err)
		} else {
			a.err = nil
			a.statusBar.SetState(status.StateReady)
			a.statusBar.SetMessage(fmt.Sprintf("Wrote %d pages to %s", msg.Result.PageCount, msg.Path))
		}
		return a, a.afterBusy()

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		return a, nil
	}

	return a, nil
}

func (a *App) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(k, a.keymap.Cancel), keymap.Matches(k, a.keymap.Help):
		a.setView(messages.ViewPages)
	}
	return a, nil
}

//nolint:gocyclo // one case per binding
func (a *App) handlePagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(k, a.keymap.Help):
		a.setView(messages.ViewHelp)
		return a, nil
	case a.busy && a.keymap.Mutating(k):
		return a, nil
	}

	page := a.pageList.SelectedPage()
	switch {
	case keymap.Matches(k, a.keymap.Export):
		return a, a.startExport()
	case keymap.Matches(k, a.keymap.Reset):
		a.ports.Collection.Reset()
		a.preview = nil
		a.refresh()
		a.statusBar.SetMessage("Cleared")
		return a, nil
	case page == nil:
		a.pageList, _ = a.pageList.Update(msg)
		return a, nil
	case keymap.Matches(k, a.keymap.MoveUp):
		return a, a.move(page, -1)
	case keymap.Matches(k, a.keymap.MoveDown):
		return a, a.move(page, 1)
	case keymap.Matches(k, a.keymap.Rotate):
		if _, err := a.ports.Collection.Rotate(page.ID); err != nil {
			a.fail(err)
			return a, nil
		}
		a.refresh()
		return a, a.renderPreview()
	case keymap.Matches(k, a.keymap.Exclude):
		if _, err := a.ports.Collection.ToggleExclude(page.ID); err != nil {
			a.fail(err)
			return a, nil
		}
		a.refresh()
		return a, nil
	case keymap.Matches(k, a.keymap.Annotate):
		surface, err := a.ports.Preview.Size(a.ctx, page.ID, 0)
		if err != nil {
			a.fail(err)
			return a, nil
		}
		cmd := a.annotateView.Start(*page, surface)
		a.setView(messages.ViewAnnotate)
		return a, cmd
	}

	before := a.pageList.Selected()
	a.pageList, _ = a.pageList.Update(msg)
	if a.pageList.Selected() != before {
		a.preview = nil
		return a, a.renderPreview()
	}
	return a, nil
}

// move swaps the selected page with its neighbour in the given direction.
// Moving down is expressed as moving the next page before the selected one.
func (a *App) move(page *domain.PageRecord, direction int) tea.Cmd {
	other := a.pageList.Neighbour(direction)
	if other == nil {
		return nil
	}
	moved, before := page.ID, other.ID
	if direction > 0 {
		moved, before = other.ID, page.ID
	}
	if !a.ports.Collection.Reorder(moved, before) {
		return nil
	}
	selected := a.pageList.Selected() + direction
	a.refresh()
	a.pageList.SetSelected(selected)
	return nil
}

func (a *App) placeAnnotation(msg messages.AnnotationSubmitted) tea.Cmd {
	in := a.annotationInput(msg.Text)
	if _, err := a.ports.Collection.Annotate(msg.PageID, msg.At, msg.Surface, in); err != nil {
		a.fail(err)
		return nil
	}
	a.refresh()
	a.setView(messages.ViewPages)
	a.statusBar.SetMessage("Annotated")
	return a.renderPreview()
}

func (a *App) annotationInput(text string) domain.AnnotationInput {
	defaults := domain.DefaultAppSettings().Annotation
	if a.ports.Settings != nil {
		if s, err := a.ports.Settings.Get(); err == nil {
			defaults = s.Annotation
		}
	}
	return domain.AnnotationInput{Text: text, Size: defaults.Size, Color: defaults.Color}
}

func (a *App) startIngest(paths []string) tea.Cmd {
	a.busy = true
	a.statusBar.SetState(status.StateBusy)
	a.statusBar.SetMessage(fmt.Sprintf("Adding %d files...", len(paths)))

	ctx, collection := a.ctx, a.ports.Collection
	return func() tea.Msg {
		var readErrs []error
		files := make([]domain.SourceFile, 0, len(paths))
		for _, p := range paths {
			data, err := os.ReadFile(p)
			if err != nil {
				readErrs = append(readErrs, err)
				continue
			}
			files = append(files, domain.SourceFile{Name: filepath.Base(p), Data: data})
		}
		return messages.PagesIngested{
			Results: collection.IngestFiles(ctx, files),
			Err:     errors.Join(readErrs...),
		}
	}
}

func (a *App) finishIngest(msg messages.PagesIngested) tea.Cmd {
	a.busy = false
	a.refresh()

	added := 0
	var failed []string
	for _, r := range msg.Results {
		if r.Err != nil {
			failed = append(failed, r.Name)
			logger.Warn("ingest %s: %v", r.Name, r.Err)
			continue
		}
		added += len(r.PageIDs)
	}

	switch {
	case msg.Err != nil:
		a.fail(msg.Err)
	case len(failed) > 0:
		a.fail(fmt.Errorf("%w: %s", domain.ErrDecode, strings.Join(failed, ", ")))
	default:
		a.err = nil
		a.statusBar.SetState(status.StateReady)
		a.statusBar.SetMessage(fmt.Sprintf("Added %d pages", added))
	}
	return a.afterBusy()
}

// afterBusy starts queued work or refreshes the preview once a command finishes.
func (a *App) afterBusy() tea.Cmd {
	if len(a.queued) > 0 {
		paths := a.queued
		a.queued = nil
		return a.startIngest(paths)
	}
	return a.renderPreview()
}

func (a *App) startExport() tea.Cmd {
	a.busy = true
	a.statusBar.SetState(status.StateBusy)
	a.statusBar.SetMessage("Exporting...")

	ctx, export, path := a.ctx, a.ports.Export, a.outputPath()
	return func() tea.Msg {
		result, err := export.Export(ctx)
		if err != nil {
			return messages.ExportFinished{Path: path, Err: err}
		}
		if err := os.WriteFile(path, result.Data, 0o644); err != nil {
			return messages.ExportFinished{Path: path, Err: fmt.Errorf("writing %s: %w", path, err)}
		}
		return messages.ExportFinished{Path: path, Result: result}
	}
}

func (a *App) outputPath() string {
	if a.output != "" {
		return a.output
	}
	if a.ports.Settings != nil {
		if s, err := a.ports.Settings.Get(); err == nil && s.Export.FileName != "" {
			return s.Export.FileName
		}
	}
	return domain.DefaultExportFileName
}

// renderPreview returns a command rendering the selected page.
// No preview is rendered while a command that mutates the collection may be running.
func (a *App) renderPreview() tea.Cmd {
	page := a.pageList.SelectedPage()
	if page == nil || a.busy {
		return nil
	}
	ctx, preview, id := a.ctx, a.ports.Preview, page.ID
	return func() tea.Msg {
		p, err := preview.Render(ctx, id, 0)
		return messages.PreviewRendered{PageID: id, Preview: p, Err: err}
	}
}

func (a *App) refresh() {
	pages := a.ports.Collection.Pages()
	a.pageList.SetPages(pages)

	active := 0
	for i := range pages {
		if pages[i].Active() {
			active++
		}
	}
	a.statusBar.SetCounts(len(pages), active)
}

func (a *App) fail(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

func (a *App) setView(v messages.ViewType) {
	a.currentView = v
	switch v {
	case messages.ViewAnnotate:
		a.statusBar.SetState(status.StateAnnotating)
		a.statusBar.SetMessage("")
	case messages.ViewHelp:
		a.statusBar.SetState(status.StateHelp)
	case messages.ViewPages:
		if a.busy {
			a.statusBar.SetState(status.StateBusy)
		} else if a.statusBar.State() != status.StateError {
			a.statusBar.SetState(status.StateReady)
		}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewAnnotate:
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.annotateView.View(), "   ", a.viewThumbnail())
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.pageList.View(), "   ", a.viewThumbnail())
	}
	return body + "\n" + a.statusBar.View()
}

func (a *App) thumbnailWidth() int {
	return min(max(a.width/3, 16), 48)
}

func (a *App) viewThumbnail() string {
	if a.preview == nil {
		return ""
	}
	art := thumb.Render(a.preview.Image, a.thumbnailWidth())
	caption := a.styles.Muted.Render(fmt.Sprintf("%.0fx%.0f px", a.preview.Size.Width, a.preview.Size.Height))
	return a.styles.Thumbnail.Render(art) + "\n" + caption
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to pages"))
	return b.String()
}

// NewProgram creates the Bubbletea program for this app.
// Callers may Send messages.FilesDropped to it from other goroutines.
func (a *App) NewProgram() *tea.Program {
	return tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.NewProgram().Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Busy returns whether an ingest or export is running.
func (a *App) Busy() bool {
	return a.busy
}

// Queued returns files waiting for the running command to finish.
func (a *App) Queued() []string {
	return a.queued
}

// SelectedIndex returns the index of the selected page.
func (a *App) SelectedIndex() int {
	return a.pageList.Selected()
}

// Preview returns the last rendered preview of the selected page.
func (a *App) Preview() *domain.Preview {
	return a.preview
}

// StatusMessage returns the text shown in the status bar.
func (a *App) StatusMessage() string {
	return a.statusBar.Message()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.pageList.SetDimensions(width-a.thumbnailWidth()-3, height-2)
	a.annotateView.SetWidth(width - a.thumbnailWidth() - 3)
	a.statusBar.SetWidth(width)
}

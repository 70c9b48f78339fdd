package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/components/filter"
	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/components/summary"
	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/components/table"
	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
	"github.com/custodia-labs/stackprobe/internal/export"
)

// chrome is the number of rows used by everything except the table.
const chrome = 10

// refreshInterval is how often the view re-reads the session while pages arrive.
const refreshInterval = 100 * time.Millisecond

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// req is the scan started on Init.
	req domain.ScanRequest

	// ctx is the context for cancellation.
	ctx    context.Context
	cancel context.CancelFunc

	styles *styles.Styles
	keymap *keymap.KeyMap

	cards   *summary.Cards
	filters *filter.Bar
	table   *table.TechTable
	status  *status.Bar

	// params is the view currently shown.
	params domain.ViewParams

	// events carries page notifications from the scan goroutine.
	events chan tea.Msg

	// exportDir is where J/C/M write their files.
	exportDir string

	scanning bool
	// dirty is set when pages arrived since the last refresh.
	dirty    bool
	result   *domain.ScanResult
	notice   string

	// err holds the scan error, if any.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a dashboard that runs req when started.
func NewApp(ports *Ports, req domain.ScanRequest) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	params := domain.DefaultViewParams()
	if ports.Settings != nil {
		if s, err := ports.Settings.Get(); err == nil {
			params = s.View.Params()
		}
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	filters := filter.New(s)
	filters.SetActive(params.Filter)

	return &App{
		ports:   ports,
		req:     req,
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		cards:   summary.New(s),
		filters: filters,
		table:   table.New(s),
		status:  status.NewBar(s, km),
		params:  params,
		events:  make(chan tea.Msg),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithExportDir sets the directory exports are written to.
// The working directory is used when unset.
func (a *App) WithExportDir(dir string) *App {
	a.exportDir = dir
	return a
}

// Init implements tea.Model.
// It starts the spinner and the scan.
func (a *App) Init() tea.Cmd {
	a.refresh()
	return tea.Batch(
		a.status.Init(),
		tea.SetWindowTitle("stackprobe - "+a.req.Label()),
		a.startScan(),
		waitForEvent(a.events),
		refreshTick(),
	)
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return messages.RefreshTick{}
	})
}

// startScan runs the scan in a command goroutine. Page notifications go
// through a.events; the command's own result is the ScanFinished message.
func (a *App) startScan() tea.Cmd {
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancel = cancel
	a.scanning = true

	events := a.events
	scan := a.ports.Scan
	req := a.req

	return func() tea.Msg {
		defer close(events)

		hook := driving.WithPageHook(func(page domain.Page, st domain.ScanStatus) {
			select {
			case events <- messages.PageReceived{URL: page.URL, Status: st}:
			case <-ctx.Done():
			}
		})

		result, err := scan.Scan(ctx, req, hook)
		return messages.ScanFinished{Result: result, Err: err}
	}
}

// waitForEvent returns a command that delivers the next scan event.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.status, cmd = a.status.Update(msg)
		return a, cmd

	case messages.PageReceived:
		a.status.SetPages(msg.Status.PagesReceived)
		a.dirty = true
		return a, waitForEvent(a.events)

	case messages.RefreshTick:
		if a.dirty {
			a.refresh()
		}
		if a.scanning {
			return a, refreshTick()
		}
		return a, nil

	case messages.ScanFinished:
		a.finishScan(msg)
		return a, nil

	case messages.ExportCompleted:
		if msg.Err != nil {
			a.notice = a.styles.Error.Render(fmt.Sprintf("Export failed: %v", msg.Err))
		} else {
			a.notice = a.styles.Success.Render(fmt.Sprintf("Exported %s to %s", msg.Format, msg.Path))
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, a.keymap.Quit) {
		if a.cancel != nil {
			a.cancel()
		}
		return a, tea.Quit
	}

	if key, ok := a.keymap.SortKeyFor(k); ok {
		a.params = a.params.Toggle(key)
		a.refresh()
		return a, nil
	}

	if format, ok := a.keymap.ExportFormatFor(k); ok {
		return a, a.exportCmd(format)
	}

	switch {
	case keymap.Matches(k, a.keymap.NextFilter):
		a.params.Filter = a.filters.Next()
		a.refresh()
	case keymap.Matches(k, a.keymap.PrevFilter):
		a.params.Filter = a.filters.Prev()
		a.refresh()
	case keymap.Matches(k, a.keymap.Up):
		a.table.MoveUp()
	case keymap.Matches(k, a.keymap.Down):
		a.table.MoveDown()
	}
	return a, nil
}

func (a *App) finishScan(msg messages.ScanFinished) {
	a.scanning = false
	a.result = msg.Result
	a.err = msg.Err

	switch {
	case msg.Err != nil && !errors.Is(msg.Err, context.Canceled):
		a.status.SetState(status.StateError)
		a.status.SetMessage(msg.Err.Error())
	case msg.Result != nil:
		a.status.SetState(status.StateDone)
		a.status.SetMessage(msg.Result.Message)
		if msg.Result.Partial {
			a.notice = a.styles.Warning.Render("Warning: " + msg.Result.Warning)
		}
	default:
		a.status.SetState(status.StateDone)
	}
	a.refresh()
}

// exportCmd snapshots the current view and writes it off the UI goroutine.
func (a *App) exportCmd(format domain.ExportFormat) tea.Cmd {
	snapshot := a.ports.Detector.Snapshot(a.params)
	dir := a.exportDir
	return func() tea.Msg {
		path, err := export.WriteFile(dir, snapshot, format)
		return messages.ExportCompleted{Format: format, Path: path, Err: err}
	}
}

// refresh re-reads the session into the components.
func (a *App) refresh() {
	a.dirty = false
	d := a.ports.Detector
	a.table.SetSnapshot(d.Snapshot(a.params))
	a.cards.SetSummary(d.Summary())
	a.filters.SetCategories(d.Categories())
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("stackprobe"))
	b.WriteString(a.styles.Muted.Render("  " + a.req.Label()))
	b.WriteString("\n\n")
	b.WriteString(a.cards.View())
	b.WriteString("\n")
	b.WriteString(a.filters.View())
	b.WriteString("\n\n")
	b.WriteString(a.table.View())
	b.WriteString("\n")
	if a.notice != "" {
		b.WriteString(a.notice)
	}
	b.WriteString("\n")
	b.WriteString(a.status.View())

	if !a.ready {
		return b.String()
	}
	return lipgloss.NewStyle().MaxWidth(a.width).Render(b.String())
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Params returns the view currently shown.
func (a *App) Params() domain.ViewParams {
	return a.params
}

// Scanning reports whether the scan is still running.
func (a *App) Scanning() bool {
	return a.scanning
}

// Result returns the finished scan, or nil.
func (a *App) Result() *domain.ScanResult {
	return a.result
}

// Err returns the scan error, if any.
func (a *App) Err() error {
	return a.err
}

// Notice returns the last export notice.
func (a *App) Notice() string {
	return a.notice
}

// Table returns the technology table component.
func (a *App) Table() *table.TechTable {
	return a.table
}

// Ready returns whether the app has received its first window size.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.status.SetWidth(width)
	a.table.SetDimensions(width, height-chrome)
}

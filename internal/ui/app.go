package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/samuli/duview/internal/core"
	"github.com/samuli/duview/internal/logging"
	"github.com/samuli/duview/internal/model"
)

// viewMode identifies the main panel.
type viewMode int

const (
	modePickRoot viewMode = iota
	modeBrowse
	modeDeep
)

// Message types for Bubble Tea
type (
	eventMsg       struct{ event core.Event }
	spinnerTickMsg struct{}
	mimeMsg        struct {
		path string
		mime string
	}
	deleteFailedMsg struct{ err error }
)

var spinnerFrames = []string{
	"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏",
}

const spinnerTickInterval = 80 * time.Millisecond

// App is the main TUI application model.
type App struct {
	ctrl *core.Controller

	keys    KeyMap
	list    EntryList
	treemap TreemapPanel

	mode        viewMode
	showTreemap bool
	showHelp    bool

	drives      []model.Drive
	driveCursor int

	state       core.ScanState
	freed       core.FreedState
	deepEntries []model.Entry
	err         error

	confirmDelete *model.Entry
	selectedMime  string
	mimePath      string

	spinnerFrame int
	width        int
	height       int
}

// NewApp creates the application model. When startPath is empty the
// persisted default root is used, falling back to the drive picker.
func NewApp(ctrl *core.Controller, startPath string) App {
	app := App{
		ctrl:  ctrl,
		keys:  DefaultKeyMap(),
		mode:  modeBrowse,
		freed: ctrl.Freed(),
	}

	if startPath == "" {
		startPath = ctrl.DefaultRoot()
	}
	if startPath == "" {
		drives, err := model.ListDrives()
		if err != nil {
			logging.Debug.Printf("drive listing failed: %v", err)
		}
		app.drives = drives
		app.mode = modePickRoot
	} else {
		app.state.CurrentRootPath = startPath
	}

	return app
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.listenCmd(), a.spinnerTick()}
	if a.mode == modeBrowse && a.state.CurrentRootPath != "" {
		path := a.state.CurrentRootPath
		cmds = append(cmds, func() tea.Msg {
			a.ctrl.ScanDirectory(path)
			return nil
		})
	}
	return tea.Batch(cmds...)
}

// listenCmd waits for the next controller event. Each delivered event
// re-arms the listener from Update.
func (a App) listenCmd() tea.Cmd {
	events := a.ctrl.Events()
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{event: event}
	}
}

func (a App) spinnerTick() tea.Cmd {
	return tea.Tick(spinnerTickInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case eventMsg:
		return a.handleEvent(msg.event)

	case spinnerTickMsg:
		a.spinnerFrame = (a.spinnerFrame + 1) % len(spinnerFrames)
		if a.state.IsScanning {
			// Re-sync from the controller each tick; emit drops events on
			// a full channel, and a dropped completion would otherwise
			// leave the spinner running forever.
			a.state = a.ctrl.Snapshot()
			a.syncEntries()
			if a.state.IsScanning {
				return a, a.spinnerTick()
			}
			if err := a.ctrl.StartWatching(); err != nil {
				logging.Debug.Printf("watcher start failed: %v", err)
			}
		}
		return a, nil

	case mimeMsg:
		if msg.path == a.mimePath {
			a.selectedMime = msg.mime
		}
		return a, nil

	case deleteFailedMsg:
		a.err = msg.err
		return a, nil
	}

	return a, nil
}

// handleEvent applies a controller event to the UI state and re-arms the
// event listener.
func (a App) handleEvent(event core.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{a.listenCmd()}

	switch e := event.(type) {
	case core.ScanStartedEvent:
		a.err = nil
		a.deepEntries = nil
		if a.mode == modeDeep {
			a.mode = modeBrowse
		}
		cmds = append(cmds, a.spinnerTick())

	case core.ScanUpdatedEvent:
		a.state = e.State
		a.syncEntries()

	case core.ScanCompletedEvent:
		a.state = e.State
		a.syncEntries()
		if err := a.ctrl.StartWatching(); err != nil {
			logging.Debug.Printf("watcher start failed: %v", err)
		}

	case core.ScanFailedEvent:
		a.err = e.Err
		a.state = a.ctrl.Snapshot()
		a.syncEntries()

	case core.DeepScanCompletedEvent:
		a.state = a.ctrl.Snapshot()
		a.deepEntries = e.Entries
		a.mode = modeDeep
		a.list.SetEntries(e.Entries, model.SumSizes(e.Entries))
		a.treemap.SetEntries(e.Entries)

	case core.ItemDeletedEvent:
		a.freed = e.Freed

	case core.DeletionDetectedEvent:
		a.freed = e.Freed
	}

	return a, tea.Batch(cmds...)
}

func (a *App) syncEntries() {
	a.list.SetEntries(a.state.Entries, a.state.TotalSize)
	a.treemap.SetEntries(a.state.Entries)
}

// handleKey handles keyboard input.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.confirmDelete != nil {
		switch {
		case key.Matches(msg, a.keys.Confirm):
			entry := *a.confirmDelete
			a.confirmDelete = nil
			return a, func() tea.Msg {
				if err := a.ctrl.DeleteItem(entry.Path); err != nil {
					return deleteFailedMsg{err: err}
				}
				return nil
			}
		case key.Matches(msg, a.keys.Cancel):
			a.confirmDelete = nil
		}
		return a, nil
	}

	if a.mode == modePickRoot {
		return a.handlePickRootKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.ctrl.Stop()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.list.MoveUp()
		return a, a.detectSelectedMime()

	case key.Matches(msg, a.keys.Down):
		a.list.MoveDown()
		return a, a.detectSelectedMime()

	case key.Matches(msg, a.keys.Open):
		if entry, ok := a.list.Selected(); ok && entry.IsDir {
			a.ctrl.ScanDirectory(entry.Path)
		}
		return a, nil

	case key.Matches(msg, a.keys.Back):
		root := a.state.CurrentRootPath
		if root == "" {
			return a, nil
		}
		parent := filepath.Dir(root)
		if parent != root {
			a.ctrl.ScanDirectory(parent)
		}
		return a, nil

	case key.Matches(msg, a.keys.Delete):
		if entry, ok := a.list.Selected(); ok {
			a.confirmDelete = &entry
		}
		return a, nil

	case key.Matches(msg, a.keys.Refresh):
		if root := a.state.CurrentRootPath; root != "" {
			a.ctrl.ScanDirectory(root)
		}
		return a, nil

	case key.Matches(msg, a.keys.DeepScan):
		if root := a.state.CurrentRootPath; root != "" {
			a.ctrl.ScanDirectoryRecursively(root)
		}
		return a, nil

	case key.Matches(msg, a.keys.Treemap):
		a.showTreemap = !a.showTreemap
		a.updateLayout()
		return a, nil
	}

	return a, nil
}

func (a App) handlePickRootKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.ctrl.Stop()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		if a.driveCursor > 0 {
			a.driveCursor--
		}
		return a, nil

	case key.Matches(msg, a.keys.Down):
		if a.driveCursor < len(a.drives)-1 {
			a.driveCursor++
		}
		return a, nil

	case key.Matches(msg, a.keys.Open):
		if a.driveCursor < len(a.drives) {
			path := a.drives[a.driveCursor].Path
			a.mode = modeBrowse
			a.ctrl.ScanDirectory(path)
			return a, a.spinnerTick()
		}
		return a, nil
	}
	return a, nil
}

// detectSelectedMime kicks off MIME detection for the selected file.
func (a *App) detectSelectedMime() tea.Cmd {
	entry, ok := a.list.Selected()
	if !ok || entry.IsDir {
		a.selectedMime = ""
		a.mimePath = ""
		return nil
	}
	a.mimePath = entry.Path
	a.selectedMime = ""
	path := entry.Path
	return func() tea.Msg {
		return mimeMsg{path: path, mime: detectMime(path)}
	}
}

// updateLayout calculates component sizes.
func (a *App) updateLayout() {
	headerHeight := 3
	footerHeight := 2

	panelHeight := a.height - headerHeight - footerHeight
	if panelHeight < 1 {
		panelHeight = 1
	}

	if a.showTreemap {
		listWidth := a.width / 2
		a.list.SetSize(listWidth, panelHeight)
		a.treemap.SetSize(a.width-listWidth-1, panelHeight)
	} else {
		a.list.SetSize(a.width, panelHeight)
	}
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	if a.showHelp {
		return a.overlay(helpView(a.keys))
	}

	if a.mode == modePickRoot {
		return a.overlay(a.drivePickerView())
	}

	var sections []string
	sections = append(sections, headerView(a.state, a.freed, spinnerFrames[a.spinnerFrame], a.width))

	if a.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf(" %v", a.err)))
	}

	if a.showTreemap {
		sections = append(sections, lipgloss.JoinHorizontal(
			lipgloss.Top,
			a.list.View(),
			" ",
			a.treemap.View(),
		))
	} else {
		sections = append(sections, a.list.View())
	}

	sections = append(sections, a.footerView())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if a.confirmDelete != nil {
		prompt := confirmStyle.Render(fmt.Sprintf(
			"Delete %s (%s)? y/n",
			a.confirmDelete.Name, core.FormatBytes(a.confirmDelete.Size)))
		return content + "\n" + prompt
	}

	return content
}

func (a App) footerView() string {
	hints := dimStyle.Render(" enter open · bksp up · d delete · r rescan · R deep · t treemap · ? help · q quit")
	if a.selectedMime != "" {
		hints += dimStyle.Render("  |  ") + headerStyle.Render(a.selectedMime)
	}
	if a.mode == modeDeep {
		hints += dimStyle.Render(fmt.Sprintf("  |  deep listing, %d entries", len(a.deepEntries)))
	}
	return hints
}

func (a App) drivePickerView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select a volume to scan"))
	b.WriteString("\n\n")
	for i, d := range a.drives {
		row := fmt.Sprintf("%-20s %10s free of %-10s %5.1f%% used",
			d.Label,
			core.FormatBytes(d.FreeBytes),
			core.FormatBytes(d.TotalBytes),
			d.UsedPercent(),
		)
		if i == a.driveCursor {
			b.WriteString(selectedStyle.Render(" " + row + " "))
		} else {
			b.WriteString(headerStyle.Render(" " + row + " "))
		}
		b.WriteString("\n")
	}
	if len(a.drives) == 0 {
		b.WriteString(dimStyle.Render("no volumes found"))
	}
	return helpBoxStyle.Render(b.String())
}

func (a App) overlay(content string) string {
	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

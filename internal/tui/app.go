// Package tui implements the interactive terminal client for a diskview
// server: pick a drive, watch the scan stream, browse the result tables.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	"github.com/sadopc/diskview/internal/drives"
	"github.com/sadopc/diskview/internal/protocol"
)

// AppState is the client's top-level mode.
type AppState int

const (
	StateDrives AppState = iota
	StateScanning
	StateDone
	StateError
)

// ResultTab selects which ranked table the done view shows.
type ResultTab int

const (
	TabFileTypes ResultTab = iota
	TabFolders
	TabApplications
	tabCount
)

// App is the root bubbletea model.
type App struct {
	Version string

	theme  Theme
	keys   KeyMap
	client *Client

	width  int
	height int

	state AppState

	// drive picker
	drives []drives.Drive
	cursor int

	// scan parameters
	autoPath string
	depth    int

	// live scan
	taskID   string
	scanPath string
	progress protocol.ScanProgress
	stopping bool

	// result browsing
	result     *protocol.ScanComplete
	activeTab  ResultTab
	sortByName bool

	errMsg   string
	notice   string
	fatalErr error
	quitting bool
}

// NewApp creates the client model. When path is non-empty the drive
// picker is skipped and the scan starts immediately.
func NewApp(client *Client, path string, depth int) *App {
	return &App{
		theme:    DefaultTheme(),
		keys:     DefaultKeyMap(),
		client:   client,
		state:    StateDrives,
		autoPath: path,
		depth:    depth,
	}
}

// FatalError returns the error the program should exit with, if any.
func (a *App) FatalError() error { return a.fatalErr }

// Init requests the drive list (or starts the scan directly) and begins
// draining server messages.
func (a *App) Init() tea.Cmd {
	var first tea.Cmd
	if a.autoPath != "" {
		a.state = StateScanning
		a.scanPath = a.autoPath
		first = a.sendCmd(func() error { return a.client.StartScan(a.autoPath, a.depth) })
	} else {
		first = a.sendCmd(func() error { return a.client.ListDrives() })
	}
	return tea.Batch(first, a.client.Recv())
}

// sendCmd runs one client write off the update loop. A failed write
// surfaces as a disconnect.
func (a *App) sendCmd(send func() error) tea.Cmd {
	return func() tea.Msg {
		if err := send(); err != nil {
			return DisconnectMsg{Err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case ServerMsg:
		return a.handleServer(msg.Payload)

	case DisconnectMsg:
		if a.quitting {
			return a, tea.Quit
		}
		a.fatalErr = msg.Err
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		a.quitting = true
		return a, tea.Quit
	}

	switch a.state {
	case StateDrives:
		switch {
		case key.Matches(msg, a.keys.Up):
			if a.cursor > 0 {
				a.cursor--
			}
		case key.Matches(msg, a.keys.Down):
			if a.cursor < len(a.drives)-1 {
				a.cursor++
			}
		case key.Matches(msg, a.keys.Enter):
			if a.cursor < len(a.drives) {
				path := a.drives[a.cursor].Path
				a.scanPath = path
				a.state = StateScanning
				a.progress = protocol.ScanProgress{}
				a.notice = ""
				return a, a.sendCmd(func() error { return a.client.StartScan(path, a.depth) })
			}
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit
		}

	case StateScanning:
		switch {
		case key.Matches(msg, a.keys.Stop):
			if a.taskID != "" && !a.stopping {
				a.stopping = true
				id := a.taskID
				return a, a.sendCmd(func() error { return a.client.StopScan(id) })
			}
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			if a.taskID != "" {
				id := a.taskID
				return a, tea.Sequence(
					a.sendCmd(func() error { return a.client.StopScan(id) }),
					tea.Quit,
				)
			}
			return a, tea.Quit
		}

	case StateDone:
		switch {
		case key.Matches(msg, a.keys.NextTab):
			a.activeTab = (a.activeTab + 1) % tabCount
		case key.Matches(msg, a.keys.SortName):
			a.sortByName = !a.sortByName
		case key.Matches(msg, a.keys.Rescan):
			a.state = StateDrives
			a.result = nil
			a.taskID = ""
			return a, a.sendCmd(func() error { return a.client.ListDrives() })
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit
		}

	case StateError:
		switch {
		case key.Matches(msg, a.keys.Rescan):
			a.state = StateDrives
			a.errMsg = ""
			a.taskID = ""
			return a, a.sendCmd(func() error { return a.client.ListDrives() })
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit
		}
	}
	return a, nil
}

// handleServer applies one decoded server payload, then keeps draining.
func (a *App) handleServer(payload any) (tea.Model, tea.Cmd) {
	switch p := payload.(type) {
	case *protocol.DrivesPayload:
		a.drives = p.Drives
		if a.cursor >= len(a.drives) {
			a.cursor = 0
		}

	case *protocol.ScanStarted:
		a.taskID = p.TaskID
		a.state = StateScanning
		a.stopping = false

	case *protocol.ScanProgress:
		if p.TaskID == a.taskID {
			a.progress = *p
		}

	case *protocol.ScanComplete:
		if p.TaskID == a.taskID {
			a.result = p
			a.state = StateDone
			a.activeTab = TabFileTypes
		}

	case *protocol.ScanStopped:
		if p.TaskID == a.taskID {
			a.taskID = ""
			a.stopping = false
			a.state = StateDrives
			a.notice = "scan stopped, partial results discarded"
			if a.quitting {
				return a, tea.Quit
			}
		}

	case *protocol.ScanError:
		a.errMsg = p.Error
		a.state = StateError
	}

	return a, a.client.Recv()
}

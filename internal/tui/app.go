package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okvist/xspawn/internal/config"
	"github.com/okvist/xspawn/internal/ipc"
	"github.com/okvist/xspawn/internal/spawn"
)

// bindingItem implements list.Item for the binding browser.
type bindingItem struct {
	binding config.Binding
}

func (i bindingItem) Title() string {
	if i.binding.Keys == "" {
		return i.binding.Name
	}
	return fmt.Sprintf("%s  [%s]", i.binding.Name, i.binding.Keys)
}

func (i bindingItem) Description() string {
	desc := i.binding.Command
	if i.binding.Group != "" {
		desc = i.binding.Group + " · " + desc
	}
	if i.binding.Action == config.ActionExec {
		desc = "exec · " + desc
	}
	return desc
}

func (i bindingItem) FilterValue() string {
	return i.binding.Name + " " + i.binding.Command
}

// statusMsg is sent after an action completes.
type statusMsg struct {
	text string
}

// clearStatusMsg clears the status message after a delay.
type clearStatusMsg struct{}

// model is the root bubbletea model for the binding browser.
type model struct {
	configPath string
	result     *config.LoadResult

	list     list.Model
	ipc      *ipc.Client
	launcher *spawn.Launcher

	daemonConnected bool
	statusText      string

	width  int
	height int
	ready  bool
}

func newModel(configPath string) (model, error) {
	m := model{configPath: configPath}

	if err := m.loadConfig(); err != nil {
		return model{}, err
	}

	client, err := ipc.NewClient()
	if err == nil {
		m.ipc = client
		if _, err := client.GetStatus(); err == nil {
			m.daemonConnected = true
		}
	}

	// Local fallback when the daemon is not running.
	cfg := m.result.Config
	m.launcher = spawn.NewLauncher(cfg.Shell, cfg.EnvSlice(), slog.Default())

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(buildBindingItems(cfg), delegate, 0, 0)
	l.Title = "Bindings"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	m.list = l

	return m, nil
}

func (m *model) loadConfig() error {
	var res *config.LoadResult
	var err error

	if m.configPath == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(m.configPath)
	}
	if err != nil {
		return err
	}
	m.result = res
	return nil
}

func buildBindingItems(cfg *config.Config) []list.Item {
	items := make([]list.Item, 0, len(cfg.Bindings))
	for _, name := range cfg.BindingNames() {
		if b, ok := cfg.Binding(name); ok {
			items = append(items, bindingItem{binding: b})
		}
	}
	return items
}

// contentHeight returns the height available for the list.
func (m model) contentHeight() int {
	// status bar (1) + help bar (1)
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.contentHeight())
		m.ready = true
		return m, nil

	case statusMsg:
		m.statusText = msg.text
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusText = ""
		return m, nil

	case tea.KeyMsg:
		// The list's filter input consumes most keys while active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			return m.runSelected()
		case "r":
			return m.reload()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) runSelected() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(bindingItem)
	if !ok {
		return m, nil
	}
	b := item.binding

	// exec replaces the daemon's process image; refuse to trigger it from here.
	if b.Action == config.ActionExec {
		return m.status(fmt.Sprintf("%s is an exec binding; run it with: xspawn exec", b.Name))
	}

	if m.daemonConnected {
		if err := m.ipc.RunBinding(b.Name); err != nil {
			return m.status(fmt.Sprintf("error: %v", err))
		}
		return m.status(fmt.Sprintf("launched %s (daemon)", b.Name))
	}

	pid, err := m.launcher.Spawn(b.Command)
	if err != nil {
		return m.status(fmt.Sprintf("error: %v", err))
	}
	return m.status(fmt.Sprintf("launched %s (pid %d)", b.Name, pid))
}

func (m model) reload() (tea.Model, tea.Cmd) {
	if err := m.loadConfig(); err != nil {
		return m.status(fmt.Sprintf("reload failed: %v", err))
	}
	m.list.SetItems(buildBindingItems(m.result.Config))

	if m.daemonConnected {
		if err := m.ipc.Reload(); err != nil {
			return m.status(fmt.Sprintf("daemon reload failed: %v", err))
		}
		return m.status("config reloaded (daemon too)")
	}
	return m.status("config reloaded")
}

func (m model) status(text string) (tea.Model, tea.Cmd) {
	m.statusText = text
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// View implements tea.Model.
func (m model) View() string {
	if !m.ready || m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.daemonConnected, len(m.result.Config.Bindings), m.statusText, m.width)
	helpBar := renderHelpBar(m.width)

	contentHeight := m.height - lipgloss.Height(statusBar) - lipgloss.Height(helpBar)
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.list.SetSize(m.width, contentHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		m.list.View(),
		helpBar,
	)
}

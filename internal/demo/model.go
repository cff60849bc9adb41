package demo

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/kvisser/scrollto"
	"github.com/kvisser/scrollto/internal/config"
	"github.com/kvisser/scrollto/internal/events"
	"github.com/kvisser/scrollto/internal/log"
	"github.com/kvisser/scrollto/internal/watcher"
	"github.com/kvisser/scrollto/teaport"
)

// chrome is the number of lines around the list: title, status bar, help.
const chrome = 3

type keyMap struct {
	Goto    key.Binding
	Center  key.Binding
	Random  key.Binding
	Reload  key.Binding
	Submit  key.Binding
	Cancel  key.Binding
	Quit    key.Binding
	listKey teaport.KeyMap
}

func defaultKeys() keyMap {
	return keyMap{
		Goto: key.NewBinding(
			key.WithKeys(":", "i"),
			key.WithHelp(":", "go to index"),
		),
		Center: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle centering"),
		),
		Random: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "random index"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload feed"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "scroll"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		listKey: teaport.DefaultKeyMap(),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Goto, k.Random, k.Center, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Goto, k.Random, k.Center, k.Reload},
		{k.listKey.Up, k.listKey.Down, k.listKey.Top, k.listKey.Bottom},
		{k.Submit, k.Cancel, k.Quit},
	}
}

type feedChangedMsg struct{}

type feedLoadedMsg struct {
	items []string
	err   error
}

// Model is the demo's root Bubble Tea model.
type Model struct {
	cfg   config.Config
	theme Theme
	keys  keyMap

	list  *teaport.List
	input textinput.Model
	help  help.Model

	items    []string
	centered bool
	entering bool
	status   string

	arrivals <-chan scrollto.ScrolledToEvent
	changes  <-chan struct{}
	watch    *watcher.Watcher
	ctx      context.Context
	cancel   context.CancelFunc

	rng *rand.Rand
}

// New builds the demo model from configuration. The caller must Close it
// after the program exits.
func New(cfg config.Config) (*Model, error) {
	var items []string
	if cfg.Feed != "" {
		loaded, err := LoadFeed(cfg.Feed)
		if err != nil {
			return nil, err
		}
		items = loaded
	} else {
		items = GenerateItems(cfg.Items)
	}

	m := &Model{
		cfg:    cfg,
		theme:  NewTheme(cfg.Theme),
		keys:   defaultKeys(),
		help:   help.New(),
		items:  items,
		status: fmt.Sprintf("%d items", len(items)),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())

	m.list = teaport.New(
		teaport.RenderFunc(m.renderItem),
		len(items),
		teaport.WithOverscan(cfg.Scroll.Overscan),
		teaport.WithEstimatedHeight(cfg.Scroll.EstimatedHeight),
		teaport.WithControllerOptions(
			scrollto.WithDefaultAlignment(cfg.Scroll.Alignment),
			scrollto.WithDefaultDuration(time.Duration(cfg.Scroll.DurationMS)*time.Millisecond),
			scrollto.WithDefaultCurve(scrollto.CurveByName(cfg.Scroll.Curve)),
		),
	)
	m.arrivals = m.list.Controller().ScrolledTo(m.ctx)

	m.input = textinput.New()
	m.input.Prompt = "go to index: "
	m.input.CharLimit = 9
	m.input.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}

	if cfg.Feed != "" && cfg.AutoReload {
		w, err := watcher.New(cfg.Feed)
		if err != nil {
			return nil, err
		}
		changes, err := w.Start()
		if err != nil {
			_ = w.Stop()
			return nil, err
		}
		m.watch = w
		m.changes = changes
	}

	return m, nil
}

// Close releases the watcher and scroll resources.
func (m *Model) Close() error {
	m.cancel()
	m.list.Dispose()
	if m.watch != nil {
		return m.watch.Stop()
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenArrivals()}
	if m.changes != nil {
		cmds = append(cmds, m.listenFeed())
	}
	return tea.Batch(cmds...)
}

func (m *Model) listenArrivals() tea.Cmd {
	return events.ListenCmd(m.ctx, m.arrivals)
}

func (m *Model) listenFeed() tea.Cmd {
	cmd := events.ListenCmd(m.ctx, m.changes)
	return func() tea.Msg {
		if cmd() == nil {
			return nil
		}
		return feedChangedMsg{}
	}
}

func (m *Model) reloadFeed() tea.Cmd {
	path := m.cfg.Feed
	return func() tea.Msg {
		items, err := LoadFeed(path)
		return feedLoadedMsg{items: items, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.list.SetSize(msg.Width, max(msg.Height-chrome, 1))
		return m, nil

	case scrollto.ScrolledToEvent:
		m.status = fmt.Sprintf("arrived at %d (op v%d)", msg.Index, msg.Version)
		return m, m.listenArrivals()

	case feedChangedMsg:
		log.Info(log.CatDemo, "feed changed, reloading")
		return m, tea.Batch(m.reloadFeed(), m.listenFeed())

	case feedLoadedMsg:
		if msg.err != nil {
			m.status = m.theme.Error.Render(msg.err.Error())
			return m, nil
		}
		m.items = msg.items
		m.list.SetItemCount(len(msg.items))
		m.list.Invalidate()
		m.status = fmt.Sprintf("reloaded, %d items", len(msg.items))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.list.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.entering {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.entering = false
			m.input.Blur()
			m.input.Reset()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			m.entering = false
			m.input.Blur()
			value := m.input.Value()
			m.input.Reset()
			if idx, err := strconv.Atoi(value); err == nil {
				return m, m.scrollTo(idx)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Goto):
		m.entering = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Random):
		if n := m.list.Count(); n > 0 {
			return m, m.scrollTo(m.rng.Intn(n))
		}
		return m, nil
	case key.Matches(msg, m.keys.Center):
		m.centered = !m.centered
		if m.centered {
			m.status = "centering targets"
		} else {
			m.status = "aligning targets to top"
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if m.cfg.Feed != "" {
			return m, m.reloadFeed()
		}
		return m, nil
	}

	return m, m.list.Update(msg)
}

func (m *Model) scrollTo(index int) tea.Cmd {
	var opts []scrollto.ScrollOption
	if m.centered {
		opts = append(opts, scrollto.Alignment(0.5))
	}
	op, cmd := m.list.ScrollTo(index, opts...)
	m.status = fmt.Sprintf("scrolling to %d (op v%d)", index, op.Version())
	return cmd
}

// renderItem draws one row with an index gutter sized for the largest
// index, so rows stay aligned as the count grows.
func (m *Model) renderItem(index, width int) string {
	if index < 0 || index >= len(m.items) {
		return ""
	}
	gutterW := len(strconv.Itoa(max(len(m.items)-1, 0))) + 1
	gutter := m.theme.Gutter.Render(runewidth.FillLeft(strconv.Itoa(index), gutterW))
	blank := strings.Repeat(" ", gutterW)

	lines := strings.Split(m.items[index], "\n")
	for i, ln := range lines {
		if i == 0 {
			lines[i] = gutter + " " + ln
		} else {
			lines[i] = blank + " " + ln
		}
	}
	return strings.Join(lines, "\n")
}

// View implements tea.Model.
func (m *Model) View() string {
	title := m.theme.Title.Render("scrollto demo")
	if m.entering {
		title += "  " + m.input.View()
	}

	status := m.theme.StatusBar.Render(fmt.Sprintf(
		"%s  │  %3.0f%%", m.status, m.list.ScrollPercent()*100,
	))

	return strings.Join([]string{
		title,
		m.list.View(),
		status,
		m.help.View(m.keys),
	}, "\n")
}

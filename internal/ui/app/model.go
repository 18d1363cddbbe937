package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "studia/internal/modules/analytics/dto"
	analyticsview "studia/internal/ui/views/analytics"
	sessionsview "studia/internal/ui/views/sessions"
	"studia/internal/ui/theme"
)

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabSessions tabID = iota
	tabModeling
	tabExplore
	tabCount
)

var tabLabels = [tabCount]string{"Sessions", "Modeling", "Explore"}

// Each analytics tab is its own coordinator slot, so their in-flight
// requests stay independent.
const (
	slotModeling = "modeling"
	slotExplore  = "exploratory"
)

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab   key.Binding
	Help  key.Binding
	Quit  key.Binding
	Model key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Model: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "switch model")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Model, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.Model}, {k.Help, k.Quit}}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model: tab routing and global chrome. All
// business logic is behind port interfaces on the sub-views; the interactive
// loop never computes anything itself.
type Model struct {
	sessionsView sessionsview.Model
	modelingView analyticsview.Model
	exploreView  analyticsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	width     int
	height    int
}

func NewModel(sessions sessionsview.SessionPort, coordinator analyticsview.CoordinatorPort) Model {
	modelingKinds := []string{
		analyticsdto.KindOverviewCorrelation,
		analyticsdto.KindPartialLeastSquares,
		analyticsdto.KindVARImpulseResponse,
		analyticsdto.KindHiddenMarkovStates,
		analyticsdto.KindWeeklyAggregation,
	}
	exploreKinds := []string{
		analyticsdto.KindCrossCorrelation,
		analyticsdto.KindEventStudy,
		analyticsdto.KindQuantileRegression,
	}
	return Model{
		sessionsView: sessionsview.New(sessions),
		modelingView: analyticsview.New(coordinator, slotModeling, modelingKinds),
		exploreView:  analyticsview.New(coordinator, slotExplore, exploreKinds),
		activeTab:    tabSessions,
		keys:         defaultKeys(),
		help:         help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.sessionsView.Init(),
		m.modelingView.Init(),
		m.exploreView.Init(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		inner := m.height - 6
		m.sessionsView = m.sessionsView.SetSize(m.width-4, inner)
		m.modelingView = m.modelingView.SetSize(m.width-4, inner)
		m.exploreView = m.exploreView.SetSize(m.width-4, inner)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		}
	}

	// everything else goes to the active view; background views still get
	// their async messages so out-of-focus results land
	var cmds []tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); !isKey || m.activeTab == tabSessions {
		var cmd tea.Cmd
		m.sessionsView, cmd = m.sessionsView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey || m.activeTab == tabModeling {
		var cmd tea.Cmd
		m.modelingView, cmd = m.modelingView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey || m.activeTab == tabExplore {
		var cmd tea.Cmd
		m.exploreView, cmd = m.exploreView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var tabs []string
	for id, label := range tabLabels {
		style := theme.Muted
		if tabID(id) == m.activeTab {
			style = theme.Hot
		}
		tabs = append(tabs, style.Render(label))
	}
	header := theme.Title.Render("studia") + "  " + strings.Join(tabs, " · ")

	var body string
	switch m.activeTab {
	case tabSessions:
		body = m.sessionsView.View()
	case tabModeling:
		body = m.modelingView.View()
	case tabExplore:
		body = m.exploreView.View()
	}

	footer := m.help.View(m.keys)
	if m.showHelp {
		footer = m.help.FullHelpView(m.keys.FullHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		theme.Pane.Width(max(m.width-4, 20)).Render(body),
		footer,
	)
}

package sessions

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "studia/internal/modules/session/dto"
	"studia/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	List(ctx context.Context, from, to time.Time, tag string) ([]sessiondto.RecordOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RecordsLoadedMsg struct {
	Records []sessiondto.RecordOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    SessionPort
	records []sessiondto.RecordOutput
	err     error
	loading bool
	width   int
	height  int
}

func New(port SessionPort) Model {
	return Model{port: port, loading: true}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadCmd()
		}
	case RecordsLoadedMsg:
		m.loading = false
		m.records = msg.Records
		m.err = msg.Err
	}
	return m, nil
}

func (m Model) loadCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		records, err := port.List(context.Background(), time.Time{}, time.Time{}, "")
		return RecordsLoadedMsg{Records: records, Err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Sessions"))
	b.WriteString(theme.Muted.Render("  r refresh"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(theme.Bad.Render("load failed: " + m.err.Error()))
	case m.loading:
		b.WriteString(theme.Muted.Render("loading…"))
	case len(m.records) == 0:
		b.WriteString(theme.Muted.Render("no sessions yet; add one with `studia session add`"))
	default:
		limit := m.height - 6
		if limit < 5 {
			limit = 5
		}
		start := 0
		if len(m.records) > limit {
			start = len(m.records) - limit
		}
		for _, record := range m.records[start:] {
			tag := record.Tag
			if tag == "" {
				tag = "-"
			}
			b.WriteString(fmt.Sprintf("%s  %4d min  %s\n",
				record.Date.Format("2006-01-02"), record.DurationMin, theme.Muted.Render(tag)))
		}
	}
	return b.String()
}

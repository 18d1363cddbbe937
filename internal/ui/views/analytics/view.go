package analytics

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "studia/internal/modules/analytics/dto"
	dispatchdto "studia/internal/modules/dispatch/dto"
	"studia/internal/ui/components"
	"studia/internal/ui/theme"
)

const pollEvery = 120 * time.Millisecond

// ─── port ────────────────────────────────────────────────────────────────────

// CoordinatorPort is the slice of the worker coordinator this view consumes.
// The view is the single-threaded rendering consumer: it only ever submits
// and polls, never blocks on a computation.
type CoordinatorPort interface {
	Submit(ctx context.Context, slotID string, input analyticsdto.AnalyzeInput) (uint64, error)
	Poll(slotID string) (dispatchdto.Envelope, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type submittedMsg struct {
	slotID string
	token  uint64
	err    error
}

type pollMsg struct {
	slotID string
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders one analytics surface (one coordinator slot) with a cycling
// set of model kinds. Switching kinds submits a new request; the view shows
// a spinner until a result with the awaited token arrives.
type Model struct {
	port   CoordinatorPort
	slotID string
	kinds  []string

	kindIdx  int
	awaiting uint64
	loading  bool
	result   *dispatchdto.Envelope
	err      error
	spinner  spinner.Model
	width    int
	height   int
}

func New(port CoordinatorPort, slotID string, kinds []string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, slotID: slotID, kinds: kinds, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.submitCmd())
}

func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.kindIdx = (m.kindIdx + len(m.kinds) - 1) % len(m.kinds)
			return m, m.submitCmd()
		case "right", "l":
			m.kindIdx = (m.kindIdx + 1) % len(m.kinds)
			return m, m.submitCmd()
		case "r":
			return m, m.submitCmd()
		}

	case submittedMsg:
		if msg.slotID != m.slotID {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			m.loading = false
			return m, nil
		}
		// acks from overlapping submissions can arrive out of order; the
		// awaited token only ever moves forward
		if msg.token <= m.awaiting {
			return m, nil
		}
		m.err = nil
		m.awaiting = msg.token
		m.loading = true
		return m, m.pollCmd()

	case pollMsg:
		if msg.slotID != m.slotID || !m.loading {
			return m, nil
		}
		envelope, err := m.port.Poll(m.slotID)
		if err == nil && envelope.Token >= m.awaiting {
			m.result = &envelope
			m.loading = false
			return m, nil
		}
		return m, m.pollCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submitCmd() tea.Cmd {
	slotID := m.slotID
	kind := m.kinds[m.kindIdx]
	port := m.port
	return func() tea.Msg {
		token, err := port.Submit(context.Background(), slotID, analyticsdto.AnalyzeInput{Kind: kind})
		return submittedMsg{slotID: slotID, token: token, err: err}
	}
}

func (m Model) pollCmd() tea.Cmd {
	slotID := m.slotID
	return tea.Tick(pollEvery, func(time.Time) tea.Msg {
		return pollMsg{slotID: slotID}
	})
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(prettyKind(m.kinds[m.kindIdx])))
	b.WriteString(theme.Muted.Render("  ←/→ switch model · r rerun"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(theme.Bad.Render("coordinator error: " + m.err.Error()))
	case m.loading || m.result == nil:
		b.WriteString(m.spinner.View() + " computing…")
	default:
		b.WriteString(m.renderResult(m.result.Result))
	}
	return b.String()
}

func (m Model) renderResult(result analyticsdto.ResultOutput) string {
	var b strings.Builder

	switch result.Status {
	case "ok", "ok_with_warning":
		b.WriteString(result.Explanation)
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render(fmt.Sprintf("confidence: %s (%.2f)", result.ConfidenceLabel, result.Confidence)))
		b.WriteString("\n\n")

		width := m.width - 30
		if width < 10 {
			width = 10
		}
		for _, s := range result.Series {
			b.WriteString(fmt.Sprintf("%-24s %s", s.Name, components.Sparkline(s.Y, width)))
			if lo, hi, ok := bounds(s.Y); ok {
				b.WriteString(theme.Muted.Render(fmt.Sprintf("  [%.1f … %.1f]", lo, hi)))
			}
			b.WriteString("\n")
		}
		if len(result.Series) > 0 {
			b.WriteString("\n")
		}
		for _, p := range result.Points {
			b.WriteString(fmt.Sprintf("%-28s %s\n", p.Label, formatValue(p.Value)))
		}
		if result.Status == "ok_with_warning" {
			b.WriteString("\n")
			for _, w := range result.Warnings {
				b.WriteString(theme.Hot.Render("⚠ "+w) + "\n")
			}
		}
	default:
		// insufficient_data and error share one renderer, per the failure
		// payload contract: no payload, just the reason
		b.WriteString(theme.Muted.Render(result.Explanation))
	}
	return b.String()
}

func bounds(values []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, !math.IsInf(lo, 1)
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return theme.Muted.Render("n/a")
	}
	return fmt.Sprintf("%.2f", v)
}

func prettyKind(kind string) string {
	return strings.ReplaceAll(kind, "_", " ")
}

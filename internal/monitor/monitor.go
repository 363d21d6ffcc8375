// Package monitor implements the live polling view: a BubbleTea program
// that captures a fresh snapshot on a fixed interval and redraws the
// temperature table. Collection problems are rendered as notices inside
// the view; the loop never stops on them.
package monitor

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luki/gputemp/internal/render"
	"github.com/luki/gputemp/internal/sensor"
)

const pollInterval = 2 * time.Second

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

type snapshotMsg sensor.Snapshot

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the live monitor.
type Model struct {
	collector *sensor.Collector
	snapshot  sensor.Snapshot
	polled    bool
}

// New creates the initial model around the given collector.
func New(c *sensor.Collector) Model {
	return Model{collector: c}
}

// ── Commands ─────────────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) pollCmd() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(m.collector.Poll())
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pollCmd(), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tickMsg:
		return m, tea.Batch(m.pollCmd(), tickCmd())

	case snapshotMsg:
		m.snapshot = sensor.Snapshot(msg)
		m.polled = true
	}

	return m, nil
}

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.polled {
		return "  Initializing..."
	}
	return render.Frame(m.snapshot)
}

// Run drives the live monitor until interrupt or q.
func Run(c *sensor.Collector) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	_, err := p.Run()
	return filterInterrupt(err)
}

// filterInterrupt strips bubbletea's interrupt error. An external SIGINT is
// the normal way to stop the view, not a failure; anything else is a real
// terminal problem and surfaces.
func filterInterrupt(err error) error {
	if errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

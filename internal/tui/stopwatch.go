// Package tui runs the stopwatch in a terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clockdeck/internal/core/elapsed"
	"clockdeck/internal/core/stopwatch"
)

const refreshInterval = 50 * time.Millisecond

var (
	faceStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F2F2F2")).Padding(1, 2)
	fractionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8BE42"))
	stateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8F98")).PaddingLeft(2)
	fastestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	slowestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935"))
	helpStyle     = lipgloss.NewStyle().PaddingLeft(2).PaddingTop(1)
)

// Engine is the stopwatch surface the terminal model drives.
type Engine interface {
	Toggle()
	RecordLap() bool
	Reset()
	State() stopwatch.State
	Elapsed() int64
	Laps() []stopwatch.Lap
}

type refreshMsg time.Time

// Model is the bubbletea model for the terminal stopwatch.
type Model struct {
	engine  Engine
	keys    keyMap
	help    help.Model
	table   table.Model
	laps    int
	elapsed int64
	state   stopwatch.State
}

// NewModel builds a model around engine.
func NewModel(engine Engine) Model {
	laps := table.New(
		table.WithColumns([]table.Column{
			{Title: "Lap", Width: 5},
			{Title: "", Width: 8},
			{Title: "Time", Width: 12},
			{Title: "Total", Width: 12},
		}),
		table.WithHeight(10),
	)
	model := Model{
		engine: engine,
		keys:   defaultKeys(),
		help:   help.New(),
		table:  laps,
	}
	model.sync()
	return model
}

// Run starts the terminal program and blocks until the user quits.
func Run(engine Engine) error {
	program := tea.NewProgram(NewModel(engine))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run stopwatch: %w", err)
	}
	return nil
}

func (model Model) Init() tea.Cmd {
	return refresh()
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(msg, model.keys.Toggle):
			model.engine.Toggle()
		case key.Matches(msg, model.keys.Lap):
			model.engine.RecordLap()
		case key.Matches(msg, model.keys.Reset):
			model.engine.Reset()
		}
		model.sync()
		return model, nil
	case tea.WindowSizeMsg:
		model.help.Width = msg.Width
		model.table.SetHeight(max(3, msg.Height-12))
		return model, nil
	case refreshMsg:
		model.sync()
		return model, refresh()
	}
	return model, nil
}

func (model Model) View() string {
	value := elapsed.Format(model.elapsed)
	var builder strings.Builder
	builder.WriteString(faceStyle.Render(value.Clock() + fractionStyle.Render("."+value.Centiseconds)))
	builder.WriteString("\n")
	builder.WriteString(stateStyle.Render(stateLabel(model.state)))
	builder.WriteString("\n\n")
	if model.laps > 0 {
		builder.WriteString(model.table.View())
		builder.WriteString("\n")
	}
	builder.WriteString(helpStyle.Render(model.help.View(model.keys)))
	return builder.String()
}

func (model *Model) sync() {
	model.elapsed = model.engine.Elapsed()
	model.state = model.engine.State()
	laps := model.engine.Laps()
	if len(laps) == model.laps {
		return
	}
	model.laps = len(laps)
	model.table.SetRows(lapRows(laps))
}

func lapRows(laps []stopwatch.Lap) []table.Row {
	rows := make([]table.Row, 0, len(laps))
	for index, lap := range laps {
		badge := ""
		switch {
		case lap.Fastest:
			badge = fastestStyle.Render("fastest")
		case lap.Slowest:
			badge = slowestStyle.Render("slowest")
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", len(laps)-index),
			badge,
			elapsed.Format(lap.Diff).String(),
			elapsed.Format(lap.TS).String(),
		})
	}
	return rows
}

func stateLabel(state stopwatch.State) string {
	switch state {
	case stopwatch.StateRunning:
		return "running"
	case stopwatch.StatePaused:
		return "paused"
	default:
		return "ready"
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(at time.Time) tea.Msg {
		return refreshMsg(at)
	})
}

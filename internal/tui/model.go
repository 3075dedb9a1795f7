package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/octagorm/priorities/internal/config"
	"github.com/octagorm/priorities/internal/engine"
	"github.com/octagorm/priorities/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service
	cfg config.Config

	width  int
	height int

	mental   int
	physical int

	snap     *engine.Snapshot
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	snap     *engine.Snapshot
	mental   int
	physical int
	err      error
}

type loggedMsg struct {
	name string
	err  error
}

func newBoardModel(ctx context.Context, svc *engine.Service, cfg config.Config) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		cfg:     cfg,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		mental, physical, err := m.svc.Energy(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		now := time.Now()
		snap, err := m.svc.PrioritizeNow(m.ctx, mental, physical, now.Hour(), now)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{snap: snap, mental: mental, physical: physical}
	}
}

func (m boardModel) setEnergyCmd(mental, physical int) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.SetEnergy(m.ctx, mental, physical); err != nil {
			return loadedMsg{err: err}
		}
		now := time.Now()
		snap, err := m.svc.PrioritizeNow(m.ctx, mental, physical, now.Hour(), now)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{snap: snap, mental: mental, physical: physical}
	}
}

func (m boardModel) logCmd(item engine.PrioritizedActivity) tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.LogSession(m.ctx, item.Activity.ID, nil, nil, time.Now())
		return loggedMsg{name: item.Activity.Name, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.snap = msg.snap
		m.mental = msg.mental
		m.physical = msg.physical
		if m.selected >= len(m.snap.Available) {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case loggedMsg:
		if msg.err != nil {
			m.lastLog = "Log failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Logged %s.", msg.name)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.snap != nil && m.selected < len(m.snap.Available)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			if m.snap != nil && m.selected < len(m.snap.Available) {
				return m, m.logCmd(m.snap.Available[m.selected])
			}
			return m, nil
		case "m":
			return m.nudgeEnergy(-1, 0)
		case "M":
			return m.nudgeEnergy(1, 0)
		case "p":
			return m.nudgeEnergy(0, -1)
		case "P":
			return m.nudgeEnergy(0, 1)
		}
	}
	return m, nil
}

func (m boardModel) nudgeEnergy(dMental, dPhysical int) (tea.Model, tea.Cmd) {
	mental := clampEnergy(m.mental + dMental)
	physical := clampEnergy(m.physical + dPhysical)
	if mental == m.mental && physical == m.physical {
		return m, nil
	}
	return m, m.setEnergyCmd(mental, physical)
}

func clampEnergy(v int) int {
	if v < 0 {
		return 0
	}
	if v > engine.MaxEnergy {
		return engine.MaxEnergy
	}
	return v
}

func (m boardModel) View() string {
	var b strings.Builder

	b.WriteString(ui.Heading(ui.IconNow, "Priorities") + "\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n\n",
		ui.IconBrain, ui.EnergyDots(m.mental),
		ui.IconMuscle, ui.EnergyDots(m.physical)))

	if m.loading {
		b.WriteString(ui.Muted.Render("Loading…") + "\n")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(ui.Bad.Render("Error: "+m.err.Error()) + "\n")
		return b.String()
	}
	if m.snap == nil {
		return b.String()
	}

	b.WriteString(ui.H2.Render(ui.IconSparkle+" "+ui.SectionTitle("available")) + "\n")
	if len(m.snap.Available) == 0 {
		b.WriteString(ui.Muted.Render("  nothing right now") + "\n")
	}
	for i, item := range m.snap.Available {
		line := fmt.Sprintf("  %s %.2f  %s  %s",
			item.Activity.Name,
			item.Score,
			ui.Muted.Render(ui.FormatTimeSince(item.TimeSinceLast)),
			ui.Dim.Render(item.RecentFrequency))
		if i == m.selected {
			line = ui.SelectedRow.Render("▸" + line[1:])
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	writeMutedSection(&b, ui.IconClock, "wrong_time", m.snap.WrongTime)
	writeMutedSection(&b, ui.IconSnooze, "too_tired", m.snap.TooTired)

	if len(m.snap.Paused) > 0 {
		b.WriteString(ui.H2.Render(ui.IconPause+" Paused") + "\n")
		for _, a := range m.snap.Paused {
			b.WriteString("  " + ui.Dim.Render(a.Name) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(ui.Muted.Render(m.lastLog) + "\n")
	b.WriteString(ui.Muted.Render("enter: log  m/M p/P: energy  r: refresh  q: quit") + "\n")
	return b.String()
}

func writeMutedSection(b *strings.Builder, icon, section string, items []engine.PrioritizedActivity) {
	if len(items) == 0 {
		return
	}
	b.WriteString(ui.H2.Render(icon+" "+ui.SectionTitle(section)) + "\n")
	for _, item := range items {
		b.WriteString("  " + ui.Dim.Render(item.Activity.Name) + "\n")
	}
	b.WriteString("\n")
}

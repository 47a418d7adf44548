package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vsariola/gridbeat"
	"github.com/vsariola/gridbeat/tracker"
)

const cellWidth = 5

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0c0c0")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	noteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff"))
	paramStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#39a0ff"))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#444"))
	playheadStyle = lipgloss.NewStyle().Background(lipgloss.Color("#5f005f"))
	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555")).Width(4)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	alertStyles   = map[tracker.AlertPriority]lipgloss.Style{
		tracker.Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#39ff14")),
		tracker.Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffff00")),
		tracker.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
	}
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.gridView())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	switch {
	case m.mode == Command:
		b.WriteString(m.command.View())
	case m.mode == Insert || m.mode == Visual:
		b.WriteString(fmt.Sprintf("-- %s --", m.caser.String(m.mode.String())))
	default:
		if a, ok := m.model.Alerts().Current(); ok {
			b.WriteString(alertStyles[a.Priority].Render(a.Message))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) headerView() string {
	g := m.model.Grid()
	cells := []string{stepStyle.Render("")}
	for _, c := range m.model.Columns() {
		cells = append(cells, headerStyle.Width(cellWidth).Render(m.columnTitle(g, c)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) columnTitle(g gridbeat.Grid, c tracker.ColumnRef) string {
	name := g.Tracks[c.Track].Name
	if p, ok := c.Lane.Param(); ok {
		name = p.String()
	}
	if len(name) > cellWidth-1 {
		name = name[:cellWidth-1]
	}
	return m.caser.String(name)
}

// visibleSteps returns the range of steps that fit on screen, keeping the
// cursor in view.
func (m Model) visibleSteps(steps int) (from, to int) {
	rows := steps
	if m.height > 0 {
		rows = max(m.height-6, 1)
	}
	if rows >= steps {
		return 0, steps
	}
	from = min(max(m.model.Cursor().Step-rows/2, 0), steps-rows)
	return from, from + rows
}

func (m Model) gridView() string {
	g := m.model.Grid()
	cols := m.model.Columns()
	cur := m.model.Cursor()
	playhead := m.model.Playhead()
	from, to := m.visibleSteps(g.Steps())
	rows := make([]string, 0, to-from)
	for step := from; step < to; step++ {
		cells := make([]string, 0, len(cols)+1)
		cells = append(cells, stepStyle.Render(fmt.Sprintf("%02d", step)))
		for _, c := range cols {
			text := g.Cell(c.Track, c.Lane, step)
			style := cellStyle(text, c.Lane, step)
			switch {
			case c.Track == cur.Track && c.Lane == cur.Lane && step == cur.Step:
				style = style.Inherit(cursorStyle)
			case step == playhead:
				style = style.Inherit(playheadStyle)
			}
			cells = append(cells, style.Width(cellWidth).Render(fitCell(text)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// cellStyle highlights cells by what they decode to.
func cellStyle(text string, lane gridbeat.Lane, step int) lipgloss.Style {
	if text == gridbeat.EmptyCell {
		return emptyStyle
	}
	if lane == gridbeat.NoteLane {
		if _, ok := gridbeat.DecodeCell(text, step); ok {
			return noteStyle
		}
		return textStyle
	}
	if _, ok := gridbeat.DecodeParam(text); ok {
		return paramStyle
	}
	return textStyle
}

func fitCell(text string) string {
	r := []rune(text)
	if len(r) > cellWidth-1 {
		r = r[:cellWidth-1]
	}
	return string(r)
}

func (m Model) statusData() StatusData {
	g := m.model.Grid()
	cur := m.model.Cursor()
	reg, _ := m.model.Register()
	h := m.model.History()
	var track string
	if cur.Track < len(g.Tracks) {
		track = g.Tracks[cur.Track].Name
	}
	return StatusData{
		Mode:     m.caser.String(m.mode.String()),
		File:     m.model.FilePath(),
		Modified: m.model.ChangedSinceSave(),
		Playhead: m.model.Playhead(),
		Steps:    g.Steps(),
		Track:    track,
		Step:     cur.Step,
		Cell:     m.model.CurrentCell(),
		Register: reg,
		Undo:     h.Pos(),
		Redo:     h.Len() - 1 - h.Pos(),
	}
}

func (m Model) statusLine() string {
	var b strings.Builder
	if err := m.status.Execute(&b, m.statusData()); err != nil {
		return err.Error()
	}
	return b.String()
}

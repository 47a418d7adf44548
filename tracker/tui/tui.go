// Package tui is the terminal front end of gridbeat. It draws the grid with
// the playhead and maps modal, vi style key presses to tracker.Model
// actions.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vsariola/gridbeat"
	"github.com/vsariola/gridbeat/tracker"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	Mode int

	// Options configure the front end. Zero values pick the defaults.
	Options struct {
		StatusTemplate   string
		RecoveryInterval time.Duration
		Logger           *slog.Logger
	}

	Model struct {
		model   *tracker.Model
		mode    Mode
		input   string // text typed in insert mode so far
		command textinput.Model
		help    help.Model
		status  *template.Template
		caser   cases.Caser
		log     *slog.Logger

		recoveryInterval time.Duration
		lastRecovery     time.Time

		width, height int
		quitting      bool
	}

	// StatusData is what the status line template is executed with.
	StatusData struct {
		Mode     string
		File     string
		Modified bool
		Playhead int
		Steps    int
		Track    string
		Step     int
		Cell     string
		Register string
		Undo     int
		Redo     int
	}

	tickMsg time.Time
)

const (
	Normal Mode = iota
	Insert
	Visual
	Command
)

const (
	DefaultStatusTemplate   = `{{ .Mode }}  {{ .File | default "[no name]" }}{{ if .Modified }} [+]{{ end }}  {{ .Playhead | add1 }}/{{ .Steps }}`
	DefaultRecoveryInterval = 30 * time.Second
	tickInterval            = 16 * time.Millisecond
)

func (m Mode) String() string {
	switch m {
	case Insert:
		return "insert"
	case Visual:
		return "visual"
	case Command:
		return "command"
	}
	return "normal"
}

// New returns a front end editing model.
func New(model *tracker.Model, opts Options) (Model, error) {
	if opts.StatusTemplate == "" {
		opts.StatusTemplate = DefaultStatusTemplate
	}
	if opts.RecoveryInterval <= 0 {
		opts.RecoveryInterval = DefaultRecoveryInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	status, err := template.New("status").Funcs(sprig.TxtFuncMap()).Parse(opts.StatusTemplate)
	if err != nil {
		return Model{}, fault.Wrap(err, fmsg.WithDesc("invalid status template", "The status line template does not parse"))
	}
	ti := textinput.New()
	ti.Prompt = ":"
	ti.CharLimit = 256
	return Model{
		model:            model,
		command:          ti,
		help:             help.New(),
		status:           status,
		caser:            cases.Upper(language.Und),
		log:              opts.Logger,
		recoveryInterval: opts.RecoveryInterval,
		lastRecovery:     time.Now(),
	}, nil
}

func (m Model) Mode() Mode { return m.mode }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m.onTick(time.Time(msg))
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m.quit(false)
		}
		var cmd tea.Cmd
		switch m.mode {
		case Insert:
			m = m.updateInsert(msg)
		case Command:
			m, cmd = m.updateCommand(msg)
		default:
			m = m.updateNormal(msg)
		}
		if m.model.Err() != nil {
			return m.quit(false)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) onTick(now time.Time) (tea.Model, tea.Cmd) {
	m.model.PollPlayhead()
	m.model.ProcessMIDI()
	if err := m.model.Err(); err != nil {
		return m.quit(false)
	}
	if now.Sub(m.lastRecovery) >= m.recoveryInterval {
		m.lastRecovery = now
		if err := m.model.SaveRecovery(); err != nil {
			m.log.Warn("could not save recovery file", "error", err)
		}
	}
	return m, tick()
}

// quit stops the program. A clean quit removes the recovery file; any
// other keeps an up to date one for the next start.
func (m Model) quit(clean bool) (tea.Model, tea.Cmd) {
	m.quitting = true
	if clean {
		m.model.RemoveRecovery()
	} else if err := m.model.SaveRecovery(); err != nil {
		m.log.Warn("could not save recovery file", "error", err)
	}
	return m, tea.Quit
}

func (m Model) updateNormal(msg tea.KeyMsg) Model {
	t := m.model
	switch {
	case key.Matches(msg, keys.Left):
		t.MoveCursor(-1, 0)
	case key.Matches(msg, keys.Right):
		t.MoveCursor(1, 0)
	case key.Matches(msg, keys.Up):
		t.MoveCursor(0, -1)
	case key.Matches(msg, keys.Down):
		t.MoveCursor(0, 1)
	case key.Matches(msg, keys.Undo):
		t.Undo().Do()
	case key.Matches(msg, keys.Redo):
		t.Redo().Do()
	case key.Matches(msg, keys.Delete):
		t.Delete().Do()
	case key.Matches(msg, keys.Yank):
		t.Yank().Do()
	case key.Matches(msg, keys.Paste):
		t.Paste().Do()
	case key.Matches(msg, keys.Inc):
		t.Increment(1).Do()
	case key.Matches(msg, keys.Dec):
		t.Increment(-1).Do()
	case key.Matches(msg, keys.Insert):
		m.mode = Insert
		m.input = ""
	case key.Matches(msg, keys.Visual):
		m.mode = Visual
	case key.Matches(msg, keys.Escape):
		m.mode = Normal
	case key.Matches(msg, keys.Command):
		m.mode = Command
		m.command.SetValue("")
		m.command.Focus()
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m
}

// updateInsert rewrites the cell under the cursor on every key, so that the
// player hears the edit as it is typed. Enter moves to the next step.
func (m Model) updateInsert(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = Normal
		return m
	case tea.KeyEnter:
		m.input = ""
		m.model.MoveCursor(0, 1)
		return m
	case tea.KeyBackspace:
		if m.input == "" {
			return m
		}
		r := []rune(m.input)
		m.input = string(r[:len(r)-1])
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	default:
		return m
	}
	text := m.input
	if strings.TrimSpace(text) == "" {
		text = gridbeat.EmptyCell
	}
	m.model.Insert(text).Do()
	return m
}

func (m Model) updateCommand(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = Normal
		m.command.Blur()
		return m, nil
	case tea.KeyEnter:
		m.mode = Normal
		m.command.Blur()
		return m.execute(m.command.Value())
	}
	var cmd tea.Cmd
	m.command, cmd = m.command.Update(msg)
	return m, cmd
}

// execute runs an ex style command line: q, q!, w [path], wq [path] or
// e path.
func (m Model) execute(line string) (Model, tea.Cmd) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return m, nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	alerts := m.model.Alerts()
	switch fields[0] {
	case "q":
		if m.model.ChangedSinceSave() {
			alerts.Add("No write since last change (add ! to override)", tracker.Warning)
			return m, nil
		}
		return m.quitCmd(true)
	case "q!":
		return m.quitCmd(true)
	case "w", "wq", "x":
		if err := m.model.Save(arg); err != nil {
			m.alertError(err)
			return m, nil
		}
		if fields[0] != "w" {
			return m.quitCmd(true)
		}
	case "e":
		if arg == "" {
			alerts.Add("Give a file name, e.g. :e beat.yml", tracker.Warning)
			return m, nil
		}
		if err := m.model.Load(arg); err != nil {
			m.alertError(err)
		}
	default:
		alerts.Add(fmt.Sprintf("Not an editor command: %s", fields[0]), tracker.Warning)
	}
	return m, nil
}

func (m Model) quitCmd(clean bool) (Model, tea.Cmd) {
	ret, cmd := m.quit(clean)
	return ret.(Model), cmd
}

func (m Model) alertError(err error) {
	m.log.Warn("command failed", "error", err)
	msg := fmsg.GetIssue(err)
	if msg == "" {
		msg = err.Error()
	}
	m.model.Alerts().Add(msg, tracker.Error)
}

// Command gridbeat is a terminal step sequencer: a text grid where every
// cell is a note, a rest or a parameter value, played in a loop while it is
// being edited.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/vsariola/gridbeat"
	"github.com/vsariola/gridbeat/cmd"
	"github.com/vsariola/gridbeat/config"
	"github.com/vsariola/gridbeat/oto"
	"github.com/vsariola/gridbeat/tracker"
	"github.com/vsariola/gridbeat/tracker/tui"
	"github.com/vsariola/gridbeat/version"
)

var (
	configFile string
	bpm        float64
	sampleRate int
	midiInput  string
	outputFile string
	passes     int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridbeat [file]",
	Short: "Edit and play a step sequencer grid in the terminal",
	Long: `gridbeat plays a grid of text cells in a loop while you edit it.

Each column is a track and each row a step. A note cell holds a note name
with an optional octave (C, D#3) or a MIDI pitch (60); anything else is a
rest. Parameter lanes hold values from 0 to 100.

Keys follow vi: h/j/k/l move, i inserts, x cuts, y yanks, p pastes, +/-
change a value, u/r undo and redo, :w saves and :q quits.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	Version:      version.VersionOrHash,
	RunE:         runEditor,
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render passes of a grid to a .wav file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(c *cobra.Command, args []string) {
		fmt.Fprintln(c.OutOrStdout(), version.String())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is config.yml in the user config directory)")
	rootCmd.PersistentFlags().Float64Var(&bpm, "bpm", 0, "tempo in beats per minute")
	rootCmd.PersistentFlags().IntVar(&sampleRate, "sample-rate", 0, "output sample rate in Hz")
	rootCmd.Flags().StringVar(&midiInput, "midi-input", "", "connect MIDI input to the first port whose name starts with this")

	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output .wav file (default is the input name with .wav)")
	renderCmd.Flags().IntVarP(&passes, "passes", "n", 1, "how many times to play the grid through")

	rootCmd.AddCommand(renderCmd, versionCmd)
}

// loadConfig reads the config file and applies the command line overrides.
func loadConfig(c *cobra.Command) (config.Config, error) {
	path, optional := configFile, false
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return config.Default(), nil
		}
		path, optional = filepath.Join(dir, "config.yml"), true
	}
	conf, err := config.Load(path, optional)
	if err != nil {
		return conf, err
	}
	if c.Flags().Changed("bpm") {
		conf.Transport.BPM = bpm
	}
	if c.Flags().Changed("sample-rate") {
		conf.Audio.SampleRate = sampleRate
	}
	if c.Flags().Changed("midi-input") {
		conf.MIDI.Input = midiInput
	}
	return conf, conf.Validate()
}

// openLog returns a logger writing to gridbeat.log in dir. The terminal
// belongs to the editor, so nothing is logged to stderr.
func openLog(dir string) (*slog.Logger, func()) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	if dir == "" {
		return discard, func() {}
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "gridbeat.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discard, func() {}
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), func() { f.Close() }
}

func runEditor(c *cobra.Command, args []string) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	dir, _ := config.Dir()
	logger, closeLog := openLog(dir)
	defer closeLog()
	if os.Getenv("GRIDBEAT_DEBUG") != "" {
		f, err := tea.LogToFile(filepath.Join(dir, "tea.log"), "tea")
		if err == nil {
			defer f.Close()
		}
	}
	recoveryFile := ""
	if dir != "" {
		recoveryFile = filepath.Join(dir, "recovery.json")
	}
	voices, err := conf.Voices()
	if err != nil {
		return err
	}
	broker := tracker.NewBroker()
	midiContext := cmd.NewMidiContext(broker)
	defer midiContext.Close()
	if conf.MIDI.Input != "" {
		if in, err := tracker.OpenMIDIInput(midiContext, conf.MIDI.Input); err != nil {
			logger.Warn("could not open MIDI input", "prefix", conf.MIDI.Input, "error", err)
		} else {
			logger.Info("opened MIDI input", "port", in.String())
		}
	}
	model := tracker.NewModel(broker, conf.NewGrid(), recoveryFile, logger)
	defer model.Close()
	if len(args) > 0 {
		if err := model.Load(args[0]); errors.Is(err, fs.ErrNotExist) {
			model.SetFilePath(args[0])
			model.Alerts().Add(fmt.Sprintf("New file %s", args[0]), tracker.Info)
		} else if err != nil {
			return err
		}
	}
	player := tracker.NewPlayer(broker, voices, conf.PlayerTransport(), conf.LimiterSettings())
	defer player.Close()
	output, err := oto.Open(player, conf.Audio.SampleRate, conf.Audio.Channels)
	if err != nil {
		return err
	}
	defer output.Close()
	logger.Info("started", "version", version.VersionOrHash, "samplerate", conf.Audio.SampleRate, "bpm", conf.Transport.BPM)

	ui, err := tui.New(model, tui.Options{
		StatusTemplate:   conf.UI.Status,
		RecoveryInterval: conf.UI.RecoveryInterval,
		Logger:           logger,
	})
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(ui, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	if err := output.Err(); err != nil {
		logger.Error("audio output failed", "error", err)
	}
	return model.Err()
}

func runRender(c *cobra.Command, args []string) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	if passes < 1 {
		return fault.New("invalid passes", fmsg.WithDesc("invalid passes", "--passes must be at least 1"))
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	grid, err := gridbeat.ReadGrid(f)
	f.Close()
	if err != nil {
		return err
	}
	voices, err := conf.Voices()
	if err != nil {
		return err
	}
	if len(voices) < len(grid.Tracks) {
		fmt.Fprintf(c.ErrOrStderr(), "warning: %d tracks but only %d voices; the extra tracks are silent\n", len(grid.Tracks), len(voices))
	}
	buf := tracker.Render(grid, voices, conf.PlayerTransport(), conf.LimiterSettings(), passes, conf.Audio.Channels)
	out := outputFile
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".wav"
	}
	w, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := gridbeat.WriteWav(w, buf, conf.Audio.SampleRate, conf.Audio.Channels); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	fmt.Fprintf(c.OutOrStdout(), "wrote %s (%d frames, peak %.2f)\n", out, len(buf)/conf.Audio.Channels, tracker.Peak(buf))
	return nil
}

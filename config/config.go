// Package config loads the gridbeat configuration: the audio format, the
// transport, the output limiter and the track layout.
//
// The defaults are embedded in the binary. A YAML file given by the user
// overrides any of them; keys missing from the file keep their defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/vsariola/gridbeat"
	"github.com/vsariola/gridbeat/tracker"
	"github.com/vsariola/gridbeat/voice"
	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Audio     Audio
		Transport Transport
		Limiter   Limiter
		Tracks    []Track
		MIDI      MIDI `yaml:"midi"`
		UI        UI   `yaml:"ui"`
	}

	Audio struct {
		SampleRate int
		Channels   int
	}

	Transport struct {
		BPM          float64 `yaml:"bpm"`
		StepsPerBeat int
		Steps        int
	}

	Limiter struct {
		AttackMs  float32
		ReleaseMs float32
		Threshold float32
	}

	// Track configures one column of the grid and the voice playing it.
	// Defaults overrides the voice's track patch by parameter name.
	Track struct {
		Name       string
		Voice      voice.Kind
		ParamLanes bool
		Defaults   map[string]float32 `yaml:",omitempty"`
	}

	MIDI struct {
		// Input is the prefix of the MIDI input port name to open; empty
		// means no MIDI input.
		Input string
	}

	UI struct {
		// Status is a text/template with sprig functions for the status line.
		Status           string
		RecoveryInterval time.Duration
	}
)

//go:embed default.yml
var defaultYaml []byte

// Default returns the built in configuration.
func Default() Config {
	var c Config
	if err := yaml.Unmarshal(defaultYaml, &c); err != nil {
		panic(fmt.Errorf("failed to unmarshal default config: %w", err))
	}
	return c
}

// Load reads path over the defaults. A missing file is not an error when
// optional is true.
func Load(path string, optional bool) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return c, nil
		}
		return c, fault.Wrap(err, fmsg.WithDesc("could not read config", fmt.Sprintf("Could not read %s", path)))
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fault.Wrap(err, fmsg.WithDesc("could not parse config", fmt.Sprintf("%s is not valid YAML", path)))
	}
	return c, c.Validate()
}

// Dir returns the directory for the user's gridbeat files.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fault.Wrap(err, fmsg.With("could not find the user config directory"))
	}
	return filepath.Join(dir, "gridbeat"), nil
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.Audio.SampleRate <= 0:
		return invalid("audio.samplerate must be positive")
	case c.Audio.Channels <= 0:
		return invalid("audio.channels must be positive")
	case c.Transport.BPM <= 0:
		return invalid("transport.bpm must be positive")
	case c.Transport.StepsPerBeat <= 0:
		return invalid("transport.stepsperbeat must be positive")
	case c.Transport.Steps <= 0:
		return invalid("transport.steps must be positive")
	case len(c.Tracks) == 0:
		return invalid("at least one track is needed")
	}
	for i, t := range c.Tracks {
		if _, err := voice.New(t.Voice, c.Audio.SampleRate, voice.Patch{}); err != nil {
			return invalid(fmt.Sprintf("track %d: unknown voice %q", i+1, t.Voice))
		}
		for name := range t.Defaults {
			if _, ok := gridbeat.ParseParam(name); !ok {
				return invalid(fmt.Sprintf("track %d: unknown parameter %q", i+1, name))
			}
		}
	}
	return nil
}

func invalid(desc string) error {
	return fault.New(desc, fmsg.WithDesc("invalid config", desc))
}

// Layout returns the column layout of a new grid.
func (c Config) Layout() []gridbeat.ColumnLayout {
	ret := make([]gridbeat.ColumnLayout, len(c.Tracks))
	for i, t := range c.Tracks {
		ret[i] = gridbeat.ColumnLayout{Name: t.Name, ParamLanes: t.ParamLanes}
	}
	return ret
}

// NewGrid returns an empty grid with the configured layout.
func (c Config) NewGrid() gridbeat.Grid {
	return gridbeat.NewGrid(c.Transport.Steps, c.Layout())
}

// Voices creates one voice per track.
func (c Config) Voices() ([]tracker.Voice, error) {
	ret := make([]tracker.Voice, len(c.Tracks))
	for i, t := range c.Tracks {
		patch := voice.DefaultPatch(t.Voice)
		for name, v := range t.Defaults {
			if p, ok := gridbeat.ParseParam(name); ok {
				patch[p] = v
			}
		}
		v, err := voice.New(t.Voice, c.Audio.SampleRate, patch)
		if err != nil {
			return nil, err
		}
		ret[i] = v
	}
	return ret, nil
}

func (c Config) PlayerTransport() tracker.Transport {
	return tracker.Transport{
		SampleRate:   c.Audio.SampleRate,
		BPM:          c.Transport.BPM,
		StepsPerBeat: c.Transport.StepsPerBeat,
	}
}

func (c Config) LimiterSettings() tracker.LimiterSettings {
	return tracker.LimiterSettings{
		AttackMs:  c.Limiter.AttackMs,
		ReleaseMs: c.Limiter.ReleaseMs,
		Threshold: c.Limiter.Threshold,
	}
}

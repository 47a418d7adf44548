package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vsariola/gridbeat"
	"github.com/vsariola/gridbeat/config"
	"github.com/vsariola/gridbeat/voice"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.Audio.SampleRate != 48000 || c.Transport.Steps != 16 || len(c.Tracks) != 8 {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.UI.RecoveryInterval != 30*time.Second {
		t.Errorf("RecoveryInterval = %v, want 30s", c.UI.RecoveryInterval)
	}
	g := c.NewGrid()
	if len(g.Tracks) != 8 || g.Steps() != 16 {
		t.Errorf("NewGrid has %d tracks and %d steps", len(g.Tracks), g.Steps())
	}
	if g.Tracks[0].Lanes != nil || g.Tracks[3].Lanes == nil {
		t.Error("parameter lanes should only be on the synth tracks")
	}
	voices, err := c.Voices()
	if err != nil || len(voices) != 8 {
		t.Fatalf("Voices() = %d voices, %v", len(voices), err)
	}
	if _, ok := voices[0].(*voice.Kick); !ok {
		t.Errorf("first voice is %T, want *voice.Kick", voices[0])
	}
	if spb := c.PlayerTransport().SamplesPerStep(); spb != 6000 {
		t.Errorf("SamplesPerStep() = %v, want 6000", spb)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	const doc = `
transport:
  bpm: 90
tracks:
  - name: bass
    voice: synth
    paramlanes: true
    defaults: {morph: 0.9}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := config.Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Transport.BPM != 90 || c.Transport.StepsPerBeat != 4 {
		t.Errorf("transport = %+v, want bpm 90 and the default steps per beat", c.Transport)
	}
	if len(c.Tracks) != 1 || c.Tracks[0].Name != "bass" {
		t.Fatalf("tracks = %+v", c.Tracks)
	}
	voices, err := c.Voices()
	if err != nil {
		t.Fatal(err)
	}
	s := voices[0].(*voice.Synth)
	if got := s.Patch()[gridbeat.ParamMorph]; got != 0.9 {
		t.Errorf("morph default = %v, want 0.9", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yml")
	if _, err := config.Load(path, true); err != nil {
		t.Errorf("optional missing file: %v", err)
	}
	if _, err := config.Load(path, false); err == nil {
		t.Error("required missing file did not fail")
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]func(c *config.Config){
		"sample rate":   func(c *config.Config) { c.Audio.SampleRate = 0 },
		"bpm":           func(c *config.Config) { c.Transport.BPM = -1 },
		"steps":         func(c *config.Config) { c.Transport.Steps = 0 },
		"no tracks":     func(c *config.Config) { c.Tracks = nil },
		"unknown voice": func(c *config.Config) { c.Tracks[0].Voice = "theremin" },
		"unknown param": func(c *config.Config) { c.Tracks[0].Defaults = map[string]float32{"volume": 1} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := config.Default()
			mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

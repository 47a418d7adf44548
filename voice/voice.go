// Package voice contains the sound sources that can be bound to gridbeat
// tracks: three fixed percussion voices and a general purpose synth voice.
//
// All voices share the same parameter set. A voice keeps two copies of it:
// the track defaults, and the working patch that notes modify. ResetPatch
// restores the working patch from the defaults.
package voice

import (
	"math"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/vsariola/gridbeat"
	"github.com/vsariola/gridbeat/tracker"
)

type (
	// Patch holds one value in 0..1 per parameter.
	Patch [gridbeat.NumParams]float32

	Kind string

	base struct {
		sampleRate float64
		defaults   Patch
		patch      Patch
		amp        decay
		seed       uint64
	}

	// decay is an exponentially decaying envelope.
	decay struct {
		level, coef float64
	}
)

const (
	KindKick  Kind = "kick"
	KindSnare Kind = "snare"
	KindHihat Kind = "hihat"
	KindSynth Kind = "synth"
)

// Kinds lists the available voices.
var Kinds = []Kind{KindKick, KindSnare, KindHihat, KindSynth}

// DefaultPatch returns the track defaults of a voice kind.
func DefaultPatch(k Kind) Patch {
	switch k {
	case KindSynth:
		return Patch{0.25, 0.5, 0.5, 0.5}
	default:
		return Patch{0, 0.5, 0.5, 0.5}
	}
}

// New returns a voice of the given kind with defaults as its track patch.
func New(k Kind, sampleRate int, defaults Patch) (tracker.Voice, error) {
	if sampleRate <= 0 {
		return nil, fault.New("invalid sample rate", fmsg.WithDesc("invalid sample rate", "The sample rate must be positive"))
	}
	b := base{sampleRate: float64(sampleRate), defaults: defaults, patch: defaults, seed: 0x2545f4914f6cdd1d}
	switch k {
	case KindKick:
		return &Kick{base: b}, nil
	case KindSnare:
		return &Snare{base: b}, nil
	case KindHihat:
		return &Hihat{base: b}, nil
	case KindSynth:
		return &Synth{base: b}, nil
	}
	return nil, fault.New("unknown voice", fmsg.WithDesc("unknown voice", "Unknown voice kind \""+string(k)+"\""))
}

func (b *base) ResetPatch() { b.patch = b.defaults }

func (b *base) ApplyParameter(p gridbeat.Param, v float32) {
	if p < 0 || p >= gridbeat.NumParams {
		return
	}
	b.patch[p] = v
}

// Patch returns the working patch.
func (b *base) Patch() Patch { return b.patch }

func (b *base) param(p gridbeat.Param) float64 { return float64(b.patch[p]) }

// noise returns white noise in [-1, 1].
func (b *base) noise() float64 {
	b.seed = b.seed*6364136223846793005 + 1442695040888963407
	return float64(int64(b.seed>>33)-int64(1<<30)) / float64(1<<30)
}

func velocityGain(velocity int) float64 {
	return math.Max(0, math.Min(float64(velocity), 127)) / 127
}

// start sets the envelope to level, decaying by 60 dB in seconds.
func (d *decay) start(level, seconds, sampleRate float64) {
	d.level = level
	d.coef = math.Pow(0.001, 1/(seconds*sampleRate))
}

func (d *decay) next() float64 {
	v := d.level
	d.level *= d.coef
	if d.level < 1e-6 {
		d.level = 0
	}
	return v
}

// scaled maps a 0..1 parameter exponentially onto lo..hi.
func scaled(v float64, lo, hi float32) float64 {
	return float64(gridbeat.ScaleLog(float32(v), lo, hi))
}

func softClip(x float64) float64 { return math.Tanh(x) }

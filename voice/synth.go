package voice

import (
	"math"

	"github.com/vsariola/gridbeat"
)

// Engine is the oscillator model of a Synth, chosen by the engine parameter.
type Engine int

const (
	EngineSine Engine = iota
	EngineTriangle
	EngineSaw
	EngineSquare
	EngineFM
	NumEngines
)

// Synth is a decaying single oscillator voice with a low pass filter.
//
// Engine selects the oscillator, harmonics the filter cutoff, morph the
// decay time and timbre the pulse width or the FM index.
type Synth struct {
	base
	phase, modPhase float64
	freq            float64
	lp              float64
}

// EngineOf returns the engine selected by an engine parameter value.
func EngineOf(v float32) Engine {
	e := Engine(math.Round(float64(v) * float64(NumEngines-1)))
	return max(EngineSine, min(e, NumEngines-1))
}

func (s *Synth) NoteOn(pitch, velocity int) {
	s.freq = float64(gridbeat.MIDIToFreq(pitch))
	s.amp.start(velocityGain(velocity), scaled(s.param(gridbeat.ParamMorph), 0.05, 4), s.sampleRate)
}

func (s *Synth) Render() float32 {
	if s.amp.level == 0 {
		return 0
	}
	s.phase += s.freq / s.sampleRate
	s.phase -= math.Floor(s.phase)
	timbre := s.param(gridbeat.ParamTimbre)
	var x float64
	switch EngineOf(s.patch[gridbeat.ParamEngine]) {
	case EngineSine:
		x = math.Sin(2 * math.Pi * s.phase)
	case EngineTriangle:
		x = 4*math.Abs(s.phase-0.5) - 1
	case EngineSaw:
		x = 2*s.phase - 1
	case EngineSquare:
		if s.phase < 0.05+0.9*timbre {
			x = 1
		} else {
			x = -1
		}
	case EngineFM:
		s.modPhase += 2 * s.freq / s.sampleRate
		s.modPhase -= math.Floor(s.modPhase)
		x = math.Sin(2*math.Pi*s.phase + 4*timbre*math.Sin(2*math.Pi*s.modPhase))
	}
	cutoff := scaled(s.param(gridbeat.ParamHarmonics), 100, 16000)
	a := 1 - math.Exp(-2*math.Pi*cutoff/s.sampleRate)
	s.lp += a * (x - s.lp)
	return float32(s.lp * s.amp.next() * 0.5)
}

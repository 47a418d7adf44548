package voice

import (
	"math"

	"github.com/vsariola/gridbeat"
)

// Snare mixes two detuned sines with high passed noise.
//
// Harmonics balances tone against noise, morph sets the decay time and
// timbre the brightness of the noise.
type Snare struct {
	base
	phase1, phase2 float64
	freq           float64
	noiseEnv       decay
	hp             highpass
}

func (s *Snare) NoteOn(pitch, velocity int) {
	gain := velocityGain(velocity)
	s.freq = float64(gridbeat.MIDIToFreq(pitch))
	s.phase1, s.phase2 = 0, 0
	d := scaled(s.param(gridbeat.ParamMorph), 0.05, 0.6)
	s.amp.start(gain, d*0.7, s.sampleRate)
	s.noiseEnv.start(gain, d, s.sampleRate)
	s.hp.set(scaled(s.param(gridbeat.ParamTimbre), 200, 8000), s.sampleRate)
}

func (s *Snare) Render() float32 {
	if s.amp.level == 0 && s.noiseEnv.level == 0 {
		return 0
	}
	s.phase1 += s.freq / s.sampleRate
	s.phase2 += s.freq * 1.9 / s.sampleRate
	mix := s.param(gridbeat.ParamHarmonics)
	tone := (math.Sin(2*math.Pi*s.phase1) + 0.4*math.Sin(2*math.Pi*s.phase2)) * s.amp.next()
	noise := s.hp.tick(s.noise()) * s.noiseEnv.next()
	return float32(softClip((1-mix)*tone + mix*noise))
}

// highpass is a one-pole high pass filter.
type highpass struct {
	a      float64
	x1, y1 float64
}

func (h *highpass) set(cutoff, sampleRate float64) {
	rc := 1 / (2 * math.Pi * cutoff)
	h.a = rc / (rc + 1/sampleRate)
}

func (h *highpass) tick(x float64) float64 {
	y := h.a * (h.y1 + x - h.x1)
	h.x1, h.y1 = x, y
	return y
}

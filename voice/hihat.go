package voice

import (
	"math"

	"github.com/vsariola/gridbeat"
)

// metalRatios are the frequency ratios of the square oscillators of the
// hihat, relative to the note frequency.
var metalRatios = [...]float64{1, 1.342, 1.2312, 1.6532, 1.9523, 2.1523}

// Hihat is high passed noise mixed with six inharmonic square waves.
//
// Harmonics balances the squares against the noise, morph sets the decay
// time and timbre the high pass cutoff.
type Hihat struct {
	base
	phases [len(metalRatios)]float64
	freq   float64
	hp     highpass
}

func (h *Hihat) NoteOn(pitch, velocity int) {
	// hihat pitches sit far above the note: a C2 gives about 520 Hz
	h.freq = float64(gridbeat.MIDIToFreq(pitch + 36))
	h.amp.start(velocityGain(velocity)*0.6, scaled(h.param(gridbeat.ParamMorph), 0.02, 0.8), h.sampleRate)
	h.hp.set(scaled(h.param(gridbeat.ParamTimbre), 2000, 12000), h.sampleRate)
}

func (h *Hihat) Render() float32 {
	if h.amp.level == 0 {
		return 0
	}
	var metal float64
	for i, r := range metalRatios {
		h.phases[i] += h.freq * r / h.sampleRate
		h.phases[i] -= math.Floor(h.phases[i])
		if h.phases[i] < 0.5 {
			metal++
		} else {
			metal--
		}
	}
	metal /= float64(len(metalRatios))
	mix := h.param(gridbeat.ParamHarmonics)
	x := h.hp.tick(mix*metal + (1-mix)*h.noise())
	return float32(softClip(x * h.amp.next()))
}

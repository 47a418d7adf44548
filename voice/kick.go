package voice

import (
	"math"

	"github.com/vsariola/gridbeat"
)

// Kick is a pitch swept sine with a short click on top.
//
// Harmonics sets the depth of the pitch sweep, morph the decay time and
// timbre the loudness of the click.
type Kick struct {
	base
	phase  float64
	freq   float64
	sweep  decay
	click  decay
	clickP float64
}

func (k *Kick) NoteOn(pitch, velocity int) {
	gain := velocityGain(velocity)
	k.freq = float64(gridbeat.MIDIToFreq(pitch))
	k.phase = 0
	k.clickP = 0
	k.amp.start(gain, scaled(k.param(gridbeat.ParamMorph), 0.08, 1.5), k.sampleRate)
	k.sweep.start(k.param(gridbeat.ParamHarmonics)*6, 0.05, k.sampleRate)
	k.click.start(gain*k.param(gridbeat.ParamTimbre)*0.5, 0.01, k.sampleRate)
}

func (k *Kick) Render() float32 {
	if k.amp.level == 0 {
		return 0
	}
	f := k.freq * (1 + k.sweep.next())
	k.phase += f / k.sampleRate
	k.clickP += 2100 / k.sampleRate
	body := math.Sin(2*math.Pi*k.phase) * k.amp.next()
	click := math.Sin(2*math.Pi*k.clickP) * k.click.next()
	return float32(softClip(body + click))
}

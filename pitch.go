package gridbeat

import "math"

const (
	A4Freq = 440
	A4MIDI = 69
)

// MIDIToFreq returns the frequency in Hz of a MIDI note number.
func MIDIToFreq(pitch int) float32 {
	return float32(A4Freq * math.Pow(2, float64(pitch-A4MIDI)/12))
}

// FreqToMIDI returns the MIDI note number closest to a frequency in Hz.
func FreqToMIDI(freq float32) int {
	return int(math.Round(math.Log2(float64(freq)/A4Freq)*12 + A4MIDI))
}

// ScaleLog maps value in 0..1 exponentially onto min..max; min must be
// nonzero.
func ScaleLog(value, min, max float32) float32 {
	return min * float32(math.Pow(float64(max/min), float64(value)))
}

package gridbeat

import (
	"io"
	"math"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWav encodes interleaved float32 samples as a 16-bit PCM wave file.
// Samples are clamped to [-1, 1].
func WriteWav(w io.WriteSeeker, buffer []float32, sampleRate, channels int) error {
	enc := wav.NewEncoder(w, sampleRate, 16, channels, 1)
	data := make([]int, len(buffer))
	for i, v := range buffer {
		data[i] = int(math.Round(float64(clamp(v, -1, 1)) * math.MaxInt16))
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fault.Wrap(err, fmsg.With("could not encode wav"))
	}
	if err := enc.Close(); err != nil {
		return fault.Wrap(err, fmsg.With("could not finish wav"))
	}
	return nil
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

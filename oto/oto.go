// Package oto plays the output of a Processor on the default audio device
// using ebitengine/oto.
package oto

import (
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/ebitengine/oto/v3"
)

type (
	// Processor fills a buffer of interleaved float32 frames. It is called
	// from the audio device goroutine.
	Processor interface {
		Process(buf []float32, channels int)
	}

	// StreamReader adapts a Processor into the io.Reader oto pulls from.
	// Only the oto player goroutine reads from it.
	StreamReader struct {
		source   Processor
		channels int
		buf      []float32
	}

	// Output is a running audio stream.
	Output struct {
		player *oto.Player
	}
)

const bufferDuration = 20 * time.Millisecond

func NewStreamReader(source Processor, channels int) *StreamReader {
	return &StreamReader{source: source, channels: channels}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	frameBytes := 4 * r.channels
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}
	need := frames * r.channels
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf, r.channels)
	FloatBufferToLE(p, r.buf)
	return frames * frameBytes, nil
}

// Open starts playing source on the default output device. It blocks until
// the device is ready.
func Open(source Processor, sampleRate, channels int) (*Output, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferDuration,
	})
	if err != nil {
		return nil, fault.Wrap(err, fmsg.WithDesc("cannot create oto context", "The audio device could not be opened"))
	}
	<-ready
	player := ctx.NewPlayer(NewStreamReader(source, channels))
	player.Play()
	return &Output{player: player}, nil
}

// Err returns the error the stream stopped with, if any.
func (o *Output) Err() error {
	if err := o.player.Err(); err != nil {
		return fault.Wrap(err, fmsg.With("audio stream failed"))
	}
	return nil
}

// Close disposes of resources
func (o *Output) Close() error {
	if err := o.player.Close(); err != nil {
		return fault.Wrap(err, fmsg.With("cannot close oto player"))
	}
	return nil
}

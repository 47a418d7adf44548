//go:build cgo

package cmd

import (
	"github.com/vsariola/gridbeat/tracker"
	"github.com/vsariola/gridbeat/tracker/gomidi"
)

func NewMidiContext(broker *tracker.Broker) tracker.MIDIContext {
	return gomidi.NewContext(broker)
}

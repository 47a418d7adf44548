package tracker

import (
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
)

type (
	// MIDIContext enumerates the MIDI input ports of a driver.
	MIDIContext interface {
		Inputs(yield func(input MIDIInputDevice) bool)
		Close()
		Support() MIDISupport
	}

	MIDIInputDevice interface {
		Open() error
		Close() error
		IsOpen() bool
		String() string
	}

	MIDISupport int

	// MIDINote is a note-on received from a MIDI input port.
	MIDINote struct {
		Channel  int
		Key      int
		Velocity int
	}
)

const (
	MIDISupportNotCompiled MIDISupport = iota
	MIDISupportNoDriver
	MIDISupported
)

func (s MIDISupport) String() string {
	switch s {
	case MIDISupportNotCompiled:
		return "not compiled"
	case MIDISupportNoDriver:
		return "no driver"
	}
	return "supported"
}

// OpenMIDIInput opens the first input port whose name starts with
// namePrefix. An empty prefix opens the first port there is.
func OpenMIDIInput(c MIDIContext, namePrefix string) (MIDIInputDevice, error) {
	if c.Support() != MIDISupported {
		return nil, fault.New("midi not available", fmsg.WithDesc("midi not available", "MIDI input is "+c.Support().String()))
	}
	for input := range c.Inputs {
		if !strings.HasPrefix(input.String(), namePrefix) {
			continue
		}
		if err := input.Open(); err != nil {
			return nil, fault.Wrap(err, fmsg.With("could not open midi input"))
		}
		return input, nil
	}
	return nil, fault.New("no matching midi input", fmsg.WithDesc("no matching midi input", "No MIDI input port starts with \""+namePrefix+"\""))
}

// NullMIDIContext is a mockup MIDIContext if you don't want to create a real
// one.
type NullMIDIContext struct{}

func (m NullMIDIContext) Inputs(yield func(input MIDIInputDevice) bool) {}
func (m NullMIDIContext) Close()                                        {}
func (m NullMIDIContext) Support() MIDISupport                          { return MIDISupportNotCompiled }

package gomidi

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/vsariola/gridbeat/tracker"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	// RTMIDIContext listens to one rtmidi input port at a time and forwards
	// note-ons to the broker's MIDINotes channel.
	RTMIDIContext struct {
		driver    *rtmididrv.Driver
		currentIn drivers.In
		stop      func()
		broker    *tracker.Broker
	}

	RTMIDIDevice struct {
		context *RTMIDIContext
		in      drivers.In
	}
)

// NewContext opens the rtmidi driver. If that fails, the context reports
// MIDISupportNoDriver and lists no inputs.
func NewContext(broker *tracker.Broker) *RTMIDIContext {
	m := RTMIDIContext{broker: broker}
	// there's not much we can do if this fails, so just use m.driver = nil to
	// indicate no driver available
	m.driver, _ = rtmididrv.New()
	return &m
}

func (m *RTMIDIContext) Inputs(yield func(tracker.MIDIInputDevice) bool) {
	if m.driver == nil {
		return
	}
	ins, err := m.driver.Ins()
	if err != nil {
		return
	}
	for _, in := range ins {
		if !yield(RTMIDIDevice{context: m, in: in}) {
			return
		}
	}
}

func (m *RTMIDIContext) Support() tracker.MIDISupport {
	if m.driver == nil {
		return tracker.MIDISupportNoDriver
	}
	return tracker.MIDISupported
}

// Open the input port while closing the currently open one if necessary.
func (d RTMIDIDevice) Open() error {
	c := d.context
	if c.currentIn == d.in {
		return nil
	}
	if c.driver == nil {
		return fault.New("no midi driver", fmsg.WithDesc("no midi driver", "MIDI input is not available on this system"))
	}
	c.closeCurrent()
	if err := d.in.Open(); err != nil {
		return fault.Wrap(err, fmsg.With("opening MIDI input failed"))
	}
	stop, err := midi.ListenTo(d.in, c.HandleMessage)
	if err != nil {
		d.in.Close()
		return fault.Wrap(err, fmsg.With("listening to MIDI input failed"))
	}
	c.currentIn, c.stop = d.in, stop
	return nil
}

func (d RTMIDIDevice) Close() error {
	if d.context.currentIn != d.in {
		return d.in.Close()
	}
	d.context.closeCurrent()
	return nil
}

func (d RTMIDIDevice) IsOpen() bool   { return d.in.IsOpen() }
func (d RTMIDIDevice) String() string { return d.in.String() }

func (c *RTMIDIContext) closeCurrent() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	if c.currentIn != nil && c.currentIn.IsOpen() {
		c.currentIn.Close()
	}
	c.currentIn = nil
}

func (c *RTMIDIContext) Close() {
	if c.driver == nil {
		return
	}
	c.closeCurrent()
	c.driver.Close()
}

// HandleMessage is called by the driver goroutine. Note-ons with nonzero
// velocity are forwarded; if the model is busy, they are dropped.
func (c *RTMIDIContext) HandleMessage(msg midi.Message, timestampms int32) {
	var channel, key, velocity uint8
	if !msg.GetNoteOn(&channel, &key, &velocity) || velocity == 0 {
		return
	}
	tracker.TrySend(c.broker.MIDINotes, tracker.MIDINote{Channel: int(channel), Key: int(key), Velocity: int(velocity)})
}

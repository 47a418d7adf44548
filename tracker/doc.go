/*
Package tracker implements the engine of the gridbeat step sequencer.

The editing side is the Model: it owns the History of grid snapshots and
turns key presses (through Actions) into new snapshots. Every snapshot is
decoded into a gridbeat.State and handed to the Player through a Relay.

The Player runs inside the audio callback. It installs the newest State at
the start of each buffer, advances the transport clock one sample at a time,
triggers the Voice of each track when the clock enters a step holding a note
and mixes the voices through a Limiter. The step entered last is relayed back
to the Model for drawing the playhead.

Neither side ever waits for the other: both Relays keep only the newest
value, and a reader that falls behind simply skips the older ones.
*/
package tracker

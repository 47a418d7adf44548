package tracker

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/vsariola/gridbeat"
)

// DefaultMaxUndo is the default number of snapshots kept in a History.
const DefaultMaxUndo = 256

// History is a linear undo log of whole grid snapshots. The snapshot at Pos
// is the visible grid. Pushing after an undo discards everything after Pos.
// Every operation publishes the decoded visible grid to the player, even
// when it does not move Pos, so the player is always in sync with the
// editor.
//
// History belongs to the editing side and is not safe for concurrent use.
type History struct {
	log     []gridbeat.Grid
	pos     int
	relay   *Relay[gridbeat.State]
	maxUndo int
}

// NewHistory returns a History holding initial and publishes it. A publish
// error is returned together with the History, which is still usable.
func NewHistory(initial gridbeat.Grid, relay *Relay[gridbeat.State]) (*History, error) {
	h := &History{
		log:     []gridbeat.Grid{initial.Copy()},
		relay:   relay,
		maxUndo: DefaultMaxUndo,
	}
	return h, h.publish()
}

// SetMaxUndo limits the log to n snapshots; n < 1 means unlimited.
func (h *History) SetMaxUndo(n int) {
	h.maxUndo = n
	h.trim()
}

// Push records g as the new visible grid. The History takes ownership of g:
// callers must not modify it afterwards.
func (h *History) Push(g gridbeat.Grid) error {
	state := gridbeat.Decode(g)
	h.log = append(h.log[:h.pos+1], g)
	h.pos++
	h.trim()
	return h.send(state)
}

// Undo steps back one snapshot if possible and republishes.
func (h *History) Undo() error {
	if h.pos > 0 {
		h.pos--
	}
	return h.publish()
}

// Redo steps forward one snapshot if possible and republishes.
func (h *History) Redo() error {
	if h.pos < len(h.log)-1 {
		h.pos++
	}
	return h.publish()
}

// Reset replaces the whole log with a single snapshot, e.g. after loading a
// file.
func (h *History) Reset(g gridbeat.Grid) error {
	h.log = append(h.log[:0], g.Copy())
	h.pos = 0
	return h.publish()
}

// Grid returns the visible snapshot. Callers must Copy it before editing.
func (h *History) Grid() gridbeat.Grid { return h.log[h.pos] }

func (h *History) Pos() int      { return h.pos }
func (h *History) Len() int      { return len(h.log) }
func (h *History) CanUndo() bool { return h.pos > 0 }
func (h *History) CanRedo() bool { return h.pos < len(h.log)-1 }

func (h *History) trim() {
	if h.maxUndo < 1 || len(h.log) <= h.maxUndo {
		return
	}
	drop := len(h.log) - h.maxUndo
	h.log = append(h.log[:0], h.log[drop:]...)
	h.pos -= drop
	if h.pos < 0 {
		h.pos = 0
	}
}

func (h *History) publish() error {
	return h.send(gridbeat.Decode(h.log[h.pos]))
}

func (h *History) send(s gridbeat.State) error {
	if err := h.relay.Send(s); err != nil {
		return fault.Wrap(err, fmsg.WithDesc("could not publish pattern", "The audio engine is no longer running"))
	}
	return nil
}

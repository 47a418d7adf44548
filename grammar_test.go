package gridbeat_test

import (
	"testing"

	"github.com/vsariola/gridbeat"
)

func TestDecodeCell(t *testing.T) {
	tests := []struct {
		text  string
		step  int
		pitch int
		ok    bool
	}{
		{"C0", 0, 12, true},
		{"C#0", 1, 13, true},
		{"C1", 1, 24, true},
		{"C", 0, 36, true},
		{"c", 0, 36, true},
		{"c#", 2, 37, true},
		{"B3", 3, 10 + 12 + 36, true},
		{"A-1", 0, 9, true},
		{" E4 ", 0, 4 + 12 + 48, true},
		{"60", 5, 60, true},
		{"-5", 0, -5, true},
		{"127", 0, 127, true},
		{"128", 0, 0, false},
		{gridbeat.EmptyCell, 0, 0, false},
		{"", 0, 0, false},
		{"x", 0, 0, false},
		{"C#x", 0, 0, false},
		{"H2", 0, 0, false},
		{"A#", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			note, ok := gridbeat.DecodeCell(tt.text, tt.step)
			if ok != tt.ok {
				t.Fatalf("DecodeCell(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !ok {
				return
			}
			if note.Pitch != tt.pitch {
				t.Errorf("DecodeCell(%q) pitch = %d, want %d", tt.text, note.Pitch, tt.pitch)
			}
			if note.Timestamp != float32(tt.step) {
				t.Errorf("DecodeCell(%q) timestamp = %v, want %v", tt.text, note.Timestamp, tt.step)
			}
			if note.Velocity != gridbeat.DefaultVelocity {
				t.Errorf("DecodeCell(%q) velocity = %d, want %d", tt.text, note.Velocity, gridbeat.DefaultVelocity)
			}
			for p, o := range note.Parameters {
				if o.Set {
					t.Errorf("DecodeCell(%q) parameter %v set, want absent", tt.text, gridbeat.Param(p))
				}
			}
		})
	}
}

func TestDecodeParam(t *testing.T) {
	tests := []struct {
		text  string
		value float32
		ok    bool
	}{
		{"0", 0, true},
		{"50", 0.5, true},
		{"100", 1, true},
		{" 25 ", 0.25, true},
		{"101", 0, false},
		{"-1", 0, false},
		{"C", 0, false},
		{gridbeat.EmptyCell, 0, false},
	}
	for _, tt := range tests {
		v, ok := gridbeat.DecodeParam(tt.text)
		if ok != tt.ok || v != tt.value {
			t.Errorf("DecodeParam(%q) = %v, %v; want %v, %v", tt.text, v, ok, tt.value, tt.ok)
		}
	}
}

func TestDecode(t *testing.T) {
	g := gridbeat.NewGrid(4, []gridbeat.ColumnLayout{{Name: "kick"}, {Name: "lead", ParamLanes: true}})
	g.SetCell(0, gridbeat.NoteLane, 0, "C")
	g.SetCell(1, gridbeat.NoteLane, 2, "60")
	g.SetCell(1, gridbeat.ParamLane(gridbeat.ParamMorph), 2, "30")
	g.SetCell(1, gridbeat.ParamLane(gridbeat.ParamTimbre), 2, "oops")
	g.SetCell(1, gridbeat.ParamLane(gridbeat.ParamEngine), 3, "10")
	s := gridbeat.Decode(g)
	if len(s.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(s.Tracks))
	}
	for i, tr := range s.Tracks {
		if len(tr.Notes) != 4 {
			t.Fatalf("track %d has %d slots, want 4", i, len(tr.Notes))
		}
	}
	if n, ok := s.NoteAt(0, 0); !ok || n.Pitch != 36 {
		t.Errorf("track 0 step 0 = %v, %v; want pitch 36", n, ok)
	}
	n, ok := s.NoteAt(1, 2)
	if !ok || n.Pitch != 60 {
		t.Fatalf("track 1 step 2 = %v, %v; want pitch 60", n, ok)
	}
	if v, set := n.Parameters[gridbeat.ParamMorph].Unpack(); !set || v != 0.3 {
		t.Errorf("morph = %v, %v; want 0.3, true", v, set)
	}
	for _, p := range []gridbeat.Param{gridbeat.ParamEngine, gridbeat.ParamHarmonics, gridbeat.ParamTimbre} {
		if n.Parameters[p].Set {
			t.Errorf("%v set, want absent", p)
		}
	}
	if _, ok := s.NoteAt(1, 3); ok {
		t.Error("parameter without a note should not produce a note")
	}
}

func TestDecodeRaggedColumns(t *testing.T) {
	g := gridbeat.Grid{Tracks: []gridbeat.Column{
		{Notes: []string{"C", "D", "E"}},
		{Notes: []string{"1"}},
	}}
	s := gridbeat.Decode(g)
	if got := len(s.Tracks[1].Notes); got != 3 {
		t.Fatalf("short column decoded to %d slots, want 3", got)
	}
	if _, ok := s.NoteAt(1, 2); ok {
		t.Error("missing cell should decode as a rest")
	}
}

func TestIncrement(t *testing.T) {
	tests := []struct {
		text  string
		delta int
		want  string
		ok    bool
	}{
		{"5", 1, "6", true},
		{"0", -1, "-1", true},
		{"C", 1, "C#", true},
		{"c", -1, "B", true},
		{"B", 1, "C", true},
		{"G#", 2, "B", true},
		{"C4", 1, "C4", false},
		{gridbeat.EmptyCell, 1, gridbeat.EmptyCell, false},
	}
	for _, tt := range tests {
		got, ok := gridbeat.Increment(tt.text, tt.delta)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Increment(%q, %d) = %q, %v; want %q, %v", tt.text, tt.delta, got, ok, tt.want, tt.ok)
		}
	}
}

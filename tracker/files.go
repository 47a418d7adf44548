package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/vsariola/gridbeat"
)

// Save writes the grid to path, or to the current file path if path is
// empty. The format follows the extension: JSON for .json, YAML otherwise.
func (m *Model) Save(path string) error {
	if path == "" {
		path = m.d.FilePath
	}
	if path == "" {
		return fault.New("no file name", fmsg.WithDesc("no file name", "Give a file name, e.g. :w beat.yml"))
	}
	f, err := os.Create(path)
	if err != nil {
		return fault.Wrap(err, fmsg.With("could not create file"))
	}
	if err := gridbeat.WriteGrid(f, m.Grid(), filepath.Ext(path)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fault.Wrap(err, fmsg.With("could not write file"))
	}
	m.d.FilePath = path
	m.d.ChangedSinceSave = false
	m.log.Info("saved grid", "path", path)
	m.alerts.Add(fmt.Sprintf("Wrote %s", path), Info)
	return nil
}

// Load replaces the grid with the one in path. The undo history starts over.
func (m *Model) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fault.Wrap(err, fmsg.WithDesc("could not open file", fmt.Sprintf("Could not open %s", path)))
	}
	defer f.Close()
	g, err := gridbeat.ReadGrid(f)
	if err != nil {
		return err
	}
	m.check(m.history.Reset(g))
	m.d.Grid = g
	m.d.FilePath = path
	m.d.ChangedSinceSave = false
	m.d.ChangedSinceRecovery = true
	m.clampCursor()
	m.log.Info("loaded grid", "path", path, "tracks", len(g.Tracks), "steps", g.Steps())
	m.alerts.Add(fmt.Sprintf("Opened %s", path), Info)
	return nil
}

// SetFilePath names the file that Save writes to when given no path, e.g.
// for a new file that does not exist yet.
func (m *Model) SetFilePath(path string) { m.d.FilePath = path }

// SaveRecovery saves the model to the recovery file if anything changed
// since the last time. NewModel picks the file up on the next start.
func (m *Model) SaveRecovery() error {
	if !m.d.ChangedSinceRecovery {
		return nil
	}
	if m.d.RecoveryFilePath == "" {
		return fault.New("no recovery file path")
	}
	out, err := json.Marshal(m.d)
	if err != nil {
		return fault.Wrap(err, fmsg.With("could not marshal recovery data"))
	}
	dir := filepath.Dir(m.d.RecoveryFilePath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fault.Wrap(err, fmsg.With("could not create recovery directory"))
	}
	if err := os.WriteFile(m.d.RecoveryFilePath, out, 0o644); err != nil {
		return fault.Wrap(err, fmsg.With("could not write recovery file"))
	}
	m.d.ChangedSinceRecovery = false
	return nil
}

// RemoveRecovery deletes the recovery file, e.g. after a clean exit.
func (m *Model) RemoveRecovery() {
	if m.d.RecoveryFilePath == "" {
		return
	}
	if err := os.Remove(m.d.RecoveryFilePath); err != nil && !os.IsNotExist(err) {
		m.log.Warn("could not remove recovery file", "error", err)
	}
}

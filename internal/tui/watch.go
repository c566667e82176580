package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"sidedrawer/internal/anim"
	"sidedrawer/internal/config"
	"sidedrawer/internal/drawer"
)

// presetMsg carries a reloaded preset, or the error that kept it from loading.
type presetMsg struct {
	path   string
	preset *config.Preset
	err    error
}

// presetWatcher reports changes to one preset file. The parent directory
// is watched so editors that save by rename are still seen.
type presetWatcher struct {
	w    *fsnotify.Watcher
	path string
}

func watchPreset(path string) (*presetWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &presetWatcher{w: w, path: filepath.Clean(abs)}, nil
}

func (pw *presetWatcher) Close() error { return pw.w.Close() }

// wait blocks for the next relevant change and loads the preset.
func (pw *presetWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-pw.w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != pw.path {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
					continue
				}
				p, err := config.Load(pw.path)
				return presetMsg{path: pw.path, preset: p, err: err}
			case err, ok := <-pw.w.Errors:
				if !ok {
					return nil
				}
				return presetMsg{path: pw.path, err: err}
			}
		}
	}
}

// applyPreset swaps in reloaded settings. The session survives unless the
// menu changed sides or the spring was retuned; then the controller is
// rebuilt in its current open state.
func (m *model) applyPreset(msg presetMsg) {
	if msg.err != nil {
		m.push("reload failed")
		m.logf("preset %s: %v", msg.path, msg.err)
		return
	}
	next := msg.preset.Apply(drawer.DefaultConfig())
	spring := msg.preset.SpringOptions()
	flip := next.Position != m.cfg.Position
	retune := spring != m.opts.Spring
	m.cfg = next
	m.gestures = !next.DisableGestures.Active()
	if flip || retune {
		m.tracker.Cancel()
		if retune {
			// the old controller still owns the running settle
			m.spring.Finish()
			m.spring = anim.NewSpring(spring)
			m.opts.Spring = spring
		}
		m.rebuild(m.ctrl.IsOpen())
	} else {
		m.ctrl.SetConfig(m.wired())
	}
	m.push("preset reloaded")
	m.logf("preset %s reloaded", msg.path)
}

// Package script replays a recorded sequence of pointer samples, layout
// changes and open/close requests against a drawer and records what it
// reported back.
package script

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"sidedrawer/internal/config"
)

// Script is a replayable drawer session.
//
//	viewport: {width: 300, height: 600}
//	preset: {menuPosition: left}
//	steps:
//	  - press: [5, 100]
//	  - move: [20, 101]
//	  - move: [85, 102]
//	  - release: [85, 102]
//	  - settle: true
//	  - expect: {open: true, offset: 200}
type Script struct {
	Viewport Viewport       `json:"viewport" yaml:"viewport"`
	Preset   *config.Preset `json:"preset,omitempty" yaml:"preset,omitempty"`
	Steps    []Step         `json:"steps" yaml:"steps"`
}

type Viewport struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Step holds exactly one action.
type Step struct {
	Press   []float64 `json:"press,omitempty" yaml:"press,omitempty"`
	Move    []float64 `json:"move,omitempty" yaml:"move,omitempty"`
	Release []float64 `json:"release,omitempty" yaml:"release,omitempty"`
	Cancel  bool      `json:"cancel,omitempty" yaml:"cancel,omitempty"`
	Request string    `json:"request,omitempty" yaml:"request,omitempty"` // open|close|toggle
	Dismiss bool      `json:"dismiss,omitempty" yaml:"dismiss,omitempty"`
	Resize  []float64 `json:"resize,omitempty" yaml:"resize,omitempty"`
	Frames  int       `json:"frames,omitempty" yaml:"frames,omitempty"`
	Settle  bool      `json:"settle,omitempty" yaml:"settle,omitempty"`
	Expect  *Expect   `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Expect asserts controller state at a point in the script.
type Expect struct {
	Open      *bool    `json:"open,omitempty" yaml:"open,omitempty"`
	Offset    *float64 `json:"offset,omitempty" yaml:"offset,omitempty"`
	Animating *bool    `json:"animating,omitempty" yaml:"animating,omitempty"`
}

// Kind names the action of a step.
func (s Step) Kind() string {
	var kinds []string
	if s.Press != nil {
		kinds = append(kinds, "press")
	}
	if s.Move != nil {
		kinds = append(kinds, "move")
	}
	if s.Release != nil {
		kinds = append(kinds, "release")
	}
	if s.Cancel {
		kinds = append(kinds, "cancel")
	}
	if s.Request != "" {
		kinds = append(kinds, "request")
	}
	if s.Dismiss {
		kinds = append(kinds, "dismiss")
	}
	if s.Resize != nil {
		kinds = append(kinds, "resize")
	}
	if s.Frames > 0 {
		kinds = append(kinds, "frames")
	}
	if s.Settle {
		kinds = append(kinds, "settle")
	}
	if s.Expect != nil {
		kinds = append(kinds, "expect")
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return Parse(data, ext == ".yaml" || ext == ".yml")
}

func Parse(data []byte, asYAML bool) (*Script, error) {
	var s Script
	if asYAML {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse script YAML: %w", err)
		}
	} else if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script JSON: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) Validate() error {
	if s.Viewport.Width < 0 || s.Viewport.Height < 0 {
		return fmt.Errorf("viewport must not be negative")
	}
	if s.Preset != nil {
		if err := s.Preset.Validate(); err != nil {
			return fmt.Errorf("preset: %w", err)
		}
	}
	for i, st := range s.Steps {
		k := st.Kind()
		if k == "" {
			return fmt.Errorf("step %d: need exactly one action", i+1)
		}
		for _, pt := range [][]float64{st.Press, st.Move, st.Release, st.Resize} {
			if pt != nil && len(pt) != 2 {
				return fmt.Errorf("step %d: %s needs two numbers", i+1, k)
			}
		}
		switch st.Request {
		case "", "open", "close", "toggle":
		default:
			return fmt.Errorf("step %d: unknown request %q (want open|close|toggle)", i+1, st.Request)
		}
	}
	return nil
}

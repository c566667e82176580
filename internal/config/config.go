package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"sidedrawer/internal/anim"
	"sidedrawer/internal/drawer"
)

// Preset is the on-disk drawer configuration, JSON or YAML.
// {"menuPosition": "right", "edgeHitWidth": 40, "spring": {"frequency": 8}}
// Unset fields keep the defaults.
type Preset struct {
	EdgeHitWidth *float64 `json:"edgeHitWidth,omitempty" yaml:"edgeHitWidth,omitempty"`
	ToleranceX   *float64 `json:"toleranceX,omitempty" yaml:"toleranceX,omitempty"`
	ToleranceY   *float64 `json:"toleranceY,omitempty" yaml:"toleranceY,omitempty"`
	MenuPosition string   `json:"menuPosition,omitempty" yaml:"menuPosition,omitempty"` // left|right

	OpenMenuOffsetPercentage   *float64 `json:"openMenuOffsetPercentage,omitempty" yaml:"openMenuOffsetPercentage,omitempty"`
	HiddenMenuOffsetPercentage *float64 `json:"hiddenMenuOffsetPercentage,omitempty" yaml:"hiddenMenuOffsetPercentage,omitempty"`

	// Pixel offsets are converted to percentages of ReferenceWidth and
	// override the percentage fields when both are set.
	OpenMenuOffset   *float64 `json:"openMenuOffset,omitempty" yaml:"openMenuOffset,omitempty"`
	HiddenMenuOffset *float64 `json:"hiddenMenuOffset,omitempty" yaml:"hiddenMenuOffset,omitempty"`
	ReferenceWidth   float64  `json:"referenceWidth,omitempty" yaml:"referenceWidth,omitempty"`

	BounceBackOnOverdraw *bool   `json:"bounceBackOnOverdraw,omitempty" yaml:"bounceBackOnOverdraw,omitempty"`
	AutoClosing          *bool   `json:"autoClosing,omitempty" yaml:"autoClosing,omitempty"`
	DisableGestures      *bool   `json:"disableGestures,omitempty" yaml:"disableGestures,omitempty"`
	IsOpen               *bool   `json:"isOpen,omitempty" yaml:"isOpen,omitempty"`
	ScreenWidth          float64 `json:"screenWidth,omitempty" yaml:"screenWidth,omitempty"`

	Spring *Spring `json:"spring,omitempty" yaml:"spring,omitempty"`
}

// Spring tunes the settle animation.
type Spring struct {
	FPS       int     `json:"fps,omitempty" yaml:"fps,omitempty"`
	Frequency float64 `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Damping   float64 `json:"damping,omitempty" yaml:"damping,omitempty"`
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	return Parse(data, isYAML(path))
}

// Parse decodes a preset from JSON, or YAML when asYAML is set.
func Parse(data []byte, asYAML bool) (*Preset, error) {
	var p Preset
	if asYAML {
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse preset YAML: %w", err)
		}
	} else if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset JSON: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate rejects values the drawer cannot use.
func (p *Preset) Validate() error {
	if _, err := drawer.ParsePosition(p.MenuPosition); err != nil {
		return err
	}
	for name, v := range map[string]*float64{
		"edgeHitWidth":               p.EdgeHitWidth,
		"toleranceX":                 p.ToleranceX,
		"toleranceY":                 p.ToleranceY,
		"openMenuOffsetPercentage":   p.OpenMenuOffsetPercentage,
		"hiddenMenuOffsetPercentage": p.HiddenMenuOffsetPercentage,
		"openMenuOffset":             p.OpenMenuOffset,
		"hiddenMenuOffset":           p.HiddenMenuOffset,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must not be negative (got %g)", name, *v)
		}
	}
	if (p.OpenMenuOffset != nil || p.HiddenMenuOffset != nil) && p.ReferenceWidth <= 0 {
		return fmt.Errorf("pixel offsets need a positive referenceWidth")
	}
	if p.ScreenWidth < 0 || p.ReferenceWidth < 0 {
		return fmt.Errorf("widths must not be negative")
	}
	return nil
}

// Apply layers the preset over base. Handlers on base are kept.
func (p *Preset) Apply(base drawer.Config) drawer.Config {
	c := base
	if p == nil {
		return c
	}
	if p.EdgeHitWidth != nil {
		c.EdgeHitWidth = *p.EdgeHitWidth
	}
	if p.ToleranceX != nil {
		c.ToleranceX = *p.ToleranceX
	}
	if p.ToleranceY != nil {
		c.ToleranceY = *p.ToleranceY
	}
	if p.MenuPosition != "" {
		if pos, err := drawer.ParsePosition(p.MenuPosition); err == nil {
			c.Position = pos
		}
	}
	if p.OpenMenuOffsetPercentage != nil {
		c.OpenMenuOffsetPercentage = *p.OpenMenuOffsetPercentage
	}
	if p.HiddenMenuOffsetPercentage != nil {
		c.HiddenMenuOffsetPercentage = *p.HiddenMenuOffsetPercentage
	}
	if p.ReferenceWidth > 0 {
		if p.OpenMenuOffset != nil {
			c.OpenMenuOffsetPercentage = *p.OpenMenuOffset / p.ReferenceWidth
		}
		if p.HiddenMenuOffset != nil {
			c.HiddenMenuOffsetPercentage = *p.HiddenMenuOffset / p.ReferenceWidth
		}
	}
	if p.BounceBackOnOverdraw != nil {
		c.BounceBackOnOverdraw = *p.BounceBackOnOverdraw
	}
	if p.AutoClosing != nil {
		c.AutoClosing = *p.AutoClosing
	}
	if p.DisableGestures != nil {
		c.DisableGestures = drawer.Always(*p.DisableGestures)
	}
	if p.IsOpen != nil {
		c.IsOpen = *p.IsOpen
	}
	if p.ScreenWidth > 0 {
		c.ScreenWidth = p.ScreenWidth
	}
	return c
}

// SpringOptions returns the animation tuning, defaults for unset fields.
func (p *Preset) SpringOptions() anim.SpringOptions {
	if p == nil || p.Spring == nil {
		return anim.SpringOptions{}
	}
	return anim.SpringOptions{FPS: p.Spring.FPS, Frequency: p.Spring.Frequency, Damping: p.Spring.Damping}
}

// FromConfig captures every data field of c, e.g. to print the effective
// configuration. Dynamic gates are evaluated once.
func FromConfig(c drawer.Config, s anim.SpringOptions) *Preset {
	f := func(v float64) *float64 { return &v }
	b := func(v bool) *bool { return &v }
	if s.FPS <= 0 {
		s.FPS = anim.DefaultFPS
	}
	if s.Frequency <= 0 {
		s.Frequency = anim.DefaultFrequency
	}
	if s.Damping <= 0 {
		s.Damping = anim.DefaultDamping
	}
	return &Preset{
		EdgeHitWidth:               f(c.EdgeHitWidth),
		ToleranceX:                 f(c.ToleranceX),
		ToleranceY:                 f(c.ToleranceY),
		MenuPosition:               c.Position.String(),
		OpenMenuOffsetPercentage:   f(c.OpenMenuOffsetPercentage),
		HiddenMenuOffsetPercentage: f(c.HiddenMenuOffsetPercentage),
		BounceBackOnOverdraw:       b(c.BounceBackOnOverdraw),
		AutoClosing:                b(c.AutoClosing),
		DisableGestures:            b(c.DisableGestures.Active()),
		IsOpen:                     b(c.IsOpen),
		ScreenWidth:                c.ScreenWidth,
		Spring:                     &Spring{FPS: s.FPS, Frequency: s.Frequency, Damping: s.Damping},
	}
}

// Marshal encodes p the same way Save writes it.
func Marshal(p *Preset, asYAML bool) ([]byte, error) {
	if asYAML {
		return yaml.Marshal(p)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func Save(path string, p *Preset) error {
	data, err := Marshal(p, isYAML(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

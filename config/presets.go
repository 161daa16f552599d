package config

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// ErrUnknownPreset is returned by ApplyPreset for a name not in presets.yaml.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a partial Config: nil fields leave the target untouched.
type Preset struct {
	Color           *ColorName `yaml:"color"`
	Alpha           *float64   `yaml:"alpha"`
	DarkenPercent   *float64   `yaml:"darken_percent"`
	BlurPx          *float64   `yaml:"blur_px"`
	ExtensionDelta  *float64   `yaml:"extension_delta"`
	MotionThreshold *float64   `yaml:"motion_threshold"`
	VideoWidth      *int       `yaml:"video_width"`
	VideoHeight     *int       `yaml:"video_height"`
	TargetFPS       *int       `yaml:"target_fps"`
}

var (
	presetsOnce sync.Once
	presets     map[string]Preset
	presetsErr  error
)

// ParsePresets decodes a presets document.
func ParsePresets(data []byte) (map[string]Preset, error) {
	out := map[string]Preset{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	return out, nil
}

// Presets returns the embedded presets, parsed once.
func Presets() (map[string]Preset, error) {
	presetsOnce.Do(func() {
		presets, presetsErr = ParsePresets(presetsYAML)
	})
	return presets, presetsErr
}

// PresetNames lists the embedded preset names, sorted.
func PresetNames() []string {
	ps, err := Presets()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(ps))
	for n := range ps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's set fields onto c.
func (p Preset) Apply(c *Config) {
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Alpha != nil {
		c.Alpha = *p.Alpha
	}
	if p.DarkenPercent != nil {
		c.DarkenPercent = *p.DarkenPercent
	}
	if p.BlurPx != nil {
		c.BlurPx = *p.BlurPx
	}
	if p.ExtensionDelta != nil {
		c.ExtensionDelta = *p.ExtensionDelta
	}
	if p.MotionThreshold != nil {
		c.MotionThreshold = *p.MotionThreshold
	}
	if p.VideoWidth != nil {
		c.VideoWidth = *p.VideoWidth
	}
	if p.VideoHeight != nil {
		c.VideoHeight = *p.VideoHeight
	}
	if p.TargetFPS != nil {
		c.TargetFPS = *p.TargetFPS
	}
}

// ApplyPreset overlays the named embedded preset and validates the result.
// On error c is left unchanged.
func (c *Config) ApplyPreset(name string) error {
	ps, err := Presets()
	if err != nil {
		return err
	}
	p, ok := ps[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	next := *c
	p.Apply(&next)
	next.Preset = name
	if err := next.Validate(); err != nil {
		return fmt.Errorf("preset %s: %w", name, err)
	}
	*c = next
	return nil
}

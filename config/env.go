package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvColor           = "LIPSTICK_COLOR"
	EnvAlpha           = "LIPSTICK_ALPHA"
	EnvDarken          = "LIPSTICK_DARKEN_PERCENT"
	EnvBlurPx          = "LIPSTICK_BLUR_PX"
	EnvExtensionDelta  = "LIPSTICK_EXTENSION_DELTA"
	EnvMotionThreshold = "LIPSTICK_MOTION_THRESHOLD"
	EnvTargetFPS       = "LIPSTICK_TARGET_FPS"
	EnvPreset          = "LIPSTICK_PRESET"
	EnvDebug           = "LIPSTICK_DEBUG"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays environment overrides onto c. A preset named in the
// environment is applied first so explicit variables win over it. The
// result is validated; on error c is left unchanged.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	next := *c
	if name, ok := lookup(EnvPreset); ok && strings.TrimSpace(name) != "" {
		if err := next.ApplyPreset(strings.TrimSpace(name)); err != nil {
			return err
		}
	}
	if v, ok := lookup(EnvColor); ok && strings.TrimSpace(v) != "" {
		next.Color = ColorName(strings.TrimSpace(v))
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvAlpha, &next.Alpha},
		{EnvDarken, &next.DarkenPercent},
		{EnvBlurPx, &next.BlurPx},
		{EnvExtensionDelta, &next.ExtensionDelta},
		{EnvMotionThreshold, &next.MotionThreshold},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = parsed
	}
	if v, ok := lookup(EnvTargetFPS); ok && strings.TrimSpace(v) != "" {
		fps, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTargetFPS, err)
		}
		next.TargetFPS = fps
	}
	if v, ok := lookup(EnvDebug); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			next.Debug = b
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

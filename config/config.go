package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Config holds the tunable lipstick and tracking settings. Fields are loaded
// from a JSON file, then optionally overridden by a preset and environment.
// The frame pipeline reads a copy per frame; only the configuration boundary
// (Load, the settings panel) may mutate it.
type Config struct {
	Debug bool `json:"debug"`

	// Lipstick appearance
	Color          ColorName `json:"color" validate:"required,lipstick_color"`
	Alpha          float64   `json:"alpha" validate:"gte=0,lte=1"`
	DarkenPercent  float64   `json:"darken_percent" validate:"gte=0,lte=1"`
	BlurPx         float64   `json:"blur_px" validate:"gte=0,lte=50"`
	ExtensionDelta float64   `json:"extension_delta" validate:"gte=0,lt=1"`

	// Tracking
	MotionThreshold float64 `json:"motion_threshold" validate:"gte=0"`
	MaxFaces        int     `json:"max_faces" validate:"gte=1"`
	Backend         string  `json:"backend" validate:"oneof=mediapipe-gpu tfjs-webgl tfjs-wasm"`

	// Frame source
	VideoWidth  int `json:"video_width" validate:"gte=0"`
	VideoHeight int `json:"video_height" validate:"gte=0"`
	TargetFPS   int `json:"target_fps" validate:"gte=1,lte=120"`

	// Preset records the last preset applied, informational only.
	Preset string `json:"preset,omitempty"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		Color:           SinfulCherry,
		Alpha:           0.25,
		DarkenPercent:   0,
		BlurPx:          1,
		ExtensionDelta:  0.17,
		MotionThreshold: 1.7,
		MaxFaces:        1,
		Backend:         "mediapipe-gpu",
		VideoWidth:      1920,
		VideoHeight:     1080,
		TargetFPS:       20,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("lipstick_color", func(fl validator.FieldLevel) bool {
		_, ok := Palette[ColorName(fl.Field().String())]
		return ok
	})
	return v
}

// Validate checks every field against its allowed range. It does not
// modify c.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config: nil")
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "lipstick_color" {
					return fmt.Errorf("config: %w: %q", ErrUnknownColor, c.Color)
				}
			}
			fe := verrs[0]
			return fmt.Errorf("config: field %s failed %s=%s (value %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// RGB returns the palette entry for the configured color.
func (c *Config) RGB() ([3]uint8, error) { return LookupColor(c.Color) }

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return DefaultConfig()
	}
	clone := *c
	return &clone
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). On decode or validation
// error it returns the defaults together with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	loaded := DefaultConfig()
	dec := json.NewDecoder(f)
	if err := dec.Decode(loaded); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := loaded.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return loaded, nil
}

// Save writes the configuration to the given path in JSON format. Invalid
// configurations are not written.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

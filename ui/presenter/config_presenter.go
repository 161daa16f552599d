package presenter

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/lipstick-ar-go/config"
)

// ConfigForm is the raw text of the settings panel. Empty numeric fields keep
// their current value.
type ConfigForm struct {
	Color           string
	Preset          string
	Alpha           string
	DarkenPercent   string
	BlurPx          string
	ExtensionDelta  string
	MotionThreshold string
}

// ConfigSink receives validated configuration, normally the session.
type ConfigSink interface{ SetConfig(*config.Config) }

// ConfigView shows the applied configuration or a validation message.
type ConfigView interface {
	ShowConfig(*config.Config)
	ShowConfigError(msg string)
}

// ConfigPresenter validates settings edits, persists them and forwards them
// to the running session.
type ConfigPresenter struct {
	cfg    *config.Config
	path   string
	sink   ConfigSink
	view   ConfigView
	logger *slog.Logger
}

func NewConfigPresenter(cfg *config.Config, path string, sink ConfigSink, view ConfigView, logger *slog.Logger) *ConfigPresenter {
	return &ConfigPresenter{cfg: cfg.Clone(), path: path, sink: sink, view: view, logger: logger}
}

// Current returns a copy of the applied configuration.
func (p *ConfigPresenter) Current() *config.Config { return p.cfg.Clone() }

// SetView attaches the view once it has been built.
func (p *ConfigPresenter) SetView(v ConfigView) { p.view = v }

// Apply validates form and, on success, saves and forwards the result.
// Choosing a different preset applies that preset and discards numeric
// edits made in the same submission; the view is refreshed with the preset
// values. On failure the applied configuration is unchanged.
func (p *ConfigPresenter) Apply(form ConfigForm) error {
	if p == nil {
		return nil
	}
	c, err := p.build(form)
	if err == nil {
		err = c.Validate()
	}
	if err != nil {
		if p.view != nil {
			p.view.ShowConfigError(err.Error())
		}
		return err
	}
	p.cfg = c
	if p.path != "" {
		if serr := c.Save(p.path); serr != nil {
			if p.logger != nil {
				p.logger.Error("config save failed", "error", serr)
			}
		} else if p.logger != nil {
			p.logger.Info("config saved", "path", p.path)
		}
	}
	if p.sink != nil {
		p.sink.SetConfig(c.Clone())
	}
	if p.view != nil {
		p.view.ShowConfigError("")
		p.view.ShowConfig(c.Clone())
	}
	return nil
}

func (p *ConfigPresenter) build(form ConfigForm) (*config.Config, error) {
	c := p.cfg.Clone()
	if name := strings.TrimSpace(form.Color); name != "" {
		c.Color = config.ColorName(name)
	}
	if preset := strings.TrimSpace(form.Preset); preset != "" && preset != c.Preset {
		if err := c.ApplyPreset(preset); err != nil {
			return nil, err
		}
		return c, nil
	}
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"alpha", form.Alpha, &c.Alpha},
		{"darken percent", form.DarkenPercent, &c.DarkenPercent},
		{"blur", form.BlurPx, &c.BlurPx},
		{"extension delta", form.ExtensionDelta, &c.ExtensionDelta},
		{"motion threshold", form.MotionThreshold, &c.MotionThreshold},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", f.name, raw)
		}
		*f.dst = v
	}
	return c, nil
}

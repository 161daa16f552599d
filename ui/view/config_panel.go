package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soocke/lipstick-ar-go/config"
	"github.com/soocke/lipstick-ar-go/ui/presenter"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is the lipstick settings form. Apply collects the widget text
// and hands it to the submit callback.
type ConfigPanel interface {
	Build(startRow int, submit func(presenter.ConfigForm)) (endRow int)
	ShowConfig(c *config.Config)
	ShowConfigError(msg string)
}

type configPanel struct {
	cfg      *config.Config
	colors   []string
	presets  []string
	color    *TComboboxWidget
	preset   *TComboboxWidget
	fields   map[string]*TextWidget
	errorLbl *LabelWidget
}

// NewConfigPanel creates the view populated from cfg.
func NewConfigPanel(cfg *config.Config) ConfigPanel {
	return &configPanel{
		cfg:     cfg.Clone(),
		colors:  config.ColorNames(),
		presets: config.PresetNames(),
		fields:  make(map[string]*TextWidget),
	}
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}

func (v *configPanel) Build(startRow int, submit func(presenter.ConfigForm)) (row int) {
	row = startRow
	label := func(text string) {
		Grid(Label(Txt(text), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	}

	label("Color")
	v.color = TCombobox(Values(v.colors), Width(18))
	Grid(v.color, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	row++

	label("Preset")
	v.preset = TCombobox(Values(v.presets), Width(18))
	Grid(v.preset, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	row++

	makeRow := func(id, text string) {
		label(text)
		w := Text(Height(1), Width(18))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		v.fields[id] = w
		row++
	}
	makeRow("alpha", "Opacity (0-1)")
	makeRow("darken", "Darken (0-1)")
	makeRow("blur", "Blur Px")
	makeRow("extension", "Contour Expansion (0-1)")
	makeRow("threshold", "Motion Threshold Px")

	apply := Button(Txt("Apply"), Command(func() {
		if submit != nil {
			submit(v.form())
		}
	}))
	Grid(apply, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	v.errorLbl = Label(Txt(""), Anchor("w"), Foreground("#dc2626"))
	Grid(v.errorLbl, Row(row), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"))
	row++

	v.ShowConfig(v.cfg)
	return row
}

func (v *configPanel) setText(id, value string) {
	if w := v.fields[id]; w != nil {
		w.Delete("1.0", END)
		w.Insert("1.0", value)
	}
}

func (v *configPanel) text(id string) string {
	w := v.fields[id]
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

func selected(cb *TComboboxWidget, values []string) string {
	if cb == nil {
		return ""
	}
	idx, err := strconv.Atoi(cb.Current(nil))
	if err != nil || idx < 0 || idx >= len(values) {
		return ""
	}
	return values[idx]
}

func (v *configPanel) form() presenter.ConfigForm {
	return presenter.ConfigForm{
		Color:           selected(v.color, v.colors),
		Preset:          selected(v.preset, v.presets),
		Alpha:           v.text("alpha"),
		DarkenPercent:   v.text("darken"),
		BlurPx:          v.text("blur"),
		ExtensionDelta:  v.text("extension"),
		MotionThreshold: v.text("threshold"),
	}
}

func (v *configPanel) ShowConfig(c *config.Config) {
	if v == nil || c == nil {
		return
	}
	v.cfg = c.Clone()
	if i := indexOf(v.colors, string(c.Color)); i >= 0 && v.color != nil {
		v.color.Current(i)
	}
	if i := indexOf(v.presets, c.Preset); i >= 0 && v.preset != nil {
		v.preset.Current(i)
	}
	v.setText("alpha", fmt.Sprintf("%.2f", c.Alpha))
	v.setText("darken", fmt.Sprintf("%.2f", c.DarkenPercent))
	v.setText("blur", fmt.Sprintf("%.1f", c.BlurPx))
	v.setText("extension", fmt.Sprintf("%.2f", c.ExtensionDelta))
	v.setText("threshold", fmt.Sprintf("%.2f", c.MotionThreshold))
}

func (v *configPanel) ShowConfigError(msg string) {
	if v == nil || v.errorLbl == nil {
		return
	}
	v.errorLbl.Configure(Txt(msg))
}

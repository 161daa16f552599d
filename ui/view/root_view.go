package view

import (
	"image"
	"time"

	"github.com/soocke/lipstick-ar-go/config"
	"github.com/soocke/lipstick-ar-go/ui/presenter"
	"github.com/soocke/lipstick-ar-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level layout and satisfies the presenters' view
// contracts.
type RootView struct {
	cfg *config.Config

	Session     SessionStats
	ConfigPanel ConfigPanel
	CapturePrev CapturePreview

	StateLabel *TLabelWidget
	captureBtn *TButtonWidget
}

func NewRootView(cfg *config.Config) *RootView {
	return &RootView{cfg: cfg.Clone()}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(onToggleCapture func(), onSubmitConfig func(presenter.ConfigForm), onToggleTheme func(), onExit func()) {
	if rv == nil {
		return
	}
	// Row 0-1: run timers and counters, state label, buttons
	rv.Session = NewSessionStats(0, 0)
	rv.StateLabel = TLabel(Txt("State: idle"), Style(theme.StyleStateLabel))
	Grid(rv.StateLabel, Row(0), Column(2), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Rowspan(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.captureBtn = TButton(Txt("Start Overlay"), Style(theme.StylePrimaryButton), Command(onToggleCapture))
	Grid(rv.captureBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	themeBtn := TButton(Txt("Light/Dark"), Command(onToggleTheme))
	Grid(themeBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.ConfigPanel = NewConfigPanel(rv.cfg)
	endRow := rv.ConfigPanel.Build(2, onSubmitConfig)

	previewW, previewH := defaultPreviewW, defaultPreviewH
	if rv.cfg.VideoWidth > 0 && rv.cfg.VideoHeight > 0 && rv.cfg.VideoWidth < previewW {
		previewW, previewH = rv.cfg.VideoWidth, rv.cfg.VideoHeight
	}
	rv.CapturePrev = NewCapturePreview(endRow, previewW, previewH)
}

func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

func (rv *RootView) UpdateCapture(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdateCapture(img)
	}
}

func (rv *RootView) PreviewReset() {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.Reset()
	}
}

// SetCaptureActive relabels the toggle button.
func (rv *RootView) SetCaptureActive(active bool) {
	if rv == nil || rv.captureBtn == nil {
		return
	}
	if active {
		rv.captureBtn.Configure(Txt("Stop Overlay"))
		return
	}
	rv.captureBtn.Configure(Txt("Start Overlay"))
}

func (rv *RootView) SetSession(run, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(run)
	rv.Session.SetTotal(total)
}

func (rv *RootView) SetStats(text string) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetStats(text)
	}
}

func (rv *RootView) ShowConfig(c *config.Config) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.ShowConfig(c)
	}
}

func (rv *RootView) ShowConfigError(msg string) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.ShowConfigError(msg)
	}
}

var (
	_ presenter.CaptureView = (*RootView)(nil)
	_ presenter.StateView   = (*RootView)(nil)
	_ presenter.PreviewView = (*RootView)(nil)
	_ presenter.SessionView = (*RootView)(nil)
	_ presenter.ConfigView  = (*RootView)(nil)
)

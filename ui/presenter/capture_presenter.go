package presenter

// CaptureModel provides enabled state access.
type CaptureModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// LifecycleContract narrows what the presenter needs from the session.
type LifecycleContract interface {
	Start()
	Stop()
}

// Resetter clears presentation state when tracking stops.
type Resetter interface{ Reset() }

// CaptureView updates UI elements affected by toggling the overlay.
type CaptureView interface {
	PreviewReset()
	SetCaptureActive(bool)
}

// CapturePresenter owns presentation logic for starting and stopping the
// tracking session.
type CapturePresenter struct {
	model    CaptureModel
	service  LifecycleContract
	tracking Resetter
	view     CaptureView
}

func NewCapturePresenter(model CaptureModel, service LifecycleContract, tracking Resetter, view CaptureView) *CapturePresenter {
	return &CapturePresenter{model: model, service: service, tracking: tracking, view: view}
}

func (c *CapturePresenter) ready() bool {
	return c != nil && c.model != nil && c.service != nil && c.view != nil
}

// Enable starts the session. Idempotent.
func (c *CapturePresenter) Enable() {
	if !c.ready() || c.model.Enabled() {
		return
	}
	c.service.Start()
	c.model.SetEnabled(true)
	c.view.SetCaptureActive(true)
}

// Disable stops the session and clears the preview. Idempotent.
func (c *CapturePresenter) Disable() {
	if !c.ready() || !c.model.Enabled() {
		return
	}
	c.service.Stop()
	c.model.SetEnabled(false)
	if c.tracking != nil {
		c.tracking.Reset()
	}
	c.view.PreviewReset()
	c.view.SetCaptureActive(false)
}

// Toggle flips enabled state delegating to Enable/Disable.
func (c *CapturePresenter) Toggle() {
	if !c.ready() {
		return
	}
	if c.model.Enabled() {
		c.Disable()
		return
	}
	c.Enable()
}

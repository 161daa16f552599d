package app

import (
	"log/slog"

	"github.com/soocke/lipstick-ar-go/config"
	"github.com/soocke/lipstick-ar-go/domain/capture"
	"github.com/soocke/lipstick-ar-go/ui/model"
	"github.com/soocke/lipstick-ar-go/ui/presenter"
	"github.com/soocke/lipstick-ar-go/ui/view"
)

// Container assembles models, the session, presenters and the root view.
type Container struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Session    *capture.Session

	Capture  *model.CaptureModel
	Runs     *model.SessionModel
	Tracking *model.TrackingModel
	RootView *view.RootView

	CapturePresenter  *presenter.CapturePresenter
	SessionPresenter  *presenter.SessionPresenter
	TrackingPresenter *presenter.TrackingPresenter
	PreviewPresenter  *presenter.PreviewPresenter
	ConfigPresenter   *presenter.ConfigPresenter
	Loop              *presenter.Loop
}

// BuildContainer wires every component around session. No widgets are
// created here; App.Run builds them.
func BuildContainer(cfg *config.Config, cfgPath string, session *capture.Session, logger *slog.Logger) *Container {
	c := &Container{Config: cfg.Clone(), ConfigPath: cfgPath, Logger: logger, Session: session}
	c.Capture = &model.CaptureModel{}
	c.Runs = model.NewSessionModel()
	c.Tracking = model.NewTrackingModel()
	c.RootView = view.NewRootView(c.Config)

	c.CapturePresenter = presenter.NewCapturePresenter(c.Capture, session, c.Tracking, c.RootView)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Runs, c.Capture, session, c.RootView)
	c.TrackingPresenter = presenter.NewTrackingPresenter(c.Tracking, c.RootView)
	c.PreviewPresenter = presenter.NewPreviewPresenter(c.Capture.Enabled, session, c.Tracking, c.RootView)
	c.ConfigPresenter = presenter.NewConfigPresenter(c.Config, cfgPath, session, c.RootView, logger)
	c.Loop = presenter.NewLoop(c.SessionPresenter, c.TrackingPresenter, c.PreviewPresenter, nil)
	return c
}

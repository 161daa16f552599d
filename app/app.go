package app

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/lipstick-ar-go/ui/presenter"
	"github.com/soocke/lipstick-ar-go/ui/theme"
)

const tick = 50 * time.Millisecond

// App owns the Tk main window and the periodic presenter tick.
type App struct {
	c       *Container
	title   string
	width   int
	height  int
	afterID string
}

func NewApp(title string, width, height int, c *Container) *App {
	return &App{c: c, title: title, width: width, height: height}
}

// Run builds the window and blocks until it is closed. The session is
// stopped on exit.
func (a *App) Run() {
	App.WmTitle(a.title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", a.width, a.height))
	theme.InitStyles()

	a.c.RootView.Build(
		a.c.CapturePresenter.Toggle,
		func(form presenter.ConfigForm) { _ = a.c.ConfigPresenter.Apply(form) },
		func() { theme.ToggleDark() },
		a.exitHandler,
	)
	a.c.Loop.Schedule = a.scheduleUpdate
	a.scheduleUpdate()
	if a.c.Logger != nil {
		a.c.Logger.Info("preview window ready", "session_id", a.c.Session.ID())
	}
	App.Wait()
}

func (a *App) scheduleUpdate() {
	// TclAfter keeps the tick on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}

func (a *App) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.CapturePresenter.Disable()
	Destroy(App)
}

package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ignisVeneficus/bistro/config"
	"github.com/ignisVeneficus/bistro/db/dao"
	"github.com/ignisVeneficus/bistro/editor"
	"github.com/ignisVeneficus/bistro/logging"
	"github.com/ignisVeneficus/bistro/probe"
	"github.com/ignisVeneficus/bistro/server/routes"
	"github.com/rs/zerolog"
)

// Prober resolves image sizes in the background and reports back through API.ApplyProbe.
type Prober interface {
	Probe(ctx context.Context, req probe.Request) error
}

type API struct {
	cfg      config.Config
	store    Store
	prober   Prober
	sessions *Registry
}

func NewAPI(cfg config.Config, store Store, prober Prober) *API {
	return &API{
		cfg:      cfg,
		store:    store,
		prober:   prober,
		sessions: NewRegistry(cfg.Server.SessionIdle),
	}
}

func (a *API) Sessions() *Registry {
	return a.sessions
}

func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		RequestID(),
		Logger(),
		gin.Recovery(),
		AuthContextMiddleware(a.cfg.Auth, a.cfg.Env),
	)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	publicGrp := r.Group(routes.PublicPrefix)
	{
		publicGrp.GET(routes.GetViewportPath(), a.getViewport)
		publicGrp.POST(routes.GetPlacementPath(), a.postPlacement)
	}

	adminGrp := r.Group(routes.AdminPrefix)
	adminGrp.Use(RequireAdmin(), NoStore())
	{
		adminGrp.POST(routes.GetSessionsPath(), a.createSession)
		adminGrp.GET(routes.GetSessionPath(), a.getSession)
		adminGrp.DELETE(routes.GetSessionPath(), a.deleteSession)

		adminGrp.POST(routes.GetSessionActionPath(routes.ActionBegin), a.sessionBegin)
		adminGrp.POST(routes.GetSessionActionPath(routes.ActionMeasure), a.sessionMeasure)
		adminGrp.POST(routes.GetSessionActionPath(routes.ActionNatural), a.sessionNatural)
		adminGrp.POST(routes.GetSessionActionPath(routes.ActionDevice), a.sessionDevice)
		adminGrp.POST(routes.GetSessionActionPath(routes.ActionPointer), a.sessionPointer)
		adminGrp.POST(routes.GetSessionActionPath(routes.ActionWheel), a.sessionWheel)
		adminGrp.POST(routes.GetSessionActionPath(routes.ActionSlider), a.sessionSlider)
		adminGrp.POST(routes.GetSessionActionPath(routes.ActionSource), a.sessionSource)
		adminGrp.POST(routes.GetSessionActionPath(routes.ActionSave), a.sessionSave)
		adminGrp.POST(routes.GetSessionActionPath(routes.ActionCancel), a.sessionCancel)
	}
	return r
}

// ApplyProbe feeds a finished probe into the session that asked for it.
// Results for a source the session no longer shows are dropped.
func (a *API) ApplyProbe(req probe.Request, size probe.Size, err error) {
	logg := logging.Enter(context.Background(), "server.API.ApplyProbe", map[string]any{"request": &req})
	s, ok := a.sessions.Get(req.Owner)
	if !ok {
		logging.Exit(logg, "session gone", nil)
		return
	}
	var key string
	stale := false
	s.Do(func(e *editor.Editor, _ *editor.Controller) error {
		if e.Source() != req.Source {
			stale = true
			return nil
		}
		key = s.Key
		if err != nil {
			e.NaturalFailed(err)
			return nil
		}
		e.SetNatural(float64(size.Width), float64(size.Height))
		return nil
	})
	if stale {
		logging.Exit(logg, "stale", nil)
		return
	}
	if err != nil {
		logging.Exit(logg, "not ready", nil)
		return
	}
	natural := editor.Size{Width: float64(size.Width), Height: float64(size.Height)}
	if serr := a.store.UpdateNatural(context.Background(), key, req.Source, natural); serr != nil {
		logging.ExitErr(logg, serr)
		return
	}
	logging.Exit(logg, "ok", map[string]any{"size": &size})
}

func abortJSON(c *gin.Context, logg zerolog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logging.ExitErr(logg, err)
	} else {
		logging.Exit(logg, http.StatusText(status), map[string]any{"error": err})
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func storeStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, dao.ErrTxConflict):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

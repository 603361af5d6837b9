// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/Ollenmire/usdn-audit-critical/app/services/ledger/handlers/v1/private"
	"github.com/Ollenmire/usdn-audit-critical/app/services/ledger/handlers/v1/public"
	"github.com/Ollenmire/usdn-audit-critical/foundation/events"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/state"
	"github.com/Ollenmire/usdn-audit-critical/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/supply", pbl.Supply)
	app.Handle(http.MethodGet, version, "/accounts/list", pbl.Accounts)
	app.Handle(http.MethodGet, version, "/accounts/list/:account", pbl.Accounts)
	app.Handle(http.MethodGet, version, "/convert/:amount", pbl.Convert)
	app.Handle(http.MethodPost, version, "/transfer", pbl.Transfer)
	app.Handle(http.MethodPost, version, "/burn", pbl.Burn)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodPost, version, "/mint", prv.Mint)
	app.Handle(http.MethodPost, version, "/rebase", prv.Rebase)
	app.Handle(http.MethodGet, version, "/observer", prv.Observer)
	app.Handle(http.MethodPost, version, "/observer", prv.SetObserver)
}

// Package private maintains the group of handlers for privileged access.
// The permission layer is the network boundary: these routes are only bound
// on the private host.
package private

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Ollenmire/usdn-audit-critical/business/sys/validate"
	v1 "github.com/Ollenmire/usdn-audit-critical/business/web/v1"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/database"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/notify/webhook"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/state"
	"github.com/Ollenmire/usdn-audit-critical/foundation/web"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// Handlers manages the set of privileged ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Mint credits an account with newly created tokens.
func (h Handlers) Mint(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req mintRequest
	if err := web.Decode(r, &req); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}
	if err := validate.Check(req); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	to, err := database.ToAccountID(req.To)
	if err != nil {
		return v1.NewRequestError(fmt.Errorf("parsing to account: %w", err), http.StatusBadRequest)
	}

	amount, err := uint256.FromDecimal(req.Tokens)
	if err != nil {
		return v1.NewRequestError(fmt.Errorf("parsing amount: %w", err), http.StatusBadRequest)
	}

	h.Log.Infow("mint", "traceid", v.TraceID, "to", to, "tokens", req.Tokens)

	minted, err := h.State.Mint(to, amount)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
		Minted string `json:"minted"`
	}{
		Status: "mint applied",
		Minted: minted.Dec(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Rebase adjusts the global divisor and reports the notification outcome.
func (h Handlers) Rebase(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req rebaseRequest
	if err := web.Decode(r, &req); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}
	if err := validate.Check(req); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	h.Log.Infow("rebase", "traceid", v.TraceID, "divisor", req.Divisor)

	result := h.State.Rebase(ctx, req.Divisor)

	return web.Respond(ctx, w, result, http.StatusOK)
}

// SetObserver registers a webhook observer for future rebases. An empty URL
// clears the observer.
func (h Handlers) SetObserver(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req observerRequest
	if err := web.Decode(r, &req); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}
	if err := validate.Check(req); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	h.Log.Infow("setobserver", "traceid", v.TraceID, "url", req.URL)

	switch req.URL {
	case "":
		h.State.SetObserver(nil)
	default:
		h.State.SetObserver(webhook.New(req.URL))
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "observer updated",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Observer returns the currently registered observer.
func (h Handlers) Observer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Observer string `json:"observer"`
	}{
		Observer: "none",
	}

	if obs := h.State.Observer(); obs != nil {
		resp.Observer = "custom"
		if o, ok := obs.(interface{ URL() string }); ok {
			resp.Observer = o.URL()
		}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

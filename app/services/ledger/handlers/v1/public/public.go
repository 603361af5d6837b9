// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Ollenmire/usdn-audit-critical/business/sys/validate"
	v1 "github.com/Ollenmire/usdn-audit-critical/business/web/v1"
	"github.com/Ollenmire/usdn-audit-critical/foundation/events"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/database"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/state"
	"github.com/Ollenmire/usdn-audit-critical/foundation/web"
	"github.com/gorilla/websocket"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// Handlers manages the set of public ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide audit records to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case record, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, record); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Supply returns the supply figures under the current divisor.
func (h Handlers) Supply(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := supply{
		TotalSupply: h.State.TotalSupply().Dec(),
		TotalShares: h.State.TotalShares().Dec(),
		Divisor:     h.State.Divisor(),
		MaxTokens:   h.State.MaxTokens().Dec(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Accounts returns the set of account balances. If an account is specified,
// only that account is returned.
func (h Handlers) Accounts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var accounts map[database.AccountID]database.Account

	switch acct := web.Param(r, "account"); acct {
	case "":
		accounts = h.State.QueryAccounts()

	default:
		accountID, err := database.ToAccountID(acct)
		if err != nil {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
		accounts = map[database.AccountID]database.Account{
			accountID: {AccountID: accountID, Shares: h.State.SharesOf(accountID)},
		}
	}

	resp := make([]actBalance, 0, len(accounts))
	for accountID := range accounts {
		resp = append(resp, actBalance{
			Account: string(accountID),
			Balance: h.State.BalanceOf(accountID).Dec(),
			Shares:  h.State.SharesOf(accountID).Dec(),
		})
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Convert projects an amount across the share/token boundary under the
// current divisor.
func (h Handlers) Convert(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	amount, err := uint256.FromDecimal(web.Param(r, "amount"))
	if err != nil {
		return v1.NewRequestError(fmt.Errorf("parsing amount: %w", err), http.StatusBadRequest)
	}

	shares, err := h.State.ConvertToShares(amount)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	tokens, err := h.State.ConvertToTokens(amount)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := conversion{
		Amount:   amount.Dec(),
		ToShares: shares.Dec(),
		ToTokens: tokens.Dec(),
		Divisor:  h.State.Divisor(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Transfer moves a token denominated amount between two accounts.
func (h Handlers) Transfer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req transferRequest
	if err := web.Decode(r, &req); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}
	if err := validate.Check(req); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	from, to, amount, err := req.parse()
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("transfer", "traceid", v.TraceID, "from", from, "to", to, "tokens", req.Tokens, "shares", req.Shares)

	if req.Shares {
		err = h.State.TransferShares(from, to, amount)
	} else {
		err = h.State.Transfer(from, to, amount)
	}
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transfer applied",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Burn removes a token denominated amount from an account and the supply.
func (h Handlers) Burn(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req burnRequest
	if err := web.Decode(r, &req); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}
	if err := validate.Check(req); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	holder, amount, err := req.parse()
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("burn", "traceid", v.TraceID, "holder", holder, "tokens", req.Tokens, "shares", req.Shares)

	if req.Shares {
		err = h.State.BurnShares(holder, amount)
	} else {
		err = h.State.Burn(holder, amount)
	}
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "burn applied",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

package gateway

import (
	"net/http"
	"time"
)

// healthResponse is the JSON structure used by healthHandler
type healthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	Uptime    string    `json:"uptime"`
}

func (g *Gateway) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		StartedAt: g.startedAt,
		Uptime:    time.Since(g.startedAt).String(),
	})
}

type statusResponse struct {
	Server   healthResponse `json:"server"`
	ChainID  int64          `json:"chain_id"`
	Contract string         `json:"contract"`
	Admin    string         `json:"admin"`
	Provider bool           `json:"wallet_provider"`
	Account  string         `json:"account,omitempty"`
	Inflight []operation    `json:"inflight"`
}

// statusHandler reports the configured deployment and the cached wallet state.
// It never touches the chain.
func (g *Gateway) statusHandler(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Server: healthResponse{
			Status:    "ok",
			StartedAt: g.startedAt,
			Uptime:    time.Since(g.startedAt).String(),
		},
		ChainID:  g.cfg.ChainID,
		Contract: g.cfg.ContractAddress,
		Admin:    g.tracker.Admin().Hex(),
		Provider: g.wallet.HasProvider(),
		Inflight: g.inflight.list(),
	}
	if account, ok := g.wallet.Current(); ok {
		resp.Account = account.Hex()
	}
	writeJSON(w, http.StatusOK, resp)
}

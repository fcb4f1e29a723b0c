package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/httputil"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/DeBrosOfficial/assettracker/pkg/tracker"
	"github.com/DeBrosOfficial/assettracker/pkg/wallet"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type sessionResponse struct {
	tracker.Session
	Provider        bool `json:"provider"`
	CanManageAssets bool `json:"canManageAssets"`
}

func (g *Gateway) writeSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := g.readContext(r)
	defer cancel()

	s, err := g.tracker.Session(ctx)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Session:         s,
		Provider:        g.wallet.HasProvider(),
		CanManageAssets: s.CanManageAssets(),
	})
}

// sessionHandler reports the active account and what it may do. It never prompts.
func (g *Gateway) sessionHandler(w http.ResponseWriter, r *http.Request) {
	g.writeSession(w, r)
}

type connectRequest struct {
	Passphrase string `json:"passphrase"`
}

// connectHandler asks the wallet for access. An empty body falls back to the
// provider's own passphrase source.
func (g *Gateway) connectHandler(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if r.ContentLength != 0 {
		if err := httputil.DecodeJSONStrict(w, r, &req); err != nil {
			g.writeError(w, r, err)
			return
		}
	}

	ctx, cancel := g.readContext(r)
	defer cancel()
	if req.Passphrase != "" {
		ctx = wallet.WithPassphrase(ctx, req.Passphrase)
	}

	account, err := g.wallet.RequestConnection(ctx)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.logger.ComponentInfo(logging.ComponentGateway, "Wallet connected", zap.String("account", account.Hex()))
	g.writeSession(w, r)
}

func (g *Gateway) disconnectHandler(w http.ResponseWriter, r *http.Request) {
	g.wallet.Disconnect()
	writeJSON(w, http.StatusOK, sessionResponse{Provider: g.wallet.HasProvider()})
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// accountEvent is one message of the account-change stream.
type accountEvent struct {
	Type      string `json:"type"`
	Account   string `json:"account,omitempty"`
	Connected bool   `json:"connected"`
	Timestamp int64  `json:"timestamp"`
}

func newAccountEvent(kind string, change wallet.AccountChange) accountEvent {
	ev := accountEvent{Type: kind, Connected: change.Connected, Timestamp: time.Now().UnixMilli()}
	if change.Connected {
		ev.Account = change.Account.Hex()
	}
	return ev
}

// walletEventsHandler upgrades to WS, sends the current account and then every account
// change until the client goes away. Messages from the client are ignored.
func (g *Gateway) walletEventsHandler(w http.ResponseWriter, r *http.Request) {
	if !g.wallet.HasProvider() {
		g.writeError(w, r, trackererrors.NewNoProviderError(""))
		return
	}

	upgrader := wsUpgrader
	upgrader.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || sameOrigin(r, origin) || g.originAllowed(origin)
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.ComponentWarn(logging.ComponentGateway, "wallet ws: upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	changes := make(chan wallet.AccountChange, 16)
	sub := g.wallet.SubscribeAccountChange(changes)
	defer sub.Unsubscribe()
	stop := make(chan struct{})
	defer close(stop)
	latest := relayLatest(changes, stop)

	account, connected := g.wallet.Current()
	first := newAccountEvent("snapshot", wallet.AccountChange{Account: account, Connected: connected})

	// Writer loop
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		send := func(ev accountEvent) bool {
			b, err := json.Marshal(ev)
			if err != nil {
				return true
			}
			_ = conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			return conn.WriteMessage(websocket.TextMessage, b) == nil
		}

		if !send(first) {
			return
		}
		for {
			select {
			case change := <-latest:
				if !send(newAccountEvent("account", change)) {
					return
				}
			case <-ticker.C:
				// Ping keepalive
				_ = conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second))
			case <-sub.Err():
				return
			case <-g.quit:
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(5*time.Second))
				return
			case <-r.Context().Done():
				return
			}
		}
	}()

	// Reader loop: only detects the client going away
	readErr := make(chan struct{})
	go func() {
		defer close(readErr)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-done:
	case <-readErr:
	}
}

// relayLatest drains in as fast as the feed sends and keeps only the newest change for a
// slow reader, so one stalled connection never blocks account propagation.
func relayLatest(in <-chan wallet.AccountChange, stop <-chan struct{}) <-chan wallet.AccountChange {
	out := make(chan wallet.AccountChange, 1)
	go func() {
		for {
			select {
			case change := <-in:
				select {
				case out <- change:
				default:
					// drop the stale change; this goroutine is the only sender
					select {
					case <-out:
					default:
					}
					out <- change
				}
			case <-stop:
				return
			}
		}
	}()
	return out
}

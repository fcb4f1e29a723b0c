package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/DeBrosOfficial/assettracker/pkg/httputil"
	"github.com/DeBrosOfficial/assettracker/pkg/tracker"
	"github.com/go-chi/chi/v5"
)

type userListResponse struct {
	Users []tracker.User `json:"users"`
	Count int            `json:"count"`
	Query string         `json:"query,omitempty"`
}

func (g *Gateway) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := g.readContext(r)
	defer cancel()

	users, err := g.tracker.ListUsers(ctx)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	q := httputil.QueryParam(r, "q", "")
	users = tracker.FilterUsers(users, q)
	if users == nil {
		users = []tracker.User{}
	}
	writeJSON(w, http.StatusOK, userListResponse{Users: users, Count: len(users), Query: q})
}

type authorizeRequest struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

func (g *Gateway) authorizeUserHandler(w http.ResponseWriter, r *http.Request) {
	var req authorizeRequest
	if err := httputil.DecodeJSONStrict(w, r, &req); err != nil {
		g.writeError(w, r, err)
		return
	}
	action := "user " + strings.TrimSpace(req.Address)
	g.runWrite(w, r, action, true, http.StatusOK, func(ctx context.Context) (*writeResponse, error) {
		tx, err := g.tracker.AuthorizeUser(ctx, req.Address, req.Name)
		if err != nil {
			return nil, err
		}
		return &writeResponse{Tx: tx}, nil
	})
}

func (g *Gateway) revokeUserHandler(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	g.runWrite(w, r, "user "+strings.TrimSpace(address), true, http.StatusOK, func(ctx context.Context) (*writeResponse, error) {
		tx, err := g.tracker.RevokeUser(ctx, address)
		if err != nil {
			return nil, err
		}
		return &writeResponse{Tx: tx}, nil
	})
}

package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/DeBrosOfficial/assettracker/pkg/httputil"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/DeBrosOfficial/assettracker/pkg/tracker"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type assetListResponse struct {
	Assets []tracker.AssetSummary `json:"assets"`
	Count  int                    `json:"count"`
	Query  string                 `json:"query,omitempty"`
}

// listAssetsHandler returns every asset in on-chain order, optionally narrowed by ?q=.
func (g *Gateway) listAssetsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := g.readContext(r)
	defer cancel()

	assets, err := g.tracker.ListAssets(ctx)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	q := httputil.QueryParam(r, "q", "")
	assets = tracker.FilterAssets(assets, q)
	if assets == nil {
		assets = []tracker.AssetSummary{}
	}
	writeJSON(w, http.StatusOK, assetListResponse{Assets: assets, Count: len(assets), Query: q})
}

func (g *Gateway) assetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := g.readContext(r)
	defer cancel()

	assets, err := g.tracker.ListAssets(ctx)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tracker.Summarize(assets))
}

type assetDetailResponse struct {
	*tracker.AssetDetail
	Tone tracker.Tone `json:"tone"`
}

func (g *Gateway) getAssetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	ctx, cancel := g.readContext(r)
	defer cancel()

	asset, err := g.tracker.GetAsset(ctx, id)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assetDetailResponse{AssetDetail: asset, Tone: tracker.StatusTone(asset.Status)})
}

type writeResponse struct {
	OperationID string                `json:"operationId"`
	Tx          *tracker.TxResult     `json:"tx"`
	Asset       *tracker.AssetSummary `json:"asset,omitempty"`
}

// runWrite guards, deduplicates and bounds one write. submit runs with the confirm timeout.
func (g *Gateway) runWrite(w http.ResponseWriter, r *http.Request, action string, admin bool, success int,
	submit func(ctx context.Context) (*writeResponse, error)) {
	ctx, cancel := g.writeContext(r)
	defer cancel()

	var err error
	if admin {
		_, err = g.tracker.RequireAdmin(ctx)
	} else {
		_, err = g.tracker.RequireAuthorized(ctx)
	}
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	op, release, err := g.inflight.begin(action)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	defer release()
	w.Header().Set("X-Operation-Id", op.ID)

	resp, err := submit(ctx)
	if err != nil {
		g.logger.ComponentWarn(logging.ComponentGateway, "write failed",
			zap.String("operation_id", op.ID),
			zap.String("action", action),
			zap.Error(err),
		)
		g.writeError(w, r, err)
		return
	}
	resp.OperationID = op.ID
	g.logger.ComponentInfo(logging.ComponentGateway, "write confirmed",
		zap.String("operation_id", op.ID),
		zap.String("action", action),
		zap.String("tx", resp.Tx.Hash),
	)
	writeJSON(w, success, resp)
}

func (g *Gateway) createAssetHandler(w http.ResponseWriter, r *http.Request) {
	var in tracker.NewAsset
	if err := httputil.DecodeJSONStrict(w, r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}
	action := fmt.Sprintf("create asset %s to %s", strings.TrimSpace(in.Name), strings.TrimSpace(in.Recipient))
	g.runWrite(w, r, action, false, http.StatusCreated, func(ctx context.Context) (*writeResponse, error) {
		asset, tx, err := g.tracker.CreateAsset(ctx, in)
		if err != nil {
			return nil, err
		}
		return &writeResponse{Tx: tx, Asset: asset}, nil
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (g *Gateway) updateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := httputil.DecodeJSONStrict(w, r, &req); err != nil {
		g.writeError(w, r, err)
		return
	}
	g.runWrite(w, r, fmt.Sprintf("update asset %d", id), false, http.StatusOK, func(ctx context.Context) (*writeResponse, error) {
		tx, err := g.tracker.UpdateAssetStatus(ctx, id, req.Status)
		if err != nil {
			return nil, err
		}
		return &writeResponse{Tx: tx}, nil
	})
}

type transferRequest struct {
	Recipient     string `json:"recipient"`
	RecipientName string `json:"recipientName"`
}

func (g *Gateway) transferHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	var req transferRequest
	if err := httputil.DecodeJSONStrict(w, r, &req); err != nil {
		g.writeError(w, r, err)
		return
	}
	// same key as a status update: both rewrite the asset record
	g.runWrite(w, r, fmt.Sprintf("update asset %d", id), false, http.StatusOK, func(ctx context.Context) (*writeResponse, error) {
		tx, err := g.tracker.TransferOwnership(ctx, id, req.Recipient, req.RecipientName)
		if err != nil {
			return nil, err
		}
		return &writeResponse{Tx: tx}, nil
	})
}

package gateway

import (
	"bufio"
	"fmt"
	"net"
	"net/http"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/httputil"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type statusResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Hijack lets the websocket upgrader take over the connection through the logging wrapper.
func (w *statusResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// writeJSON writes JSON with status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	httputil.WriteJSON(w, code, v)
}

// writeError renders err with its taxonomy code. The request id doubles as trace id.
func (g *Gateway) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := trackererrors.StatusCode(err)
	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.String("code", trackererrors.GetErrorCode(err)),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		g.logger.ComponentWarn(logging.ComponentGateway, "request failed", fields...)
	} else {
		g.logger.ComponentDebug(logging.ComponentGateway, "request rejected", fields...)
	}
	httputil.WriteError(w, err, middleware.GetReqID(r.Context()))
}

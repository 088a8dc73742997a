package insert

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-sod/kdset/internal/httputil"
	"github.com/go-sod/kdset/internal/logging"
	"github.com/go-sod/kdset/pkg/geom"
)

type Index interface {
	Insert(ctx context.Context, points ...geom.Point) (int, error)
	Len() int
}

type request struct {
	Points []geom.Point `json:"points"`
}

type response struct {
	Inserted int `json:"inserted"`
	Size     int `json:"size"`
}

func NewHandler(cfg *Config, index Index) (http.Handler, error) {
	if index == nil {
		return nil, errors.New("index instance is not defined")
	}
	return &handler{cfg: cfg, index: index}, nil
}

type handler struct {
	index Index
	cfg   *Config
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if !httputil.DecodeJSONRequest(ctx, w, r, &req) {
		return
	}

	if len(req.Points) > h.cfg.MaxPoints {
		httputil.RespBadRequest(ctx, w, `{"error": "too many points, max allowed len is %d"}`, h.cfg.MaxPoints)
		return
	}

	n, err := h.index.Insert(ctx, req.Points...)
	switch {
	case errors.Is(err, geom.ErrOutOfRange):
		httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, err)
		return
	case err != nil:
		httputil.RespInternalError(ctx, w, `{"error": "insert: %v"}`, err)
		return
	}

	logging.FromContext(ctx).Debugf("inserted %d of %d points", n, len(req.Points))
	httputil.RespJSON(ctx, w, http.StatusOK, response{Inserted: n, Size: h.index.Len()})
}

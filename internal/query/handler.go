// Package query serves the read side of the index over HTTP.
package query

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-sod/kdset/internal/httputil"
	"github.com/go-sod/kdset/pkg/container/kdtree"
	"github.com/go-sod/kdset/pkg/geom"
)

type Index interface {
	Contains(ctx context.Context, p geom.Point) bool
	Range(ctx context.Context, r geom.Rect) ([]geom.Point, error)
	Nearest(ctx context.Context, p geom.Point) (geom.Point, bool)
	KNearest(ctx context.Context, p geom.Point, k int) []geom.Point
	Partitions(ctx context.Context) []kdtree.Partition
}

type pointRequest struct {
	Point *geom.Point `json:"point"`
	K     int         `json:"k,omitempty"`
}

type rangeRequest struct {
	Rect *geom.Rect `json:"rect"`
}

type pointsResponse struct {
	Points []geom.Point `json:"points"`
}

// NewHandler returns a mux serving /contains, /range, /nearest and /partitions.
func NewHandler(cfg *Config, index Index) (http.Handler, error) {
	if index == nil {
		return nil, errors.New("index instance is not defined")
	}
	h := &handler{cfg: cfg, index: index}
	mux := http.NewServeMux()
	mux.HandleFunc("/contains", h.contains)
	mux.HandleFunc("/range", h.rangeSearch)
	mux.HandleFunc("/nearest", h.nearest)
	mux.HandleFunc("/partitions", h.partitions)
	return mux, nil
}

type handler struct {
	index Index
	cfg   *Config
}

func (h *handler) decodePoint(ctx context.Context, w http.ResponseWriter, r *http.Request) (pointRequest, bool) {
	var req pointRequest
	if !httputil.DecodeJSONRequest(ctx, w, r, &req) {
		return req, false
	}
	if req.Point == nil {
		httputil.RespBadRequest(ctx, w, `{"error": "point is required"}`)
		return req, false
	}
	return req, true
}

func (h *handler) contains(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	req, ok := h.decodePoint(ctx, w, r)
	if !ok {
		return
	}
	httputil.RespJSON(ctx, w, http.StatusOK, struct {
		Contains bool `json:"contains"`
	}{h.index.Contains(ctx, *req.Point)})
}

func (h *handler) rangeSearch(w http.ResponseWriter, r *http.Request) {
	var req rangeRequest
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	if !httputil.DecodeJSONRequest(ctx, w, r, &req) {
		return
	}
	if req.Rect == nil {
		httputil.RespBadRequest(ctx, w, `{"error": "rect is required"}`)
		return
	}
	points, err := h.index.Range(ctx, *req.Rect)
	if err != nil {
		httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, err)
		return
	}
	httputil.RespJSON(ctx, w, http.StatusOK, pointsResponse{Points: points})
}

func (h *handler) nearest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	req, ok := h.decodePoint(ctx, w, r)
	if !ok {
		return
	}

	switch {
	case req.K < 0:
		httputil.RespBadRequest(ctx, w, `{"error": "k must not be negative"}`)
		return
	case req.K > h.cfg.MaxPoints:
		httputil.RespBadRequest(ctx, w, `{"error": "k is too large, max allowed is %d"}`, h.cfg.MaxPoints)
		return
	}

	resp := pointsResponse{Points: []geom.Point{}}
	if req.K <= 1 {
		if p, ok := h.index.Nearest(ctx, *req.Point); ok {
			resp.Points = append(resp.Points, p)
		}
	} else {
		resp.Points = h.index.KNearest(ctx, *req.Point, req.K)
	}
	httputil.RespJSON(ctx, w, http.StatusOK, resp)
}

func (h *handler) partitions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		httputil.RespError(ctx, w, http.StatusMethodNotAllowed, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}
	httputil.RespJSON(ctx, w, http.StatusOK, struct {
		Partitions []kdtree.Partition `json:"partitions"`
	}{h.index.Partitions(ctx)})
}

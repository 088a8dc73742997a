package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-sod/kdset/internal/index"
	"github.com/go-sod/kdset/internal/insert"
	"github.com/go-sod/kdset/internal/query"
)

var queryRoutes = []string{"/contains", "/range", "/nearest", "/partitions"}

// NewMux routes the index API and /health. The caller adds /metrics.
func NewMux(ctx context.Context, insertCfg *insert.Config, queryCfg *query.Config, idx *index.Manager) (*http.ServeMux, error) {
	insertHandler, err := insert.NewHandler(insertCfg, idx)
	if err != nil {
		return nil, fmt.Errorf("insert.NewHandler: %w", err)
	}
	queryHandler, err := query.NewHandler(queryCfg, idx)
	if err != nil {
		return nil, fmt.Errorf("query.NewHandler: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/insert", insertHandler)
	for _, route := range queryRoutes {
		mux.Handle(route, queryHandler)
	}
	mux.Handle("/health", HandleHealth(ctx))
	return mux, nil
}

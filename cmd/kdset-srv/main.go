package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-sod/kdset/internal/buildinfo"
	"github.com/go-sod/kdset/internal/config"
	"github.com/go-sod/kdset/internal/logging"
	"github.com/go-sod/kdset/internal/metrics"
	"github.com/go-sod/kdset/internal/middleware"
	"github.com/go-sod/kdset/internal/server"
	"github.com/go-sod/kdset/internal/setup"
	"github.com/go-sod/kdset/internal/shutdown"
	"golang.org/x/sync/errgroup"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Banner)
	_, _ = fmt.Fprintln(os.Stdout, buildinfo.String())

	ctx, done := shutdown.New()
	defer done()
	if err := run(ctx); err != nil {
		logging.FromContext(ctx).Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg := config.Config{}
	env, err := setup.Setup(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer env.Close(ctx)

	logger := logging.NewLogger(cfg.LogDebug)
	ctx = logging.WithLogger(ctx, logger)

	if err := metrics.Register(); err != nil {
		return fmt.Errorf("metrics.Register: %w", err)
	}
	exporter, err := metrics.NewExporter()
	if err != nil {
		return fmt.Errorf("metrics.NewExporter: %w", err)
	}

	idx, err := env.ProvideIndex()()
	if err != nil {
		return fmt.Errorf("index provider function error: %w", err)
	}
	if err := idx.Run(ctx); err != nil {
		return fmt.Errorf("index.Run: %w", err)
	}

	mux, err := server.NewMux(ctx, cfg.InsertConfig(), cfg.QueryConfig(), idx)
	if err != nil {
		return fmt.Errorf("server.NewMux: %w", err)
	}
	mux.Handle("/metrics", exporter)

	srv, err := server.New(cfg.SrvAddr, cfg.MaxConns)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	grpcSrv, err := server.New(cfg.GRPCAddr, cfg.MaxConns)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	health, _ := server.NewHealthServer()

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		return srv.ServeHTTPHandler(gctx, middleware.RequestID(mux))
	})
	grp.Go(func() error {
		return grpcSrv.ServeGRPC(gctx, health)
	})
	if provideSeeder := env.ProvideSeeder(); provideSeeder != nil {
		grp.Go(func() error {
			seeder, err := provideSeeder(idx)
			if err != nil {
				return fmt.Errorf("seeder provider function error: %w", err)
			}
			if _, err := seeder.Run(gctx); err != nil {
				return fmt.Errorf("seeder.Run: %w", err)
			}
			return nil
		})
	}

	logger.Infow("serving", "addr", cfg.SrvAddr, "grpc", cfg.GRPCAddr, "pruning", idx.Pruning().String(), "size", idx.Len())
	return grp.Wait()
}

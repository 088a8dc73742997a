package setup

import (
	"context"
	"fmt"

	"github.com/go-sod/kdset/internal/database"
	"github.com/go-sod/kdset/internal/index"
	"github.com/go-sod/kdset/internal/logging"
	pointdb "github.com/go-sod/kdset/internal/point/database"
	"github.com/go-sod/kdset/internal/seed"
	"github.com/go-sod/kdset/internal/srvenv"
	"github.com/go-sod/kdset/pkg/container/kdtree"
	"github.com/kelseyhightower/envconfig"
)

type IndexConfigProvider interface {
	IndexConfig() *index.Config
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type SeedConfigProvider interface {
	SeedConfig() *seed.Config
}

func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var db *database.DB
	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok && dbConfigProvider.DatabaseConfig().Enabled() {
		logger.Info("Configuring db")
		dbFromEnv, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to open database: %w", err)
		}
		db = dbFromEnv
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db))
	}

	if indexConfigProvider, ok := config.(IndexConfigProvider); ok {
		logger.Info("Configuring index")
		provideFn, err := ProvideIndexFor(indexConfigProvider, db)
		if err != nil {
			closeDB(ctx, db)
			return nil, fmt.Errorf("unable create index provide function: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithIndex(provideFn))
	}

	if seedConfigProvider, ok := config.(SeedConfigProvider); ok && len(seedConfigProvider.SeedConfig().Sources) > 0 {
		logger.Info("Configuring seeder")
		serverEnvOpts = append(serverEnvOpts, srvenv.WithSeeder(ProvideSeederFor(seedConfigProvider)))
	}

	return srvenv.New(serverEnvOpts...), nil
}

func closeDB(ctx context.Context, db *database.DB) {
	if db == nil {
		return
	}
	if err := db.Close(ctx); err != nil {
		logging.FromContext(ctx).Errorf("close db: %v", err)
	}
}

// ProvideIndexFor checks the pruning strategy up front. The point log is attached only when db is set.
func ProvideIndexFor(provider IndexConfigProvider, db *database.DB) (index.ProvideFn, error) {
	cfg := provider.IndexConfig()
	pruning, err := kdtree.PruningFor(cfg.Pruning)
	if err != nil {
		return nil, err
	}
	return func() (*index.Manager, error) {
		opts := []index.Option{index.WithPruning(pruning), index.WithReplay(cfg.Replay)}
		if db == nil {
			return index.New(nil, opts...), nil
		}
		return index.New(pointdb.New(db), opts...), nil
	}, nil
}

func ProvideSeederFor(provider SeedConfigProvider) seed.ProvideFn {
	cfg := provider.SeedConfig()
	return func(idx seed.Inserter) (*seed.Seeder, error) {
		opts := []seed.Option{
			seed.WithSources(cfg.Sources...),
			seed.WithMaxConcurrent(cfg.MaxConcurrent),
			seed.WithTimeout(cfg.Timeout),
			seed.WithBearerToken(cfg.BearerToken),
		}
		if username, password, ok := cfg.Credentials(); ok {
			opts = append(opts, seed.WithBasicAuth(username, password))
		}
		return seed.New(idx, opts...)
	}
}

package config

import (
	"github.com/go-sod/kdset/internal/database"
	"github.com/go-sod/kdset/internal/index"
	"github.com/go-sod/kdset/internal/insert"
	"github.com/go-sod/kdset/internal/query"
	"github.com/go-sod/kdset/internal/seed"
	"github.com/go-sod/kdset/internal/setup"
)

var (
	_ setup.DatabaseConfigProvider = (*Config)(nil)
	_ setup.IndexConfigProvider    = (*Config)(nil)
	_ setup.SeedConfigProvider     = (*Config)(nil)
)

type Config struct {
	SrvAddr  string `envconfig:"KDSET_ADDR" default:":8787"`
	GRPCAddr string `envconfig:"KDSET_GRPC_ADDR" default:":8788"`
	MaxConns int    `envconfig:"KDSET_MAX_CONNS" default:"1024"`
	LogDebug bool   `envconfig:"KDSET_LOG_DEBUG" default:"false"`
	Index    index.Config
	Database database.Config
	Seed     seed.Config
	Insert   insert.Config
	Query    query.Config
}

func (c *Config) IndexConfig() *index.Config {
	return &c.Index
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) SeedConfig() *seed.Config {
	return &c.Seed
}

func (c *Config) InsertConfig() *insert.Config {
	return &c.Insert
}

func (c *Config) QueryConfig() *query.Config {
	return &c.Query
}

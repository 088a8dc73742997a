package srvenv

import (
	"context"

	"github.com/go-sod/kdset/internal/database"
	"github.com/go-sod/kdset/internal/index"
	"github.com/go-sod/kdset/internal/seed"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	database *database.DB
	index    index.ProvideFn
	seeder   seed.ProvideFn
}

func (s *SrvEnv) ProvideIndex() index.ProvideFn {
	return s.index
}

func (s *SrvEnv) ProvideSeeder() seed.ProvideFn {
	return s.seeder
}

func (s *SrvEnv) Database() *database.DB {
	return s.database
}

func WithIndex(fn index.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.index = fn
		return s
	}
}

func WithSeeder(fn seed.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.seeder = fn
		return s
	}
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	if s.database != nil {
		return s.database.Close(ctx)
	}
	return nil
}

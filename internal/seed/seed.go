// Package seed loads point lists from files and http(s) URLs into the index at startup.
package seed

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-sod/kdset/internal/httputil"
	"github.com/go-sod/kdset/internal/logging"
	"github.com/go-sod/kdset/internal/metrics"
	"github.com/go-sod/kdset/internal/pointfile"
	"github.com/go-sod/kdset/pkg/geom"
	"github.com/go-sod/kdset/pkg/rworker"
)

// Inserter is the part of the index the seeder writes to.
type Inserter interface {
	Insert(ctx context.Context, points ...geom.Point) (int, error)
}

type ProvideFn func(Inserter) (*Seeder, error)

type Options struct {
	maxConcurrent int
	timeout       time.Duration
	client        httputil.HTTPClientConfig
}

type Option func(*Seeder)

func WithMaxConcurrent(n int) Option {
	return func(s *Seeder) {
		s.opts.maxConcurrent = n
	}
}

func WithTimeout(t time.Duration) Option {
	return func(s *Seeder) {
		s.opts.timeout = t
	}
}

func WithSources(sources ...string) Option {
	return func(s *Seeder) {
		s.sources = append(s.sources, sources...)
	}
}

func WithBearerToken(token string) Option {
	return func(s *Seeder) {
		s.opts.client.BearerToken = token
	}
}

func WithBasicAuth(username, password string) Option {
	return func(s *Seeder) {
		s.opts.client.BasicAuth = &httputil.BasicAuth{Username: username, Password: password}
	}
}

func New(index Inserter, opts ...Option) (*Seeder, error) {
	if index == nil {
		return nil, errors.New("index instance is not defined")
	}
	s := &Seeder{
		index: index,
		opts:  Options{maxConcurrent: 8, timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	client, err := httputil.NewClientFromConfig(s.opts.client)
	if err != nil {
		return nil, fmt.Errorf("seed http client: %w", err)
	}
	s.client = client
	return s, nil
}

type Seeder struct {
	opts    Options
	sources []string
	index   Inserter
	client  *http.Client
}

type Result struct {
	Sources  int `json:"sources"`
	Read     int `json:"read"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Run fetches every source concurrently, then inserts their points source by source in the
// configured order. Points outside the unit square are skipped. Any failing source fails the run
// before anything is inserted.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	logger := logging.FromContext(ctx)
	defer metrics.RecordLatency(ctx, "seed", time.Now())

	res := Result{Sources: len(s.sources)}
	lists := make([][]geom.Point, len(s.sources))
	pool := rworker.New(s.opts.maxConcurrent)
	for i, src := range s.sources {
		i, src := i, src
		pool.Go(func() error {
			points, err := s.fetch(ctx, src)
			if err != nil {
				return fmt.Errorf("seed source %s: %w", src, err)
			}
			lists[i] = points
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return res, err
	}

	for i, points := range lists {
		valid := points[:0:0]
		for _, p := range points {
			if p.InUnitSquare() {
				valid = append(valid, p)
			}
		}
		skipped := len(points) - len(valid)
		if skipped > 0 {
			logger.Warnf("seed source %s: skipped %d points outside the unit square", s.sources[i], skipped)
			metrics.RecordRejected(ctx, skipped)
		}
		n, err := s.index.Insert(ctx, valid...)
		if err != nil {
			return res, fmt.Errorf("seed source %s: %w", s.sources[i], err)
		}
		res.Read += len(points)
		res.Inserted += n
		res.Skipped += skipped
	}
	logger.Infow("seeding finished", "sources", res.Sources, "read", res.Read, "inserted", res.Inserted, "skipped", res.Skipped)
	return res, nil
}

func (s *Seeder) fetch(ctx context.Context, src string) ([]geom.Point, error) {
	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return pointfile.ReadFile(src)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request error: %w", err)
	}
	req.Header.Add("Accept-Encoding", "gzip")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("response was not 200 OK: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("unable create gzip.NewReader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}
	return pointfile.Read(reader)
}

package seed

import (
	"compress/gzip"
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-sod/kdset/pkg/geom"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mtx    sync.Mutex
	points []geom.Point
}

func (r *recorder) Insert(_ context.Context, points ...geom.Point) (int, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.points = append(r.points, points...)
	return len(points), nil
}

func TestSeederRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/plain":
			_, _ = w.Write([]byte("0.5 0.5\n0.1 0.9\n"))
		case "/gzip":
			if r.Header.Get("Accept-Encoding") != "gzip" || r.Header.Get("Authorization") != "Bearer secret" {
				http.Error(w, "unexpected headers", http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Encoding", "gzip")
			gz := gzip.NewWriter(w)
			_, _ = gz.Write([]byte("0.2 0.3 1.5 0.5\n"))
			_ = gz.Close()
		case "/basic":
			if user, pass, ok := r.BasicAuth(); !ok || user != "kdset" || pass != "s3cret" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte("0.6 0.4\n"))
		default:
			http.Error(w, "no such list", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	dir, err := ioutil.TempDir("", "kdset-seed")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	file := filepath.Join(dir, "points.txt")
	require.NoError(t, ioutil.WriteFile(file, []byte("0.0 0.0\n1.0 1.0\n"), 0o600))

	t.Run("order_and_skips", func(t *testing.T) {
		rec := &recorder{}
		s, err := New(rec,
			WithSources(srv.URL+"/plain", file, srv.URL+"/gzip"),
			WithBearerToken("secret"),
			WithMaxConcurrent(2),
		)
		require.NoError(t, err)
		res, err := s.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, Result{Sources: 3, Read: 6, Inserted: 5, Skipped: 1}, res)
		require.Equal(t, []geom.Point{
			{X: 0.5, Y: 0.5}, {X: 0.1, Y: 0.9},
			{X: 0, Y: 0}, {X: 1, Y: 1},
			{X: 0.2, Y: 0.3},
		}, rec.points)
	})

	t.Run("basic_auth", func(t *testing.T) {
		rec := &recorder{}
		s, err := New(rec, WithSources(srv.URL+"/basic"), WithBasicAuth("kdset", "s3cret"))
		require.NoError(t, err)
		res, err := s.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, res.Inserted)
		require.Equal(t, []geom.Point{{X: 0.6, Y: 0.4}}, rec.points)

		s, err = New(&recorder{}, WithSources(srv.URL+"/basic"), WithBasicAuth("kdset", "wrong"))
		require.NoError(t, err)
		_, err = s.Run(context.Background())
		require.Error(t, err)
	})

	t.Run("both_auth_methods", func(t *testing.T) {
		_, err := New(&recorder{}, WithBearerToken("secret"), WithBasicAuth("kdset", "s3cret"))
		require.Error(t, err)
	})

	t.Run("failing_source", func(t *testing.T) {
		rec := &recorder{}
		s, err := New(rec, WithSources(srv.URL+"/plain", srv.URL+"/missing"))
		require.NoError(t, err)
		_, err = s.Run(context.Background())
		require.Error(t, err)
		require.Empty(t, rec.points)
	})

	t.Run("missing_file", func(t *testing.T) {
		s, err := New(&recorder{}, WithSources(filepath.Join(dir, "nope.txt")))
		require.NoError(t, err)
		_, err = s.Run(context.Background())
		require.Error(t, err)
	})
}

func TestNewWithoutIndex(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Errorf("New(nil) error, got: nil, expected: error")
	}
}

func TestConfigCredentials(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		username string
		password string
		ok       bool
	}{
		{name: "unset"},
		{name: "pair", value: "kdset:s3cret", username: "kdset", password: "s3cret", ok: true},
		{name: "colon_in_password", value: "kdset:a:b", username: "kdset", password: "a:b", ok: true},
		{name: "username_only", value: "kdset", username: "kdset", ok: true},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			username, password, ok := Config{BasicAuth: test.value}.Credentials()
			if username != test.username || password != test.password || ok != test.ok {
				t.Errorf("credentials, got: %q %q %v, expected: %q %q %v",
					username, password, ok, test.username, test.password, test.ok)
			}
		})
	}
}

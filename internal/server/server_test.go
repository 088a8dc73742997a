package server

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestServeHTTPHandler(t *testing.T) {
	srv, err := New("127.0.0.1:0", 4)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.ServeHTTPHandler(ctx, HandleHealth(ctx))
	}()

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	require.NoError(t, err)
	body, err := ioutil.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"status": "ok"}`, string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		canceled bool
		status   int
	}{
		{name: "serving", method: http.MethodGet, status: http.StatusOK},
		{name: "shutting_down", method: http.MethodGet, canceled: true, status: http.StatusServiceUnavailable},
		{name: "post", method: http.MethodPost, status: http.StatusMethodNotAllowed},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if test.canceled {
				cancel()
			}
			rec := httptest.NewRecorder()
			HandleHealth(ctx).ServeHTTP(rec, httptest.NewRequest(test.method, "/health", nil))
			if rec.Code != test.status {
				t.Errorf("status, got: %v, expected: %v", rec.Code, test.status)
			}
		})
	}
}

func TestServeGRPCHealth(t *testing.T) {
	srv, err := New("127.0.0.1:0", 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	grpcSrv, _ := NewHealthServer()
	done := make(chan error, 1)
	go func() {
		done <- srv.ServeGRPC(ctx, grpcSrv)
	}()

	dialCtx, dialCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer dialCancel()
	conn, err := grpc.DialContext(dialCtx, srv.Addr(), grpc.WithInsecure(), grpc.WithBlock())
	require.NoError(t, err)
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(dialCtx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("grpc server did not stop")
	}
}

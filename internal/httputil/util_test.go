package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSONRequest(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		ok          bool
		status      int
	}{
		{name: "ok", method: http.MethodPost, contentType: "application/json; charset=utf-8", body: `{"a":1}`, ok: true, status: http.StatusOK},
		{name: "method", method: http.MethodPut, contentType: "application/json", body: `{"a":1}`, status: http.StatusMethodNotAllowed},
		{name: "content_type", method: http.MethodPost, contentType: "text/plain", body: `{"a":1}`, status: http.StatusUnsupportedMediaType},
		{name: "empty", method: http.MethodPost, contentType: "application/json", status: http.StatusBadRequest},
		{name: "syntax", method: http.MethodPost, contentType: "application/json", body: `{"a":}`, status: http.StatusBadRequest},
		{name: "type", method: http.MethodPost, contentType: "application/json", body: `{"a":"x"}`, status: http.StatusBadRequest},
		{name: "unknown_field", method: http.MethodPost, contentType: "application/json", body: `{"b":1}`, status: http.StatusBadRequest},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var dst struct {
				A int `json:"a"`
			}
			req := httptest.NewRequest(test.method, "/", strings.NewReader(test.body))
			req.Header.Set("Content-Type", test.contentType)
			rec := httptest.NewRecorder()
			ok := DecodeJSONRequest(context.Background(), rec, req, &dst)
			if ok != test.ok {
				t.Fatalf("decode ok, got: %v, expected: %v (%s)", ok, test.ok, rec.Body.String())
			}
			if rec.Code != test.status {
				t.Errorf("status, got: %v, expected: %v", rec.Code, test.status)
			}
			if ok && dst.A != 1 {
				t.Errorf("decoded value, got: %v, expected: %v", dst.A, 1)
			}
		})
	}
}

func TestRoundTripperFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      HTTPClientConfig
		expected string
	}{
		{name: "none"},
		{name: "bearer", cfg: HTTPClientConfig{BearerToken: "t0k"}, expected: "Bearer t0k"},
		{name: "basic", cfg: HTTPClientConfig{BasicAuth: &BasicAuth{Username: "u", Password: "p"}}, expected: "Basic dTpw"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			var auth, agent string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				auth, agent = r.Header.Get("Authorization"), r.Header.Get("User-Agent")
			}))
			defer srv.Close()

			client, err := NewClientFromConfig(test.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			resp, err := client.Get(srv.URL)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			resp.Body.Close()
			if auth != test.expected {
				t.Errorf("authorization, got: %q, expected: %q", auth, test.expected)
			}
			if agent != UserAgent {
				t.Errorf("user agent, got: %q, expected: %q", agent, UserAgent)
			}
		})
	}
}

func TestHTTPClientConfigValidate(t *testing.T) {
	cfg := HTTPClientConfig{BearerToken: "t", BasicAuth: &BasicAuth{Username: "u"}}
	if err := cfg.Validate(); err == nil {
		t.Errorf("validate both auth methods, got: nil, expected: error")
	}
	cfg = HTTPClientConfig{BasicAuth: &BasicAuth{}}
	if err := cfg.Validate(); err == nil {
		t.Errorf("validate empty username, got: nil, expected: error")
	}
}

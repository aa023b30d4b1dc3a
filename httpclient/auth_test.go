package httpclient

import (
	"net/http"
	"testing"
)

func TestAuthConfig_Property(t *testing.T) {
	tests := []struct {
		name  string
		auth  *AuthConfig
		check func(t *testing.T, req *http.Request)
	}{
		{
			name: "bearer",
			auth: BearerAuth("my-token"),
			check: func(t *testing.T, req *http.Request) {
				if got := req.Header.Get("Authorization"); got != "Bearer my-token" {
					t.Errorf("got %q, want %q", got, "Bearer my-token")
				}
			},
		},
		{
			name: "basic",
			auth: BasicAuth("user", "pass"),
			check: func(t *testing.T, req *http.Request) {
				u, p, ok := req.BasicAuth()
				if !ok || u != "user" || p != "pass" {
					t.Errorf("basic auth not set correctly: user=%q pass=%q ok=%v", u, p, ok)
				}
			},
		},
		{
			name: "api key header",
			auth: APIKeyAuth("secret-key"),
			check: func(t *testing.T, req *http.Request) {
				if got := req.Header.Get("X-API-Key"); got != "secret-key" {
					t.Errorf("got %q, want %q", got, "secret-key")
				}
			},
		},
		{
			name: "api key query",
			auth: APIKeyAuthQuery("secret-key", "api_key"),
			check: func(t *testing.T, req *http.Request) {
				if got := req.URL.Query().Get("api_key"); got != "secret-key" {
					t.Errorf("got %q, want %q", got, "secret-key")
				}
				if got := req.URL.Query().Get("page"); got != "2" {
					t.Errorf("existing query lost, got page=%q", got)
				}
			},
		},
		{
			name: "custom",
			auth: CustomAuth(func(req *http.Request) { req.Header.Set("X-Custom", "value") }),
			check: func(t *testing.T, req *http.Request) {
				if got := req.Header.Get("X-Custom"); got != "value" {
					t.Errorf("got %q, want %q", got, "value")
				}
			},
		},
		{
			name: "none",
			auth: &AuthConfig{Type: AuthNone},
			check: func(t *testing.T, req *http.Request) {
				if req.Header.Get("Authorization") != "" {
					t.Error("AuthNone should not set Authorization header")
				}
			},
		},
		{
			name:  "nil",
			auth:  nil,
			check: func(t *testing.T, req *http.Request) {},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "http://example.com/path?page=2", nil)
			tt.auth.Property()(req)
			tt.check(t, req)
		})
	}
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/gofetch/fetch/fetchtest"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	srv := fetchtest.NewServer()
	defer srv.Close()

	dir := t.TempDir()
	audio := filepath.Join(dir, "clip.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"version", []string{"--version"}, exitOK, "fetchctl dev", ""},
		{"get", []string{srv.URL("/books/1")}, exitOK, `"title": "The Warded Man"`, ""},
		{"post data", []string{"-d", `{"title":"Dune"}`, srv.URL("/echo")}, exitOK, `"method": "POST"`, ""},
		{"method and header", []string{"-X", "put", "-H", "X-Trace: abc", srv.URL("/echo")}, exitOK, `"X-Trace": "abc"`, ""},
		{"snake case", []string{"--case", "snake", srv.URL("/authors/1")}, exitOK, `"name": "Peter V. Brett"`, ""},
		{"multipart", []string{"-F", "language=en", "-F", "audio=@" + audio, srv.URL("/upload")}, exitOK, `"name": "clip.wav"`, ""},
		{"no body", []string{"--no-body", srv.URL("/empty")}, exitOK, "", ""},
		{"unexpected body", []string{"--no-body", srv.URL("/books/1")}, exitFetch, "", "No body expected for this request"},
		{"not found", []string{srv.URL("/status/404")}, exitFetch, "", "404 Not Found: GET " + srv.URL("/status/404")},
		{"bad header", []string{"-H", "nocolon", srv.URL("/echo")}, exitUsage, "", "invalid header"},
		{"bad data", []string{"-d", "{", srv.URL("/echo")}, exitUsage, "", "invalid -d JSON"},
		{"bad case", []string{"--case", "kebab", srv.URL("/echo")}, exitUsage, "", "case_strategy"},
		{"missing url", nil, exitUsage, "", "expected exactly one URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCmd(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("expected exit %d, got %d (stderr: %s)", tt.wantCode, code, stderr)
			}
			if !strings.Contains(stdout, tt.wantStdout) {
				t.Errorf("expected stdout containing %q, got %q", tt.wantStdout, stdout)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("expected stderr containing %q, got %q", tt.wantStderr, stderr)
			}
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	srv := fetchtest.NewServer()
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "fetchctl.yml")
	yml := "name: fetchctl-test\nfetch:\n  http:\n    base_url: " + srv.BaseURL() + "\n    headers:\n      X-Env: test\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runCmd(t, "--config", path, "/echo")
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stdout, `"X-Env": "test"`) {
		t.Errorf("expected configured header in echo, got %s", stdout)
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if cfg.Name != appName || cfg.Logging.Level != "warn" {
		t.Errorf("unexpected defaults: name=%q level=%q", cfg.Name, cfg.Logging.Level)
	}
	if cfg.Observability.ServiceName != appName || cfg.Fetch.CaseStrategy != "preserve" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("port", 5000, "")
	fs.String("base-url", "", "")
	fs.String("id-scheme", "uuid", "")
	fs.String("log-level", "info", "")
	fs.String("log-format", "text", "")
	fs.Bool("debug", false, "")
	return fs
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != 5000 {
		t.Fatalf("port=%d", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:5000" {
		t.Fatalf("base_url=%q", cfg.BaseURL)
	}
	if cfg.IDScheme != "uuid" || cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.RequestTimeout != 3*time.Second || cfg.MaxBodyBytes != 1<<20 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Addr() != ":5000" {
		t.Fatalf("addr=%q", cfg.Addr())
	}
	if cfg.PathPrefix() != "" {
		t.Fatalf("prefix=%q", cfg.PathPrefix())
	}
}

func TestLoad_BaseURLFollowsPort(t *testing.T) {
	fs := testFlags()
	if err := fs.Parse([]string{"--port", "8080"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load("", fs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Fatalf("base_url=%q", cfg.BaseURL)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	path := writeFile(t, "todo-backend.toml", `
port = 7000
base_url = "https://todos.example.com/api/"
id_scheme = "sequence"
log_format = "json"
request_timeout = "10s"
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 7000 || cfg.IDScheme != "sequence" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("request_timeout=%s", cfg.RequestTimeout)
	}
	if cfg.PathPrefix() != "/api" {
		t.Fatalf("prefix=%q", cfg.PathPrefix())
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "todo-backend.yaml", `
port: 6000
debug: true
log_level: debug
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 6000 || !cfg.Debug || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.BaseURL != "http://localhost:6000" {
		t.Fatalf("base_url=%q", cfg.BaseURL)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "todo-backend.toml", `
port = 7000
log_level = "warn"
id_scheme = "sequence"
`)
	t.Setenv("TODO_BACKEND_PORT", "7100")
	t.Setenv("TODO_BACKEND_LOG_LEVEL", "error")

	fs := testFlags()
	if err := fs.Parse([]string{"--port", "7200"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(path, fs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 7200 {
		t.Fatalf("flag should win: port=%d", cfg.Port)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("env should beat file: log_level=%q", cfg.LogLevel)
	}
	if cfg.IDScheme != "sequence" {
		t.Fatalf("file should beat defaults: id_scheme=%q", cfg.IDScheme)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "port", env: map[string]string{"TODO_BACKEND_PORT": "70000"}, wantErr: "port"},
		{name: "relative base url", env: map[string]string{"TODO_BACKEND_BASE_URL": "/todos"}, wantErr: "absolute"},
		{name: "id scheme", env: map[string]string{"TODO_BACKEND_ID_SCHEME": "ulid"}, wantErr: "id scheme"},
		{name: "log level", env: map[string]string{"TODO_BACKEND_LOG_LEVEL": "loud"}, wantErr: "log level"},
		{name: "log format", env: map[string]string{"TODO_BACKEND_LOG_FORMAT": "xml"}, wantErr: "log format"},
		{name: "timeout", env: map[string]string{"TODO_BACKEND_REQUEST_TIMEOUT": "0s"}, wantErr: "timeouts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("", nil)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err=%q want substring %q", err, tt.wantErr)
			}
		})
	}
}

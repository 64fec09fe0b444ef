package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_EmptyPath_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Transport != TransportTCP {
		t.Errorf("server.transport: got %q, want tcp", cfg.Server.Transport)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("server.port: got %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.TCP.AllowRemoteRemove {
		t.Error("server.tcp.allow_remote_remove: got true, want false")
	}
	if !cfg.Server.Dashboard.Enabled || cfg.Server.Dashboard.Interval != DefaultDashboardInterval {
		t.Errorf("server.dashboard: got %+v", cfg.Server.Dashboard)
	}
	if cfg.Server.HTTP.Enabled {
		t.Error("server.http.enabled: got true, want false")
	}
	if cfg.Client.Addr() != "127.0.0.1:3001" {
		t.Errorf("client addr: got %q, want 127.0.0.1:3001", cfg.Client.Addr())
	}
	if cfg.Server.Addr() != ":3001" {
		t.Errorf("server addr: got %q, want :3001", cfg.Server.Addr())
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log: got %+v", cfg.Log)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	p := writeConfig(t, `client:
  name: alice
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Client.Name != "alice" {
		t.Errorf("client.name: got %q, want alice", cfg.Client.Name)
	}
	if cfg.Client.Port != DefaultPort || cfg.Client.SendTimeout != DefaultSendTimeout {
		t.Errorf("client defaults lost: %+v", cfg.Client)
	}
	if !cfg.Server.Dashboard.Enabled {
		t.Error("server.dashboard.enabled: default lost")
	}
}

func TestLoad_Full(t *testing.T) {
	p := writeConfig(t, `log:
  level: debug
  format: text
server:
  transport: grpc
  listen_addr: 0.0.0.0
  port: 4000
  tcp:
    allow_remote_remove: true
  dashboard:
    enabled: false
    interval: 250ms
  http:
    enabled: true
    port: 4001
    stream_interval: 2s
client:
  transport: grpc
  address: chat.example.com
  port: 4000
  name: bob
  send_timeout: 1s
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Server
	if s.Transport != TransportGRPC || s.Addr() != "0.0.0.0:4000" || !s.TCP.AllowRemoteRemove {
		t.Errorf("server: got %+v", s)
	}
	if s.Dashboard.Enabled || s.Dashboard.Interval != 250*time.Millisecond {
		t.Errorf("server.dashboard: got %+v", s.Dashboard)
	}
	if !s.HTTP.Enabled || s.HTTPAddr() != "0.0.0.0:4001" || s.HTTP.StreamInterval != 2*time.Second {
		t.Errorf("server.http: got %+v", s.HTTP)
	}
	c := cfg.Client
	if c.Transport != TransportGRPC || c.Addr() != "chat.example.com:4000" || c.Name != "bob" || c.SendTimeout != time.Second {
		t.Errorf("client: got %+v", c)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log: got %+v", cfg.Log)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad transport", "server:\n  transport: udp\n", "server.transport \"udp\" unknown: want tcp|grpc"},
		{"port zero", "server:\n  port: 0\n", "server.port 0 is out of range"},
		{"port too big", "client:\n  port: 70000\n", "client.port 70000 is out of range"},
		{"negative interval", "server:\n  dashboard:\n    interval: -1s\n", "server.dashboard.interval must be positive"},
		{"bad level", "log:\n  level: loud\n", "log.level \"loud\" unknown"},
		{"bad format", "log:\n  format: xml\n", "log.format \"xml\" unknown: want json|text"},
		{"empty address", "client:\n  address: \"\"\n", "client.address is required"},
		{"bad address", "client:\n  address: \"not a host\"\n", "client.address"},
		{"name with newline", "client:\n  name: \"a\\nb\"\n", "client.name must not contain line breaks"},
		{"http port collision", "server:\n  http:\n    enabled: true\n    port: 3001\n", "collides with server.port"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("error: got %q, want substring %q", err, c.wantErr)
			}
		})
	}
}

func TestValidate_AfterOverride(t *testing.T) {
	cfg := Defaults()
	cfg.Client.Name = "alice"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	cfg.Client.Name = "al\nice"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "client.name must not contain line breaks") {
		t.Errorf("error: got %v, want line break rejection", err)
	}
}

func TestLoad_HTTPPortMayMatchWhenDisabled(t *testing.T) {
	if _, err := Load(writeConfig(t, "server:\n  http:\n    port: 3001\n")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error: got %v, want not-exist", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed\n"))
	if err == nil || !strings.Contains(err.Error(), "parse yaml") {
		t.Errorf("error: got %v, want parse yaml error", err)
	}
}

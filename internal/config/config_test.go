package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Page.Lang != "en" {
		t.Errorf("Lang = %q, want en", cfg.Page.Lang)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d", cfg.Server.Port, DefaultPort)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := `{
  "name": "demo",
  "server": {"port": 4100, "pretty": true},
  "page": {"title": "Demo", "stylesheets": ["/app.css"]},
  "session": {"pingInterval": "5s"}
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != "demo" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Server.Port != 4100 {
		t.Errorf("Port = %d, want 4100", cfg.Server.Port)
	}
	if !cfg.Server.Pretty {
		t.Error("Pretty should be true")
	}
	if cfg.Page.Title != "Demo" {
		t.Errorf("Title = %q", cfg.Page.Title)
	}
	if len(cfg.Page.StyleSheets) != 1 || cfg.Page.StyleSheets[0] != "/app.css" {
		t.Errorf("StyleSheets = %v", cfg.Page.StyleSheets)
	}
	// Unset fields keep their defaults.
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Host = %q, want default", cfg.Server.Host)
	}
	if cfg.Page.Lang != "en" {
		t.Errorf("Lang = %q, want default en", cfg.Page.Lang)
	}

	d, err := cfg.Session.PingIntervalDuration()
	if err != nil {
		t.Fatal(err)
	}
	if d != 5*time.Second {
		t.Errorf("PingInterval = %v, want 5s", d)
	}
}

func TestLoadFileInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := New()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected port range error")
	}

	cfg = New()
	cfg.Session.PingInterval = "soon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected duration parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FILAMENT_PORT", "9999")
	t.Setenv("FILAMENT_HOST", "0.0.0.0")
	t.Setenv("FILAMENT_BUCKET", "my-site")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q", cfg.Server.Host)
	}
	if cfg.Publish.Bucket != "my-site" {
		t.Errorf("Bucket = %q", cfg.Publish.Bucket)
	}
	if cfg.Address() != "0.0.0.0:9999" {
		t.Errorf("Address = %q", cfg.Address())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	cfg.Name = "roundtrip"
	cfg.Publish.Bucket = "bucket"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Name != "roundtrip" || loaded.Publish.Bucket != "bucket" {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Path() != path {
		t.Errorf("Path = %q, want %q", loaded.Path(), path)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("found %q, want %q", found, root)
	}
}

func TestFindProjectRootNotFound(t *testing.T) {
	if _, err := FindProjectRoot(t.TempDir()); err == nil {
		t.Error("expected error when no config exists")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ScrollOff != 3 {
		t.Errorf("expected scrolloff 3, got %d", cfg.ScrollOff)
	}
	if !cfg.WrapJump {
		t.Error("expected wrap_jump enabled by default")
	}
	if !cfg.ShowHidden {
		t.Error("expected show_hidden enabled by default")
	}
	if cfg.Log.File != "" {
		t.Errorf("expected logging disabled, got file %q", cfg.Log.File)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
scrolloff: 5
wrap_jump: false
log:
  file: ~/vcd.log
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.ScrollOff != 5 {
		t.Errorf("scrolloff = %d, want 5", cfg.ScrollOff)
	}
	if cfg.WrapJump {
		t.Error("wrap_jump should be false")
	}
	if !cfg.ShowHidden {
		t.Error("show_hidden missing from file should keep its default")
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "vcd.log"); cfg.Log.File != want {
		t.Errorf("log file = %q, want %q", cfg.Log.File, want)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scrolloff: [not, a, number"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults on parse error, got %+v", cfg)
	}
}

func TestLoadFrom_NegativeScrollOff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scrolloff: -4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ScrollOff != 0 {
		t.Errorf("scrolloff = %d, want 0", cfg.ScrollOff)
	}
}

func TestConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got, want := ConfigPath(), filepath.Join("/tmp/xdg", "vcd", "config.yaml"); got != want {
		t.Errorf("ConfigPath = %q, want %q", got, want)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"VCD_SCROLLOFF": "7",
		"VCD_LOG_FILE":  "/var/log/vcd.log",
		"VCD_LOG_LEVEL": "info",
		"VCD_DEBUG":     "1",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.ScrollOff != 7 || cfg.Log.File != "/var/log/vcd.log" || cfg.Log.Level != "info" || !cfg.Debug {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestApplyEnv_BadScrollOff(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(envMap(map[string]string{"VCD_SCROLLOFF": "lots", "VCD_DEBUG": "0"}))
	if err == nil {
		t.Fatal("expected error for bad VCD_SCROLLOFF")
	}
	if cfg.ScrollOff != 3 {
		t.Errorf("scrolloff changed to %d", cfg.ScrollOff)
	}
	if cfg.Debug {
		t.Error("VCD_DEBUG=0 should not enable debug")
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"repage/common"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Page.Height <= 0 {
		t.Errorf("Page.Height = %f, want positive default", cfg.Page.Height)
	}
	if cfg.Engine.MaxIterations < 1 || cfg.Engine.MaxSweeps < 1 {
		t.Errorf("engine limits not defaulted: %+v", cfg.Engine)
	}
	if cfg.Engine.Footers != common.FooterModeCloned {
		t.Errorf("Footers = %v, want cloned", cfg.Engine.Footers)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
document:
  output_name_template: "{{ .Title }}"
  file_name_transliterate: true
page:
  height: 800
  line_height: 18
engine:
  tolerance: 1.0
  split_ids: uuid
  footers: static
measure:
  mode: text
logging:
  console:
    level: normal
  file:
    level: debug
    destination: ` + filepath.Join(tmpDir, "test.log") + `
    mode: append
reporting:
  destination: ` + filepath.Join(tmpDir, "test-report.zip") + `
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Page.Height != 800 {
		t.Errorf("Page.Height = %f, want 800", cfg.Page.Height)
	}
	if cfg.Engine.Tolerance != 1.0 {
		t.Errorf("Engine.Tolerance = %f, want 1.0", cfg.Engine.Tolerance)
	}
	if cfg.Engine.SplitIDs != common.SplitIDModeUuid {
		t.Errorf("SplitIDs = %v, want uuid", cfg.Engine.SplitIDs)
	}
	if cfg.Engine.Footers != common.FooterModeStatic {
		t.Errorf("Footers = %v, want static", cfg.Engine.Footers)
	}
	if cfg.Measure.Mode != common.MeasureModeText {
		t.Errorf("Measure.Mode = %v, want text", cfg.Measure.Mode)
	}
	if !cfg.Document.FileNameTransliterate {
		t.Error("FileNameTransliterate should be true")
	}
	// unspecified fields keep template defaults
	if cfg.Page.CharsPerLine != 80 {
		t.Errorf("CharsPerLine = %d, want default 80", cfg.Page.CharsPerLine)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_values.yaml")

	// Invalid version number
	configWithInvalidVersion := `version: 2
`

	if err := os.WriteFile(configPath, []byte(configWithInvalidVersion), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Fatal("Expected validation error for invalid version")
	}
	// validation failures must keep the chain intact
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	if _, err = unmarshalConfig(data, cfg, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Dump() returned empty data")
	}

	// Verify we can load it back
	cfg2 := &Config{}
	if _, err = unmarshalConfig(data, cfg2, false); err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Page.Height != cfg.Page.Height {
		t.Errorf("Page.Height mismatch after dump/load: got %f, want %f", cfg2.Page.Height, cfg.Page.Height)
	}
	if cfg2.Engine.SplitIDs != cfg.Engine.SplitIDs {
		t.Errorf("SplitIDs mismatch after dump/load: got %v, want %v", cfg2.Engine.SplitIDs, cfg.Engine.SplitIDs)
	}
}

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"simple.html", "simple.html"},
		{"", "_bad_file_name_"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := CleanFileName("a" + string(os.PathSeparator) + "b"); got != "ab" {
		t.Errorf("CleanFileName with separator = %q, want %q", got, "ab")
	}
}

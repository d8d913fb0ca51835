package config

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/vdom/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Render.Indent != DefaultIndent {
		t.Errorf("Render.Indent = %q, want %q", cfg.Render.Indent, DefaultIndent)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "vdom.json",
			content: `{
  "render": {"pretty": true},
  "log": {"level": "debug", "format": "json"},
  "metrics": {"enabled": true, "subsystem": "ui"}
}`,
		},
		{
			name: "yaml",
			file: "vdom.yaml",
			content: `render:
  pretty: true
log:
  level: debug
  format: json
metrics:
  enabled: true
  subsystem: ui
`,
		},
		{
			name: "yml",
			file: "vdom.yml",
			content: `render: {pretty: true}
log: {level: debug, format: json}
metrics: {enabled: true, subsystem: ui}
`,
		},
	}

	want := New()
	want.Render.Pretty = true
	want.Log = LogConfig{Level: "debug", Format: "json"}
	want.Metrics.Enabled = true
	want.Metrics.Subsystem = "ui"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tt.file, tt.content)

			cfg, err := Load(dir)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
				t.Errorf("Load() (-want +got):\n%s", diff)
			}
			if cfg.Path() != path {
				t.Errorf("Path() = %q, want %q", cfg.Path(), path)
			}
			if cfg.Dir() != dir {
				t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
			}
		})
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vdom.yaml", "log: {level: error}\n")
	writeFile(t, dir, "vdom.json", `{"log": {"level": "warn"}}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn from vdom.json", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(dir); errors.CodeOf(err) != "E120" {
		t.Errorf("Load(empty dir) err = %v, want E120", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); errors.CodeOf(err) != "E120" {
		t.Errorf("LoadFile(missing) err = %v, want E120", err)
	}

	bad := writeFile(t, dir, "vdom.json", `{"log": `)
	_, err := LoadFile(bad)
	if errors.CodeOf(err) != "E122" {
		t.Fatalf("LoadFile(bad json) err = %v, want E122", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Location == nil || e.Location.File != bad {
		t.Errorf("parse error location = %+v, want %s", e, bad)
	}

	badYAML := writeFile(t, dir, "broken.yaml", "log: [unterminated\n")
	if _, err := LoadFile(badYAML); errors.CodeOf(err) != "E122" {
		t.Errorf("LoadFile(bad yaml) err = %v, want E122", err)
	}
}

func TestDefaultsFillEmptyFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "vdom.json", `{"render": {"indent": ""}, "log": {"level": ""}, "tracing": {"enabled": true}}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Indent != DefaultIndent || cfg.Log.Level != DefaultLogLevel {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.Tracer != DefaultTracer {
		t.Errorf("Tracing = %+v, want enabled with default tracer", cfg.Tracing)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"tab indent", func(c *Config) { c.Render.Indent = "\t" }, true},
		{"visible indent", func(c *Config) { c.Render.Indent = "--" }, false},
		{"bad namespace", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Namespace = "my-app" }, false},
		{"bad namespace ignored when disabled", func(c *Config) { c.Metrics.Namespace = "my-app" }, true},
		{"bad subsystem", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Subsystem = "1x" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && errors.CodeOf(err) != "E121" {
				t.Errorf("Validate() = %v, want E121", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"vdom.json", "vdom.yaml"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := New()
			cfg.Render.Pretty = true
			cfg.Log.Level = "debug"

			if err := cfg.Save(); err == nil {
				t.Error("Save() without a path succeeded")
			}
			path := filepath.Join(dir, name)
			if err := cfg.SaveTo(path); err != nil {
				t.Fatal(err)
			}
			if err := cfg.Save(); err != nil {
				t.Fatal(err)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(cfg, loaded, cmpopts.IgnoreUnexported(Config{})); diff != "" {
				t.Errorf("round trip (-saved +loaded):\n%s", diff)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "vdom.yml", "log: {level: warn}\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}

	cfg, err := LoadFromDir(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("LoadFromDir Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoadFromDirWithoutConfig(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path() != "" || cfg.Log.Level != DefaultLogLevel {
		t.Errorf("LoadFromDir() = %+v, want defaults", cfg)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := New()
	cfg.Log = LogConfig{Level: "warn", Format: "json"}

	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "n", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"n":1`) {
		t.Errorf("json output = %s", out)
	}
}

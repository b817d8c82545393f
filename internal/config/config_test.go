package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if len(cfg.Bindings) == 0 {
		t.Fatalf("expected at least one default binding")
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Shell != "/bin/sh" {
		t.Fatalf("expected default shell, got %q", res.Config.Shell)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.PaletteBackend != "auto" {
		t.Fatalf("expected default palette_backend, got %q", res.Config.PaletteBackend)
	}
}

func TestLoadFromPath_BindingsReplaceDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := strings.Join([]string{
		"bindings:",
		"  - name: browser",
		"    keys: Mod4-b",
		"    action: spawn",
		"    command: firefox",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Config.Bindings) != 1 {
		t.Fatalf("expected configured bindings to replace defaults, got %d", len(res.Config.Bindings))
	}
	b, ok := res.Config.Binding("browser")
	if !ok {
		t.Fatalf("expected browser binding")
	}
	if b.Action != ActionSpawn || b.Command != "firefox" {
		t.Fatalf("unexpected binding: %+v", b)
	}
}

func TestLoadFromPath_ActionDefaultsToSpawn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := strings.Join([]string{
		"bindings:",
		"  - name: browser",
		"    keys: Mod4-b",
		"    command: firefox",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b, _ := res.Config.Binding("browser")
	if b.Action != ActionSpawn {
		t.Fatalf("expected spawn default, got %q", b.Action)
	}
}

func TestLoadFromPath_DisplayAndXAuthority(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := strings.Join([]string{
		"display: \":1\"",
		"xauthority: \"/tmp/test-xauth\"",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Display != ":1" {
		t.Fatalf("expected display :1, got %q", res.Config.Display)
	}

	val, src, err := Explain(res, "display")
	if err != nil {
		t.Fatalf("explain display: %v", err)
	}
	if val != ":1" {
		t.Fatalf("expected explain display :1, got %#v", val)
	}
	if src.Kind != SourceFile {
		t.Fatalf("expected display source kind file, got %#v", src)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("unknown_key: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configD, "10-base.yaml"), []byte("shell: /bin/bash\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configD, "20-override.yaml"), []byte("shell: /bin/zsh\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	main := filepath.Join(dir, "config.yaml")
	data := strings.Join([]string{
		"include: config.d",
		"log_level: debug",
		"",
	}, "\n")
	if err := os.WriteFile(main, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LoadFromPath(main)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Shell != "/bin/zsh" {
		t.Fatalf("expected later include to win, got %q", res.Config.Shell)
	}
	if res.Config.LogLevel != "debug" {
		t.Fatalf("expected log_level from main file, got %q", res.Config.LogLevel)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycleDetected(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	if err := os.WriteFile(a, []byte("include: b.yaml\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(b, []byte("include: a.yaml\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadFromPath(a)
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestLoadFromPath_IncludeBindingsMergeByName(t *testing.T) {
	dir := t.TempDir()

	inc := filepath.Join(dir, "bindings.yaml")
	incData := strings.Join([]string{
		"bindings:",
		"  - name: terminal",
		"    keys: Mod4-Return",
		"    command: xterm",
		"  - name: browser",
		"    keys: Mod4-b",
		"    command: firefox",
		"",
	}, "\n")
	if err := os.WriteFile(inc, []byte(incData), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	main := filepath.Join(dir, "config.yaml")
	mainData := strings.Join([]string{
		"include: bindings.yaml",
		"bindings:",
		"  - name: terminal",
		"    keys: Mod4-Return",
		"    command: alacritty",
		"",
	}, "\n")
	if err := os.WriteFile(main, []byte(mainData), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LoadFromPath(main)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Config.Bindings) != 2 {
		t.Fatalf("expected 2 bindings after merge, got %d", len(res.Config.Bindings))
	}
	term, _ := res.Config.Binding("terminal")
	if term.Command != "alacritty" {
		t.Fatalf("expected main file to override terminal command, got %q", term.Command)
	}
	if _, ok := res.Config.Binding("browser"); !ok {
		t.Fatalf("expected browser binding from include to survive")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "duplicate binding",
			mutate: func(c *Config) { c.Bindings = append(c.Bindings, c.Bindings[0]) },
			want:   "duplicate",
		},
		{
			name:   "empty command",
			mutate: func(c *Config) { c.Bindings[0].Command = " " },
			want:   "no command",
		},
		{
			name:   "bad action",
			mutate: func(c *Config) { c.Bindings[0].Action = "launch" },
			want:   "unknown action",
		},
		{
			name:   "bad modifier",
			mutate: func(c *Config) { c.Bindings[0].Keys = "Meta-Return" },
			want:   "unknown modifier",
		},
		{
			name:   "bad backend",
			mutate: func(c *Config) { c.PaletteBackend = "slurp" },
			want:   "unknown backend",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.LogLevel = "trace" },
			want:   "unknown level",
		},
		{
			name:   "empty shell",
			mutate: func(c *Config) { c.Shell = "" },
			want:   "shell",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}

func TestExplain_BindingPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := strings.Join([]string{
		"bindings:",
		"  - name: browser",
		"    keys: Mod4-b",
		"    command: firefox",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "bindings.browser.command")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "firefox" {
		t.Fatalf("expected firefox, got %#v", val)
	}
	if src.Kind != SourceFile {
		t.Fatalf("expected file source for binding path, got %#v", src)
	}

	if _, _, err := Explain(res, "bindings.nope.command"); err == nil {
		t.Fatalf("expected error for unknown binding")
	}
}

func TestExplain_DefaultSource(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "shell")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "/bin/sh" {
		t.Fatalf("expected /bin/sh, got %#v", val)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %#v", src)
	}
}

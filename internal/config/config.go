package config

import (
	"fmt"
	"sort"
	"strings"
)

// Action selects how a binding launches its command.
type Action string

const (
	// ActionSpawn forks a detached child; the daemon keeps running.
	ActionSpawn Action = "spawn"
	// ActionExec replaces the daemon process image with the command.
	ActionExec Action = "exec"
)

// Binding maps a global key sequence to a launch action.
type Binding struct {
	Name    string `yaml:"name"`
	Keys    string `yaml:"keys"`
	Action  Action `yaml:"action"`
	Command string `yaml:"command"`
	Group   string `yaml:"group,omitempty"` // palette section header
}

// Config is the effective xspawn configuration.
type Config struct {
	Bindings []Binding `yaml:"bindings"`

	// Display/XAuthority override the environment when connecting to X.
	Display    string `yaml:"display,omitempty"`
	XAuthority string `yaml:"xauthority,omitempty"`

	// Shell interprets command strings ("/bin/sh" by default).
	Shell string `yaml:"shell"`

	// Env entries are added to every spawned child's environment.
	Env map[string]string `yaml:"env,omitempty"`

	PaletteHotkey        string `yaml:"palette_hotkey,omitempty"`
	PaletteBackend       string `yaml:"palette_backend,omitempty"`
	PaletteFuzzyMatching bool   `yaml:"palette_fuzzy_matching,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`
}

// DefaultConfig returns the built-in configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Bindings: []Binding{
			{
				Name:    "terminal",
				Keys:    "Mod4-Return",
				Action:  ActionSpawn,
				Command: "xterm",
				Group:   "Apps",
			},
		},
		Shell:          "/bin/sh",
		PaletteHotkey:  "Mod4-p",
		PaletteBackend: "auto",
		LogLevel:       "info",
	}
}

// Binding returns the binding with the given name.
func (c *Config) Binding(name string) (Binding, bool) {
	for _, b := range c.Bindings {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}

// BindingNames returns all binding names, sorted.
func (c *Config) BindingNames() []string {
	names := make([]string, 0, len(c.Bindings))
	for _, b := range c.Bindings {
		names = append(names, b.Name)
	}
	sort.Strings(names)
	return names
}

// EnvSlice renders the env map as KEY=value pairs, sorted for stable output.
func (c *Config) EnvSlice() []string {
	if len(c.Env) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

var validPaletteBackends = map[string]bool{
	"":       true,
	"auto":   true,
	"rofi":   true,
	"dmenu":  true,
	"fuzzel": true,
}

var validLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the effective configuration for consistency.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Shell) == "" {
		return &ValidationError{Path: "shell", Err: fmt.Errorf("shell must not be empty")}
	}
	if !validPaletteBackends[c.PaletteBackend] {
		return &ValidationError{
			Path: "palette_backend",
			Err:  fmt.Errorf("unknown backend %q (want auto, rofi, dmenu, or fuzzel)", c.PaletteBackend),
		}
	}
	if !validLogLevels[c.LogLevel] {
		return &ValidationError{
			Path: "log_level",
			Err:  fmt.Errorf("unknown level %q (want debug, info, warn, or error)", c.LogLevel),
		}
	}

	seen := make(map[string]bool, len(c.Bindings))
	for i, b := range c.Bindings {
		if strings.TrimSpace(b.Name) == "" {
			return &ValidationError{Path: "bindings", Err: fmt.Errorf("binding %d has no name", i)}
		}
		if seen[b.Name] {
			return &ValidationError{Path: "bindings", Err: fmt.Errorf("duplicate binding name %q", b.Name)}
		}
		seen[b.Name] = true

		if err := validateBinding(b); err != nil {
			return &ValidationError{Path: "bindings", Err: err}
		}
	}

	for key := range c.Env {
		if strings.TrimSpace(key) == "" || strings.Contains(key, "=") {
			return &ValidationError{Path: "env", Err: fmt.Errorf("invalid environment key %q", key)}
		}
	}

	return nil
}

func validateBinding(b Binding) error {
	switch b.Action {
	case ActionSpawn, ActionExec:
	case "":
		return fmt.Errorf("binding %q has no action (want spawn or exec)", b.Name)
	default:
		return fmt.Errorf("binding %q has unknown action %q (want spawn or exec)", b.Name, b.Action)
	}

	if strings.TrimSpace(b.Command) == "" {
		return fmt.Errorf("binding %q has no command", b.Name)
	}
	if strings.TrimSpace(b.Keys) == "" {
		return fmt.Errorf("binding %q has no keys", b.Name)
	}
	if err := validateKeySequence(b.Keys); err != nil {
		return fmt.Errorf("binding %q: %w", b.Name, err)
	}
	return nil
}

var knownModifiers = map[string]bool{
	"Shift":   true,
	"Lock":    true,
	"Control": true,
	"Mod1":    true,
	"Mod2":    true,
	"Mod3":    true,
	"Mod4":    true,
	"Mod5":    true,
	"Any":     true,
}

// validateKeySequence checks "Mod-Mod-Key" shape: every part but the last
// must be a known modifier and the final part a non-empty keysym name.
func validateKeySequence(seq string) error {
	parts := strings.Split(seq, "-")
	for i, part := range parts {
		if part == "" {
			return fmt.Errorf("invalid key sequence %q", seq)
		}
		if i == len(parts)-1 {
			continue
		}
		if !knownModifiers[part] {
			return fmt.Errorf("invalid key sequence %q: unknown modifier %q", seq, part)
		}
	}
	return nil
}

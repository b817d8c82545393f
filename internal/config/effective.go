package config

import (
	"fmt"
)

// ValidationError carries the config path that failed and, when known, the
// file position that set it.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig overlays raw file values on the built-in defaults.
// A bindings section in any file replaces the default binding set entirely:
// users who configure bindings own the whole list.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Bindings != nil {
		bindings := make([]Binding, 0, len(*raw.Bindings))
		for i, rb := range *raw.Bindings {
			b, err := effectiveBinding(rb)
			if err != nil {
				return nil, &ValidationError{Path: "bindings", Err: fmt.Errorf("binding %d: %w", i, err)}
			}
			bindings = append(bindings, b)
		}
		cfg.Bindings = bindings
	}

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}
	if raw.Shell != nil {
		cfg.Shell = *raw.Shell
	}
	if raw.Env != nil {
		cfg.Env = make(map[string]string, len(raw.Env))
		for k, v := range raw.Env {
			cfg.Env[k] = v
		}
	}
	if raw.PaletteHotkey != nil {
		cfg.PaletteHotkey = *raw.PaletteHotkey
	}
	if raw.PaletteBackend != nil {
		cfg.PaletteBackend = *raw.PaletteBackend
	}
	if raw.PaletteFuzzyMatching != nil {
		cfg.PaletteFuzzyMatching = *raw.PaletteFuzzyMatching
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	return cfg, nil
}

func effectiveBinding(rb RawBinding) (Binding, error) {
	var b Binding
	if rb.Name == nil {
		return b, fmt.Errorf("missing name")
	}
	b.Name = *rb.Name
	if rb.Keys != nil {
		b.Keys = *rb.Keys
	}
	if rb.Action != nil {
		b.Action = *rb.Action
	} else {
		b.Action = ActionSpawn
	}
	if rb.Command != nil {
		b.Command = *rb.Command
	}
	if rb.Group != nil {
		b.Group = *rb.Group
	}
	return b, nil
}

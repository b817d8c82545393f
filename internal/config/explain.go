package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its
// source.
//
// Supported paths include:
//
//	shell
//	display
//	xauthority
//	log_level
//	palette_hotkey
//	palette_backend
//	palette_fuzzy_matching
//	env
//	bindings
//	bindings.<name>
//	bindings.<name>.keys
//	bindings.<name>.action
//	bindings.<name>.command
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}

	// Binding sub-paths fall back to the bindings sequence source.
	if strings.HasPrefix(path, "bindings.") {
		if src, ok := res.Sources["bindings"]; ok {
			return value, src, nil
		}
	}

	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	switch parts[0] {
	case "shell":
		return scalar(cfg.Shell, parts, path)
	case "display":
		return scalar(cfg.Display, parts, path)
	case "xauthority":
		return scalar(cfg.XAuthority, parts, path)
	case "log_level":
		return scalar(cfg.LogLevel, parts, path)
	case "palette_hotkey":
		return scalar(cfg.PaletteHotkey, parts, path)
	case "palette_backend":
		return scalar(cfg.PaletteBackend, parts, path)
	case "palette_fuzzy_matching":
		return scalar(cfg.PaletteFuzzyMatching, parts, path)
	case "env":
		return scalar(cfg.Env, parts, path)
	case "bindings":
		return lookupBinding(cfg, parts, path)
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

func scalar(value any, parts []string, path string) (any, error) {
	if len(parts) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	return value, nil
}

func lookupBinding(cfg *Config, parts []string, path string) (any, error) {
	if len(parts) == 1 {
		return cfg.Bindings, nil
	}

	b, ok := cfg.Binding(parts[1])
	if !ok {
		return nil, fmt.Errorf("no binding named %q", parts[1])
	}
	if len(parts) == 2 {
		return b, nil
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	switch parts[2] {
	case "keys":
		return b.Keys, nil
	case "action":
		return b.Action, nil
	case "command":
		return b.Command, nil
	case "group":
		return b.Group, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

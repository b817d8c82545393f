package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawBinding is a binding as it appears in a config file. Pointer fields
// distinguish "absent" from "zero" so later files can override selectively.
type RawBinding struct {
	Name    *string `yaml:"name"`
	Keys    *string `yaml:"keys"`
	Action  *Action `yaml:"action"`
	Command *string `yaml:"command"`
	Group   *string `yaml:"group"`
}

// RawConfig mirrors the config file schema before defaults are applied.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Bindings *[]RawBinding `yaml:"bindings"`

	Display    *string `yaml:"display"`
	XAuthority *string `yaml:"xauthority"`
	Shell      *string `yaml:"shell"`

	Env map[string]string `yaml:"env"`

	PaletteHotkey        *string `yaml:"palette_hotkey"`
	PaletteBackend       *string `yaml:"palette_backend"`
	PaletteFuzzyMatching *bool   `yaml:"palette_fuzzy_matching"`

	LogLevel *string `yaml:"log_level"`
}

// merge overlays other on top of r: scalars set in other win, bindings from
// other override same-named earlier bindings and append new ones, env maps
// merge key-wise.
func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r

	if other.Bindings != nil {
		if out.Bindings == nil {
			merged := append([]RawBinding(nil), (*other.Bindings)...)
			out.Bindings = &merged
		} else {
			merged := append([]RawBinding(nil), (*out.Bindings)...)
			for _, b := range *other.Bindings {
				merged = upsertRawBinding(merged, b)
			}
			out.Bindings = &merged
		}
	}

	if other.Display != nil {
		out.Display = other.Display
	}
	if other.XAuthority != nil {
		out.XAuthority = other.XAuthority
	}
	if other.Shell != nil {
		out.Shell = other.Shell
	}
	if other.Env != nil {
		if out.Env == nil {
			out.Env = make(map[string]string, len(other.Env))
		} else {
			copied := make(map[string]string, len(out.Env)+len(other.Env))
			for k, v := range out.Env {
				copied[k] = v
			}
			out.Env = copied
		}
		for k, v := range other.Env {
			out.Env[k] = v
		}
	}
	if other.PaletteHotkey != nil {
		out.PaletteHotkey = other.PaletteHotkey
	}
	if other.PaletteBackend != nil {
		out.PaletteBackend = other.PaletteBackend
	}
	if other.PaletteFuzzyMatching != nil {
		out.PaletteFuzzyMatching = other.PaletteFuzzyMatching
	}
	if other.LogLevel != nil {
		out.LogLevel = other.LogLevel
	}

	return out
}

func upsertRawBinding(list []RawBinding, b RawBinding) []RawBinding {
	if b.Name != nil {
		for i := range list {
			if list[i].Name != nil && *list[i].Name == *b.Name {
				list[i] = b
				return list
			}
		}
	}
	return append(list, b)
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/okvist/xspawn/internal/config"
	"github.com/okvist/xspawn/internal/ipc"
	"github.com/okvist/xspawn/internal/palette"
	"github.com/okvist/xspawn/internal/spawn"
)

func runPalette(args []string) int {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/xspawn/config.yaml)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: xspawn palette [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the binding palette and launch the selected binding. Selections")
		fmt.Fprintln(os.Stderr, "go through the daemon when it is running, otherwise they spawn locally.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Backends: rofi, fuzzel, dmenu (configured via palette_backend, default: auto).")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	var res *config.LoadResult
	var err error
	if *path == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(*path)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	backend, err := palette.NewBackend(cfg.PaletteBackend)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if setter, ok := backend.(interface{ SetFuzzyMatching(bool) }); ok {
		setter.SetFuzzyMatching(cfg.PaletteFuzzyMatching)
	}

	name, err := palette.SelectBinding(backend, cfg.Bindings)
	if err != nil {
		if errors.Is(err, palette.ErrCancelled) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if client, err := ipc.NewClient(); err == nil {
		if err := client.RunBinding(name); err == nil {
			return 0
		}
	}

	binding, ok := cfg.Binding(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown binding %q\n", name)
		return 1
	}

	launcher := spawn.NewLauncher(cfg.Shell, cfg.EnvSlice(), slog.Default())
	if binding.Action == config.ActionExec {
		if err := launcher.Exec(binding.Command); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	if _, err := launcher.Spawn(binding.Command); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

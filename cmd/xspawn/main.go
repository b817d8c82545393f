package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/okvist/xspawn/internal/config"
	"github.com/okvist/xspawn/internal/hotkeys"
	"github.com/okvist/xspawn/internal/ipc"
	"github.com/okvist/xspawn/internal/spawn"
	"github.com/okvist/xspawn/internal/tui"
	"github.com/okvist/xspawn/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: xspawn daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: xspawn daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "bindings":
		os.Exit(runBindings(os.Args[2:]))
	case "run":
		os.Exit(runRun(os.Args[2:]))
	case "spawn":
		os.Exit(runSpawn(os.Args[2:]))
	case "exec":
		os.Exit(runExec(os.Args[2:]))
	case "prop":
		os.Exit(runProp(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "palette":
		os.Exit(runPalette(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xspawn <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the xspawn hotkey daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Reload daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  bindings            List configured bindings")
	fmt.Fprintln(w, "  run <name>          Launch a binding by name")
	fmt.Fprintln(w, "  spawn <command...>  Launch a command as a detached child")
	fmt.Fprintln(w, "  exec <command...>   Replace this process with a command")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  prop get            Read a window text property")
	fmt.Fprintln(w, "  prop watch          Watch window property changes")
	fmt.Fprintln(w, "  windows             List client windows")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  palette             Open the binding palette (rofi/fuzzel/dmenu)")
	fmt.Fprintln(w, "  tui                 Open interactive binding browser")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'xspawn <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xspawn status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client, err := ipc.NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("binding_count:  %d\n", status.BindingCount)
	fmt.Printf("live_children:  %d\n", status.LiveChildren)
	fmt.Printf("total_spawned:  %d\n", status.TotalSpawned)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xspawn reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the daemon to reload its configuration and re-grab hotkeys.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	client, err := ipc.NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("reloaded")
	return 0
}

func runBindings(args []string) int {
	fs := flag.NewFlagSet("bindings", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Output bindings as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xspawn bindings [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List effective bindings. Asks the daemon when it is running,")
		fmt.Fprintln(os.Stderr, "otherwise loads the configuration directly.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "bindings takes no arguments")
		fs.Usage()
		return 2
	}

	bindings, err := listBindings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(bindings); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, b := range bindings {
		keys := b.Keys
		if keys == "" {
			keys = "-"
		}
		line := fmt.Sprintf("%-16s %-18s %-5s %s", b.Name, keys, b.Action, b.Command)
		if b.Group != "" {
			line += "  (" + b.Group + ")"
		}
		fmt.Println(line)
	}
	return 0
}

// listBindings prefers the daemon's view and falls back to the local config.
func listBindings() ([]ipc.BindingInfo, error) {
	if client, err := ipc.NewClient(); err == nil {
		if bindings, err := client.ListBindings(); err == nil {
			return bindings, nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	bindings := make([]ipc.BindingInfo, 0, len(cfg.Bindings))
	for _, name := range cfg.BindingNames() {
		b, _ := cfg.Binding(name)
		bindings = append(bindings, ipc.BindingInfo{
			Name:    b.Name,
			Keys:    b.Keys,
			Action:  string(b.Action),
			Command: b.Command,
			Group:   b.Group,
		})
	}
	return bindings, nil
}

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xspawn run <name>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Launch a binding by name. Runs through the daemon when it is up;")
		fmt.Fprintln(os.Stderr, "otherwise the binding is launched locally (exec replaces this process).")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "run requires exactly one binding name")
		fs.Usage()
		return 2
	}
	name := fs.Arg(0)

	if client, err := ipc.NewClient(); err == nil {
		if err := client.RunBinding(name); err == nil {
			return 0
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	binding, ok := cfg.Binding(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown binding %q (known: %s)\n", name, strings.Join(cfg.BindingNames(), ", "))
		return 1
	}

	launcher := spawn.NewLauncher(cfg.Shell, cfg.EnvSlice(), slog.Default())
	if binding.Action == config.ActionExec {
		if err := launcher.Exec(binding.Command); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0 // unreachable; Exec only returns on error
	}

	pid, err := launcher.Spawn(binding.Command)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(pid)
	return 0
}

func runSpawn(args []string) int {
	fs := flag.NewFlagSet("spawn", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	local := fs.Bool("local", false, "Spawn from this process even when the daemon is running")
	noShell := fs.Bool("no-shell", false, "Split the command into argv and run it without a shell")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xspawn spawn [--local] [--no-shell] <command...>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Launch a shell command as a detached child and print its pid.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "spawn requires a command")
		fs.Usage()
		return 2
	}
	command := strings.Join(fs.Args(), " ")

	if !*local && !*noShell {
		if client, err := ipc.NewClient(); err == nil {
			if pid, err := client.Spawn(command); err == nil {
				fmt.Println(pid)
				return 0
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	launcher := spawn.NewLauncher(cfg.Shell, cfg.EnvSlice(), slog.Default())

	var pid int
	if *noShell {
		argv, err := spawn.SplitCommand(command)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		pid, err = launcher.SpawnArgv(argv, command)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	} else {
		pid, err = launcher.Spawn(command)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	fmt.Println(pid)
	return 0
}

func runExec(args []string) int {
	fs := flag.NewFlagSet("exec", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	noShell := fs.Bool("no-shell", false, "Split the command into argv and exec it without a shell")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xspawn exec [--no-shell] <command...>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Replace this process image with the command, run through the")
		fmt.Fprintln(os.Stderr, "configured shell. Only returns on error.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "exec requires a command")
		fs.Usage()
		return 2
	}
	command := strings.Join(fs.Args(), " ")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	launcher := spawn.NewLauncher(cfg.Shell, cfg.EnvSlice(), slog.Default())

	if *noShell {
		argv, err := spawn.SplitCommand(command)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		if err := launcher.ExecArgv(argv); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	if err := launcher.Exec(command); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Output windows as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xspawn windows [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the window manager's client windows.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "windows takes no arguments")
		fs.Usage()
		return 2
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to display: %v\n", err)
		return 1
	}
	defer conn.Close()

	windows, err := conn.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(windows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, w := range windows {
		fmt.Printf("0x%08x  %-20s %6d  %s\n", w.ID, w.Class, w.PID, w.Title)
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  xspawn config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  xspawn config print [--path PATH] [--effective|--defaults]")
		fmt.Fprintln(os.Stderr, "  xspawn config explain [--path PATH] <yaml.path>")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/xspawn/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.LoadWithSources()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/xspawn/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printEffective := fs.Bool("effective", false, "Print effective config (default)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if *printDefaults {
			data, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			fmt.Print(string(data))
			return 0
		}

		_ = printEffective // default
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
		data, err := yaml.Marshal(res.Config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/xspawn/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

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

		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/xspawn/config.yaml)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: xspawn tui [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive binding browser. Launches through the daemon when it is")
		fmt.Fprintln(os.Stderr, "running, otherwise spawns locally.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  j/k, ↑/↓  Navigate bindings")
		fmt.Fprintln(os.Stderr, "  Enter     Launch selected binding")
		fmt.Fprintln(os.Stderr, "  /         Filter bindings")
		fmt.Fprintln(os.Stderr, "  r         Reload config (and daemon when running)")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := tui.Run(*path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// bindingRunner launches bindings for hotkey presses and IPC requests.
// Exec bindings replace the daemon process, matching classic window manager
// spawn/exec semantics.
type bindingRunner struct {
	launcher *spawn.Launcher
}

func (r *bindingRunner) Run(b config.Binding) error {
	if b.Action == config.ActionExec {
		return r.launcher.Exec(b.Command)
	}
	_, err := r.launcher.Spawn(b.Command)
	return err
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (%d bindings)", len(cfg.Bindings))

	conn, err := x11.NewConnectionDisplay(cfg.Display, cfg.XAuthority)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	spawnLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	launcher := spawn.NewLauncher(cfg.Shell, cfg.EnvSlice(), spawnLogger)
	runner := &bindingRunner{launcher: launcher}

	hotkeyHandler := hotkeys.NewHandler(conn)
	registerHotkeys(hotkeyHandler, cfg, runner)

	log.Println("xspawn daemon started successfully")

	reloadChan := make(chan struct{}, 1)

	ipcServer, err := ipc.NewServer(cfg, launcher, conn, runner, reloadChan)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					newCfg, err := config.Load()
					if err != nil {
						log.Printf("Config reload failed: %v", err)
						continue
					}
					ipcServer.UpdateConfig(newCfg)
					hotkeyHandler.UnregisterAll()
					registerHotkeys(hotkeyHandler, newCfg, runner)
					log.Println("Config reloaded successfully")

				case os.Interrupt, syscall.SIGTERM:
					log.Println("Shutting down xspawn daemon...")
					ipcServer.Stop()
					os.Exit(0)
				}

			case <-reloadChan:
				// Config was reloaded via IPC; re-grab hotkeys.
				newCfg := ipcServer.GetConfig()
				hotkeyHandler.UnregisterAll()
				registerHotkeys(hotkeyHandler, newCfg, runner)
			}
		}
	}()

	log.Println("Entering event loop...")
	conn.EventLoop()
}

func registerHotkeys(h *hotkeys.Handler, cfg *config.Config, runner hotkeys.Runner) {
	if err := h.RegisterBindings(cfg.Bindings, runner); err != nil {
		log.Printf("Warning: %v", err)
	}

	// The palette runs as a separate process so its menu never blocks the
	// daemon's event loop.
	if cfg.PaletteHotkey != "" {
		if err := h.RegisterFunc(cfg.PaletteHotkey, func() {
			exe, err := os.Executable()
			if err != nil {
				log.Printf("Palette: failed to find executable: %v", err)
				return
			}
			cmd := exec.Command(exe, "palette")
			cmd.Stderr = os.Stderr
			if err := cmd.Start(); err != nil {
				log.Printf("Palette: failed to launch: %v", err)
				return
			}
			go cmd.Wait()
		}); err != nil {
			log.Printf("Warning: Failed to register palette hotkey: %v", err)
		} else {
			log.Printf("Palette hotkey registered: %s", cfg.PaletteHotkey)
		}
	}
}

package spawn

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
)

// Launcher starts external programs in response to bindings, palette
// selections, and IPC requests.
type Launcher struct {
	shell    string
	env      []string
	logger   *slog.Logger
	registry *Registry
}

// NewLauncher creates a launcher. shell is the interpreter used for
// command-string launches ("/bin/sh" when empty). extraEnv entries
// ("KEY=value") are appended to the child environment.
func NewLauncher(shell string, extraEnv []string, logger *slog.Logger) *Launcher {
	if shell == "" {
		shell = "/bin/sh"
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Launcher{
		shell:    shell,
		env:      extraEnv,
		logger:   logger,
		registry: NewRegistry(logger),
	}
}

// Registry exposes the child registry for status reporting.
func (l *Launcher) Registry() *Registry {
	return l.registry
}

// Spawn starts command as a detached child in its own session and returns
// its pid. The child is reaped in the background when it exits; the
// launcher process keeps running.
func (l *Launcher) Spawn(command string) (int, error) {
	return l.SpawnArgv([]string{l.shell, "-c", command}, command)
}

// SpawnArgv starts an explicit argv as a detached child. display is the
// human-readable command recorded in the registry.
func (l *Launcher) SpawnArgv(argv []string, display string) (int, error) {
	if len(argv) == 0 {
		return 0, fmt.Errorf("empty command")
	}
	if display == "" {
		display = argv[0]
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), l.env...)
	// New session: the child survives the launcher and never holds our tty.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to spawn %q: %w", display, err)
	}

	pid := cmd.Process.Pid
	l.registry.Add(pid, display)
	l.logger.Info("spawned", "pid", pid, "command", display)

	go func() {
		err := cmd.Wait()
		l.registry.Remove(pid, err)
	}()

	return pid, nil
}

// Exec replaces the current process image with command, run through the
// launcher shell. It only returns on error.
func (l *Launcher) Exec(command string) error {
	return l.ExecArgv([]string{l.shell, "-c", command})
}

// ExecArgv replaces the current process image with an explicit argv.
func (l *Launcher) ExecArgv(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("failed to exec %q: %w", argv[0], err)
	}

	env := append(os.Environ(), l.env...)
	if err := syscall.Exec(path, argv, env); err != nil {
		return fmt.Errorf("failed to exec %q: %w", argv[0], err)
	}
	return nil
}

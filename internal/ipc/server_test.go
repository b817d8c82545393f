package ipc

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/okvist/xspawn/internal/config"
	"github.com/okvist/xspawn/internal/spawn"
)

type recordingRunner struct {
	ran []string
}

func (r *recordingRunner) Run(b config.Binding) error {
	r.ran = append(r.ran, b.Name)
	return nil
}

func startTestServer(t *testing.T) (*Server, *Client, *recordingRunner) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cfg := config.DefaultConfig()
	launcher := spawn.NewLauncher("/bin/sh", nil, slog.Default())
	runner := &recordingRunner{}

	srv, err := NewServer(cfg, launcher, nil, runner, make(chan struct{}, 1))
	if err != nil {
		t.Fatalf("NewServer() error: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	t.Cleanup(srv.Stop)

	return srv, NewClientWithPath(srv.socketPath), runner
}

func TestServerGetStatus(t *testing.T) {
	_, client, _ := startTestServer(t)

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus() error: %v", err)
	}
	if !status.DaemonRunning {
		t.Error("DaemonRunning = false, want true")
	}
	if status.BindingCount != len(config.DefaultConfig().Bindings) {
		t.Errorf("BindingCount = %d, want %d", status.BindingCount, len(config.DefaultConfig().Bindings))
	}
}

func TestServerListBindings(t *testing.T) {
	_, client, _ := startTestServer(t)

	bindings, err := client.ListBindings()
	if err != nil {
		t.Fatalf("ListBindings() error: %v", err)
	}
	if len(bindings) == 0 {
		t.Fatal("expected at least the default binding")
	}
	if bindings[0].Name != "terminal" {
		t.Errorf("bindings[0].Name = %q, want terminal", bindings[0].Name)
	}
}

func TestServerRunBinding(t *testing.T) {
	_, client, runner := startTestServer(t)

	if err := client.RunBinding("terminal"); err != nil {
		t.Fatalf("RunBinding() error: %v", err)
	}
	if len(runner.ran) != 1 || runner.ran[0] != "terminal" {
		t.Errorf("runner.ran = %v, want [terminal]", runner.ran)
	}
}

func TestServerRunBinding_Unknown(t *testing.T) {
	_, client, runner := startTestServer(t)

	if err := client.RunBinding("nope"); err == nil {
		t.Fatal("expected error for unknown binding")
	}
	if len(runner.ran) != 0 {
		t.Errorf("runner invoked for unknown binding: %v", runner.ran)
	}
}

func TestServerSpawn(t *testing.T) {
	srv, client, _ := startTestServer(t)

	pid, err := client.Spawn("true")
	if err != nil {
		t.Fatalf("Spawn() error: %v", err)
	}
	if pid <= 0 {
		t.Errorf("pid = %d, want > 0", pid)
	}
	if srv.launcher.Registry().TotalSpawned() != 1 {
		t.Errorf("TotalSpawned = %d, want 1", srv.launcher.Registry().TotalSpawned())
	}
}

func TestServerSpawn_EmptyCommand(t *testing.T) {
	_, client, _ := startTestServer(t)

	if _, err := client.Spawn(""); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestServerGetProperty_MissingName(t *testing.T) {
	_, client, _ := startTestServer(t)

	_, err := client.GetProperty("active", "")
	if err == nil {
		t.Fatal("expected error for missing property name")
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestServerGetProperty_NoXConnection(t *testing.T) {
	_, client, _ := startTestServer(t)

	_, err := client.GetProperty("root", "WM_NAME")
	if err == nil {
		t.Fatal("expected error when the daemon has no X connection")
	}
	if !strings.Contains(err.Error(), "no X connection") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestServerUpdateConfig(t *testing.T) {
	srv, client, _ := startTestServer(t)

	newCfg := config.DefaultConfig()
	newCfg.Bindings = append(newCfg.Bindings, config.Binding{
		Name:    "browser",
		Keys:    "Mod4-b",
		Action:  config.ActionSpawn,
		Command: "firefox",
	})
	srv.UpdateConfig(newCfg)

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus() error: %v", err)
	}
	if status.BindingCount != 2 {
		t.Errorf("BindingCount = %d, want 2", status.BindingCount)
	}
}

func TestClient_DaemonNotRunning(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if _, err := client.GetStatus(); err == nil {
		t.Fatal("expected connection error with no daemon")
	}
}

package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/okvist/xspawn/internal/config"
	"github.com/okvist/xspawn/internal/spawn"
	"github.com/okvist/xspawn/internal/x11"
)

func testServer(cfg *config.Config) *Server {
	return &Server{
		cfg:      cfg,
		launcher: spawn.NewLauncher(cfg.Shell, nil, slog.Default()),
		connectFn: func() (*x11.Connection, error) {
			return nil, fmt.Errorf("no display in tests")
		},
	}
}

func TestHandleListBindings_SortedByName(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bindings = []config.Binding{
		{Name: "zz", Action: config.ActionSpawn, Command: "zz"},
		{Name: "aa", Action: config.ActionSpawn, Command: "aa"},
	}
	s := testServer(cfg)

	_, out, err := s.handleListBindings(context.Background(), nil, ListBindingsInput{})
	if err != nil {
		t.Fatalf("handleListBindings error: %v", err)
	}
	if len(out.Bindings) != 2 {
		t.Fatalf("got %d bindings, want 2", len(out.Bindings))
	}
	if out.Bindings[0].Name != "aa" || out.Bindings[1].Name != "zz" {
		t.Errorf("bindings not sorted: %+v", out.Bindings)
	}
}

func TestHandleListBindings_GroupFilter(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bindings = []config.Binding{
		{Name: "term", Action: config.ActionSpawn, Command: "xterm", Group: "Apps"},
		{Name: "lock", Action: config.ActionSpawn, Command: "slock", Group: "System"},
	}
	s := testServer(cfg)

	_, out, err := s.handleListBindings(context.Background(), nil, ListBindingsInput{Group: "Apps"})
	if err != nil {
		t.Fatalf("handleListBindings error: %v", err)
	}
	if len(out.Bindings) != 1 || out.Bindings[0].Name != "term" {
		t.Errorf("group filter failed: %+v", out.Bindings)
	}
}

func TestHandleRunBinding_UnknownName(t *testing.T) {
	s := testServer(config.DefaultConfig())

	_, _, err := s.handleRunBinding(context.Background(), nil, RunBindingInput{Name: "nope"})
	if err == nil {
		t.Fatal("expected error for unknown binding")
	}
	if !strings.Contains(err.Error(), "available") {
		t.Errorf("error should list available bindings: %v", err)
	}
}

func TestHandleRunBinding_ExecWithoutDaemon(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bindings = []config.Binding{
		{Name: "wm", Action: config.ActionExec, Command: "awesome"},
	}
	s := testServer(cfg)

	_, _, err := s.handleRunBinding(context.Background(), nil, RunBindingInput{Name: "wm"})
	if err == nil {
		t.Fatal("expected exec binding to be refused without daemon")
	}
}

func TestHandleSpawnCommand_Local(t *testing.T) {
	s := testServer(config.DefaultConfig())

	_, out, err := s.handleSpawnCommand(context.Background(), nil, SpawnCommandInput{Command: "true"})
	if err != nil {
		t.Fatalf("handleSpawnCommand error: %v", err)
	}
	if out.PID <= 0 {
		t.Errorf("PID = %d, want > 0", out.PID)
	}
	if out.Via != "local" {
		t.Errorf("Via = %q, want local", out.Via)
	}
}

func TestHandleSpawnCommand_EmptyCommand(t *testing.T) {
	s := testServer(config.DefaultConfig())

	_, _, err := s.handleSpawnCommand(context.Background(), nil, SpawnCommandInput{})
	if err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestHandleReadProperty_NoDisplay(t *testing.T) {
	s := testServer(config.DefaultConfig())

	_, _, err := s.handleReadProperty(context.Background(), nil, ReadPropertyInput{Name: "WM_NAME"})
	if err == nil {
		t.Fatal("expected error when X connection is unavailable")
	}
	if !strings.Contains(err.Error(), "X connection unavailable") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHandleReadProperty_RequiresName(t *testing.T) {
	s := testServer(config.DefaultConfig())

	_, _, err := s.handleReadProperty(context.Background(), nil, ReadPropertyInput{Window: "active"})
	if err == nil {
		t.Fatal("expected error for missing property name")
	}
}

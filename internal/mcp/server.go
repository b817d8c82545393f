package mcp

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"sort"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/okvist/xspawn/internal/config"
	"github.com/okvist/xspawn/internal/ipc"
	"github.com/okvist/xspawn/internal/spawn"
	"github.com/okvist/xspawn/internal/x11"
)

const (
	ServerName    = "xspawn"
	ServerVersion = "0.1.0"
)

// Server is the MCP server exposing xspawn's launcher and window property
// reads as tools.
type Server struct {
	mcpServer *mcpsdk.Server
	cfg       *config.Config
	launcher  *spawn.Launcher
	ipcClient *ipc.Client

	// The X connection is opened lazily: spawn-only sessions should work
	// without a display.
	mu        sync.Mutex
	conn      *x11.Connection
	connErr   error
	connected bool
	connectFn func() (*x11.Connection, error)
}

// NewServer creates an MCP server for the given config.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:      cfg,
		launcher: spawn.NewLauncher(cfg.Shell, cfg.EnvSlice(), slog.Default()),
		connectFn: func() (*x11.Connection, error) {
			return x11.NewConnectionDisplay(cfg.Display, cfg.XAuthority)
		},
	}

	if client, err := ipc.NewClient(); err == nil {
		if _, err := client.GetStatus(); err == nil {
			s.ipcClient = client
		}
	}
	if s.ipcClient == nil {
		log.Println("MCP: daemon not running, using local launcher")
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_bindings",
		Description: "List the configured launch bindings with their hotkeys, actions, and commands. Optionally filter by group.",
	}, s.handleListBindings)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_binding",
		Description: "Launch a configured binding by name. Spawn bindings start a detached child; exec bindings are only run through the daemon, since exec replaces the running process.",
	}, s.handleRunBinding)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "spawn_command",
		Description: "Launch an ad-hoc shell command as a detached child process and return its pid.",
	}, s.handleSpawnCommand)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "read_property",
		Description: "Read a text property (e.g. WM_NAME, WM_CLASS) from an X11 window. Window accepts 'active', 'root', or a window id.",
	}, s.handleReadProperty)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the window manager's client windows with id, class, title, and pid.",
	}, s.handleListWindows)
}

// connection opens the X connection on first use.
func (s *Server) connection() (*x11.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		s.conn, s.connErr = s.connectFn()
		s.connected = true
	}
	if s.connErr != nil {
		return nil, fmt.Errorf("X connection unavailable: %w", s.connErr)
	}
	return s.conn, nil
}

func (s *Server) handleListBindings(_ context.Context, _ *mcpsdk.CallToolRequest, args ListBindingsInput) (*mcpsdk.CallToolResult, ListBindingsOutput, error) {
	bindings := make([]BindingInfo, 0, len(s.cfg.Bindings))
	for _, b := range s.cfg.Bindings {
		if args.Group != "" && b.Group != args.Group {
			continue
		}
		bindings = append(bindings, BindingInfo{
			Name:    b.Name,
			Keys:    b.Keys,
			Action:  string(b.Action),
			Command: b.Command,
			Group:   b.Group,
		})
	}
	sort.Slice(bindings, func(i, j int) bool {
		return bindings[i].Name < bindings[j].Name
	})
	return nil, ListBindingsOutput{Bindings: bindings}, nil
}

func (s *Server) handleRunBinding(_ context.Context, _ *mcpsdk.CallToolRequest, args RunBindingInput) (*mcpsdk.CallToolResult, RunBindingOutput, error) {
	binding, ok := s.cfg.Binding(args.Name)
	if !ok {
		names := s.cfg.BindingNames()
		return nil, RunBindingOutput{}, fmt.Errorf("unknown binding %q; available: %v", args.Name, names)
	}

	if s.ipcClient != nil {
		if err := s.ipcClient.RunBinding(binding.Name); err != nil {
			return nil, RunBindingOutput{}, err
		}
		return nil, RunBindingOutput{
			Name:    binding.Name,
			Command: binding.Command,
			Via:     "daemon",
		}, nil
	}

	if binding.Action == config.ActionExec {
		return nil, RunBindingOutput{}, fmt.Errorf("binding %q uses exec, which replaces the running process; start the daemon or use 'xspawn exec'", binding.Name)
	}

	pid, err := s.launcher.Spawn(binding.Command)
	if err != nil {
		return nil, RunBindingOutput{}, err
	}
	return nil, RunBindingOutput{
		Name:    binding.Name,
		Command: binding.Command,
		PID:     pid,
		Via:     "local",
	}, nil
}

func (s *Server) handleSpawnCommand(_ context.Context, _ *mcpsdk.CallToolRequest, args SpawnCommandInput) (*mcpsdk.CallToolResult, SpawnCommandOutput, error) {
	if args.Command == "" {
		return nil, SpawnCommandOutput{}, fmt.Errorf("command is required")
	}

	if s.ipcClient != nil {
		pid, err := s.ipcClient.Spawn(args.Command)
		if err != nil {
			return nil, SpawnCommandOutput{}, err
		}
		return nil, SpawnCommandOutput{PID: pid, Via: "daemon"}, nil
	}

	pid, err := s.launcher.Spawn(args.Command)
	if err != nil {
		return nil, SpawnCommandOutput{}, err
	}
	return nil, SpawnCommandOutput{PID: pid, Via: "local"}, nil
}

func (s *Server) handleReadProperty(_ context.Context, _ *mcpsdk.CallToolRequest, args ReadPropertyInput) (*mcpsdk.CallToolResult, ReadPropertyOutput, error) {
	if args.Name == "" {
		return nil, ReadPropertyOutput{}, fmt.Errorf("name is required")
	}

	conn, err := s.connection()
	if err != nil {
		return nil, ReadPropertyOutput{}, err
	}

	win, err := conn.ResolveWindow(args.Window)
	if err != nil {
		return nil, ReadPropertyOutput{}, err
	}

	out := ReadPropertyOutput{
		Window: uint32(win),
		Name:   args.Name,
	}
	if value, err := conn.TextProperty(win, args.Name); err == nil {
		out.Value = value
		out.Found = true
	}
	return nil, out, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	conn, err := s.connection()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	infos, err := conn.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	windows := make([]WindowEntry, 0, len(infos))
	for _, w := range infos {
		windows = append(windows, WindowEntry{
			ID:    w.ID,
			Class: w.Class,
			Title: w.Title,
			PID:   w.PID,
		})
	}
	return nil, ListWindowsOutput{Windows: windows}, nil
}

package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/okvist/xspawn/internal/config"
	"github.com/okvist/xspawn/internal/runtimepath"
	"github.com/okvist/xspawn/internal/spawn"
	"github.com/okvist/xspawn/internal/x11"
)

// Runner launches a binding's command on behalf of an IPC request.
type Runner interface {
	Run(binding config.Binding) error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	launcher     *spawn.Launcher
	conn         *x11.Connection
	runner       Runner
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, launcher *spawn.Launcher, conn *x11.Connection, runner Runner, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		launcher:   launcher,
		conn:       conn,
		runner:     runner,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(10 * time.Second))

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.sendError(conn, fmt.Sprintf("Failed to read request: %v", err))
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, err.Error())
		return
	}

	resp := s.dispatch(req)
	respData, err := resp.Marshal()
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Failed to marshal response: %v", err))
		return
	}
	respData = append(respData, '\n')
	conn.Write(respData)
}

func (s *Server) dispatch(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandReload:
		return s.handleReload()
	case CommandListBindings:
		return s.handleListBindings()
	case CommandRunBinding:
		return s.handleRunBinding(req.Payload)
	case CommandSpawn:
		return s.handleSpawn(req.Payload)
	case CommandGetProperty:
		return s.handleGetProperty(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	s.cfgMu.RLock()
	bindingCount := len(s.cfg.Bindings)
	s.cfgMu.RUnlock()

	data := StatusData{
		DaemonRunning: true,
		BindingCount:  bindingCount,
		LiveChildren:  len(s.launcher.Registry().Live()),
		TotalSpawned:  s.launcher.Registry().TotalSpawned(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleReload() *Response {
	newCfg, err := config.Load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Config reload failed: %v", err))
	}

	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()

	// Notify the daemon to re-register hotkeys.
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	log.Println("IPC: config reloaded")
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleListBindings() *Response {
	s.cfgMu.RLock()
	bindings := make([]BindingInfo, 0, len(s.cfg.Bindings))
	for _, b := range s.cfg.Bindings {
		bindings = append(bindings, BindingInfo{
			Name:    b.Name,
			Keys:    b.Keys,
			Action:  string(b.Action),
			Command: b.Command,
			Group:   b.Group,
		})
	}
	s.cfgMu.RUnlock()

	resp, _ := NewOKResponse(BindingsData{Bindings: bindings})
	return resp
}

func (s *Server) handleRunBinding(payload json.RawMessage) *Response {
	var runReq RunBindingPayload
	if err := json.Unmarshal(payload, &runReq); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid run payload: %v", err))
	}
	if runReq.Name == "" {
		return NewErrorResponse("name is required")
	}

	s.cfgMu.RLock()
	binding, ok := s.cfg.Binding(runReq.Name)
	s.cfgMu.RUnlock()
	if !ok {
		return NewErrorResponse(fmt.Sprintf("Unknown binding: %s", runReq.Name))
	}

	log.Printf("IPC: running binding %q", binding.Name)
	if err := s.runner.Run(binding); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to run binding: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSpawn(payload json.RawMessage) *Response {
	var spawnReq SpawnPayload
	if err := json.Unmarshal(payload, &spawnReq); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid spawn payload: %v", err))
	}
	if spawnReq.Command == "" {
		return NewErrorResponse("command is required")
	}

	pid, err := s.launcher.Spawn(spawnReq.Command)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to spawn: %v", err))
	}

	resp, _ := NewOKResponse(SpawnData{PID: pid})
	return resp
}

func (s *Server) handleGetProperty(payload json.RawMessage) *Response {
	var propReq GetPropertyPayload
	if err := json.Unmarshal(payload, &propReq); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid property payload: %v", err))
	}
	if propReq.Name == "" {
		return NewErrorResponse("name is required")
	}
	if s.conn == nil {
		return NewErrorResponse("no X connection")
	}

	win, err := s.conn.ResolveWindow(propReq.Window)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	data := PropertyData{
		Window: uint32(win),
		Name:   propReq.Name,
	}
	if value, err := s.conn.TextProperty(win, propReq.Name); err == nil {
		data.Value = value
		data.Found = true
	}

	resp, _ := NewOKResponse(data)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig updates the config (thread-safe)
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}

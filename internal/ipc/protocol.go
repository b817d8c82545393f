package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload       CommandType = "RELOAD"
	CommandGetStatus    CommandType = "GET_STATUS"
	CommandListBindings CommandType = "LIST_BINDINGS"
	CommandRunBinding   CommandType = "RUN_BINDING"
	CommandSpawn        CommandType = "SPAWN"
	CommandGetProperty  CommandType = "GET_PROPERTY"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning bool  `json:"daemon_running"`
	BindingCount  int   `json:"binding_count"`
	LiveChildren  int   `json:"live_children"`
	TotalSpawned  int   `json:"total_spawned"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// BindingInfo describes one configured binding.
type BindingInfo struct {
	Name    string `json:"name"`
	Keys    string `json:"keys"`
	Action  string `json:"action"`
	Command string `json:"command"`
	Group   string `json:"group,omitempty"`
}

// BindingsData represents the data returned by LIST_BINDINGS
type BindingsData struct {
	Bindings []BindingInfo `json:"bindings"`
}

// RunBindingPayload names the binding to launch.
type RunBindingPayload struct {
	Name string `json:"name"`
}

// SpawnPayload carries an ad-hoc command to launch.
type SpawnPayload struct {
	Command string `json:"command"`
}

// SpawnData is returned by SPAWN and RUN_BINDING for spawn actions.
type SpawnData struct {
	PID int `json:"pid"`
}

// GetPropertyPayload asks the daemon to read a window text property over
// its X connection. Window accepts "active", "root", or a window id.
type GetPropertyPayload struct {
	Window string `json:"window"`
	Name   string `json:"name"`
}

// PropertyData is returned by GET_PROPERTY.
type PropertyData struct {
	Window uint32 `json:"window"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Found  bool   `json:"found"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/okvist/xspawn/internal/runtimepath"
)

// Client connects to the daemon's IPC socket
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket path.
func NewClient() (*Client, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}, nil
}

// NewClientWithPath creates a client for an explicit socket path.
func NewClientWithPath(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for the response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon (is it running?): %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return &resp, fmt.Errorf("%s", resp.Error)
	}
	return &resp, nil
}

// Reload asks the daemon to reload its configuration.
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}

// GetStatus fetches daemon status.
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// ListBindings fetches the daemon's effective bindings.
func (c *Client) ListBindings() ([]BindingInfo, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListBindings})
	if err != nil {
		return nil, err
	}

	var data BindingsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse bindings data: %w", err)
	}
	return data.Bindings, nil
}

// RunBinding triggers a named binding on the daemon.
func (c *Client) RunBinding(name string) error {
	payload, err := json.Marshal(RunBindingPayload{Name: name})
	if err != nil {
		return fmt.Errorf("failed to marshal run payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandRunBinding, Payload: payload})
	return err
}

// Spawn asks the daemon to launch an ad-hoc command and returns the pid.
func (c *Client) Spawn(command string) (int, error) {
	payload, err := json.Marshal(SpawnPayload{Command: command})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal spawn payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandSpawn, Payload: payload})
	if err != nil {
		return 0, err
	}

	var data SpawnData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return 0, fmt.Errorf("failed to parse spawn data: %w", err)
	}
	return data.PID, nil
}

// GetProperty reads a window text property over the daemon's X connection.
// window accepts "active", "root", or a window id; empty means active.
func (c *Client) GetProperty(window, name string) (*PropertyData, error) {
	payload, err := json.Marshal(GetPropertyPayload{Window: window, Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal property payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandGetProperty, Payload: payload})
	if err != nil {
		return nil, err
	}

	var data PropertyData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse property data: %w", err)
	}
	return &data, nil
}

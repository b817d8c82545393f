package mcp

// ListBindingsInput is the input for the list_bindings tool.
type ListBindingsInput struct {
	Group string `json:"group,omitempty" jsonschema:"Only return bindings in this group"`
}

// BindingInfo describes a single configured binding.
type BindingInfo struct {
	Name    string `json:"name"`
	Keys    string `json:"keys,omitempty"`
	Action  string `json:"action"`
	Command string `json:"command"`
	Group   string `json:"group,omitempty"`
}

// ListBindingsOutput is the output for the list_bindings tool.
type ListBindingsOutput struct {
	Bindings []BindingInfo `json:"bindings"`
}

// RunBindingInput is the input for the run_binding tool.
type RunBindingInput struct {
	Name string `json:"name" jsonschema:"required,Name of the binding to launch"`
}

// RunBindingOutput is the output for the run_binding tool.
type RunBindingOutput struct {
	Name    string `json:"name"`
	Command string `json:"command"`
	PID     int    `json:"pid,omitempty"`
	Via     string `json:"via"` // "daemon" or "local"
}

// SpawnCommandInput is the input for the spawn_command tool.
type SpawnCommandInput struct {
	Command string `json:"command" jsonschema:"required,Shell command to launch as a detached child"`
}

// SpawnCommandOutput is the output for the spawn_command tool.
type SpawnCommandOutput struct {
	PID int    `json:"pid"`
	Via string `json:"via"` // "daemon" or "local"
}

// ReadPropertyInput is the input for the read_property tool.
type ReadPropertyInput struct {
	Window string `json:"window,omitempty" jsonschema:"Window to read from: 'active' (default), 'root', or a window id (hex 0x... or decimal)"`
	Name   string `json:"name" jsonschema:"required,Property name (e.g. WM_NAME, WM_CLASS, _NET_WM_NAME)"`
}

// ReadPropertyOutput is the output for the read_property tool.
type ReadPropertyOutput struct {
	Window uint32 `json:"window"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Found  bool   `json:"found"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowEntry describes one managed client window.
type WindowEntry struct {
	ID    uint32 `json:"id"`
	Class string `json:"class,omitempty"`
	Title string `json:"title,omitempty"`
	PID   int    `json:"pid,omitempty"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowEntry `json:"windows"`
}

package ipc

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseRequest(t *testing.T) {
	data := []byte(`{"command":"RUN_BINDING","payload":{"name":"terminal"}}`)

	req, err := ParseRequest(data)
	if err != nil {
		t.Fatalf("ParseRequest() error: %v", err)
	}
	if req.Command != CommandRunBinding {
		t.Errorf("Command = %q, want %q", req.Command, CommandRunBinding)
	}

	var payload RunBindingPayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		t.Fatalf("payload unmarshal error: %v", err)
	}
	if payload.Name != "terminal" {
		t.Errorf("payload.Name = %q, want %q", payload.Name, "terminal")
	}
}

func TestParseRequest_InvalidJSON(t *testing.T) {
	if _, err := ParseRequest([]byte(`{not json`)); err == nil {
		t.Fatal("ParseRequest() accepted invalid JSON")
	}
}

func TestNewOKResponse_WithData(t *testing.T) {
	resp, err := NewOKResponse(StatusData{
		DaemonRunning: true,
		BindingCount:  3,
		UptimeSeconds: 42,
	})
	if err != nil {
		t.Fatalf("NewOKResponse() error: %v", err)
	}
	if resp.Status != "OK" {
		t.Errorf("Status = %q, want OK", resp.Status)
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		t.Fatalf("data unmarshal error: %v", err)
	}
	if !status.DaemonRunning || status.BindingCount != 3 || status.UptimeSeconds != 42 {
		t.Errorf("unexpected status data: %+v", status)
	}
}

func TestNewOKResponse_NilData(t *testing.T) {
	resp, err := NewOKResponse(nil)
	if err != nil {
		t.Fatalf("NewOKResponse() error: %v", err)
	}

	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if strings.Contains(string(data), `"data"`) {
		t.Errorf("nil data serialized into response: %s", data)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("boom")
	if resp.Status != "ERROR" {
		t.Errorf("Status = %q, want ERROR", resp.Status)
	}
	if resp.Error != "boom" {
		t.Errorf("Error = %q, want boom", resp.Error)
	}
}

func TestResponseRoundTrip(t *testing.T) {
	orig, err := NewOKResponse(PropertyData{
		Window: 0x2a00001,
		Name:   "WM_NAME",
		Value:  "xterm",
		Found:  true,
	})
	if err != nil {
		t.Fatalf("NewOKResponse() error: %v", err)
	}

	data, err := orig.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	var prop PropertyData
	if err := json.Unmarshal(resp.Data, &prop); err != nil {
		t.Fatalf("data unmarshal error: %v", err)
	}
	if prop.Window != 0x2a00001 || prop.Name != "WM_NAME" || prop.Value != "xterm" || !prop.Found {
		t.Errorf("unexpected property data: %+v", prop)
	}
}

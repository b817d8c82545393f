package x11

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// WindowInfo holds the metadata reported for a top-level window.
type WindowInfo struct {
	ID    uint32
	Class string
	Title string
	PID   int
}

// ClientList returns the EWMH client list from the root window.
func (c *Connection) ClientList() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	return clients, nil
}

// ActiveWindow returns the currently focused window.
func (c *Connection) ActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// WindowName returns a window's title, preferring _NET_WM_NAME and falling
// back to the ICCCM WM_NAME property for older clients. The fallback reads
// through a fixed buffer; overlong titles are truncated.
func (c *Connection) WindowName(win xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, win)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	var buf [256]byte
	if n, ok := c.TextPropertyInto(win, "WM_NAME", buf[:]); ok {
		return strings.TrimSpace(string(buf[:n]))
	}
	return ""
}

// WindowClass returns the WM_CLASS class name of a window.
func (c *Connection) WindowClass(win xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, win)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

// WindowPID returns the _NET_WM_PID of a window, or 0 when unset.
func (c *Connection) WindowPID(win xproto.Window) int {
	pid, err := ewmh.WmPidGet(c.XUtil, win)
	if err != nil {
		return 0
	}
	return int(pid)
}

// ListWindows collects id, class, title and pid for every client window.
func (c *Connection) ListWindows() ([]WindowInfo, error) {
	clients, err := c.ClientList()
	if err != nil {
		return nil, err
	}

	windows := make([]WindowInfo, 0, len(clients))
	for _, win := range clients {
		windows = append(windows, WindowInfo{
			ID:    uint32(win),
			Class: c.WindowClass(win),
			Title: c.WindowName(win),
			PID:   c.WindowPID(win),
		})
	}
	return windows, nil
}

// ResolveWindow parses a window spec: "active", "root", a hex id ("0x3400007")
// or a decimal id.
func (c *Connection) ResolveWindow(spec string) (xproto.Window, error) {
	switch spec {
	case "", "active":
		win, err := c.ActiveWindow()
		if err != nil {
			return 0, fmt.Errorf("failed to resolve active window: %w", err)
		}
		return win, nil
	case "root":
		return c.Root, nil
	}
	return ParseWindowID(spec)
}

// ParseWindowID parses a literal window id, hex (0x-prefixed) or decimal.
func ParseWindowID(spec string) (xproto.Window, error) {
	base := 10
	digits := spec
	if strings.HasPrefix(spec, "0x") {
		base = 16
		digits = strings.TrimPrefix(spec, "0x")
	}
	id, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window %q: expected \"active\", \"root\", or a window id", spec)
	}
	return xproto.Window(id), nil
}

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
)

// TextProperty reads a text property from a window and returns its decoded
// value. Multi-item properties (NUL-separated lists) yield only the first
// item. Returns an error when the property is absent or not a text type.
func (c *Connection) TextProperty(win xproto.Window, name string) (string, error) {
	reply, err := xprop.GetProperty(c.XUtil, win, name)
	if err != nil {
		return "", fmt.Errorf("failed to read property %s: %w", name, err)
	}

	typeName := ""
	if reply.Type != xproto.AtomNone {
		// Best-effort; DecodeText rejects unknown types below.
		typeName, _ = xprop.AtomName(c.XUtil, reply.Type)
	}

	return DecodeText(typeName, reply.Format, reply.Value)
}

// TextPropertyInto copies a text property into dst. It never writes past
// dst; oversize values are truncated byte-wise. Returns the number of bytes
// stored and whether the property was found. A zero-length dst stores
// nothing and reports false.
func (c *Connection) TextPropertyInto(win xproto.Window, name string, dst []byte) (int, bool) {
	if len(dst) == 0 {
		return 0, false
	}
	value, err := c.TextProperty(win, name)
	if err != nil {
		return 0, false
	}
	return storeBounded(dst, value)
}

// storeBounded copies value into dst, truncating byte-wise at capacity.
// A zero-length dst stores nothing and reports false.
func storeBounded(dst []byte, value string) (int, bool) {
	if len(dst) == 0 {
		return 0, false
	}
	return copy(dst, value), true
}

// DecodeText decodes a GetProperty reply payload as text. Only 8-bit
// formats are text; anything else (window lists, atoms, cardinals) is
// rejected. STRING and COMPOUND_TEXT are decoded as Latin-1; ISO 2022
// escape sequences in COMPOUND_TEXT are not handled.
func DecodeText(typeName string, format byte, value []byte) (string, error) {
	if format != 8 {
		return "", fmt.Errorf("property format %d is not text", format)
	}

	value = firstItem(value)

	switch typeName {
	case "UTF8_STRING", "TEXT", "":
		return string(value), nil
	case "STRING", "COMPOUND_TEXT":
		return latin1String(value), nil
	default:
		return "", fmt.Errorf("property type %s is not text", typeName)
	}
}

// firstItem cuts the payload at the first NUL separator.
func firstItem(value []byte) []byte {
	for i, b := range value {
		if b == 0 {
			return value[:i]
		}
	}
	return value
}

func latin1String(value []byte) string {
	runes := make([]rune, len(value))
	for i, b := range value {
		runes[i] = rune(b)
	}
	return string(runes)
}

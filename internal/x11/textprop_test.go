package x11

import (
	"strings"
	"testing"
)

func TestDecodeText_UTF8(t *testing.T) {
	got, err := DecodeText("UTF8_STRING", 8, []byte("xterm — bash"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "xterm — bash" {
		t.Fatalf("expected utf-8 passthrough, got %q", got)
	}
}

func TestDecodeText_Latin1String(t *testing.T) {
	// 0xE9 is é in Latin-1; a raw pass-through would produce invalid UTF-8.
	got, err := DecodeText("STRING", 8, []byte{'c', 'a', 'f', 0xE9})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "café" {
		t.Fatalf("expected latin-1 decode, got %q", got)
	}
}

func TestDecodeText_FirstItemOnly(t *testing.T) {
	got, err := DecodeText("STRING", 8, []byte("instance\x00Class\x00"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "instance" {
		t.Fatalf("expected first NUL-separated item, got %q", got)
	}
}

func TestDecodeText_RejectsNonTextFormat(t *testing.T) {
	_, err := DecodeText("WINDOW", 32, []byte{7, 0, 0, 0})
	if err == nil {
		t.Fatalf("expected error for 32-bit format")
	}
	if !strings.Contains(err.Error(), "not text") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeText_RejectsNonTextType(t *testing.T) {
	_, err := DecodeText("CARDINAL", 8, []byte{1})
	if err == nil {
		t.Fatalf("expected error for non-text type")
	}
}

func TestDecodeText_EmptyValue(t *testing.T) {
	got, err := DecodeText("UTF8_STRING", 8, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestTextPropertyInto_ZeroCapacity(t *testing.T) {
	// A zero-length destination must short-circuit before any X round-trip,
	// so an unconnected Connection is safe here.
	c := &Connection{}

	if n, ok := c.TextPropertyInto(0, "WM_NAME", nil); n != 0 || ok {
		t.Fatalf("nil dst: got (%d, %v), want (0, false)", n, ok)
	}
	if n, ok := c.TextPropertyInto(0, "WM_NAME", []byte{}); n != 0 || ok {
		t.Fatalf("empty dst: got (%d, %v), want (0, false)", n, ok)
	}
}

func TestStoreBounded(t *testing.T) {
	tests := []struct {
		name    string
		dst     []byte
		value   string
		wantN   int
		wantOK  bool
		wantDst string
	}{
		{
			name:    "fits",
			dst:     make([]byte, 8),
			value:   "xterm",
			wantN:   5,
			wantOK:  true,
			wantDst: "xterm",
		},
		{
			name:    "exact fit",
			dst:     make([]byte, 5),
			value:   "xterm",
			wantN:   5,
			wantOK:  true,
			wantDst: "xterm",
		},
		{
			name:    "oversize truncates byte-wise",
			dst:     make([]byte, 4),
			value:   "alacritty",
			wantN:   4,
			wantOK:  true,
			wantDst: "alac",
		},
		{
			name:   "zero capacity",
			dst:    nil,
			value:  "xterm",
			wantN:  0,
			wantOK: false,
		},
		{
			name:    "empty value",
			dst:     make([]byte, 4),
			value:   "",
			wantN:   0,
			wantOK:  true,
			wantDst: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, ok := storeBounded(tc.dst, tc.value)
			if n != tc.wantN || ok != tc.wantOK {
				t.Fatalf("got (%d, %v), want (%d, %v)", n, ok, tc.wantN, tc.wantOK)
			}
			if got := string(tc.dst[:n]); got != tc.wantDst {
				t.Fatalf("dst = %q, want %q", got, tc.wantDst)
			}
		})
	}
}

func TestStoreBounded_NeverWritesPastCount(t *testing.T) {
	dst := []byte("........")
	n, ok := storeBounded(dst, "ab")
	if n != 2 || !ok {
		t.Fatalf("got (%d, %v), want (2, true)", n, ok)
	}
	if string(dst) != "ab......" {
		t.Fatalf("dst = %q, bytes past the copy were touched", dst)
	}
}

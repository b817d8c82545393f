package spawn

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSpawn_ReapsChild(t *testing.T) {
	l := NewLauncher("/bin/sh", nil, quietLogger())

	pid, err := l.Spawn("true")
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if pid <= 0 {
		t.Fatalf("expected positive pid, got %d", pid)
	}

	deadline := time.After(5 * time.Second)
	for {
		if len(l.Registry().Live()) == 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("child %d was never reaped", pid)
		case <-time.After(10 * time.Millisecond):
		}
	}

	if got := l.Registry().TotalSpawned(); got != 1 {
		t.Fatalf("expected 1 spawned, got %d", got)
	}
}

func TestSpawnArgv_MissingBinary(t *testing.T) {
	l := NewLauncher("", nil, quietLogger())

	if _, err := l.SpawnArgv([]string{"/nonexistent/xspawn-test-binary"}, ""); err == nil {
		t.Fatalf("expected error for missing binary")
	}
}

func TestSpawnArgv_Empty(t *testing.T) {
	l := NewLauncher("", nil, quietLogger())

	if _, err := l.SpawnArgv(nil, ""); err == nil {
		t.Fatalf("expected error for empty argv")
	}
}

func TestExecArgv_MissingBinaryReturns(t *testing.T) {
	l := NewLauncher("", nil, quietLogger())

	err := l.ExecArgv([]string{"definitely-not-on-path-xspawn"})
	if err == nil {
		t.Fatalf("expected lookup error")
	}
}

func TestRegistry_RemoveUnknownPID(t *testing.T) {
	r := NewRegistry(quietLogger())
	// Must not panic or log for a pid that was never added.
	r.Remove(12345, errors.New("exit status 1"))
	if len(r.Live()) != 0 {
		t.Fatalf("expected empty registry")
	}
}

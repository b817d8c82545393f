package spawn

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Child describes one live spawned process.
type Child struct {
	PID     int
	Command string
	Started time.Time
}

// Registry tracks spawned children between start and reap. Every child the
// launcher starts is waited on in the background, so no zombies accumulate
// while the daemon runs.
type Registry struct {
	mu       sync.Mutex
	children map[int]Child
	spawned  int
	logger   *slog.Logger
}

// NewRegistry creates an empty child registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		children: make(map[int]Child),
		logger:   logger,
	}
}

// Add records a started child.
func (r *Registry) Add(pid int, command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.children[pid] = Child{
		PID:     pid,
		Command: command,
		Started: time.Now(),
	}
	r.spawned++
}

// Remove drops a reaped child, logging abnormal exits.
func (r *Registry) Remove(pid int, waitErr error) {
	r.mu.Lock()
	child, ok := r.children[pid]
	delete(r.children, pid)
	r.mu.Unlock()

	if !ok {
		return
	}
	if waitErr != nil {
		r.logger.Warn("child exited with error",
			"pid", pid,
			"command", child.Command,
			"error", waitErr)
		return
	}
	r.logger.Debug("child exited", "pid", pid, "command", child.Command)
}

// Live returns a snapshot of currently running children, sorted by pid.
func (r *Registry) Live() []Child {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Child, 0, len(r.children))
	for _, child := range r.children {
		out = append(out, child)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PID < out[j].PID
	})
	return out
}

// TotalSpawned returns the number of children started since creation.
func (r *Registry) TotalSpawned() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.spawned
}

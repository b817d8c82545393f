package hotkeys

import (
	"fmt"
	"log"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/okvist/xspawn/internal/config"
	"github.com/okvist/xspawn/internal/x11"
)

// Runner launches a binding's command. Implemented by the daemon around
// the spawn launcher.
type Runner interface {
	Run(binding config.Binding) error
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler on the connection's root window.
func NewHandler(conn *x11.Connection) *Handler {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})

	return &Handler{
		xu:   conn.XUtil,
		root: conn.Root,
	}
}

// RegisterBindings grabs every configured binding and dispatches presses to
// the runner. Failing grabs (e.g. already taken by another client) are
// logged and skipped so one bad binding does not take the daemon down.
func (h *Handler) RegisterBindings(bindings []config.Binding, runner Runner) error {
	registered := 0
	for _, b := range bindings {
		binding := b
		err := h.RegisterFunc(binding.Keys, func() {
			log.Printf("Binding %q triggered (%s)", binding.Name, binding.Keys)
			if err := runner.Run(binding); err != nil {
				log.Printf("Binding %q failed: %v", binding.Name, err)
			}
		})
		if err != nil {
			log.Printf("Warning: failed to grab %q for binding %q: %v", binding.Keys, binding.Name, err)
			continue
		}
		registered++
	}

	if registered == 0 && len(bindings) > 0 {
		return fmt.Errorf("no bindings could be registered")
	}
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// UnregisterAll detaches every grab so bindings can be re-registered after
// a config reload.
func (h *Handler) UnregisterAll() {
	keybind.Detach(h.xu, h.root)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// PropertyChange describes a single PropertyNotify event on a watched window.
type PropertyChange struct {
	Window  xproto.Window
	Name    string
	Deleted bool
}

// WatchProperties subscribes to PropertyNotify events on win. If filter is
// non-empty, only changes to that property are reported. The callback runs
// on the event loop goroutine; start EventLoop after connecting.
func (c *Connection) WatchProperties(win xproto.Window, filter string, fn func(PropertyChange)) error {
	if err := xwindow.New(c.XUtil, win).Listen(xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("failed to listen for property changes on %d: %w", win, err)
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil {
			return
		}
		if filter != "" && name != filter {
			return
		}
		fn(PropertyChange{
			Window:  ev.Window,
			Name:    name,
			Deleted: ev.State == xproto.PropertyDelete,
		})
	}).Connect(c.XUtil, win)

	return nil
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/okvist/xspawn/internal/ipc"
	"github.com/okvist/xspawn/internal/x11"
)

func printPropUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  xspawn prop get [--window W] <name>")
	fmt.Fprintln(w, "  xspawn prop watch [--window W] [name]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Window specs: active (default), root, or a window id (0x... or decimal).")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'xspawn prop <command> --help' for command-specific options.")
}

func runProp(args []string) int {
	if len(args) == 0 {
		printPropUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "get":
		return runPropGet(args[1:])
	case "watch":
		return runPropWatch(args[1:])
	case "help", "-h", "--help":
		printPropUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown prop command: %s\n\n", args[0])
		printPropUsage(os.Stderr)
		return 2
	}
}

func runPropGet(args []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	window := fs.String("window", "active", "Window to read from (active, root, or a window id)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xspawn prop get [--window W] <name>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Read a text property (e.g. WM_NAME, WM_CLASS, _NET_WM_NAME) and print")
		fmt.Fprintln(os.Stderr, "its value. Exits 1 when the property is absent or not text.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "prop get requires exactly one property name")
		fs.Usage()
		return 2
	}
	name := fs.Arg(0)

	// Prefer the daemon's X connection, like run and spawn do.
	if client, err := ipc.NewClient(); err == nil {
		if data, err := client.GetProperty(*window, name); err == nil {
			if !data.Found {
				fmt.Fprintf(os.Stderr, "property %s not set on 0x%08x\n", name, data.Window)
				return 1
			}
			fmt.Println(data.Value)
			return 0
		}
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to display: %v\n", err)
		return 1
	}
	defer conn.Close()

	win, err := conn.ResolveWindow(*window)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	value, err := conn.TextProperty(win, name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(value)
	return 0
}

func runPropWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	window := fs.String("window", "root", "Window to watch (active, root, or a window id)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xspawn prop watch [--window W] [name]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print property changes on a window as they happen, one per line.")
		fmt.Fprintln(os.Stderr, "With a name argument, only that property is reported. Runs until")
		fmt.Fprintln(os.Stderr, "interrupted.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "prop watch takes at most one property name")
		fs.Usage()
		return 2
	}
	filter := ""
	if fs.NArg() == 1 {
		filter = fs.Arg(0)
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to display: %v\n", err)
		return 1
	}
	defer conn.Close()

	win, err := conn.ResolveWindow(*window)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	err = conn.WatchProperties(win, filter, func(change x11.PropertyChange) {
		if change.Deleted {
			fmt.Printf("0x%08x  %s  (deleted)\n", uint32(change.Window), change.Name)
			return
		}
		value, err := conn.TextProperty(change.Window, change.Name)
		if err != nil {
			fmt.Printf("0x%08x  %s  (not text)\n", uint32(change.Window), change.Name)
			return
		}
		fmt.Printf("0x%08x  %s  %s\n", uint32(change.Window), change.Name, value)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	conn.EventLoop()
	return 0
}

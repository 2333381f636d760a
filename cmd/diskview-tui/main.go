package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/diskview/internal/tui"
)

var (
	version = "dev"
)

func main() {
	server := flag.String("server", "localhost:8090", "diskview server address (host:port or ws:// URL)")
	path := flag.String("path", "", "Scan PATH immediately instead of showing the drive picker")
	depth := flag.Int("depth", 0, "Scan depth (0 = server default)")
	timeout := flag.Int("timeout", 10, "Connection timeout in seconds")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "diskview-tui - terminal client for a diskview server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: diskview-tui [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  diskview-tui                          Connect to localhost:8090\n")
		fmt.Fprintf(os.Stderr, "  diskview-tui -server 10.0.0.5:8090\n")
		fmt.Fprintf(os.Stderr, "  diskview-tui -path /home -depth 3     Scan /home right away\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("diskview-tui %s\n", version)
		os.Exit(0)
	}

	client, err := tui.Dial(wsURL(*server), time.Duration(*timeout)*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	app := tui.NewApp(client, *path, *depth)
	app.Version = version

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := app.FatalError(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// wsURL normalizes a server address to the /ws endpoint URL.
func wsURL(addr string) string {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return addr
	}
	return "ws://" + addr + "/ws"
}

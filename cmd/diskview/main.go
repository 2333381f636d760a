package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sadopc/diskview/internal/config"
	"github.com/sadopc/diskview/internal/report"
	"github.com/sadopc/diskview/internal/scan"
	"github.com/sadopc/diskview/internal/server"
	"github.com/sadopc/diskview/internal/stats"
	"github.com/sadopc/diskview/internal/task"
)

var (
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default ~/.config/diskview/config.yaml)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	staticDir := flag.String("static", "", "Directory of client assets to serve at / (overrides config)")
	depth := flag.Int("depth", 0, "Default scan depth when a client omits one (overrides config)")
	scanPath := flag.String("scan", "", "Headless mode: scan PATH once, print a report, and exit")
	exportPath := flag.String("export", "-", "Headless mode: write the report to FILE ('-' for stdout)")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "diskview - disk usage analyzer server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: diskview [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  diskview                          Serve on the configured address\n")
		fmt.Fprintf(os.Stderr, "  diskview -addr :9000 -static web  Serve client assets from ./web\n")
		fmt.Fprintf(os.Stderr, "  diskview -scan /home              One-shot scan, report to stdout\n")
		fmt.Fprintf(os.Stderr, "  diskview -scan /var -export v.json\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("diskview %s\n", version)
		os.Exit(0)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = defaultConfigPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *addr != "" {
		cfg.Addr = *addr
	}
	if *staticDir != "" {
		cfg.StaticDir = *staticDir
	}
	if *depth > 0 {
		cfg.DefaultDepth = *depth
		if cfg.MaxDepth < cfg.DefaultDepth {
			cfg.MaxDepth = cfg.DefaultDepth
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *scanPath != "" {
		if err := runHeadless(cfg, *scanPath, *exportPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	srv := server.New(cfg, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless scans one root directly, without the server, and writes the
// formatted report.
func runHeadless(cfg *config.Config, target, exportPath string) error {
	fsys, root, cleanup, err := server.ResolveProvider(cfg, target)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	t := task.New(root, cfg.DefaultDepth)
	engine := scan.NewEngine(fsys)

	err = engine.Walk(t, func(p scan.Progress) {
		fmt.Fprintf(os.Stderr, "\rScanning %s: %d files, %d errors...", root, p.ScannedCount, p.ErrorCount)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	rep := &report.Report{
		Progname:  "diskview",
		Version:   version,
		Timestamp: time.Now().Unix(),
		Root:      root,
		Depth:     t.MaxDepth,
		Duration:  int64(t.Duration().Seconds()),
		Stats:     stats.Format(t.Stats),
	}
	if err := report.WriteJSON(rep, exportPath); err != nil {
		return err
	}
	if exportPath != "-" {
		fmt.Printf("Exported to %s\n", exportPath)
	}
	return nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "diskview", "config.yaml")
}

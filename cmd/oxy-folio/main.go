// Command oxy-folio opens the animated portfolio scene in a native window.
//
//	oxy-folio [-config oxy-folio.toml] [-profile]
//
// Scroll with the mouse wheel, the arrow keys, Page Up/Down, Space, Home and End. Drag with the
// left mouse button to orbit. Escape quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-folio/internal/config"
	"github.com/Carmen-Shannon/oxy-folio/internal/portfolio"
)

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml configuration file")
	profile := flag.Bool("profile", false, "log frame rate and memory statistics every second")
	flag.Parse()

	if err := run(*configPath, *profile); err != nil {
		slog.Error("oxy-folio failed", "component", "main", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, profile bool) (err error) {
	// ── Configuration ───────────────────────────────────────────────────
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if profile {
		cfg.Engine.Profile = true
	}
	slog.SetDefault(slog.New(cfg.Log.Handler(os.Stderr)))

	// GPU and window initialization failures panic deep in the engine.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	// ── Scene ───────────────────────────────────────────────────────────
	p, err := portfolio.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── GPU + Window ────────────────────────────────────────────────────
	if err := p.Bootstrap(ctx); err != nil {
		return errors.Join(err, p.Close())
	}

	// ── Run ─────────────────────────────────────────────────────────────
	return p.Run()
}

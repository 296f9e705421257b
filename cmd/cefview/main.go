//go:build js && wasm

// Command cefview is a WebAssembly module for CefView pages. It connects to
// the page's bridge object and logs every configured event the native side
// dispatches.
package main

import (
	"log/slog"
	"os"

	"github.com/arko-chat/cefview/bridge"
	"github.com/arko-chat/cefview/internal/config"
	"github.com/arko-chat/cefview/internal/logger"
	"github.com/arko-chat/cefview/jshost"
)

func main() {
	slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load("")
	if err != nil {
		slogger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slogger, err = logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		slog.Error("failed to create logger", "err", err)
		os.Exit(1)
	}

	host := jshost.New()
	b, err := bridge.New(cfg.BridgeName, host.Window(), bridge.WithLogger(slogger))
	if err != nil {
		slogger.Error("cefview bridge unavailable", "err", err)
		os.Exit(1)
	}
	bridge.Register(b)

	for _, event := range cfg.Events {
		l := bridge.NewListener(func(args ...bridge.Value) {
			slogger.Info("bridge event", "event", event, "args", describe(args))
		})
		if err := b.AddEventListener(event, l); err != nil {
			slogger.Error("failed to add listener", "event", event, "err", err)
			os.Exit(1)
		}
	}

	slogger.Info("cefview bridge started", "name", b.Name(), "events", cfg.Events)

	// keep the listeners callable
	<-make(chan struct{})
}

func describe(args []bridge.Value) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.String()
	}
	return out
}

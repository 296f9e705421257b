// Command cefview-check tests a simulated CefView host against the bridge
// contract. Each argument is a JavaScript file run in order in one goja
// runtime where window is globalThis; the files set up the bridge object
// and the CefViewQuery/CefViewCancelQuery functions the way the native
// application would.
//
//	cefview-check --name myBridge host.js
//	cefview-check --query '{"method":"ping"}' --cancel host.js
//
// Query callbacks are reported only when the fixture calls them before
// CefViewQuery returns, as goja has no event loop here.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arko-chat/cefview/bridge"
	"github.com/arko-chat/cefview/gojahost"
	"github.com/arko-chat/cefview/internal/config"
	"github.com/arko-chat/cefview/internal/logger"
	"github.com/dop251/goja"
	"github.com/spf13/pflag"
)

const prelude = "var window = globalThis;"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("cefview-check", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.StringP("config", "c", "", "JSON config file")
	name := flags.StringP("name", "n", "", "bridge object name, overrides the config")
	query := flags.StringP("query", "q", "", "JSON request to send through CefViewQuery once the bridge is up")
	cancel := flags.Bool("cancel", false, "cancel the query right after sending it")
	logLevel := flags.String("log-level", "", "log level, overrides the config")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: cefview-check [flags] host.js...")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if *name != "" {
		cfg.BridgeName = *name
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	slogger, err := logger.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	var request any
	if *query != "" {
		if err := json.Unmarshal([]byte(*query), &request); err != nil {
			fmt.Fprintf(stderr, "invalid --query: %v\n", err)
			return 2
		}
	}

	rt := goja.New()
	if _, err := rt.RunString(prelude); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	for _, path := range flags.Args() {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		if _, err := rt.RunScript(path, string(src)); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			return 2
		}
		slogger.Debug("fixture loaded", "path", path)
	}

	host := gojahost.New(rt)
	b, err := bridge.New(cfg.BridgeName, host.Window(), bridge.WithLogger(slogger))
	if err != nil {
		fmt.Fprintf(stdout, "FAIL %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "ok window.'%s' exposes the CefView bridge\n", b.Name())

	if *query == "" {
		return 0
	}

	id, err := b.Query(request,
		func(response string) { fmt.Fprintf(stdout, "response %s\n", response) },
		func(code int, message string) { fmt.Fprintf(stdout, "failure %d %s\n", code, message) },
	)
	if err != nil {
		fmt.Fprintf(stdout, "FAIL query: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "query %d\n", id)

	if *cancel {
		if err := b.CancelQuery(id); err != nil {
			fmt.Fprintf(stdout, "FAIL cancel: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "cancelled %d\n", id)
	}
	return 0
}

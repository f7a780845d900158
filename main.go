package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"quickopen/internal/app"
	"quickopen/internal/config"
	"quickopen/internal/logging"
	"quickopen/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	payload["tty"] = probeTerminal()
	return payload
}

type terminalInfo struct {
	IsTerminal bool   `json:"is_terminal"`
	Source     string `json:"source,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
}

// probeTerminal reports whether any standard descriptor is a terminal,
// with the first usable size. stdout is checked first since that is
// where the program renders.
func probeTerminal() terminalInfo {
	descriptors := []struct {
		name string
		fd   int
	}{
		{"stdout", int(os.Stdout.Fd())},
		{"stdin", int(os.Stdin.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
	for _, d := range descriptors {
		if d.fd < 0 || !term.IsTerminal(d.fd) {
			continue
		}
		info := terminalInfo{IsTerminal: true, Source: d.name}
		if width, height, err := term.GetSize(d.fd); err == nil {
			info.Width = width
			info.Height = height
		}
		return info
	}
	return terminalInfo{}
}

// nrbfedit-mcp is a Model Context Protocol server that exposes the nrbf
// load/get/set/save/diff/traverse surface as LLM-drivable tools.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"github.com/nrbfedit/nrbfedit/internal/nrbfmcp"
)

const (
	serverName    = "nrbfedit-mcp"
	serverVersion = "0.1.0"

	defaultSSEHostPort = ":8890"

	serverInstructions = `nrbfedit-mcp exposes .NET NRBF (Binary Format) files to LLM clients.
This server holds open documents in an in-memory session map: it is a
development convenience for a single user, not a multi-tenant service.

Recommended workflow:
1. Use nrbf_load to open a file and obtain a session_id.
2. Use nrbf_traverse to see every addressable path, or nrbf_get for one.
3. Use nrbf_set_primitive, nrbf_set_guid, or nrbf_set_string to edit a slot.
4. Use nrbf_save to re-encode the session back to disk.
5. Use nrbf_diff to compare two loaded sessions field by field.`
)

type config struct {
	LogFile string
	LogJSON bool
	Verbose bool
	UseSSE  bool
	SSEAddr string
}

func main() {
	var cfg config
	var showHelp bool

	pflag.StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file destination (or NRBFEDIT_LOG_FILE envvar). Default is stderr")
	pflag.BoolVarP(&cfg.LogJSON, "log-json", "j", false, "Log in JSON (default is plaintext)")
	pflag.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")
	pflag.BoolVarP(&cfg.UseSSE, "sse", "", false, "Use SSE transport (default is STDIO transport)")
	pflag.StringVarP(&cfg.SSEAddr, "port", "p", defaultSSEHostPort, "host:port to listen on for SSE connections")
	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.Parse()

	if showHelp {
		fmt.Fprintf(os.Stdout, "usage: %s [opts]\n\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(0)
	}

	logger := newLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("run loop error", "error", err.Error())
		os.Exit(1)
	}
}

func newLogger(cfg config) *slog.Logger {
	logWriter := os.Stderr
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = os.Getenv("NRBFEDIT_LOG_FILE")
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %s\n", err.Error())
			os.Exit(1)
		}
		logWriter = f
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	if cfg.LogJSON {
		return slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: level}))
}

func run(cfg config, logger *slog.Logger) error {
	mcpServer := server.NewMCPServer(serverName, serverVersion,
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	srv := nrbfmcp.NewServer(logger)
	srv.RegisterTools(mcpServer)

	if cfg.UseSSE {
		sseServer := server.NewSSEServer(mcpServer)
		logger.Info("MCP SSE server started", "hostPort", cfg.SSEAddr)
		if err := sseServer.Start(cfg.SSEAddr); err != nil {
			return fmt.Errorf("MCP SSE server error: %w", err)
		}
	} else {
		logger.Info("MCP STDIO server started")
		if err := server.ServeStdio(mcpServer); err != nil {
			return fmt.Errorf("MCP STDIO server error: %w", err)
		}
	}

	return nil
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ironsheep/image-edit-mcp/internal/editor"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-edit-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	logger := newLogger(os.Getenv("IMAGE_EDIT_LOG_LEVEL"))
	editor.SetLogger(logger)
	logger.Debug("starting image-edit-mcp", "version", Version, "built", BuildTime, "commit", GitCommit)

	opts := []imaging.Option{imaging.WithLogger(logger)}
	if filter := os.Getenv("IMAGE_EDIT_FILTER"); filter != "" {
		opts = append(opts, imaging.WithFilter(filter))
	}
	if !strings.EqualFold(os.Getenv("IMAGE_EDIT_CACHE"), "off") {
		opts = append(opts, imaging.WithCache(imaging.NewImageCache()))
	}

	backend, err := imaging.NewBackend(opts...)
	if err != nil {
		logger.Error("backend unavailable", "error", err)
		os.Exit(1)
	}

	srv := server.New(backend, Version)
	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newLogger builds a text logger on stderr. Unknown levels fall back to warn.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printHelp() {
	fmt.Println("image-edit-mcp - MCP server for image editing")
	fmt.Println()
	fmt.Println("Usage: image-edit-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_EDIT_LOG_LEVEL=debug|info|warn|error   Log level (default warn)")
	fmt.Println("  IMAGE_EDIT_FILTER=lanczos                    Resample filter: lanczos, catmullrom,")
	fmt.Println("                                               mitchell, linear, box, nearest")
	fmt.Println("  IMAGE_EDIT_CACHE=off                         Disable the decoded image cache")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

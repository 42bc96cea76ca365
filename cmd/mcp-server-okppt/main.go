package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/unidoc/unioffice/common/license"

	okppt "github.com/NeekChaw/mcp-server-okppt"
	"github.com/NeekChaw/mcp-server-okppt/mcpserver"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "mcp-server-okppt",
		Short: "MCP server for inserting SVG graphics into PowerPoint decks",
		Long: `mcp-server-okppt speaks the Model Context Protocol over stdin/stdout and
exposes tools for placing SVG images on PPTX slides, converting SVG to PNG,
and inspecting files on disk.

Document editing requires a UniDoc license key in the UNIDOC_LICENSE_API_KEY
environment variable.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mcp-server-okppt %s (%s)\n", version, commit)
		},
	})

	return rootCmd
}

func runServe(ctx context.Context, verbose bool) error {
	// Stdout is the protocol channel; all logging goes to stderr.
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if key := os.Getenv("UNIDOC_LICENSE_API_KEY"); key != "" {
		if err := license.SetMeteredKey(key); err != nil {
			return fmt.Errorf("set document license key: %w", err)
		}
	} else {
		logger.Warn("UNIDOC_LICENSE_API_KEY not set; document tools will fail on save")
	}

	reg, err := okppt.NewBuiltinRegistry(okppt.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("build tool registry: %w", err)
	}

	srv, err := mcpserver.NewServer(reg, mcpserver.WithServerInfo("mcp-server-okppt", version))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving MCP over stdio", "version", version)
	return srv.Serve(ctx)
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"lcstats/internal/server"
	"lcstats/pkg/leetcode"
	"lcstats/pkg/logger"
	"lcstats/pkg/ui"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI",
	Long: `Start a web page where a roster spreadsheet can be uploaded.

The page shows the results table and offers the CSV for download. The same
processing is available as JSON under /api/v1.`,
	Example: `  lcstats serve --addr :8080`,
	Args:    cobra.NoArgs,
	RunE:    runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8501)")
	serveCmd.Flags().StringVar(&endpoint, "endpoint", "", "LeetCode GraphQL endpoint")
	serveCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request timeout (default: none)")
}

func runServe(cmd *cobra.Command, args []string) error {
	flags := processFlags()
	if serveAddr != "" {
		flags["addr"] = serveAddr
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.GetLogger()
	srv := server.New(cfg, leetcode.NewClient(&cfg.LeetCode, log), log)

	ui.PrintInfo("Web UI", "http://"+displayAddr(cfg.Server.Addr))
	return srv.ListenAndServe(ctx)
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rating/internal/config"
	"github.com/vango-dev/rating/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live demo server",
		Long: `Start the live demo server.

The page shows a row of stars. Hovering or focusing a star shows its
tooltip above it; placement is computed by the server and streamed to
the browser over a WebSocket.

Examples:
  rating serve
  rating serve --port=8080
  rating serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("config")
			return runServe(cmd.Context(), dir, host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func runServe(ctx context.Context, dir, host string, port int) error {
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc := server.FromConfig(cfg)
	success("Serving on http://%s", sc.Address)
	if sc.MetricsPath != "" {
		info("Metrics at http://%s%s", sc.Address, sc.MetricsPath)
	}
	info("Tooltip offset %spx, star size %s", strconv.FormatFloat(sc.Offset, 'f', -1, 64), sc.StarSize)

	return server.New(sc).Run(ctx)
}

func loadConfig(dir string) (*config.Config, error) {
	if dir == "" {
		dir = "."
	}
	return config.Load(dir)
}

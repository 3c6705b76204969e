package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/filament-ui/filament/internal/config"
	"github.com/filament-ui/filament/internal/demo"
	"github.com/filament-ui/filament/pkg/server"
	"github.com/filament-ui/filament/pkg/vnode"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live session server",
		Long: `Start the server with the demo application.

The page route serves a statically rendered document; the thin client
then connects a WebSocket and mirrors server-side state changes into
the DOM as they happen.

Examples:
  filament serve
  filament serve --port=8080
  filament serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from filament.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from filament.json)")

	return cmd
}

func runServe(port int, host string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}

	pingInterval, err := cfg.Session.PingIntervalDuration()
	if err != nil {
		return err
	}
	writeTimeout, err := cfg.Session.WriteTimeoutDuration()
	if err != nil {
		return err
	}

	root := func() *vnode.VNode {
		return vnode.NewComponent(demo.App{Title: cfg.Page.Title}, nil)
	}

	srv := server.New(root, &server.Config{
		Address:      cfg.Address(),
		Title:        cfg.Page.Title,
		Lang:         cfg.Page.Lang,
		StyleSheets:  cfg.Page.StyleSheets,
		Pretty:       cfg.Server.Pretty,
		PingInterval: pingInterval,
		WriteTimeout: writeTimeout,
	})

	info("serving at %s", cfg.URL())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

// ABOUTME: Serve command runs the HTTP skill endpoint
// ABOUTME: Stops gracefully on SIGINT or SIGTERM
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harper/vegra/internal/logger"
	"github.com/harper/vegra/internal/server"
	"github.com/harper/vegra/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assistant over HTTP",
		Long: `Serve the assistant over HTTP.

Routes:
  POST   /alice/webhook      Yandex Alice skill webhook
  POST   /v1/turn            {"session_id", "utterance"} -> reply
  GET    /v1/intents         catalog tags
  DELETE /v1/sessions/{id}   forget a session
  GET    /metrics            Prometheus metrics

Examples:
  vegra serve
  vegra serve --addr :9000`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.address from config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	if !rt.trained {
		logger.Log.Warn("serving without a trained model; only rule commands will resolve")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, rt.cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	addr := rt.cfg.Server.Address
	if serveAddr != "" {
		addr = serveAddr
	}
	srv := server.New(session.NewManager(rt.assistant, store), rt.catalog, server.Options{
		Address:      addr,
		ReadTimeout:  rt.cfg.Server.ReadTimeout,
		WriteTimeout: rt.cfg.Server.WriteTimeout,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Vegra listening on %s\n", addr)
	}
	if err := g.Wait(); err != nil {
		logger.Log.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

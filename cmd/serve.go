package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/abhisek/wisein/internal/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz and interview HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides WISEIN_HTTP_ADDR)")
	serveCmd.Flags().Duration("timeout", 60*time.Second, "Per-request timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd, envOptions{})
	if err != nil {
		return err
	}
	defer e.Close()

	addr := e.cfg.HTTPAddr
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		addr = v
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	srv := &http.Server{
		Addr: addr,
		Handler: api.NewRouter(e.svc, api.Options{
			CORSOrigins: e.cfg.CORSOrigins,
			Timeout:     timeout,
			Logger:      e.logger,
			Limits:      e.cfg.API,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serverErr <- err
	}()
	e.logger.Info("listening", "addr", addr, "llm", e.status(), "questions", e.svc.Catalog().Len())

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	case <-cmd.Context().Done():
	}

	e.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		e.logger.Warn("graceful shutdown failed; closing connections", "err", err)
		_ = srv.Close()
	}
	return <-serverErr
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aouyang1/go-utilitycost/internal/config"
	"github.com/aouyang1/go-utilitycost/internal/dashboard"

	"github.com/spf13/cobra"
)

var (
	serveListen string
	serveTitle  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prediction dashboard",
	Long: `Loads the dataset, fits the model once and serves the information page, the prediction
form, the chart pages and a small JSON api over http.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default is "+config.DefaultListen+")")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "page title")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	source := dashboard.NewLazy(loadPredictor)
	if _, err := source.Predictor(); err != nil {
		return fmt.Errorf("unable to load predictor, %w", err)
	}

	opt := dashboard.NewDefaultOptions()
	if serveTitle != "" {
		opt.Title = serveTitle
	}
	h, err := dashboard.NewHandler(source, opt)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	h.Register(mux)

	addr := serveListen
	if addr == "" {
		addr = cfg.GetListen()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           dashboard.WithRequestLogging(mux, slog.Default()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving dashboard", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("unable to serve dashboard, %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the user roster and serve metrics",
	Long:  `watch refreshes the user list on an interval and exposes /metrics and /health, so a dashboard can track API availability and fallback activity.`,
	Run:   runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 30*time.Second, "refresh interval")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	a := mustApp()
	defer a.close()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status":"ok"}`)
	})
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Metrics.Port),
		Handler: mux,
	}

	go func() {
		slog.Info("Metrics server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	refresh := func() {
		users, err := a.users.Fetch(ctx)
		if err != nil {
			slog.Warn("Refresh failed", "error", err)
			return
		}
		slog.Info("Roster refreshed", "users", len(users))
	}
	refresh()

	for {
		select {
		case <-ticker.C:
			refresh()
		case sig := <-sigChan:
			slog.Info("Received signal, shutting down...", "signal", sig)
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("Error during shutdown", "error", err)
			}
			return
		}
	}
}

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/acagil/borsabot/internal/api"
	"github.com/acagil/borsabot/internal/api/handlers"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API sunucusunu başlat",
	Long: `REST API sunucusunu başlatır.

Endpoints:
  GET  /health               - Health check
  GET  /api/recommendations  - Son kaydedilen öneriler
  POST /api/analyze          - Analizi hemen çalıştır
  POST /api/backtest         - Backtest kampanyası çalıştır

Example:
  go run ./cmd/borsabot api
  go run ./cmd/borsabot api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	if err := a.repo.EnsureSchema(cmd.Context()); err != nil {
		return err
	}

	recHandler := handlers.NewRecommendationHandler(a.repo, a.log)
	backtestHandler := handlers.NewBacktestHandler(a.runner, a.strategy.Universe.All(), a.log)
	analysisHandler := handlers.NewAnalysisHandler(a.orchestrator(), a.log)

	router := api.NewRouter(recHandler, backtestHandler, analysisHandler, a.log)
	server := api.New(a.cfg, a.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

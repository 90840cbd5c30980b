package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/cache"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/httpapi"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/usecase"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over a local HTTP API",
	Long: `Run a local HTTP API answering classification and analysis requests,
for editors, scripts, and browser extensions.

Routes:
  GET  /healthz         liveness check
  GET  /api/vocabulary  loaded vocabulary counts and source
  POST /api/classify    {"words": [...]} -> per-word classifications
  POST /api/analyze     {"units": [...]} or {"text": "..."} -> stats + sentences
  POST /api/sync        refetch vocabulary and replace the snapshot

The vocabulary is loaded once at startup (Anki when reachable, the stored
snapshot otherwise); POST /api/sync refreshes it without a restart.

Examples:
  selfstudy serve
  selfstudy serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	server := httpapi.NewServer(
		newAnalyzeUseCase(),
		usecase.NewVocabularyUseCase(st, logger),
		newSegmenter(),
		newAnkiProvider(),
		cache.NewAnalysisCache(cfg.Serve.CacheSize, cfg.Serve.CacheTTL()),
		logger,
	)
	if err := server.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load vocabulary: %w", err)
	}

	addr := cfg.Serve.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	fmt.Printf("Listening on http://%s\n", addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Println("\nShutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

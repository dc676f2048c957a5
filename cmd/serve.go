package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/masterphooey/wakeword-recorder-api/api"
	"github.com/masterphooey/wakeword-recorder-api/api/types"
	"github.com/masterphooey/wakeword-recorder-api/internal/database"
	"github.com/masterphooey/wakeword-recorder-api/internal/services/recorder"
	"github.com/masterphooey/wakeword-recorder-api/internal/services/runs"
	"github.com/masterphooey/wakeword-recorder-api/pkg/config"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Wakeword Recorder API server with the configured settings.

The server accepts recording sessions, take uploads and training requests,
and streams training progress through the status endpoint.

Example:
  recorder-api serve
  recorder-api serve --port 9090
  recorder-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Use config values if flags not provided
	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	deps, db, err := buildDependencies(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	// Create and initialize the HTTP server
	srv := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	srv.SetDependencies(deps)
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Server is ready to handle requests at %s:%d", serverHost, serverPort)

	// Wait for interrupt signal or server error
	select {
	case <-stop:
		log.Println("[INFO] Shutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		log.Println("[INFO] Shutting down server...")
	}

	// Create a context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	log.Println("[INFO] Server gracefully stopped")
	return nil
}

// buildDependencies wires the take store, the run history and the state
// manager. The database is optional: without it the API runs with history
// disabled.
func buildDependencies(cfg *config.Config) (*types.Dependencies, *database.DB, error) {
	store, err := recorder.NewFilesystemStore(cfg.Storage.SamplesDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize take store: %w", err)
	}

	deps := &types.Dependencies{}

	var db *database.DB
	var history runs.Service
	if cfg.Database.Path != "" {
		db, err = database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
		if err != nil {
			log.Printf("[WARN] Run history disabled: %v", err)
		} else if err := db.Migrate(); err != nil {
			log.Printf("[WARN] Run history disabled: %v", err)
			db.Close()
			db = nil
		} else {
			history = runs.NewService(runs.NewRepository(db.DB))
			deps.DB = db
			deps.Runs = history
		}
	}

	deps.Recorder = recorder.NewManager(recorder.Config{
		Store:                  store,
		History:                history,
		ScriptPath:             cfg.Training.Script,
		LogPath:                cfg.Training.LogPath,
		LogMaxLines:            cfg.Training.LogMaxLines,
		DefaultSpeakersTotal:   cfg.Recording.SpeakersTotal,
		DefaultTakesPerSpeaker: cfg.Recording.TakesPerSpeaker,
	})

	return deps, db, nil
}

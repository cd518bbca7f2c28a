package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/ecordell/optgen/helpers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	v1 "github.com/lumina-home/lumina-console/api/v1"
	"github.com/lumina-home/lumina-console/internal/config"
	"github.com/lumina-home/lumina-console/internal/handlers"
	"github.com/lumina-home/lumina-console/internal/server"
	"github.com/lumina-home/lumina-console/internal/services"
	"github.com/lumina-home/lumina-console/internal/store"
	"github.com/lumina-home/lumina-console/internal/store/migrations"
	"github.com/lumina-home/lumina-console/pkg/scheduler"
)

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the console API",
		Example: `  # Serve the console API for a local Lumina server
  lumina-console run --remote-url http://127.0.0.1:8081

  # Keep host snapshots and failed command transcripts across restarts
  lumina-console run --remote-url http://lumina.lan:8081 --data-folder /var/lib/lumina-console

  # Serve in production mode, rediscovering every 5 minutes
  lumina-console run --server-mode prod --discovery-interval 5m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfiguration(cfg); err != nil {
				return err
			}

			zap.S().Infow("using configuration",
				"server", helpers.Flatten(cfg.Server.DebugMap()),
				"remote", helpers.Flatten(cfg.Remote.DebugMap()),
				"discovery", helpers.Flatten(cfg.Discovery.DebugMap()),
				"store", helpers.Flatten(cfg.Store.DebugMap()),
			)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
			defer cancel()
			wg := sync.WaitGroup{}

			// init store
			dbPath := filepath.Join(cfg.Store.DataFolder, "console.duckdb")
			if cfg.Store.DataFolder == "" {
				dbPath = ":memory:"
				zap.S().Warn("data-folder not set, using in-memory database (data will not persist)")
			} else if err := os.MkdirAll(cfg.Store.DataFolder, 0o755); err != nil {
				return fmt.Errorf("failed to create data folder: %w", err)
			}
			db, err := store.NewDB(dbPath)
			if err != nil {
				zap.S().Errorw("failed to initialize database", "error", err)
				return err
			}
			s := store.NewStore(db)
			defer s.Close()

			if err := migrations.Run(ctx, db); err != nil {
				zap.S().Errorw("failed to run migrations", "error", err)
				return err
			}
			zap.S().Info("database initialized successfully")

			// init scheduler
			sched := scheduler.NewScheduler(cfg.Discovery.NumWorkers)
			defer sched.Close()

			// init services
			router, err := newRouter(cfg.Remote)
			if err != nil {
				return err
			}

			recorder := services.NewRecorder(s, uuid.NewString())
			router.Trace().OnFlush(recorder.RecordTranscript)

			directory := services.NewDirectory()
			discoverer := services.NewDiscoverer(router, directory, sched)
			zap.S().Infow("console session started", "session_id", recorder.SessionID())

			wg.Add(1)
			go func() {
				defer wg.Done()
				recorder.Run(ctx, directory)
			}()

			if !cfg.Discovery.Disabled {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if err := discoverer.Run(ctx, cfg.Discovery.Interval); err != nil {
						zap.S().Errorw("discovery loop failed", "error", err)
					}
				}()
			}

			// init handlers
			h := handlers.New(router, discoverer)

			srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
				v1.RegisterHandlers(router, h)
			})
			if err != nil {
				zap.S().Errorw("failed to create http server", "error", err)
				return err
			}

			wg.Add(1)
			go func() {
				defer func() {
					wg.Done()
					cancel()
				}()
				zap.S().Infof("Starting HTTP server on port %d", cfg.Server.HTTPPort)

				if err := srv.Start(ctx); err != nil {
					if !errors.Is(err, http.ErrServerClosed) {
						zap.S().Errorw("failed to start http server", "error", err)
					}
				}
			}()

			<-ctx.Done()

			stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer stopCancel()
			srv.Stop(stopCtx)

			wg.Wait()

			zap.S().Info("server shutdown")

			return nil
		},
	}

	registerFlags(runCmd, cfg)

	return runCmd
}

func registerFlags(cmd *cobra.Command, config *config.Configuration) {
	nfs := cobrautil.NewNamedFlagSets(cmd)

	serverFlagSet := nfs.FlagSet(flagSetTitle.Sprint("Server"))
	registerServerFlags(serverFlagSet, config)

	registerRemoteFlags(nfs, config)

	discoveryFlagSet := nfs.FlagSet(flagSetTitle.Sprint("Discovery"))
	registerDiscoveryFlags(discoveryFlagSet, config)

	storeFlagSet := nfs.FlagSet(flagSetTitle.Sprint("Store"))
	registerStoreFlags(storeFlagSet, config)

	nfs.AddFlagSets(cmd)
}

func validateConfiguration(cfg *config.Configuration) error {
	switch config.ServerModeType(cfg.Server.ServerMode) {
	case config.ServerModeProd, config.ServerModeDev:
	default:
		return fmt.Errorf("invalid server mode %q: must be %q or %q", cfg.Server.ServerMode, config.ServerModeProd, config.ServerModeDev)
	}

	if cfg.Server.HTTPPort < 1 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http-port %d: must be between 1 and 65535", cfg.Server.HTTPPort)
	}

	if err := validateRemote(cfg.Remote); err != nil {
		return err
	}

	return validateDiscovery(cfg.Discovery)
}

func registerServerFlags(flagSet *pflag.FlagSet, config *config.Configuration) {
	flagSet.IntVar(&config.Server.HTTPPort, "server-http-port", config.Server.HTTPPort, "Port on which the HTTP server is listening")
	flagSet.StringVar(&config.Server.ServerMode, "server-mode", config.Server.ServerMode, "Server mode: either prod or dev")
}

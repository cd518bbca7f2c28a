package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/lumina-home/lumina-console/api/v1"
	"github.com/lumina-home/lumina-console/internal/config"
	"github.com/lumina-home/lumina-console/internal/models"
	"github.com/lumina-home/lumina-console/internal/output"
	"github.com/lumina-home/lumina-console/internal/services"
	"github.com/lumina-home/lumina-console/internal/store"
	"github.com/lumina-home/lumina-console/internal/store/migrations"
	"github.com/lumina-home/lumina-console/pkg/scheduler"
)

func NewDiscoverCommand(cfg *config.Configuration) *cobra.Command {
	var format string

	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover the hosts of the Lumina network once and print them",
		Example: `  # Print the network as a table
  lumina-console discover --remote-url http://lumina.lan:8081

  # Save the snapshot so that "hosts" can show it later
  lumina-console discover --data-folder ~/.lumina-console -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRemote(cfg.Remote); err != nil {
				return err
			}
			if err := validateDiscovery(cfg.Discovery); err != nil {
				return err
			}
			outFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			router, err := newRouter(cfg.Remote)
			if err != nil {
				return err
			}

			sched := scheduler.NewScheduler(cfg.Discovery.NumWorkers)
			defer sched.Close()

			warn := color.New(color.FgYellow)
			directory := services.NewDirectory()
			discoverer := services.NewDiscoverer(router, directory, sched,
				services.WithNodeErrorHook(func(node models.NodeDescriptor, err error) {
					warn.Fprintf(os.Stderr, "node %s: %s\n", node.Name, err)
				}),
			)

			pass, err := discoverer.Discover(ctx)
			if err != nil {
				color.New(color.FgRed).Fprint(os.Stderr, router.Trace().Log())
				return err
			}
			failed, err := pass.Wait(ctx)
			if err != nil {
				return err
			}
			zap.S().Named("discover").Debugw("discovery pass done", "fetches", pass.Dispatched(), "failed", failed)

			records := directory.List()
			if cfg.Store.DataFolder != "" {
				if err := saveSnapshot(ctx, cfg.Store.DataFolder, records); err != nil {
					return err
				}
			}

			var list v1.HostList
			list.FromModel(records)
			return output.WriteHosts(cmd.OutOrStdout(), outFormat, list.Hosts)
		},
	}

	nfs := cobrautil.NewNamedFlagSets(discoverCmd)
	registerRemoteFlags(nfs, cfg)
	discoveryFlagSet := nfs.FlagSet(flagSetTitle.Sprint("Discovery"))
	discoveryFlagSet.IntVar(&cfg.Discovery.NumWorkers, "discovery-workers", cfg.Discovery.NumWorkers, "Number of concurrent host info fetches")
	storeFlagSet := nfs.FlagSet(flagSetTitle.Sprint("Store"))
	registerStoreFlags(storeFlagSet, cfg)
	registerOutputFlag(nfs, &format)
	nfs.AddFlagSets(discoverCmd)

	return discoverCmd
}

func saveSnapshot(ctx context.Context, dataFolder string, records []models.HostRecord) error {
	s, err := openStore(ctx, dataFolder)
	if err != nil {
		return err
	}
	defer s.Close()

	sessionID := uuid.NewString()
	for _, rec := range records {
		if err := s.Hosts().Save(ctx, sessionID, rec); err != nil {
			return fmt.Errorf("failed to save host %s: %w", rec.HostID, err)
		}
	}
	return nil
}

func openStore(ctx context.Context, dataFolder string) (*store.Store, error) {
	if err := os.MkdirAll(dataFolder, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data folder: %w", err)
	}

	db, err := store.NewDB(filepath.Join(dataFolder, "console.duckdb"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store.NewStore(db), nil
}

func registerOutputFlag(nfs *cobrautil.NamedFlagSets, format *string) {
	outputFlagSet := nfs.FlagSet(flagSetTitle.Sprint("Output"))
	outputFlagSet.StringVarP(format, "output", "o", string(output.FormatTable), "Output format: table, json or yaml")
}

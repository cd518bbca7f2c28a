package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"

	v1 "github.com/lumina-home/lumina-console/api/v1"
	"github.com/lumina-home/lumina-console/internal/config"
	"github.com/lumina-home/lumina-console/internal/output"
	"github.com/lumina-home/lumina-console/internal/store"
)

func NewHostsCommand(cfg *config.Configuration) *cobra.Command {
	var format string

	hostsCmd := &cobra.Command{
		Use:   "hosts [hostid]",
		Short: "Show the host snapshots saved by run or discover",
		Example: `  # List every saved host
  lumina-console hosts --data-folder ~/.lumina-console

  # Show the plugins and configuration of one host
  lumina-console hosts 7f3c2a --data-folder ~/.lumina-console`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Store.DataFolder == "" {
				return errors.New("data-folder must be set")
			}
			outFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			ctx := context.Background()
			s, err := openStore(ctx, cfg.Store.DataFolder)
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) == 1 {
				rec, err := s.Hosts().Get(ctx, args[0])
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("host %s not found", args[0])
				}
				if err != nil {
					return err
				}
				var host v1.Host
				host.FromModel(*rec)
				return output.WriteHost(cmd.OutOrStdout(), outFormat, host)
			}

			records, err := s.Hosts().List(ctx)
			if err != nil {
				return err
			}
			var list v1.HostList
			list.FromModel(records)
			return output.WriteHosts(cmd.OutOrStdout(), outFormat, list.Hosts)
		},
	}

	nfs := cobrautil.NewNamedFlagSets(hostsCmd)
	storeFlagSet := nfs.FlagSet(flagSetTitle.Sprint("Store"))
	registerStoreFlags(storeFlagSet, cfg)
	registerOutputFlag(nfs, &format)
	nfs.AddFlagSets(hostsCmd)

	return hostsCmd
}

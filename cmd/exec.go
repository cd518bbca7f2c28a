package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lumina-home/lumina-console/internal/config"
	"github.com/lumina-home/lumina-console/internal/models"
	"github.com/lumina-home/lumina-console/internal/output"
)

func NewExecCommand(cfg *config.Configuration) *cobra.Command {
	var (
		format  string
		showLog bool
	)

	execCmd := &cobra.Command{
		Use:   "exec <[target/]command> [args...]",
		Short: "Run one command on the Lumina server or one of its nodes",
		Example: `  # Ask the server about itself
  lumina-console exec _info

  # Turn on the living room led at full brightness
  lumina-console exec living/led/on full

  # Print the debug log after the command
  lumina-console exec cinema/hw50/_info --log`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRemote(cfg.Remote); err != nil {
				return err
			}
			outFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			router, err := newRouter(cfg.Remote)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			command := models.ParseCommand(args[0], parseArgs(args[1:])...)
			if command.Name == "" {
				return errors.New("missing command name")
			}
			zap.S().Named("exec").Debugw("executing command", "path", command.Path(), "args", command.Args)

			result, err := router.Execute(ctx, command)
			if err != nil {
				color.New(color.FgRed).Fprint(os.Stderr, router.Trace().Stage())
				return err
			}

			if showLog {
				router.Trace().AppendSuccess(string(result))
				color.New(color.FgHiBlack).Fprint(os.Stderr, router.Trace().Log())
			}

			if outFormat == output.FormatTable {
				outFormat = output.FormatJSON
			}
			var v any
			if err := json.Unmarshal(result, &v); err != nil {
				return fmt.Errorf("failed to decode result: %w", err)
			}
			return output.Write(cmd.OutOrStdout(), outFormat, v)
		},
	}

	nfs := cobrautil.NewNamedFlagSets(execCmd)
	registerRemoteFlags(nfs, cfg)
	outputFlagSet := nfs.FlagSet(flagSetTitle.Sprint("Output"))
	outputFlagSet.StringVarP(&format, "output", "o", string(output.FormatJSON), "Output format: json or yaml")
	outputFlagSet.BoolVar(&showLog, "log", false, "Append the command to the debug log and print it")
	nfs.AddFlagSets(execCmd)

	return execCmd
}

// parseArgs decodes each argument as JSON, keeping it as a string otherwise.
func parseArgs(raw []string) []any {
	args := make([]any, 0, len(raw))
	for _, r := range raw {
		var v any
		if err := json.Unmarshal([]byte(r), &v); err != nil {
			args = append(args, r)
			continue
		}
		args = append(args, v)
	}
	return args
}

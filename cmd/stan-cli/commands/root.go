package commands

import (
	"context"
	"fmt"
	"os"
	"stan-api/internal/components/telemetry"
	"stan-api/pkg/stan"

	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

const clientKey = "stan-cli.client"

var rootCmd = &cobra.Command{
	Use:           "stan-cli",
	Short:         "stan-cli queries lines, stops and real-time passages of the STAN network.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath, os.Getenv)
		if err != nil {
			return err
		}
		telemetry.InitSlog(os.Stderr, debug || cfg.Debug)

		opts, err := cfg.options()
		if err != nil {
			return err
		}
		opts.Telemetry = telemetry.SlogAPI{}
		client, err := stan.NewClient(opts)
		if err != nil {
			return err
		}

		cmd.SetContext(context.WithValue(cmd.Context(), clientKey, client))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a json5 config file, defaults to the nearest stan.json5.")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logs.")
}

func getClient(cmd *cobra.Command) *stan.Client {
	return cmd.Context().Value(clientKey).(*stan.Client)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

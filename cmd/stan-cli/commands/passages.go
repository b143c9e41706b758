package commands

import (
	"stan-api/pkg/stan"

	"github.com/spf13/cobra"
)

var passagesLine string

func init() {
	passagesCmd.Flags().StringVar(&passagesLine, "line", "", "Only show passages of this line (public number).")
	rootCmd.AddCommand(passagesCmd)
	rootCmd.AddCommand(nextCmd)
}

var passagesCmd = &cobra.Command{
	Use:   "passages <stop external id> [--line <line>]",
	Short: "Lists the upcoming passages at a stop.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := getClient(cmd)
		stop := stan.Stop{ExternalID: args[0]}
		if passagesLine != "" {
			line, err := resolveLine(cmd.Context(), client, passagesLine)
			if err != nil {
				return err
			}
			stop.Line = line
		}

		passages, err := client.Passages(cmd.Context(), stop)
		if err != nil {
			return err
		}
		renderPassages(passages)
		return nil
	},
}

var nextCmd = &cobra.Command{
	Use:   "next <line> <stop>",
	Short: "Lists the upcoming passages of a line at the stop whose name is closest to the one given.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := getClient(cmd)
		line, err := resolveLine(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}
		stops, err := client.LineStops(cmd.Context(), line)
		if err != nil {
			return err
		}
		stop, err := findStop(stops, args[1])
		if err != nil {
			return err
		}

		passages, err := client.Passages(cmd.Context(), stop)
		if err != nil {
			return err
		}
		renderPassages(passages)
		return nil
	},
}

package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(stopsCmd)
	rootCmd.AddCommand(routeCmd)
}

var stopsCmd = &cobra.Command{
	Use:   "stops <line>",
	Short: "Lists the stops served by a line, given its public number (e.g. T4).",
	Args:  cobra.ExactArgs(1),
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
		renderStops(stops)
		return nil
	},
}

var routeCmd = &cobra.Command{
	Use:   "route <line> <direction>",
	Short: "Lists the stops along the direction of a line closest to the given terminus name.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := getClient(cmd)
		line, err := resolveLine(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}
		directions, err := client.Directions(cmd.Context(), line)
		if err != nil {
			return err
		}
		direction, err := findDirection(directions, args[1])
		if err != nil {
			return err
		}
		stops, err := client.DirectionStops(cmd.Context(), direction)
		if err != nil {
			return err
		}
		renderStops(stops)
		return nil
	},
}

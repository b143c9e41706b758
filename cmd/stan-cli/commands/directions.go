package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(directionsCmd)
}

var directionsCmd = &cobra.Command{
	Use:   "directions <line>",
	Short: "Lists the directions of a line.",
	Args:  cobra.ExactArgs(1),
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

		t := NewTable()
		t.AppendHeader(table.Row{"ID", "Code", "Direction"})
		for _, d := range directions {
			t.AppendRow(table.Row{d.ID, d.DirectionCode, d.Label})
		}
		t.Render()
		return nil
	},
}

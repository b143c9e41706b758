package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches stop areas by name.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		places, err := getClient(cmd).SearchPlaces(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		t := NewTable()
		t.AppendHeader(table.Row{"External ID", "Name"})
		for _, p := range places {
			t.AppendRow(table.Row{p.ExternalID, p.Label})
		}
		t.Render()
		return nil
	},
}

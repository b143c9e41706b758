package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(linesCmd)
}

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "Lists the lines of the network.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := getClient(cmd).Lines(cmd.Context())
		if err != nil {
			return err
		}

		t := NewTable()
		t.AppendHeader(table.Row{"ID", "Line", "External ID", "Label"})
		for _, line := range lines {
			t.AppendRow(table.Row{line.ID, line.PublicNumber, line.ExternalID, line.Label})
		}
		t.Render()
		return nil
	},
}

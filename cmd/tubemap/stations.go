package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStationsCmd(opts *rootOptions) *cobra.Command {
	var zone int

	cmd := &cobra.Command{
		Use:   "stations",
		Short: "List the stations of the map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := opts.loadMap()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tZONES")
			for _, s := range m.StationList() {
				if zone != 0 && !s.InZone(zone) {
					continue
				}
				zones := make([]string, 0, 2)
				for _, z := range s.Zones() {
					zones = append(zones, fmt.Sprint(z))
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Name, strings.Join(zones, ","))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&zone, "zone", 0, "only list stations in this fare zone")
	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mitsides06/TubeMap/network"
	"github.com/mitsides06/TubeMap/services"
	"github.com/mitsides06/TubeMap/tube"
)

func newPathCmd(opts *rootOptions) *cobra.Command {
	var byID, showLegs bool

	cmd := &cobra.Command{
		Use:   "path FROM TO",
		Short: "Print the fastest sequence of stations between two stations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadMap()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if byID {
				pf := network.NewPathFinder(m)
				path := pf.GetShortestPathByID(args[0], args[1])
				if path == nil {
					return fmt.Errorf("no path from station id %s to station id %s", args[0], args[1])
				}
				fmt.Fprintln(out, joinNames(path))
				return nil
			}

			rs := services.NewRouteService(m, services.Options{Logger: opts.logger})
			res, err := rs.ShortestPath(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			j := res.Journey
			fmt.Fprintln(out, joinNames(j.Stations))
			if showLegs {
				for _, leg := range j.Legs {
					fmt.Fprintf(out, "  %s -> %s  %s  %g min\n",
						leg.From.Name, leg.To.Name, leg.Connection.Line.Name, leg.Connection.Time)
				}
			}
			fmt.Fprintf(out, "Total time: %g min\n", j.TotalTime)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byID, "by-id", false, "treat FROM and TO as station ids")
	cmd.Flags().BoolVar(&showLegs, "legs", false, "print the line and time of every hop")
	return cmd
}

func joinNames(path []*tube.Station) string {
	names := make([]string, 0, len(path))
	for _, s := range path {
		names = append(names, s.Name)
	}
	return strings.Join(names, " -> ")
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mitsides06/TubeMap/network"
)

type connectionDump struct {
	Line     string  `json:"line"`
	LineName string  `json:"line_name"`
	Time     float64 `json:"time"`
}

type graphDump struct {
	Graph   map[string]map[string][]connectionDump `json:"graph"`
	Summary map[string]int                         `json:"summary"`
}

func newGraphCmd(opts *rootOptions) *cobra.Command {
	var station, out string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Dump the neighbour graph as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := opts.loadMap()
			if err != nil {
				return err
			}
			g := network.Build(m)

			ids := g.StationIDs()
			if station != "" {
				if !g.Has(station) {
					return fmt.Errorf("station %s has no connections", station)
				}
				ids = []string{station}
			}

			dump := graphDump{
				Graph: make(map[string]map[string][]connectionDump, len(ids)),
				Summary: map[string]int{
					"stations":    len(m.Stations),
					"lines":       len(m.Lines),
					"connections": len(m.Connections),
					"graphNodes":  g.Len(),
				},
			}
			for _, id := range ids {
				entry := make(map[string][]connectionDump)
				for _, nb := range g.NeighbourIDs(id) {
					for _, c := range g.Connections(id, nb) {
						entry[nb] = append(entry[nb], connectionDump{Line: c.Line.ID, LineName: c.Line.Name, Time: c.Time})
					}
				}
				dump.Graph[id] = entry
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create output file %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(&dump); err != nil {
				return fmt.Errorf("failed to write JSON: %w", err)
			}
			if out != "" {
				opts.logger.Info("graph.written", "path", out, "stations", len(ids))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&station, "station", "", "only dump the neighbours of this station id")
	cmd.Flags().StringVar(&out, "out", "", "write the JSON to this file instead of stdout")
	return cmd
}

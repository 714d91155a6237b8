package network

import (
	"github.com/mitsides06/TubeMap/tube"
)

// Graph indexes the connections of a TubeMap by station:
// station id -> neighbour id -> every connection joining the pair.
// It is symmetric and read-only once built.
type Graph struct {
	adjacency  map[string]map[string][]*tube.Connection
	neighbours map[string][]string // neighbour ids in order of first appearance
	order      []string            // station ids in order of first appearance
	position   map[string]int
}

func newGraph() *Graph {
	return &Graph{
		adjacency:  make(map[string]map[string][]*tube.Connection),
		neighbours: make(map[string][]string),
		position:   make(map[string]int),
	}
}

// NeighbourGraphBuilder turns the flat connection list of a TubeMap into a Graph.
type NeighbourGraphBuilder struct{}

func NewNeighbourGraphBuilder() *NeighbourGraphBuilder {
	return &NeighbourGraphBuilder{}
}

// Build returns the neighbour graph of tubemap. A nil or malformed map
// (nil connection, missing endpoint, self loop, negative time) yields an
// empty graph.
func (b *NeighbourGraphBuilder) Build(tubemap *tube.TubeMap) *Graph {
	g := newGraph()
	if tubemap == nil {
		return g
	}

	for _, c := range tubemap.Connections {
		if !valid(c) {
			return newGraph()
		}
		a, z := c.Stations[0].ID, c.Stations[1].ID
		g.add(a, z, c)
		g.add(z, a, c)
	}
	return g
}

// Build is a shortcut for NewNeighbourGraphBuilder().Build(tubemap).
func Build(tubemap *tube.TubeMap) *Graph {
	return NewNeighbourGraphBuilder().Build(tubemap)
}

func valid(c *tube.Connection) bool {
	if c == nil || c.Line == nil {
		return false
	}
	s1, s2 := c.Stations[0], c.Stations[1]
	if s1 == nil || s2 == nil || s1.ID == "" || s2.ID == "" || s1.ID == s2.ID {
		return false
	}
	return c.Time >= 0
}

func (g *Graph) add(from, to string, c *tube.Connection) {
	g.touch(from)
	g.touch(to)
	if _, ok := g.adjacency[from][to]; !ok {
		g.adjacency[from][to] = make([]*tube.Connection, 0, 1)
		g.neighbours[from] = append(g.neighbours[from], to)
	}
	g.adjacency[from][to] = append(g.adjacency[from][to], c)
}

func (g *Graph) touch(id string) {
	if _, ok := g.adjacency[id]; ok {
		return
	}
	g.adjacency[id] = make(map[string][]*tube.Connection)
	g.position[id] = len(g.order)
	g.order = append(g.order, id)
}

// Len returns the number of stations that appear in at least one connection.
func (g *Graph) Len() int {
	return len(g.order)
}

func (g *Graph) Has(id string) bool {
	_, ok := g.adjacency[id]
	return ok
}

// StationIDs returns the station ids in the order they were first seen.
func (g *Graph) StationIDs() []string {
	return append([]string(nil), g.order...)
}

// NeighbourIDs returns the neighbours of a station in the order they were first seen.
func (g *Graph) NeighbourIDs(id string) []string {
	return append([]string(nil), g.neighbours[id]...)
}

// Neighbours returns a copy of the adjacency entry for a station.
func (g *Graph) Neighbours(id string) map[string][]*tube.Connection {
	entry, ok := g.adjacency[id]
	if !ok {
		return nil
	}
	out := make(map[string][]*tube.Connection, len(entry))
	for nb, conns := range entry {
		out[nb] = append([]*tube.Connection(nil), conns...)
	}
	return out
}

// Connections returns the connections directly joining a and b, in the
// order they were encountered.
func (g *Graph) Connections(a, b string) []*tube.Connection {
	return append([]*tube.Connection(nil), g.adjacency[a][b]...)
}

// Fastest returns the quickest connection between two adjacent stations.
// On equal times the first encountered connection wins.
func (g *Graph) Fastest(a, b string) (*tube.Connection, bool) {
	var best *tube.Connection
	for _, c := range g.adjacency[a][b] {
		if best == nil || c.Time < best.Time {
			best = c
		}
	}
	return best, best != nil
}

// Weight returns the minimum travel time between two adjacent stations.
func (g *Graph) Weight(a, b string) (float64, bool) {
	c, ok := g.Fastest(a, b)
	if !ok {
		return 0, false
	}
	return c.Time, true
}

// Equal reports whether two graphs index the same connections in the same order.
func (g *Graph) Equal(other *Graph) bool {
	if g == nil || other == nil {
		return g == other
	}
	if len(g.order) != len(other.order) {
		return false
	}
	for i, id := range g.order {
		if other.order[i] != id {
			return false
		}
		mine, theirs := g.adjacency[id], other.adjacency[id]
		if len(mine) != len(theirs) {
			return false
		}
		for nb, conns := range mine {
			oc, ok := theirs[nb]
			if !ok || len(oc) != len(conns) {
				return false
			}
			for j := range conns {
				if conns[j] != oc[j] {
					return false
				}
			}
		}
	}
	return true
}

package network

import (
	"container/heap"
	"math"

	"github.com/mitsides06/TubeMap/tube"
)

// PathFinder answers shortest travel time queries over a TubeMap. The
// neighbour graph is built once, and every query keeps its search state
// local, so a PathFinder can be shared between goroutines.
type PathFinder struct {
	tubemap *tube.TubeMap
	graph   *Graph
}

func NewPathFinder(tubemap *tube.TubeMap) *PathFinder {
	return &PathFinder{
		tubemap: tubemap,
		graph:   Build(tubemap),
	}
}

// Leg is one hop of a journey, travelled on the fastest connection between
// its two stations.
type Leg struct {
	From       *tube.Station
	To         *tube.Station
	Connection *tube.Connection
}

type Journey struct {
	Stations  []*tube.Station
	Legs      []Leg
	TotalTime float64
}

func (pf *PathFinder) Graph() *Graph {
	return pf.graph
}

func (pf *PathFinder) TubeMap() *tube.TubeMap {
	return pf.tubemap
}

// StationByName returns the first station with that name, or nil.
func (pf *PathFinder) StationByName(name string) *tube.Station {
	return pf.tubemap.StationByName(name)
}

func (pf *PathFinder) StationByID(id string) *tube.Station {
	return pf.tubemap.StationByID(id)
}

// GetShortestPath returns one fastest sequence of stations from start to end.
//
// It returns nil if either name is unknown or if no path joins the two
// stations. Equal names short-circuit to a single station path; when several
// stations share a name the first one in map order is used.
func (pf *PathFinder) GetShortestPath(startName, endName string) []*tube.Station {
	start := pf.StationByName(startName)
	end := pf.StationByName(endName)
	if start == nil || end == nil {
		return nil
	}
	if startName == endName {
		return []*tube.Station{start}
	}

	path, _, ok := pf.search(start.ID, end.ID)
	if !ok {
		return nil
	}
	return path
}

// GetShortestPathByID is GetShortestPath keyed by station id, which is
// unambiguous when station names repeat.
func (pf *PathFinder) GetShortestPathByID(startID, endID string) []*tube.Station {
	start := pf.StationByID(startID)
	end := pf.StationByID(endID)
	if start == nil || end == nil {
		return nil
	}
	if startID == endID {
		return []*tube.Station{start}
	}

	path, _, ok := pf.search(start.ID, end.ID)
	if !ok {
		return nil
	}
	return path
}

// Journey is GetShortestPath with the connection taken on every hop and the
// total travel time.
func (pf *PathFinder) Journey(startName, endName string) (*Journey, bool) {
	start := pf.StationByName(startName)
	end := pf.StationByName(endName)
	if start == nil || end == nil {
		return nil, false
	}
	return pf.JourneyByID(start.ID, end.ID)
}

// JourneyByID is Journey keyed by station id.
func (pf *PathFinder) JourneyByID(startID, endID string) (*Journey, bool) {
	path := pf.GetShortestPathByID(startID, endID)
	if path == nil {
		return nil, false
	}

	j := &Journey{Stations: path}
	for i := 1; i < len(path); i++ {
		c, ok := pf.graph.Fastest(path[i-1].ID, path[i].ID)
		if !ok {
			return nil, false
		}
		j.Legs = append(j.Legs, Leg{From: path[i-1], To: path[i], Connection: c})
		j.TotalTime += c.Time
	}
	return j, true
}

// Distances runs a full search from a station and returns the shortest
// travel time to every reachable station, keyed by id.
func (pf *PathFinder) Distances(startID string) map[string]float64 {
	dist, _ := pf.dijkstra(startID, "")
	reachable := make(map[string]float64, len(dist))
	for id, d := range dist {
		if !math.IsInf(d, 1) {
			reachable[id] = d
		}
	}
	return reachable
}

func (pf *PathFinder) search(startID, endID string) ([]*tube.Station, float64, bool) {
	if !pf.graph.Has(startID) || !pf.graph.Has(endID) {
		return nil, 0, false
	}

	dist, prev := pf.dijkstra(startID, endID)
	if math.IsInf(dist[endID], 1) {
		return nil, 0, false
	}

	ids := reconstructPath(prev, startID, endID, pf.graph.Len())
	if ids == nil {
		return nil, 0, false
	}

	path := make([]*tube.Station, 0, len(ids))
	for _, id := range ids {
		s := pf.tubemap.StationByID(id)
		if s == nil {
			return nil, 0, false
		}
		path = append(path, s)
	}
	return path, dist[endID], true
}

// dijkstra computes tentative distances and predecessors from startID. The
// search stops early once endID is settled; an empty endID explores the
// whole component.
func (pf *PathFinder) dijkstra(startID, endID string) (map[string]float64, map[string]string) {
	g := pf.graph

	dist := make(map[string]float64, g.Len())
	for _, id := range g.order {
		dist[id] = math.Inf(1)
	}
	prev := make(map[string]string)
	if !g.Has(startID) {
		return dist, prev
	}
	dist[startID] = 0

	visited := make(map[string]bool, g.Len())
	pq := &stationQueue{}
	heap.Init(pq)
	heap.Push(pq, &queueItem{stationID: startID, distance: 0, order: g.position[startID]})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*queueItem)
		current := item.stationID
		if visited[current] || item.distance > dist[current] {
			continue
		}
		visited[current] = true
		if current == endID {
			break
		}

		for _, next := range g.neighbours[current] {
			if visited[next] {
				continue
			}
			w, ok := g.Weight(current, next)
			if !ok {
				continue
			}
			candidate := dist[current] + w
			if candidate < dist[next] {
				dist[next] = candidate
				prev[next] = current
				heap.Push(pq, &queueItem{stationID: next, distance: candidate, order: g.position[next]})
			}
		}
	}

	return dist, prev
}

// reconstructPath walks predecessors back from end. It gives up with nil
// when a link is missing or the walk exceeds limit stations.
func reconstructPath(prev map[string]string, start, end string, limit int) []string {
	path := []string{end}
	for current := end; current != start; {
		p, ok := prev[current]
		if !ok || len(path) > limit {
			return nil
		}
		path = append(path, p)
		current = p
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

package models

import (
	"github.com/mitsides06/TubeMap/network"
	"github.com/mitsides06/TubeMap/tube"
)

type Station struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Zones []int  `json:"zones"`
}

type Line struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Neighbour struct {
	Station     Station      `json:"station"`
	Connections []Connection `json:"connections"`
}

type Connection struct {
	Line Line    `json:"line"`
	Time float64 `json:"time"`
}

type StationDetail struct {
	Station
	Neighbours []Neighbour `json:"neighbours"`
}

type Leg struct {
	From Station `json:"from"`
	To   Station `json:"to"`
	Line Line    `json:"line"`
	Time float64 `json:"time"`
}

type Path struct {
	Stations  []Station `json:"stations"`
	Legs      []Leg     `json:"legs"`
	TotalTime float64   `json:"total_time"`
}

func FromStation(s *tube.Station) Station {
	return Station{ID: s.ID, Name: s.Name, Zones: s.Zones()}
}

func FromLine(l *tube.Line) Line {
	return Line{ID: l.ID, Name: l.Name}
}

func FromJourney(j *network.Journey) Path {
	p := Path{
		Stations:  make([]Station, 0, len(j.Stations)),
		Legs:      make([]Leg, 0, len(j.Legs)),
		TotalTime: j.TotalTime,
	}
	for _, s := range j.Stations {
		p.Stations = append(p.Stations, FromStation(s))
	}
	for _, l := range j.Legs {
		p.Legs = append(p.Legs, Leg{
			From: FromStation(l.From),
			To:   FromStation(l.To),
			Line: FromLine(l.Connection.Line),
			Time: l.Connection.Time,
		})
	}
	return p
}

// FromNeighbours lists a station's neighbours in graph order.
func FromNeighbours(g *network.Graph, m *tube.TubeMap, id string) []Neighbour {
	ids := g.NeighbourIDs(id)
	out := make([]Neighbour, 0, len(ids))
	for _, nb := range ids {
		s := m.StationByID(nb)
		if s == nil {
			continue
		}
		n := Neighbour{Station: FromStation(s)}
		for _, c := range g.Connections(id, nb) {
			n.Connections = append(n.Connections, Connection{Line: FromLine(c.Line), Time: c.Time})
		}
		out = append(out, n)
	}
	return out
}

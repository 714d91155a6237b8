package tube

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrUnknownStation = errors.New("unknown station")
	ErrUnknownLine    = errors.New("unknown line")
	ErrDuplicateID    = errors.New("duplicate id")
	ErrInvalidTime    = errors.New("invalid travel time")
	ErrSameStation    = errors.New("connection joins a station to itself")
)

// TubeMap holds every station, line and connection of a network. It is built
// once at load time and only read afterwards.
type TubeMap struct {
	Stations    map[string]*Station // key: station id
	Lines       map[string]*Line    // key: line id
	Connections []*Connection

	stationOrder []string
}

func NewTubeMap() *TubeMap {
	return &TubeMap{
		Stations: make(map[string]*Station),
		Lines:    make(map[string]*Line),
	}
}

func (m *TubeMap) AddStation(s *Station) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("add station: missing id")
	}
	if m.Stations == nil {
		m.Stations = make(map[string]*Station)
	}
	if _, ok := m.Stations[s.ID]; ok {
		return fmt.Errorf("add station %s: %w", s.ID, ErrDuplicateID)
	}
	m.Stations[s.ID] = s
	m.stationOrder = append(m.stationOrder, s.ID)
	return nil
}

func (m *TubeMap) AddLine(l *Line) error {
	if l == nil || l.ID == "" {
		return fmt.Errorf("add line: missing id")
	}
	if m.Lines == nil {
		m.Lines = make(map[string]*Line)
	}
	if _, ok := m.Lines[l.ID]; ok {
		return fmt.Errorf("add line %s: %w", l.ID, ErrDuplicateID)
	}
	m.Lines[l.ID] = l
	return nil
}

// AddConnection links two known stations on a known line.
func (m *TubeMap) AddConnection(station1, station2, lineID string, minutes float64) (*Connection, error) {
	s1, ok := m.Stations[station1]
	if !ok {
		return nil, fmt.Errorf("add connection: station %s: %w", station1, ErrUnknownStation)
	}
	s2, ok := m.Stations[station2]
	if !ok {
		return nil, fmt.Errorf("add connection: station %s: %w", station2, ErrUnknownStation)
	}
	if s1 == s2 {
		return nil, fmt.Errorf("add connection %s: %w", station1, ErrSameStation)
	}
	line, ok := m.Lines[lineID]
	if !ok {
		return nil, fmt.Errorf("add connection: line %s: %w", lineID, ErrUnknownLine)
	}
	if minutes < 0 || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return nil, fmt.Errorf("add connection %s<->%s: %w: %g", station1, station2, ErrInvalidTime, minutes)
	}

	c := &Connection{Stations: [2]*Station{s1, s2}, Line: line, Time: minutes}
	m.Connections = append(m.Connections, c)
	return c, nil
}

// StationList returns stations in the order they were added. Stations put
// directly into the Stations map follow, sorted by id.
func (m *TubeMap) StationList() []*Station {
	if m == nil {
		return nil
	}
	list := make([]*Station, 0, len(m.Stations))
	seen := make(map[string]bool, len(m.Stations))
	for _, id := range m.stationOrder {
		if s, ok := m.Stations[id]; ok && !seen[id] {
			list = append(list, s)
			seen[id] = true
		}
	}
	if len(list) == len(m.Stations) {
		return list
	}

	var rest []string
	for id := range m.Stations {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		list = append(list, m.Stations[id])
	}
	return list
}

// LineList returns the lines sorted by id.
func (m *TubeMap) LineList() []*Line {
	if m == nil {
		return nil
	}
	list := make([]*Line, 0, len(m.Lines))
	for _, l := range m.Lines {
		list = append(list, l)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// StationByName returns the first station, in insertion order, with the given name.
func (m *TubeMap) StationByName(name string) *Station {
	for _, s := range m.StationList() {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (m *TubeMap) StationByID(id string) *Station {
	if m == nil {
		return nil
	}
	return m.Stations[id]
}

func (m *TubeMap) IsEmpty() bool {
	return m == nil || (len(m.Stations) == 0 && len(m.Lines) == 0 && len(m.Connections) == 0)
}

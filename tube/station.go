package tube

import (
	"fmt"
	"sort"
	"strings"
)

// Station is a named node of the network. A station may belong to two
// adjacent fare zones.
type Station struct {
	ID    string
	Name  string
	zones map[int]struct{}
}

func NewStation(id, name string, zones ...int) *Station {
	s := &Station{ID: id, Name: name, zones: make(map[int]struct{}, len(zones))}
	for _, z := range zones {
		s.zones[z] = struct{}{}
	}
	return s
}

// Zones returns the station's zones in ascending order.
func (s *Station) Zones() []int {
	zones := make([]int, 0, len(s.zones))
	for z := range s.zones {
		zones = append(zones, z)
	}
	sort.Ints(zones)
	return zones
}

func (s *Station) InZone(zone int) bool {
	_, ok := s.zones[zone]
	return ok
}

func (s *Station) String() string {
	zones := make([]string, 0, len(s.zones))
	for _, z := range s.Zones() {
		zones = append(zones, fmt.Sprint(z))
	}
	return fmt.Sprintf("Station(%s, %s, {%s})", s.ID, s.Name, strings.Join(zones, ", "))
}

// Line is a named service route.
type Line struct {
	ID   string
	Name string
}

func (l *Line) String() string {
	return fmt.Sprintf("Line(%s, %s)", l.ID, l.Name)
}

// Connection is a direct link between two stations on one line. The pair
// of stations is unordered.
type Connection struct {
	Stations [2]*Station
	Line     *Line
	Time     float64 // minutes
}

func (c *Connection) String() string {
	return fmt.Sprintf("Connection(%s<->%s, %s, %g)",
		stationName(c.Stations[0]), stationName(c.Stations[1]), lineName(c.Line), c.Time)
}

func stationName(s *Station) string {
	if s == nil {
		return "<nil>"
	}
	return s.Name
}

func lineName(l *Line) string {
	if l == nil {
		return "<nil>"
	}
	return l.Name
}

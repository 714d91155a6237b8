package tube

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mitsides06/TubeMap/utils"
)

type mapDocument struct {
	Stations []struct {
		ID   interface{} `json:"id"`
		Name string      `json:"name"`
		Zone interface{} `json:"zone"`
	} `json:"stations"`
	Lines []struct {
		ID   interface{} `json:"line"`
		Name string      `json:"name"`
	} `json:"lines"`
	Connections []struct {
		Station1 interface{} `json:"station1"`
		Station2 interface{} `json:"station2"`
		Line     interface{} `json:"line"`
		Time     interface{} `json:"time"`
	} `json:"connections"`
}

// ImportFromJSON replaces the map's content with the network described in
// the JSON file at path. On any error the map is left untouched.
func (m *TubeMap) ImportFromJSON(path string) error {
	loaded, err := LoadFromFile(path)
	if err != nil {
		return err
	}
	m.Stations = loaded.Stations
	m.Lines = loaded.Lines
	m.Connections = loaded.Connections
	m.stationOrder = loaded.stationOrder
	return nil
}

func LoadFromFile(path string) (*TubeMap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open map file: %w", err)
	}
	defer file.Close()

	m, err := LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}

func LoadFromReader(r io.Reader) (*TubeMap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read map data: %w", err)
	}
	return LoadFromJSON(data)
}

// LoadFromJSON builds a TubeMap from a document with "stations", "lines" and
// "connections" collections.
func LoadFromJSON(data []byte) (*TubeMap, error) {
	var doc mapDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse map JSON: %w", err)
	}

	m := NewTubeMap()

	for i, s := range doc.Stations {
		id, err := utils.ParseID(s.ID)
		if err != nil {
			return nil, fmt.Errorf("stations[%d]: %w", i, err)
		}
		zones, err := utils.ParseZones(s.Zone)
		if err != nil {
			return nil, fmt.Errorf("stations[%d] (%s): %w", i, id, err)
		}
		if err := m.AddStation(NewStation(id, s.Name, zones...)); err != nil {
			return nil, fmt.Errorf("stations[%d]: %w", i, err)
		}
	}

	for i, l := range doc.Lines {
		id, err := utils.ParseID(l.ID)
		if err != nil {
			return nil, fmt.Errorf("lines[%d]: %w", i, err)
		}
		if err := m.AddLine(&Line{ID: id, Name: l.Name}); err != nil {
			return nil, fmt.Errorf("lines[%d]: %w", i, err)
		}
	}

	for i, c := range doc.Connections {
		s1, err := utils.ParseID(c.Station1)
		if err != nil {
			return nil, fmt.Errorf("connections[%d].station1: %w", i, err)
		}
		s2, err := utils.ParseID(c.Station2)
		if err != nil {
			return nil, fmt.Errorf("connections[%d].station2: %w", i, err)
		}
		line, err := utils.ParseID(c.Line)
		if err != nil {
			return nil, fmt.Errorf("connections[%d].line: %w", i, err)
		}
		minutes, err := utils.ParseMinutes(c.Time)
		if err != nil {
			return nil, fmt.Errorf("connections[%d]: %w", i, err)
		}
		if _, err := m.AddConnection(s1, s2, line, minutes); err != nil {
			return nil, fmt.Errorf("connections[%d]: %w", i, err)
		}
	}

	return m, nil
}

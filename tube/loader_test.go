package tube

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func londonPath() string {
	return filepath.Join("..", "data", "london.json")
}

func TestImportFromJSON(t *testing.T) {
	m := NewTubeMap()
	require.NoError(t, m.ImportFromJSON(londonPath()))

	assert.Len(t, m.Stations, 25)
	assert.Len(t, m.Lines, 8)
	assert.Len(t, m.Connections, 31)

	stockwell := m.StationByName("Stockwell")
	require.NotNil(t, stockwell)
	assert.Equal(t, "245", stockwell.ID)
	assert.Equal(t, []int{2}, stockwell.Zones())

	assert.Equal(t, []int{2, 3}, m.Stations["265"].Zones(), "Turnham Green is zone 2.5")
	assert.Equal(t, []int{3}, m.Stations["50"].Zones(), "Chiswick Park is zone 3")
	assert.Equal(t, []int{1, 2}, m.Stations["272"].Zones())

	first := m.Connections[0]
	assert.Equal(t, "Stockwell", first.Stations[0].Name)
	assert.Equal(t, "Vauxhall", first.Stations[1].Name)
	assert.Equal(t, "Victoria Line", first.Line.Name)
	assert.Equal(t, 2.0, first.Time)

	// Connections share the map's station and line instances.
	assert.Same(t, m.Stations["245"], first.Stations[0])
	assert.Same(t, m.Lines["12"], first.Line)

	// Insertion order follows the file.
	assert.Equal(t, "245", m.StationList()[0].ID)
}

func TestImportFromJSONInvalidLeavesMapEmpty(t *testing.T) {
	files := []string{
		"does_not_exist.json",
		filepath.Join("testdata", "truncated.json"),
		filepath.Join("testdata", "unknown_station.json"),
		filepath.Join("testdata", "negative_time.json"),
		filepath.Join("testdata", "nan_time.json"),
		filepath.Join("testdata", "nan_zone.json"),
	}
	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			m := NewTubeMap()
			assert.Error(t, m.ImportFromJSON(f))
			assert.True(t, m.IsEmpty())
		})
	}
}

func TestLoadFromFileRejectsNonFiniteValues(t *testing.T) {
	_, err := LoadFromFile(filepath.Join("testdata", "nan_time.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connections[1]")

	_, err = LoadFromFile(filepath.Join("testdata", "nan_zone.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stations[0]")
}

func TestImportFromJSONFailureKeepsPreviousContent(t *testing.T) {
	m := NewTubeMap()
	require.NoError(t, m.ImportFromJSON(londonPath()))
	require.Error(t, m.ImportFromJSON(filepath.Join("testdata", "truncated.json")))
	assert.Len(t, m.Stations, 25)
}

func TestLoadFromReaderNumericFields(t *testing.T) {
	doc := `{
		"stations": [{"id": 1, "name": "Alpha", "zone": 2.5}, {"id": 2, "name": "Beta", "zone": 3}],
		"lines": [{"line": 7, "name": "Seven"}],
		"connections": [{"station1": 1, "station2": 2, "line": 7, "time": 1.5}]
	}`
	m, err := LoadFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, m.Stations["1"].Zones())
	require.Len(t, m.Connections, 1)
	assert.Equal(t, 1.5, m.Connections[0].Time)
	assert.Equal(t, "Seven", m.Connections[0].Line.Name)
}

func TestLoadFromJSONErrorsNameTheRecord(t *testing.T) {
	_, err := LoadFromJSON([]byte(`{"stations":[{"id":"1","name":"A","zone":"x"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stations[0]")

	_, err = LoadFromJSON([]byte(`{"stations":[],"lines":[{"name":"No id"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lines[0]")
}

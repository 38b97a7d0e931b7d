// scraper/csv_parser_test.go
package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTimetableCSV = `Airline,Flight,Number,DepAirport,ArrAirport,DepTimeUTC,DurationMin
LH,LH458,458,MUC,SFO,14:50,1200
UA,UA123,123,SFO,EWR,08:15,320
`

func TestParseTimetableCsv(t *testing.T) {
	routes, err := ParseTimetableCsv(strings.NewReader(sampleTimetableCSV))
	require.NoError(t, err)
	require.Len(t, routes, 2)

	assert.Equal(t, "LH", routes[0].Airline)
	assert.Equal(t, "LH458", routes[0].FlightNumber)
	assert.Equal(t, 458, routes[0].Number)
	assert.Equal(t, "MUC", routes[0].DepartureAirport)
	assert.Equal(t, "SFO", routes[0].ArrivalAirport)
	assert.Equal(t, "14:50", routes[0].DepartureTime)
	assert.Equal(t, 1200, routes[0].DurationMinutes)
}

func TestParseTimetableCsvSkipsBadRows(t *testing.T) {
	csvData := `Airline,Flight,Number,DepAirport,ArrAirport,DepTimeUTC,DurationMin
LH,LH458,458,MUC,SFO,14:50,1200
LH,LH459,459,Munich,SFO,14:50,1200
UA,UA123,123,SFO,EWR,25:99,320
BA,BA9,9,LHR,SIN,21:30,0
`
	routes, err := ParseTimetableCsv(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, routes, 1, "non-3-letter airport, bad time and zero duration all skipped")
	assert.Equal(t, "LH458", routes[0].FlightNumber)
}

func TestParseTimetableCsvUnknownHeader(t *testing.T) {
	// Headers that match none of the expected columns produce zero usable
	// routes rather than a hard failure.
	routes, err := ParseTimetableCsv(strings.NewReader("Foo,Bar\nx,y\n"))
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestParseTimetableCsvInconsistentRows(t *testing.T) {
	_, err := ParseTimetableCsv(strings.NewReader("Airline,Flight\nLH,LH458,extra-field\n"))
	assert.Error(t, err)
}

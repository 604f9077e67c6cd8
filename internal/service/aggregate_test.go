package service

import (
	"encoding/json"
	"testing"

	"clinic-access-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLocations(t *testing.T, doc string) models.LocationDataset {
	t.Helper()
	var d models.LocationDataset
	require.NoError(t, json.Unmarshal([]byte(doc), &d))
	return d
}

func weeks(w float64) *float64 {
	return &w
}

func TestCountByCity(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected []models.CityCount
	}{
		{
			name: "sentinel zip group is skipped",
			doc: `{"Texas": {"75001": [{"city": "Dallas"}]},
			       "Ohio": {"0.0": [{"city": "Columbus"}]}}`,
			expected: []models.CityCount{{City: "Dallas, Texas", Count: 1}},
		},
		{
			name:     "city is case-insensitive and title-cased",
			doc:      `{"Texas": {"78701": [{"city": "austin"}], "78702": [{"city": "Austin"}]}}`,
			expected: []models.CityCount{{City: "Austin, Texas", Count: 2}},
		},
		{
			name:     "multi-word city",
			doc:      `{"Texas": {"76101": [{"city": "FORT WORTH"}, {"city": "fort worth"}]}}`,
			expected: []models.CityCount{{City: "Fort Worth, Texas", Count: 2}},
		},
		{
			name:     "sentinel city is skipped",
			doc:      `{"Texas": {"75001": [{"city": 0.0}, {"city": "Dallas"}, {}]}}`,
			expected: []models.CityCount{{City: "Dallas, Texas", Count: 1}},
		},
		{
			name: "same city in different states stays apart",
			doc: `{"Oregon": {"97201": [{"city": "Portland"}]},
			       "Maine": {"04101": [{"city": "Portland"}, {"city": "Portland"}]}}`,
			expected: []models.CityCount{
				{City: "Portland, Oregon", Count: 1},
				{City: "Portland, Maine", Count: 2},
			},
		},
		{
			name:     "empty dataset",
			doc:      `{}`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountByCity(decodeLocations(t, tt.doc)))
		})
	}
}

func TestCountByCity_StableOrder(t *testing.T) {
	doc := `{
		"Z": {"1": [{"city": "c"}, {"city": "c"}]},
		"X": {"2": [{"city": "a"}]},
		"Y": {"3": [{"city": "b"}]}
	}`

	counts := CountByCity(decodeLocations(t, doc))

	assert.Equal(t, []models.CityCount{
		{City: "A, X", Count: 1},
		{City: "B, Y", Count: 1},
		{City: "C, Z", Count: 2},
	}, counts)
}

func TestSortCityCounts_KeepsInsertionOrderOnTies(t *testing.T) {
	counts := []models.CityCount{
		{City: "C, Z", Count: 2},
		{City: "B, Y", Count: 1},
		{City: "A, X", Count: 1},
	}

	sortCityCounts(counts)

	assert.Equal(t, []models.CityCount{
		{City: "B, Y", Count: 1},
		{City: "A, X", Count: 1},
		{City: "C, Z", Count: 2},
	}, counts)
}

func TestCountByCity_NeverExceedsClinicCount(t *testing.T) {
	doc := `{
		"Texas": {"75001": [{"city": "Dallas"}, {"city": 0.0}], "0.0": [{"city": "Plano"}]},
		"Ohio": {"43004": [{"city": "Columbus"}]}
	}`
	locations := decodeLocations(t, doc)

	total := 0
	for _, c := range CountByCity(locations) {
		total += c.Count
	}
	assert.Equal(t, 2, total)
	assert.Less(t, total, locations.ClinicCount())

	clean := decodeLocations(t, `{"Ohio": {"43004": [{"city": "Columbus"}, {"city": "Dayton"}]}}`)
	total = 0
	for _, c := range CountByCity(clean) {
		total += c.Count
	}
	assert.Equal(t, clean.ClinicCount(), total)
}

func TestTopCities(t *testing.T) {
	counts := []models.CityCount{
		{City: "A, X", Count: 1},
		{City: "B, Y", Count: 2},
		{City: "C, Z", Count: 3},
	}

	assert.Equal(t, counts[1:], TopCities(counts, 2))
	assert.Equal(t, counts, TopCities(counts, 3))
	assert.Equal(t, counts, TopCities(counts, 20))
	assert.Nil(t, TopCities(counts, 0))
}

func TestCountByState(t *testing.T) {
	doc := `{
		"Texas": {"75001": [{"city": "Dallas"}, {"city": 0.0}], "0.0": [{"city": "Plano"}]},
		"Alabama": {"35203": [{"city": "Birmingham"}]},
		"Wyoming": {}
	}`

	counts := CountByState(decodeLocations(t, doc))

	// raw record counts, sentinel entries included
	assert.Equal(t, []models.StateCount{
		{State: "Alabama", Count: 1},
		{State: "Texas", Count: 3},
		{State: "Wyoming", Count: 0},
	}, counts)
}

func TestJoinStates(t *testing.T) {
	counts := []models.StateCount{
		{State: "Alabama", Count: 1},
		{State: "Guam", Count: 2},
		{State: "Texas", Count: 3},
		{State: "Wyoming", Count: 0},
	}
	policies := models.GestationalPolicies{
		"Alabama": {ExceptionLife: "true", BannedAfterWeeksSinceLMP: weeks(0)},
		"Texas":   {ExceptionLife: "true", BannedAfterWeeksSinceLMP: weeks(6)},
		"Wyoming": {ExceptionLife: "false"},
		"Vermont": {ExceptionLife: "false"},
		"Oregon":  {ExceptionLife: "false"},
	}
	// deliberately not in state order
	abbrevs := models.StateAbbrevs{
		{State: "Texas", Code: "TX"},
		{State: "Alabama", Code: "AL"},
		{State: "Guam", Code: "GU"},
	}

	rows, report := JoinStates(counts, policies, abbrevs)

	assert.Equal(t, []models.StateRow{
		{State: "Alabama", Count: 1, Code: "AL", ExceptionLife: "true", BannedAfterWeeksSinceLMP: weeks(0)},
		{State: "Texas", Count: 3, Code: "TX", ExceptionLife: "true", BannedAfterWeeksSinceLMP: weeks(6)},
		{State: "Wyoming", Count: 0, Code: "", ExceptionLife: "false"},
	}, rows)

	assert.Equal(t, models.JoinReport{
		MissingPolicy:    []string{"Guam"},
		MissingLocations: []string{"Oregon", "Vermont"},
		MissingCode:      []string{"Wyoming"},
	}, report)
}

func TestJoinStates_InnerJoin(t *testing.T) {
	locations := decodeLocations(t, `{
		"Guam": {"96910": [{"city": "Hagatna"}]},
		"Texas": {"75001": [{"city": "Dallas"}]}
	}`)
	policies := models.GestationalPolicies{
		"Texas":   {ExceptionLife: "true"},
		"Vermont": {ExceptionLife: "false"},
	}

	rows, _ := JoinStates(CountByState(locations), policies, models.StateAbbrevs{{State: "Texas", Code: "TX"}})

	states := make([]string, 0, len(rows))
	for _, r := range rows {
		states = append(states, r.State)
		assert.Contains(t, policies, r.State)
	}
	assert.Equal(t, []string{"Texas"}, states)
}

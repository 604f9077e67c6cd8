package models

import (
	"encoding/json"
	"fmt"
)

// Clinic represents a single clinic location as listed in the location dataset.
type Clinic struct {
	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
	City    Optional `json:"city"`
	State   string   `json:"state,omitempty"`
	Zipcode Optional `json:"zipcode"`
}

// ZipGroup holds the clinics listed under one zip code key. Zip is absent for
// the group the source files key with the missing-value sentinel.
type ZipGroup struct {
	Zip     Optional
	Clinics []Clinic
}

// StateLocations holds the zip groups of one state in document order.
type StateLocations struct {
	State     string
	ZipGroups []ZipGroup
}

// LocationDataset is the state -> zip code -> clinics document. It keeps the
// key order of the source so that iteration order is reproducible.
type LocationDataset []StateLocations

// ClinicCount returns the number of clinic records in the dataset, sentinel groups included.
func (d LocationDataset) ClinicCount() int {
	total := 0
	for _, st := range d {
		for _, zg := range st.ZipGroups {
			total += len(zg.Clinics)
		}
	}
	return total
}

// UnmarshalJSON decodes the nested object while preserving key order.
// Duplicate keys replace the earlier value in place.
func (d *LocationDataset) UnmarshalJSON(data []byte) error {
	var states []StateLocations
	index := map[string]int{}

	err := walkObject(data, func(state string, raw json.RawMessage) error {
		groups, err := decodeZipGroups(raw)
		if err != nil {
			return fmt.Errorf("state %q: %w", state, err)
		}
		sl := StateLocations{State: state, ZipGroups: groups}
		if i, ok := index[state]; ok {
			states[i] = sl
			return nil
		}
		index[state] = len(states)
		states = append(states, sl)
		return nil
	})
	if err != nil {
		return err
	}

	*d = states
	return nil
}

func decodeZipGroups(data []byte) ([]ZipGroup, error) {
	var groups []ZipGroup
	index := map[string]int{}

	err := walkObject(data, func(zip string, raw json.RawMessage) error {
		var clinics []Clinic
		if err := json.Unmarshal(raw, &clinics); err != nil {
			return fmt.Errorf("zip %q: %w", zip, err)
		}
		zg := ZipGroup{Zip: ParseOptional(zip), Clinics: clinics}
		if i, ok := index[zip]; ok {
			groups[i] = zg
			return nil
		}
		index[zip] = len(groups)
		groups = append(groups, zg)
		return nil
	})
	return groups, err
}

package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// GestationalPolicy holds the per-state policy fields used by the state map.
type GestationalPolicy struct {
	ExceptionLife            string   `json:"exception_life"`
	BannedAfterWeeksSinceLMP *float64 `json:"banned_after_weeks_since_LMP"`
}

// GestationalPolicies maps a state name to its policy record.
type GestationalPolicies map[string]GestationalPolicy

// UnmarshalJSON accepts exception_life as a string, boolean or number.
func (p *GestationalPolicy) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExceptionLife            json.RawMessage `json:"exception_life"`
		BannedAfterWeeksSinceLMP *float64        `json:"banned_after_weeks_since_LMP"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.BannedAfterWeeksSinceLMP = raw.BannedAfterWeeksSinceLMP
	p.ExceptionLife = ""

	v := bytes.TrimSpace(raw.ExceptionLife)
	switch {
	case len(v) == 0 || bytes.Equal(v, []byte("null")):
	case v[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		p.ExceptionLife = strings.TrimSpace(s)
	default:
		p.ExceptionLife = string(v)
	}
	return nil
}

// StateAbbrev is one row of the state abbreviation table.
type StateAbbrev struct {
	State string `json:"state"`
	Code  string `json:"code"`
}

// StateAbbrevs is the state abbreviation table.
type StateAbbrevs []StateAbbrev

// Codes returns a state name -> postal code lookup.
func (a StateAbbrevs) Codes() map[string]string {
	codes := make(map[string]string, len(a))
	for _, row := range a {
		codes[row.State] = row.Code
	}
	return codes
}

package models

// CityCount is the number of clinics found in one "City, State" pair.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// StateCount is the raw number of clinic records listed under a state.
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// StateRow is a state count joined with its postal code and policy fields.
type StateRow struct {
	State                    string   `json:"state"`
	Count                    int      `json:"count"`
	Code                     string   `json:"code"`
	ExceptionLife            string   `json:"exception_life"`
	BannedAfterWeeksSinceLMP *float64 `json:"banned_after_weeks_since_LMP"`
}

// JoinReport lists the states the state table joins dropped or could not fully populate.
type JoinReport struct {
	MissingPolicy    []string `json:"missing_policy,omitempty"`
	MissingLocations []string `json:"missing_locations,omitempty"`
	MissingCode      []string `json:"missing_code,omitempty"`
}

// Empty reports whether every state matched in every join.
func (r JoinReport) Empty() bool {
	return len(r.MissingPolicy) == 0 && len(r.MissingLocations) == 0 && len(r.MissingCode) == 0
}

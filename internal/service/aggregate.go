package service

import (
	"cmp"
	"slices"
	"strings"

	"clinic-access-api/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CountByCity counts clinics per "City, State" pair. Zip groups and clinics
// whose zip or city is missing are skipped. The result is sorted ascending
// by count; equal counts keep the order in which the pair was first seen.
func CountByCity(locations models.LocationDataset) []models.CityCount {
	caser := cases.Title(language.AmericanEnglish)

	var counts []models.CityCount
	index := map[string]int{}

	for _, st := range locations {
		for _, zg := range st.ZipGroups {
			if !zg.Zip.Valid {
				continue
			}
			for _, clinic := range zg.Clinics {
				if !clinic.City.Valid {
					continue
				}

				key := caser.String(strings.TrimSpace(clinic.City.Value)) + ", " + st.State
				if i, ok := index[key]; ok {
					counts[i].Count++
					continue
				}
				index[key] = len(counts)
				counts = append(counts, models.CityCount{City: key, Count: 1})
			}
		}
	}

	sortCityCounts(counts)
	return counts
}

func sortCityCounts(counts []models.CityCount) {
	slices.SortStableFunc(counts, func(a, b models.CityCount) int {
		return cmp.Compare(a.Count, b.Count)
	})
}

// TopCities returns the last n entries of ascending counts, i.e. the n
// highest, still in ascending order.
func TopCities(counts []models.CityCount, n int) []models.CityCount {
	if n >= len(counts) {
		return counts
	}
	if n <= 0 {
		return nil
	}
	return counts[len(counts)-n:]
}

// CountByState sums the clinic records of every zip group per state, missing
// zips and cities included, sorted by state name.
func CountByState(locations models.LocationDataset) []models.StateCount {
	counts := make([]models.StateCount, 0, len(locations))
	for _, st := range locations {
		total := 0
		for _, zg := range st.ZipGroups {
			total += len(zg.Clinics)
		}
		counts = append(counts, models.StateCount{State: st.State, Count: total})
	}

	slices.SortFunc(counts, func(a, b models.StateCount) int {
		return strings.Compare(a.State, b.State)
	})
	return counts
}

// JoinStates attaches postal codes by state name and inner-joins the counts
// with the policy dataset. Rows keep the order of counts. The report lists
// the states dropped by the inner join and the kept rows with no code.
func JoinStates(counts []models.StateCount, policies models.GestationalPolicies, abbrevs models.StateAbbrevs) ([]models.StateRow, models.JoinReport) {
	codes := abbrevs.Codes()

	var (
		rows   []models.StateRow
		report models.JoinReport
	)
	seen := make(map[string]bool, len(counts))

	for _, c := range counts {
		seen[c.State] = true

		policy, ok := policies[c.State]
		if !ok {
			report.MissingPolicy = append(report.MissingPolicy, c.State)
			continue
		}

		code, ok := codes[c.State]
		if !ok {
			report.MissingCode = append(report.MissingCode, c.State)
		}

		rows = append(rows, models.StateRow{
			State:                    c.State,
			Count:                    c.Count,
			Code:                     code,
			ExceptionLife:            policy.ExceptionLife,
			BannedAfterWeeksSinceLMP: policy.BannedAfterWeeksSinceLMP,
		})
	}

	for state := range policies {
		if !seen[state] {
			report.MissingLocations = append(report.MissingLocations, state)
		}
	}
	slices.Sort(report.MissingLocations)

	return rows, report
}

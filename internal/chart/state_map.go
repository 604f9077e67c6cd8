package chart

import "clinic-access-api/internal/models"

// StateChoropleth renders the state table as a USA choropleth coloured by
// clinic count. Rows without a postal code cannot be placed and are left out.
// The policy fields only appear on hover.
func StateChoropleth(rows []models.StateRow) Figure {
	var (
		locations []string
		z         []int
		names     []string
		custom    [][]any
	)
	for _, r := range rows {
		if r.Code == "" {
			continue
		}
		locations = append(locations, r.Code)
		z = append(z, r.Count)
		names = append(names, r.State)

		var weeks any
		if r.BannedAfterWeeksSinceLMP != nil {
			weeks = *r.BannedAfterWeeksSinceLMP
		}
		custom = append(custom, []any{r.ExceptionLife, weeks})
	}

	return Figure{
		Data: []Trace{{
			Type:         "choropleth",
			Locations:    locations,
			LocationMode: "USA-states",
			Z:            z,
			ColorScale:   [][]any{{0, ForegroundColor}, {1, AccentColor}},
			ColorBar:     &ColorBar{Title: Title{Text: "Clinic Count "}},
			HoverText:    names,
			CustomData:   custom,
			HoverTemplate: "<b>%{hovertext}</b><br><br>" +
				"Clinic Count =%{z}<br>" +
				"Exception for life at risk =%{customdata[0]}<br>" +
				"Weeks Abortion Banned =%{customdata[1]}<extra></extra>",
		}},
		Layout: Layout{
			AutoSize:     boolPtr(false),
			Width:        875,
			Height:       500,
			PaperBGColor: PaperColor,
			Font:         Font{Color: ForegroundColor},
			Geo: &Geo{
				Scope:      "usa",
				Visible:    boolPtr(false),
				Resolution: 110,
				BGColor:    BackgroundColor,
			},
		},
	}
}

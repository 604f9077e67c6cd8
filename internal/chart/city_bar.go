package chart

import "clinic-access-api/internal/models"

const (
	cityLabel  = "City"
	countLabel = "Clinic Count"
)

// CityBar renders city counts as a horizontal bar chart. Counts are drawn in
// the given order, so ascending input puts the largest bar on top.
func CityBar(counts []models.CityCount) Figure {
	x := make([]int, 0, len(counts))
	y := make([]string, 0, len(counts))
	for _, c := range counts {
		x = append(x, c.Count)
		y = append(y, c.City)
	}

	return Figure{
		Data: []Trace{{
			Type:          "bar",
			Orientation:   "h",
			X:             x,
			Y:             y,
			Marker:        &Marker{Color: AccentColor},
			HoverTemplate: countLabel + "=%{x}<br>" + cityLabel + "=%{y}<extra></extra>",
		}},
		Layout: Layout{
			AutoSize:     boolPtr(false),
			Width:        500,
			Height:       450,
			PlotBGColor:  BackgroundColor,
			PaperBGColor: PaperColor,
			Font:         Font{Color: ForegroundColor},
			XAxis: &Axis{
				Title:     &Title{Text: countLabel},
				LineWidth: 2,
				LineColor: AxisLineColor,
				GridColor: AxisLineColor,
			},
			YAxis: &Axis{
				Title:     &Title{Text: cityLabel},
				LineWidth: 2,
				LineColor: AxisLineColor,
			},
		},
	}
}

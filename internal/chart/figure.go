// Package chart builds Plotly figure documents for the clinic visualizations.
// Figures marshal to the {"data": [...], "layout": {...}} JSON a Plotly
// front end renders directly.
package chart

// Dark theme shared by both figures.
const (
	BackgroundColor = "#1f2630"
	PaperColor      = "rgba(0,0,0,0)"
	ForegroundColor = "#E0DFDF"
	AccentColor     = "#300608"
	AxisLineColor   = "#1c1412"
)

// Figure is a Plotly figure.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace holds the attributes of the bar and choropleth traces.
type Trace struct {
	Type          string    `json:"type"`
	Name          string    `json:"name,omitempty"`
	Orientation   string    `json:"orientation,omitempty"`
	X             []int     `json:"x,omitempty"`
	Y             []string  `json:"y,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
	Locations     []string  `json:"locations,omitempty"`
	LocationMode  string    `json:"locationmode,omitempty"`
	Z             []int     `json:"z,omitempty"`
	ColorScale    [][]any   `json:"colorscale,omitempty"`
	ColorBar      *ColorBar `json:"colorbar,omitempty"`
	HoverText     []string  `json:"hovertext,omitempty"`
	CustomData    [][]any   `json:"customdata,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
}

type Marker struct {
	Color string `json:"color,omitempty"`
}

type ColorBar struct {
	Title Title `json:"title"`
}

type Title struct {
	Text string `json:"text"`
}

type Font struct {
	Color string `json:"color,omitempty"`
}

// Margin is always written out since the figures use zero margins.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Axis struct {
	Title     *Title `json:"title,omitempty"`
	LineWidth int    `json:"linewidth,omitempty"`
	LineColor string `json:"linecolor,omitempty"`
	GridColor string `json:"gridcolor,omitempty"`
}

type Geo struct {
	Scope      string `json:"scope,omitempty"`
	Visible    *bool  `json:"visible,omitempty"`
	Resolution int    `json:"resolution,omitempty"`
	BGColor    string `json:"bgcolor,omitempty"`
}

type Layout struct {
	AutoSize     *bool  `json:"autosize,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Margin       Margin `json:"margin"`
	PlotBGColor  string `json:"plot_bgcolor,omitempty"`
	PaperBGColor string `json:"paper_bgcolor,omitempty"`
	Font         Font   `json:"font"`
	XAxis        *Axis  `json:"xaxis,omitempty"`
	YAxis        *Axis  `json:"yaxis,omitempty"`
	Geo          *Geo   `json:"geo,omitempty"`
}

func boolPtr(b bool) *bool {
	return &b
}

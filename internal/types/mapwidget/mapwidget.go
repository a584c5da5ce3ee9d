package mapwidget

import "shoreSquadAPI/internal/types/geo"

type View string

const (
	ViewInteractive View = "interactive"
	ViewEmbed       View = "embed"
)

// Marker is one pin on the cleanup map. Color is the hex fill keyed off the
// beach status so the client never re-derives it.
type Marker struct {
	BeachID    string         `json:"beach_id"`
	Title      string         `json:"title"`
	Coordinate geo.Coordinate `json:"coordinate"`
	Color      string         `json:"color"`
	Popup      Popup          `json:"popup"`
}

// Popup is the card that opens when a marker is tapped.
type Popup struct {
	Heading    string `json:"heading"`
	Body       string `json:"body"`
	CTALabel   string `json:"cta_label"`
	CTATarget  string `json:"cta_target"`
	Difficulty string `json:"difficulty"`
}

// LegendItem maps a status label to its marker color.
type LegendItem struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Interactive is everything a client needs to draw the map itself: the tile
// source, the initial viewport, the pins and the legend.
type Interactive struct {
	TileURL     string         `json:"tile_url"`
	Attribution string         `json:"attribution"`
	Center      geo.Coordinate `json:"center"`
	Zoom        int            `json:"zoom"`
	Markers     []Marker       `json:"markers"`
	Legend      []LegendItem   `json:"legend"`
}

// Embed is the fallback iframe descriptor for clients that cannot run the
// interactive widget.
type Embed struct {
	IframeURL string `json:"iframe_url"`
	Title     string `json:"title"`
}

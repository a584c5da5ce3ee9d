package services

import (
	"context"
	"errors"
	"fmt"

	"shoreSquadAPI/internal/types/beach"
	"shoreSquadAPI/internal/types/geo"
	"shoreSquadAPI/internal/types/mapwidget"
)

var ErrBadMarkerData = errors.New("bad marker data")

// Marker colors keyed by beach status.
const (
	colorNeedsCleanup = "#e74c3c"
	colorActiveRally  = "#f39c12"
	colorClean        = "#2ecc71"
)

const (
	tileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	tileAttribution = "© OpenStreetMap contributors"
	defaultZoom     = 12
)

// BeachSource supplies the markers. Satisfied by *BeachService; tests swap
// in broken sources to exercise the failure path.
type BeachSource interface {
	GetBeaches(ctx context.Context, query string, status beach.Status) ([]beach.Beach, error)
}

// MapService assembles widget descriptors. The descriptor names
// capabilities (tiles, markers, popups, legend), never a map vendor, so
// any client-side widget can consume it.
type MapService struct {
	beaches BeachSource
}

func NewMapService(beaches BeachSource) *MapService {
	return &MapService{beaches: beaches}
}

// BuildInteractive produces the full widget descriptor centered on the
// caller's coordinate.
func (s *MapService) BuildInteractive(ctx context.Context, center geo.Coordinate) (*mapwidget.Interactive, error) {
	list, err := s.beaches.GetBeaches(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("load beaches: %w", err)
	}

	markers := make([]mapwidget.Marker, 0, len(list))
	for _, b := range list {
		if b.Coordinate.IsZero() {
			return nil, fmt.Errorf("%w: beach %s has no coordinate", ErrBadMarkerData, b.ID)
		}
		color, ok := statusColor(b.Status)
		if !ok {
			return nil, fmt.Errorf("%w: beach %s has status %q", ErrBadMarkerData, b.ID, b.Status)
		}

		markers = append(markers, mapwidget.Marker{
			BeachID:    b.ID,
			Title:      b.Name,
			Coordinate: b.Coordinate,
			Color:      color,
			Popup: mapwidget.Popup{
				Heading:    b.Name,
				Body:       b.Description,
				CTALabel:   "Join next cleanup",
				CTATarget:  "/api/v1/rallies/next/join",
				Difficulty: string(b.Difficulty),
			},
		})
	}

	return &mapwidget.Interactive{
		TileURL:     tileURL,
		Attribution: tileAttribution,
		Center:      center,
		Zoom:        defaultZoom,
		Markers:     markers,
		Legend: []mapwidget.LegendItem{
			{Label: "Needs cleanup", Color: colorNeedsCleanup},
			{Label: "Active rally", Color: colorActiveRally},
			{Label: "Clean", Color: colorClean},
		},
	}, nil
}

// BuildEmbed produces the iframe fallback for clients that can't run the
// interactive widget.
func (s *MapService) BuildEmbed(center geo.Coordinate) *mapwidget.Embed {
	return &mapwidget.Embed{
		IframeURL: fmt.Sprintf("https://www.google.com/maps?q=%f,%f&z=%d&output=embed", center.Lat, center.Lng, defaultZoom),
		Title:     "ShoreSquad cleanup map",
	}
}

func statusColor(s beach.Status) (string, bool) {
	switch s {
	case beach.StatusNeedsCleanup:
		return colorNeedsCleanup, true
	case beach.StatusActiveRally:
		return colorActiveRally, true
	case beach.StatusClean:
		return colorClean, true
	}
	return "", false
}

// Package osm builds OpenStreetMap links for a detected location.
package osm

import (
	"fmt"
	"net/url"
	"rapid-response-sim/internal/domain"
	"strconv"
)

const (
	baseURL = "https://www.openstreetmap.org"

	MapZoom = 15
	// Half-width of the embedded map's bounding box, in degrees.
	BBoxDelta = 0.02
)

type BoundingBox struct {
	Left, Bottom, Right, Top float64
}

func BoundsAround(c domain.Coordinate, delta float64) BoundingBox {
	return BoundingBox{
		Left:   c.Lon - delta,
		Bottom: c.Lat - delta,
		Right:  c.Lon + delta,
		Top:    c.Lat + delta,
	}
}

type MapLinks struct {
	EmbedURL string
	FullURL  string
}

func Links(c domain.Coordinate) MapLinks {
	return MapLinks{EmbedURL: EmbedURL(c), FullURL: FullMapURL(c)}
}

// EmbedURL returns the export/embed page centred on c with a marker on it.
func EmbedURL(c domain.Coordinate) string {
	b := BoundsAround(c, BBoxDelta)
	return fmt.Sprintf(
		"%s/export/embed.html?bbox=%s%%2C%s%%2C%s%%2C%s&layer=mapnik&marker=%s%%2C%s",
		baseURL,
		deg(b.Left), deg(b.Bottom), deg(b.Right), deg(b.Top),
		deg(c.Lat), deg(c.Lon),
	)
}

func FullMapURL(c domain.Coordinate) string {
	lat, lon := deg(c.Lat), deg(c.Lon)
	return fmt.Sprintf("%s/?mlat=%s&mlon=%s#map=%d/%s/%s", baseURL, lat, lon, MapZoom, lat, lon)
}

// deg formats with the shortest representation that round-trips.
func deg(v float64) string {
	return url.QueryEscape(strconv.FormatFloat(v, 'f', -1, 64))
}

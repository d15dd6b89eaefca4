// Package htmlmap renders the scored summary table as a self-contained
// Leaflet map. The artifact is a single HTML file; bubble size tracks EV
// count and bubble color tracks priority.
package htmlmap

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"

	"github.com/gridscope/chargegap/internal/domain"
)

var priorityColors = map[domain.Priority]string{
	domain.PriorityCritical:   "#d73027",
	domain.PriorityHigh:       "#fc8d59",
	domain.PriorityMedium:     "#fee08b",
	domain.PriorityWellServed: "#1a9850",
}

// bubble is one rendered marker.
type bubble struct {
	Lat      float64
	Lon      float64
	Radius   float64
	Color    string
	Popup    string
	Priority string
}

type mapData struct {
	Title   string
	Center  domain.Geo
	Bubbles []bubble
}

// Renderer writes a Leaflet bubble map to an HTML file.
// It implements pipeline.MapRenderer.
type Renderer struct {
	path   string
	center domain.Geo
}

// NewRenderer creates a renderer targeting path, centered on center when no
// summaries carry coordinates.
func NewRenderer(path string, center domain.Geo) *Renderer {
	return &Renderer{path: path, center: center}
}

// RenderMap renders every summary as a circle marker. Radius grows with the
// square root of EV count so area, not diameter, tracks demand.
func (r *Renderer) RenderMap(_ context.Context, summaries []domain.ZipSummary) error {
	data := mapData{
		Title:   "EV Charging Gap Analysis",
		Center:  r.center,
		Bubbles: make([]bubble, 0, len(summaries)),
	}
	for _, z := range summaries {
		if z.Geo.IsZero() {
			continue
		}
		color, ok := priorityColors[z.Priority]
		if !ok {
			color = "#999999"
		}
		data.Bubbles = append(data.Bubbles, bubble{
			Lat:      z.Geo.Lat,
			Lon:      z.Geo.Lon,
			Radius:   bubbleRadius(z.TotalEVs),
			Color:    color,
			Popup:    popupText(z),
			Priority: string(z.Priority),
		})
	}

	var buf bytes.Buffer
	if err := mapTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render map template: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create map dir: %w", err)
	}
	if err := os.WriteFile(r.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write map file: %w", err)
	}
	return nil
}

// bubbleRadius maps an EV count to a marker radius in pixels, clamped so a
// single enormous code cannot blot out its neighbors.
func bubbleRadius(evs int) float64 {
	r := 3 + math.Sqrt(float64(evs))
	if r > 40 {
		r = 40
	}
	return r
}

func popupText(z domain.ZipSummary) string {
	name := z.City
	if z.PlaceName != "" {
		name = z.PlaceName
	}
	return fmt.Sprintf("%s (%s): %d EVs, %d ports, ratio %s, %s",
		z.PostalCode, name, z.TotalEVs, z.TotalPorts,
		domain.FormatRatio(z.Ratio), z.Priority)
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.Center.Lat}}, {{.Center.Lon}}], 7);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
{{range .Bubbles}}
L.circleMarker([{{.Lat}}, {{.Lon}}], {
  radius: {{.Radius}},
  color: {{.Color}},
  fillColor: {{.Color}},
  fillOpacity: 0.6
}).bindPopup({{.Popup}}).addTo(map);
{{end}}
</script>
</body>
</html>
`))

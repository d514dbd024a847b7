package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexivanou/cityweather/internal/model"
	"github.com/mattn/go-runewidth"
)

const (
	title          = "Weather Forecast"
	topCitiesTitle = "Top Cities"
	defaultColumns = 3
	defaultCell    = 26
)

// Renderer draws a ViewState as plain text
type Renderer struct {
	icons     IconResolver
	columns   int
	cellWidth int
}

// NewRenderer creates a renderer. A nil resolver falls back to TextIcons.
func NewRenderer(icons IconResolver) *Renderer {
	if icons == nil {
		icons = TextIcons{}
	}
	return &Renderer{icons: icons, columns: defaultColumns, cellWidth: defaultCell}
}

// Render returns the full view for state
func (r *Renderer) Render(state ViewState) string {
	var b strings.Builder

	b.WriteString(title + "\n\n")

	status := ""
	if state.Loading {
		status = " (loading...)"
	}
	fmt.Fprintf(&b, "Search: %s%s\n", state.Input, status)
	for i, s := range state.Suggestions {
		fmt.Fprintf(&b, "  #%d %s\n", i+1, s)
	}
	if state.Error != "" {
		fmt.Fprintf(&b, "! %s\n", state.Error)
	}

	if state.Weather != nil {
		b.WriteString("\n")
		b.WriteString(r.Card(state.Weather))
		b.WriteString("\n")
	}

	if len(state.TopCities) > 0 {
		b.WriteString("\n" + topCitiesTitle + "\n")
		b.WriteString(r.TopCities(state.TopCities))
	}

	return b.String()
}

// Card renders the primary search result
func (r *Renderer) Card(w *model.WeatherResult) string {
	desc := w.Description()
	icon := r.icons.Icon(Classify(desc), desc)
	return fmt.Sprintf("%s\n%s %s\n%s\n", w.LocationName(), icon, formatTemperature(w.Temperature()), desc)
}

// TopCities renders the panel as a grid, preserving panel order
func (r *Renderer) TopCities(panels []CityPanel) string {
	failed := 0
	for _, p := range panels {
		if p.Err != nil {
			failed++
		}
	}
	if failed == len(panels) {
		return MsgTopCitiesFail + "\n"
	}

	var b strings.Builder
	for start := 0; start < len(panels); start += r.columns {
		end := start + r.columns
		if end > len(panels) {
			end = len(panels)
		}
		row := panels[start:end]

		lines := [3][]string{}
		for _, p := range row {
			name, line, desc := r.cell(p)
			lines[0] = append(lines[0], r.pad(name))
			lines[1] = append(lines[1], r.pad(line))
			lines[2] = append(lines[2], r.pad(desc))
		}
		for _, l := range lines {
			b.WriteString(strings.TrimRight(strings.Join(l, " | "), " "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) cell(p CityPanel) (string, string, string) {
	if p.Err != nil || p.Weather == nil {
		return p.City, "unavailable", ""
	}
	desc := p.Weather.Description()
	name := p.Weather.LocationName()
	if name == "" {
		name = p.City
	}
	icon := r.icons.Icon(Classify(desc), desc)
	return name, icon + " " + formatTemperature(p.Weather.Temperature()), desc
}

// pad fits s into one grid cell by display width, so wide runes and emoji
// keep the columns aligned.
func (r *Renderer) pad(s string) string {
	s = runewidth.Truncate(s, r.cellWidth, "…")
	return runewidth.FillRight(s, r.cellWidth)
}

func formatTemperature(t *float64) string {
	if t == nil {
		return "--°C"
	}
	return strconv.FormatFloat(*t, 'f', -1, 64) + "°C"
}

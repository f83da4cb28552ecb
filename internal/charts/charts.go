// Package charts renders severity statistics as PNG images for
// embedding in the PDF report. Callers supply counts for all five
// severities, zeros included.
package charts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mkarimov/vulnrep/internal/models"
)

// Default pixel dimensions, tuned for letter-page embedding at 150 DPI.
const (
	DefaultBarWidth  = 825
	DefaultBarHeight = 375
	DefaultDonutSize = 450
)

// severityColors maps severities to their display color.
var severityColors = map[models.Severity]drawing.Color{
	models.SeverityCritical: drawing.ColorFromHex("DC2626"),
	models.SeverityHigh:     drawing.ColorFromHex("EA580C"),
	models.SeverityMedium:   drawing.ColorFromHex("CA8A04"),
	models.SeverityLow:      drawing.ColorFromHex("2563EB"),
	models.SeverityInfo:     drawing.ColorFromHex("6B7280"),
}

var (
	axisColor        = drawing.ColorFromHex("94A3B8")
	labelColor       = drawing.ColorFromHex("334155")
	placeholderColor = drawing.ColorFromHex("E2E8F0")
)

// SeverityBarChart renders a bar chart of findings per severity,
// critical first, and returns PNG image bytes. All five severities are
// drawn, including zero-count levels.
func SeverityBarChart(counts map[string]int, width, height int) ([]byte, error) {
	if width <= 0 {
		width = DefaultBarWidth
	}
	if height <= 0 {
		height = DefaultBarHeight
	}

	var bars []chart.Value
	maxCount := 0
	for _, sev := range models.SeverityOrder {
		count := counts[string(sev)]
		if count > maxCount {
			maxCount = count
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%d)", strings.ToUpper(string(sev)), count),
			Value: float64(count),
			Style: chart.Style{
				FillColor:   severityColors[sev],
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 0.5,
			},
		})
	}

	// An explicit range keeps the render valid when every count is zero.
	rangeMax := float64(maxCount) * 1.25
	if rangeMax == 0 {
		rangeMax = 1
	}

	graph := chart.BarChart{
		Width:      width,
		Height:     height,
		BarWidth:   width / 8,
		BarSpacing: width / 24,
		Background: chart.Style{FillColor: drawing.ColorWhite},
		Canvas:     chart.Style{FillColor: drawing.ColorWhite},
		XAxis: chart.Style{
			FontSize:    9,
			FontColor:   labelColor,
			StrokeColor: axisColor,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontSize:    8,
				FontColor:   axisColor,
				StrokeColor: axisColor,
			},
			Range:          &chart.ContinuousRange{Min: 0, Max: rangeMax},
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering severity bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// SeverityDonutChart renders a donut chart of the severity
// distribution and returns PNG image bytes. Zero-count severities are
// omitted from the ring; a neutral placeholder slice is drawn when no
// findings exist at all.
func SeverityDonutChart(counts map[string]int, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultDonutSize
	}

	var values []chart.Value
	total := 0
	for _, sev := range models.SeverityOrder {
		count := counts[string(sev)]
		if count == 0 {
			continue
		}
		total += count
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", strings.ToUpper(string(sev)), count),
			Value: float64(count),
			Style: chart.Style{
				FillColor:   severityColors[sev],
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
				FontSize:    8,
				FontColor:   labelColor,
			},
		})
	}

	if total == 0 {
		values = []chart.Value{{
			Label: "NO FINDINGS",
			Value: 1,
			Style: chart.Style{
				FillColor:   placeholderColor,
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
				FontSize:    8,
				FontColor:   labelColor,
			},
		}}
	}

	graph := chart.DonutChart{
		Width:      size,
		Height:     size,
		Background: chart.Style{FillColor: drawing.ColorWhite},
		Canvas:     chart.Style{FillColor: drawing.ColorWhite},
		Values:     values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering severity donut chart: %w", err)
	}
	return buf.Bytes(), nil
}

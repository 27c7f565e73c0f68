// Package render is the presentation adapter boundary: it turns
// aggregation results into chart specs and interpretation paragraphs, or
// into structured "unavailable" notices. It never renders pixels itself;
// the HTTP layer (or any other collaborator) owns the actual drawing.
package render

import (
	"strconv"

	"salesdash/internal/core"
)

type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
)

type (
	// ChartPoint is one key/value pair of an ordered series.
	ChartPoint struct {
		Label string
		Value float64
	}

	// ChartSpec describes a chart for the rendering surface: kind, title,
	// axis labels, and a single ordered series.
	ChartSpec struct {
		Kind   ChartKind
		Title  string
		XLabel string
		YLabel string
		Points []ChartPoint
	}
)

func categoryChart(sum core.CategorySummary) *ChartSpec {
	points := make([]ChartPoint, 0, len(sum.Totals))
	for _, ct := range sum.Totals {
		points = append(points, ChartPoint{Label: ct.Category, Value: ct.Total})
	}
	return &ChartSpec{
		Kind:   ChartBar,
		Title:  "Total Sales by Category",
		XLabel: "Product Category",
		YLabel: "Total Sales ($)",
		Points: points,
	}
}

func trendChart(trend core.DailyTrend) *ChartSpec {
	points := make([]ChartPoint, 0, len(trend.Days))
	for _, d := range trend.Days {
		points = append(points, ChartPoint{Label: d.Day.String(), Value: d.Total})
	}
	return &ChartSpec{
		Kind:   ChartLine,
		Title:  "Daily Sales Over Time",
		XLabel: "Date Ordered",
		YLabel: "Total Sales ($)",
		Points: points,
	}
}

func ratingsChart(dist core.RatingDistribution) *ChartSpec {
	points := make([]ChartPoint, 0, len(dist.Counts))
	for _, rc := range dist.Counts {
		points = append(points, ChartPoint{Label: formatRating(rc.Rating), Value: float64(rc.Count)})
	}
	return &ChartSpec{
		Kind:   ChartBar,
		Title:  "Service Satisfaction Rating Distribution",
		XLabel: "Rating Score",
		YLabel: "Number of Customers",
		Points: points,
	}
}

// formatRating renders a score without spurious decimals ("5", "4.5").
func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

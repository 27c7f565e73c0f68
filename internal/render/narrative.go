package render

import (
	"fmt"

	"salesdash/internal/core"
)

// The interpretation paragraphs are deliberately short, one per view,
// written for the shop manager reading the dashboard rather than for an
// analyst.

func categoryNarrative(sum core.CategorySummary) string {
	return fmt.Sprintf(
		"The category %s generates the highest revenue, contributing approximately %.1f%% of total sales (%s of %s). "+
			"This suggests that customers spend more money on %s than on the other categories. "+
			"Management could prioritize promotions, inventory, and marketing around %s while exploring why the others are underperforming.",
		sum.Top.Category, sum.TopShare,
		FormatDollars(sum.Top.Total), FormatDollars(sum.GrandTotal),
		sum.Top.Category, sum.Top.Category)
}

func trendNarrative(trend core.DailyTrend) string {
	return fmt.Sprintf(
		"The highest daily sales occurred on %s, with total sales of approximately %s. "+
			"The chart helps identify busy days, potential promotion effects, or seasonal patterns. "+
			"Management can use this to schedule staffing, plan inventory, and target marketing campaigns around high-demand periods.",
		trend.Peak.Day, FormatDollars(trend.Peak.Total))
}

func ratingsNarrative(dist core.RatingDistribution) string {
	return fmt.Sprintf(
		"The most common service satisfaction score is %s. "+
			"A higher concentration of ratings at the top end (4-5) indicates good customer experience and service quality. "+
			"If many ratings sit at the low end (1-2), management should investigate pain points such as waiting times, staff behavior, or product quality.",
		formatRating(dist.Mode))
}

package render

import (
	"errors"
	"fmt"

	"salesdash/internal/core"
)

// NoticeKind distinguishes the two flavors of an unavailable view: an
// error (required columns missing) and an informational notice (columns
// present but no usable rows).
type NoticeKind string

const (
	NoticeError NoticeKind = "error"
	NoticeInfo  NoticeKind = "info"
)

// View is one dashboard tab, either renderable (Chart + Interpretation)
// or unavailable (Notice + NoticeKind).
type View struct {
	ID             string
	Title          string
	Chart          *ChartSpec
	Interpretation string
	Notice         string
	NoticeKind     NoticeKind
}

// Available reports whether the view produced a chart.
func (v View) Available() bool {
	return v.Chart != nil
}

// CategoryView wraps the category aggregation outcome for rendering.
func CategoryView(sum core.CategorySummary, err error) View {
	v := View{ID: "category", Title: "Category Sales"}
	if err != nil {
		return v.withNotice(err, "No sales data found after grouping by category.")
	}
	v.Chart = categoryChart(sum)
	v.Interpretation = categoryNarrative(sum)
	return v
}

// TrendView wraps the time-series aggregation outcome for rendering.
func TrendView(trend core.DailyTrend, err error) View {
	v := View{ID: "trend", Title: "Sales Over Time"}
	if err != nil {
		return v.withNotice(err, "No valid daily sales data after processing the dates.")
	}
	v.Chart = trendChart(trend)
	v.Interpretation = trendNarrative(trend)
	return v
}

// RatingsView wraps the ratings aggregation outcome for rendering.
func RatingsView(dist core.RatingDistribution, err error) View {
	v := View{ID: "ratings", Title: "Satisfaction Ratings"}
	if err != nil {
		return v.withNotice(err, "No non-missing satisfaction ratings available in the dataset.")
	}
	v.Chart = ratingsChart(dist)
	v.Interpretation = ratingsNarrative(dist)
	return v
}

func (v View) withNotice(err error, noData string) View {
	var insufficient *core.InsufficientColumnsError
	switch {
	case errors.As(err, &insufficient):
		v.Notice = unavailableReason(insufficient)
		v.NoticeKind = NoticeError
	case errors.Is(err, core.ErrNoData):
		v.Notice = noData
		v.NoticeKind = NoticeInfo
	default:
		v.Notice = err.Error()
		v.NoticeKind = NoticeError
	}
	return v
}

func unavailableReason(err *core.InsufficientColumnsError) string {
	return fmt.Sprintf("Unable to build this view because the required columns were not found (%s). Please check the dataset headers.",
		missingList(err.Missing))
}

func missingList(roles []core.Role) string {
	s := ""
	for i, r := range roles {
		if i > 0 {
			s += "; "
		}
		s += fmt.Sprintf("%s, expected a column like %q", r.Label(), r.PreferredName())
	}
	return s
}

// MissingColumnWarning is the per-role warning shown when resolution
// fails; it carries the rename hint from the alias catalog.
func MissingColumnWarning(role core.Role) string {
	return fmt.Sprintf("Could not automatically detect the %s column. Please rename it to %q in the dataset if needed.",
		role.Label(), role.PreferredName())
}

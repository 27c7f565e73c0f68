package core

import (
	"sort"
	"strings"
)

// Each aggregator is a pure function of (table, resolved columns). A row
// with a malformed value in a relevant role is excluded and counted, never
// fatal; the whole view fails only when its required roles are missing
// (InsufficientColumnsError) or when nothing usable remains (ErrNoData).

// SummarizeCategories groups rows by category and sums sales per group,
// ranked descending by total. Ties rank alphabetically so the ordering is
// deterministic.
func SummarizeCategories(t Table, cols ColumnMap) (CategorySummary, error) {
	if missing := cols.Missing(RoleCategory, RoleSalesAmount); len(missing) > 0 {
		return CategorySummary{}, &InsufficientColumnsError{Missing: missing}
	}
	catIdx := t.ColumnIndex(cols[RoleCategory])
	salesIdx := t.ColumnIndex(cols[RoleSalesAmount])

	totals := make(map[string]float64)
	order := make([]string, 0)
	dropped := 0
	for i := range t.Rows {
		category := strings.TrimSpace(t.Cell(i, catIdx))
		amount, ok := ParseSalesAmount(t.Cell(i, salesIdx))
		if category == "" || !ok {
			dropped++
			continue
		}
		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] += amount
	}
	if len(order) == 0 {
		return CategorySummary{Dropped: dropped}, ErrNoData
	}

	sum := CategorySummary{Dropped: dropped}
	for _, category := range order {
		total := totals[category]
		sum.Totals = append(sum.Totals, CategoryTotal{Category: category, Total: total})
		sum.GrandTotal += total
	}
	sort.SliceStable(sum.Totals, func(i, j int) bool {
		if sum.Totals[i].Total != sum.Totals[j].Total {
			return sum.Totals[i].Total > sum.Totals[j].Total
		}
		return sum.Totals[i].Category < sum.Totals[j].Category
	})

	sum.Top = sum.Totals[0]
	if sum.GrandTotal > 0 {
		sum.TopShare = sum.Top.Total / sum.GrandTotal * 100
	}
	return sum, nil
}

// SummarizeDaily coerces the order-date column and sums sales per
// calendar day, ascending by date. Rows whose date or sales value fails
// to parse are dropped individually.
func SummarizeDaily(t Table, cols ColumnMap) (DailyTrend, error) {
	if missing := cols.Missing(RoleOrderDate, RoleSalesAmount); len(missing) > 0 {
		return DailyTrend{}, &InsufficientColumnsError{Missing: missing}
	}
	dateIdx := t.ColumnIndex(cols[RoleOrderDate])
	salesIdx := t.ColumnIndex(cols[RoleSalesAmount])

	totals := make(map[Date]float64)
	dropped := 0
	for i := range t.Rows {
		day, ok := ParseOrderDate(t.Cell(i, dateIdx))
		if !ok {
			dropped++
			continue
		}
		amount, ok := ParseSalesAmount(t.Cell(i, salesIdx))
		if !ok {
			dropped++
			continue
		}
		totals[day] += amount
	}
	if len(totals) == 0 {
		return DailyTrend{Dropped: dropped}, ErrNoData
	}

	trend := DailyTrend{Dropped: dropped}
	for day, total := range totals {
		trend.Days = append(trend.Days, DayTotal{Day: day, Total: total})
	}
	sort.Slice(trend.Days, func(i, j int) bool {
		return trend.Days[i].Day.Before(trend.Days[j].Day)
	})

	trend.Peak = trend.Days[0]
	for _, d := range trend.Days[1:] {
		if d.Total > trend.Peak.Total {
			trend.Peak = d
		}
	}
	return trend, nil
}

// SummarizeRatings counts how often each distinct satisfaction score
// occurs, ascending by score. The mode is the score with the highest
// count; on a tie the lowest score wins.
func SummarizeRatings(t Table, cols ColumnMap) (RatingDistribution, error) {
	if missing := cols.Missing(RoleSatisfactionRating); len(missing) > 0 {
		return RatingDistribution{}, &InsufficientColumnsError{Missing: missing}
	}
	ratingIdx := t.ColumnIndex(cols[RoleSatisfactionRating])

	counts := make(map[float64]int)
	dropped := 0
	for i := range t.Rows {
		rating, ok := ParseRating(t.Cell(i, ratingIdx))
		if !ok {
			dropped++
			continue
		}
		counts[rating]++
	}
	if len(counts) == 0 {
		return RatingDistribution{Dropped: dropped}, ErrNoData
	}

	dist := RatingDistribution{Dropped: dropped}
	for rating, count := range counts {
		dist.Counts = append(dist.Counts, RatingCount{Rating: rating, Count: count})
	}
	sort.Slice(dist.Counts, func(i, j int) bool {
		return dist.Counts[i].Rating < dist.Counts[j].Rating
	})

	// Ascending scan: a strictly greater count is required to displace
	// the current mode, so equal counts keep the lowest score.
	mode := dist.Counts[0]
	for _, rc := range dist.Counts[1:] {
		if rc.Count > mode.Count {
			mode = rc
		}
	}
	dist.Mode = mode.Rating
	return dist, nil
}

package core

type (
	// CategoryTotal is summed sales for one category.
	CategoryTotal struct {
		Category string
		Total    float64
	}

	// CategorySummary ranks categories by revenue, highest first.
	CategorySummary struct {
		Totals     []CategoryTotal
		Top        CategoryTotal
		TopShare   float64 // percent of GrandTotal, 0 when GrandTotal is 0
		GrandTotal float64
		Dropped    int // rows excluded for a missing category or unparseable sales
	}

	// DayTotal is summed sales for one calendar day.
	DayTotal struct {
		Day   Date
		Total float64
	}

	// DailyTrend is the day-by-day sales series, ascending by date with
	// no duplicate days.
	DailyTrend struct {
		Days    []DayTotal
		Peak    DayTotal
		Dropped int // rows excluded for an unparseable date or sales value
	}

	// RatingCount is the frequency of one distinct satisfaction score.
	RatingCount struct {
		Rating float64
		Count  int
	}

	// RatingDistribution counts satisfaction scores, ascending by score.
	RatingDistribution struct {
		Counts  []RatingCount
		Mode    float64 // ties broken by the lowest score
		Dropped int     // rows with a missing or non-numeric rating
	}
)

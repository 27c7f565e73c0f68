package services

import (
	"context"
	"fmt"
	"io"

	"salesdash/internal/core"
	"salesdash/internal/dataset"
	applog "salesdash/internal/log"
	"salesdash/internal/render"
)

type (
	// Preview shows the shape of the uploaded dataset: the first and last
	// few rows, separated so the template can label them.
	Preview struct {
		Columns []string
		Head    [][]string
		Tail    [][]string
	}

	// Dashboard is one full recomputation for one upload. Nothing in it
	// survives the next upload.
	Dashboard struct {
		DatasetName string
		RowCount    int
		Preview     Preview
		Warnings    []string
		Category    render.View
		Trend       render.View
		Ratings     render.View
	}

	// DashboardService turns uploaded bytes into a Dashboard. It is
	// stateless; all state lives in the Dashboard value it returns.
	DashboardService struct {
		previewRows int
		maxRows     int
	}
)

func NewDashboardService(previewRows, maxRows int) *DashboardService {
	return &DashboardService{previewRows: previewRows, maxRows: maxRows}
}

// BuildFromUpload parses an uploaded file and recomputes every view.
// The returned error is the single top-level failure of the dashboard
// (unreadable or oversized file); per-view and per-row problems are
// reported inside the Dashboard instead.
func (s *DashboardService) BuildFromUpload(ctx context.Context, r io.Reader, filename string) (Dashboard, error) {
	tbl, err := dataset.ReadTable(r, filename)
	if err != nil {
		return Dashboard{}, fmt.Errorf("parse upload: %w", err)
	}
	if s.maxRows > 0 && len(tbl.Rows) > s.maxRows {
		return Dashboard{}, fmt.Errorf("dataset has %d rows, the limit is %d", len(tbl.Rows), s.maxRows)
	}
	return s.Build(ctx, tbl), nil
}

// Build recomputes the three views from an in-memory table. Each
// aggregation is independent: a failure in one is folded into that view
// and never aborts the others.
func (s *DashboardService) Build(ctx context.Context, tbl core.Table) Dashboard {
	cols := core.ResolveColumns(tbl.Columns)
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentInsights)

	d := Dashboard{
		DatasetName: tbl.Name,
		RowCount:    len(tbl.Rows),
		Preview:     s.preview(tbl),
	}
	for _, role := range cols.Unresolved() {
		logger.Warn("Column not detected",
			applog.FieldDataset, tbl.Name,
			applog.FieldRole, string(role))
		d.Warnings = append(d.Warnings, render.MissingColumnWarning(role))
	}

	catSum, catErr := core.SummarizeCategories(tbl, cols)
	d.Category = render.CategoryView(catSum, catErr)

	trend, trendErr := core.SummarizeDaily(tbl, cols)
	d.Trend = render.TrendView(trend, trendErr)

	dist, distErr := core.SummarizeRatings(tbl, cols)
	d.Ratings = render.RatingsView(dist, distErr)

	logger.Info("Dashboard recomputed",
		applog.FieldDataset, tbl.Name,
		applog.FieldRows, len(tbl.Rows),
		applog.FieldDroppedRows, catSum.Dropped+trend.Dropped+dist.Dropped,
		"category_available", d.Category.Available(),
		"trend_available", d.Trend.Available(),
		"ratings_available", d.Ratings.Available())

	return d
}

// preview copies the first and last previewRows rows. The tail never
// repeats rows already shown in the head.
func (s *DashboardService) preview(tbl core.Table) Preview {
	p := Preview{Columns: tbl.Columns}
	n := s.previewRows
	if n <= 0 {
		return p
	}

	head := n
	if head > len(tbl.Rows) {
		head = len(tbl.Rows)
	}
	p.Head = copyRows(tbl.Rows[:head])

	tailStart := len(tbl.Rows) - n
	if tailStart < head {
		tailStart = head
	}
	if tailStart < len(tbl.Rows) {
		p.Tail = copyRows(tbl.Rows[tailStart:])
	}
	return p
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

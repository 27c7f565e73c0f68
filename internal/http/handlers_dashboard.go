package http

import (
	"fmt"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	applog "salesdash/internal/log"
	"salesdash/internal/render"
	"salesdash/internal/services"
)

// allowedExtensions is the upload allow-list. Anything else is rejected
// before the bytes are parsed.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

type (
	// barViewModel is one drawable bar or line point: a label, a
	// preformatted value, and a width as a percent of the series maximum.
	barViewModel struct {
		Label   string
		Display string
		Width   int
	}

	chartViewModel struct {
		Kind   string
		Title  string
		XLabel string
		YLabel string
		Bars   []barViewModel
	}

	viewViewModel struct {
		ID             string
		Title          string
		Chart          *chartViewModel
		Interpretation string
		Notice         string
		NoticeKind     string
	}

	previewViewModel struct {
		Columns []string
		Head    [][]string
		Tail    [][]string
	}

	dashboardViewModel struct {
		DatasetName string
		RowCount    int
		Preview     previewViewModel
		Warnings    []string
		Views       []viewViewModel
	}

	// pageData feeds the index template: the current dashboard if one
	// exists, plus an optional page-level notice.
	pageData struct {
		Dashboard  *dashboardViewModel
		Notice     string
		NoticeKind string
	}
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := pageData{}
	if d := s.getCurrent(); d != nil {
		data.Dashboard = buildDashboardViewModel(d)
		if r.URL.Query().Get("uploaded") == "1" {
			data.Notice = fmt.Sprintf("Successfully analyzed %d rows from %s.", d.RowCount, d.DatasetName)
			data.NoticeKind = string(render.NoticeInfo)
		}
	} else {
		data.Notice = "Please upload the juice sales dataset to begin the analysis."
		data.NoticeKind = string(render.NoticeInfo)
	}
	s.renderPage(w, r, http.StatusOK, data)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.renderUploadFailure(w, r, "The upload could not be read. It may exceed the size limit.")
		return
	}

	file, header, err := r.FormFile("dataset")
	if err != nil {
		s.renderUploadFailure(w, r, "No dataset file was included in the upload.")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		http.Error(w, "Unsupported file type. Please upload a .csv, .xlsx or .xls file.", http.StatusBadRequest)
		return
	}

	uploadID := uuid.NewString()
	logger := applog.FromContext(ctx).With(
		applog.FieldUploadID, uploadID,
		applog.FieldDataset, header.Filename)
	logger.Info("Dataset uploaded",
		applog.FieldOperation, applog.OpUpload,
		applog.FieldFileSize, formatFileSize(header.Size))

	dashboard, err := s.dashboards.BuildFromUpload(ctx, file, header.Filename)
	if err != nil {
		logger.Warn("Dashboard build failed", applog.FieldError, err)
		s.renderUploadFailure(w, r, "The dataset could not be processed: "+err.Error())
		return
	}

	s.setCurrent(&dashboard)
	http.Redirect(w, r, "/?uploaded=1", http.StatusSeeOther)
}

// renderUploadFailure shows the page again with a dashboard-level error.
// The previously uploaded dashboard, if any, stays visible underneath.
func (s *Server) renderUploadFailure(w http.ResponseWriter, r *http.Request, notice string) {
	data := pageData{
		Notice:     notice,
		NoticeKind: string(render.NoticeError),
	}
	if d := s.getCurrent(); d != nil {
		data.Dashboard = buildDashboardViewModel(d)
	}
	s.renderPage(w, r, http.StatusUnprocessableEntity, data)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		applog.FromContext(r.Context()).Error("Template rendering failed",
			applog.FieldComponent, applog.ComponentTemplate,
			applog.FieldError, err)
	}
}

func buildDashboardViewModel(d *services.Dashboard) *dashboardViewModel {
	return &dashboardViewModel{
		DatasetName: d.DatasetName,
		RowCount:    d.RowCount,
		Preview: previewViewModel{
			Columns: d.Preview.Columns,
			Head:    d.Preview.Head,
			Tail:    d.Preview.Tail,
		},
		Warnings: d.Warnings,
		Views: []viewViewModel{
			buildViewModel(d.Category, formatDollarValue),
			buildViewModel(d.Trend, formatDollarValue),
			buildViewModel(d.Ratings, formatCountValue),
		},
	}
}

func buildViewModel(v render.View, display func(float64) string) viewViewModel {
	vm := viewViewModel{
		ID:             v.ID,
		Title:          v.Title,
		Interpretation: v.Interpretation,
		Notice:         v.Notice,
		NoticeKind:     string(v.NoticeKind),
	}
	if v.Chart != nil {
		vm.Chart = buildChartViewModel(v.Chart, display)
	}
	return vm
}

func buildChartViewModel(spec *render.ChartSpec, display func(float64) string) *chartViewModel {
	vm := &chartViewModel{
		Kind:   string(spec.Kind),
		Title:  spec.Title,
		XLabel: spec.XLabel,
		YLabel: spec.YLabel,
		Bars:   make([]barViewModel, 0, len(spec.Points)),
	}
	max := 0.0
	for _, p := range spec.Points {
		if p.Value > max {
			max = p.Value
		}
	}
	for _, p := range spec.Points {
		vm.Bars = append(vm.Bars, barViewModel{
			Label:   p.Label,
			Display: display(p.Value),
			Width:   barWidth(p.Value, max),
		})
	}
	return vm
}

// barWidth scales a value against the series maximum. Non-zero values
// get at least a sliver so every bar stays visible.
func barWidth(value, max float64) int {
	if max <= 0 || value <= 0 {
		return 0
	}
	w := int(math.Round(value / max * 100))
	if w < 2 {
		w = 2
	}
	if w > 100 {
		w = 100
	}
	return w
}

func formatDollarValue(v float64) string {
	return render.FormatDollars(v)
}

func formatCountValue(v float64) string {
	return strconv.Itoa(int(v))
}

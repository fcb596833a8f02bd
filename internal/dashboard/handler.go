// Package dashboard serves the information and prediction views of the utility cost model
package dashboard

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/aouyang1/go-utilitycost"
	"github.com/aouyang1/go-utilitycost/dataset"
	"github.com/aouyang1/go-utilitycost/stats"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
)

//go:embed templates/*.html
var templateFS embed.FS

// ValidationMessage is shown when a numeric input is below its minimum or not a number
const ValidationMessage = "Value must be greater than or equal to 1"

var (
	areaMaximumMessage      = fmt.Sprintf("Building area must be less than or equal to %v", utilitycost.MaxArea)
	occupantsMaximumMessage = fmt.Sprintf("Occupant count must be less than or equal to %d", utilitycost.MaxOccupants)
)

const maxListedAreas = 10

var pages = []string{"info", "predict"}

// Options configures the dashboard
type Options struct {
	Title  string
	Logger *slog.Logger
}

// NewDefaultOptions returns the default dashboard options
func NewDefaultOptions() *Options {
	return &Options{
		Title:  "Utility Cost Prediction",
		Logger: slog.Default(),
	}
}

// Handler renders the dashboard views from a shared predictor
type Handler struct {
	source    PredictorSource
	opt       *Options
	templates map[string]*template.Template
}

// NewHandler parses the embedded templates. If no options are provided a default is used.
func NewHandler(source PredictorSource, opt *Options) (*Handler, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}

	funcs := template.FuncMap{
		"money":   formatMoney,
		"number":  humanize.Ftoa,
		"count":   func(n int) string { return humanize.Comma(int64(n)) },
		"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
		"join":    func(s []string) string { return strings.Join(s, ", ") },
	}

	tpls := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("unable to parse %s template, %w", page, err)
		}
		tpls[page] = tpl
	}

	return &Handler{
		source:    source,
		opt:       opt,
		templates: tpls,
	}, nil
}

// Register mounts every dashboard route on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.info)
	mux.HandleFunc("GET /predict", h.predictForm)
	mux.HandleFunc("POST /predict", h.predict)

	mux.HandleFunc("GET /charts/dataset", h.datasetChart)
	mux.HandleFunc("GET /charts/prediction", h.predictionChart)

	mux.HandleFunc("GET /api/model", h.apiModel)
	mux.HandleFunc("POST /api/predict", h.apiPredict)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}

type infoView struct {
	Summary         stats.Summary
	Scores          utilitycost.Scores
	ModelEq         string
	Outliers        int
	HasTrainingData bool
}

type formValues struct {
	CustomerType string
	Region       string
	Area         string
	Occupants    string
}

type predictView struct {
	CustomerTypes []string
	Regions       []string
	Form          formValues

	CostRange     stats.Summary
	AreaRange     *stats.Summary
	AreaValues    []string
	OccupantRange *stats.Summary

	Error    string
	Result   *utilitycost.Result
	ChartURL string
}

func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	p, ok := h.predictor(w)
	if !ok {
		return
	}

	vm := infoView{
		Summary:         p.Summary(),
		Scores:          p.Scores(),
		Outliers:        len(p.Outliers()),
		HasTrainingData: p.TrainingData().Len() > 0,
	}
	if eq, err := p.ModelEq(); err == nil {
		vm.ModelEq = eq
	}
	h.render(w, http.StatusOK, "info", vm)
}

func (h *Handler) predictForm(w http.ResponseWriter, r *http.Request) {
	p, ok := h.predictor(w)
	if !ok {
		return
	}
	vm, err := newPredictView(p)
	if err != nil {
		h.serverError(w, "unable to build prediction view", err)
		return
	}
	vm.Form.Area = "1"
	vm.Form.Occupants = "1"
	h.render(w, http.StatusOK, "predict", vm)
}

func (h *Handler) predict(w http.ResponseWriter, r *http.Request) {
	p, ok := h.predictor(w)
	if !ok {
		return
	}
	vm, err := newPredictView(p)
	if err != nil {
		h.serverError(w, "unable to build prediction view", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	vm.Form = formValues{
		CustomerType: r.PostForm.Get("customer_type"),
		Region:       r.PostForm.Get("region"),
		Area:         r.PostForm.Get("building_area_m2"),
		Occupants:    r.PostForm.Get("occupant_count"),
	}

	req, err := parseForm(vm.Form)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		h.opt.Logger.Debug("rejected prediction input", "error", err)
		vm.Error = formMessage(err)
		h.render(w, http.StatusUnprocessableEntity, "predict", vm)
		return
	}

	res, err := p.Evaluate(req)
	if errors.Is(err, utilitycost.ErrNonFiniteEstimate) {
		h.opt.Logger.Debug("rejected prediction input", "error", err)
		vm.Error = areaMaximumMessage
		h.render(w, http.StatusUnprocessableEntity, "predict", vm)
		return
	}
	if err != nil {
		h.serverError(w, "unable to predict", err)
		return
	}
	vm.Result = res
	vm.ChartURL = "/charts/prediction?" + url.Values{"value": {strconv.FormatFloat(res.Value, 'f', 2, 64)}}.Encode()
	h.render(w, http.StatusOK, "predict", vm)
}

func (h *Handler) datasetChart(w http.ResponseWriter, r *http.Request) {
	p, ok := h.predictor(w)
	if !ok {
		return
	}
	var b bytes.Buffer
	if err := p.PlotDataset(&b); err != nil {
		if errors.Is(err, utilitycost.ErrNoTrainingData) {
			http.Error(w, "no training data", http.StatusNotFound)
			return
		}
		h.serverError(w, "unable to plot dataset", err)
		return
	}
	writeHTML(w, http.StatusOK, b.Bytes())
}

func (h *Handler) predictionChart(w http.ResponseWriter, r *http.Request) {
	p, ok := h.predictor(w)
	if !ok {
		return
	}
	value, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		http.Error(w, "value must be a finite number", http.StatusBadRequest)
		return
	}
	var b bytes.Buffer
	if err := p.PlotPrediction(&b, value); err != nil {
		h.serverError(w, "unable to plot prediction", err)
		return
	}
	writeHTML(w, http.StatusOK, b.Bytes())
}

type apiError struct {
	Error string `json:"error"`
}

func (h *Handler) apiModel(w http.ResponseWriter, r *http.Request) {
	p, ok := h.predictor(w)
	if !ok {
		return
	}
	m, err := p.Model()
	if err != nil {
		h.serverError(w, "unable to fetch model", err)
		return
	}
	h.writeJSON(w, http.StatusOK, m)
}

func (h *Handler) apiPredict(w http.ResponseWriter, r *http.Request) {
	p, ok := h.predictor(w)
	if !ok {
		return
	}

	var req utilitycost.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: err.Error()})
		return
	}

	res, err := p.Evaluate(req)
	if errors.Is(err, utilitycost.ErrNonFiniteEstimate) {
		h.writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: err.Error()})
		return
	}
	if err != nil {
		h.serverError(w, "unable to predict", err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) predictor(w http.ResponseWriter) (*utilitycost.Predictor, bool) {
	p, err := h.source.Predictor()
	if err != nil {
		h.serverError(w, "unable to load predictor", err)
		return nil, false
	}
	return p, true
}

func (h *Handler) serverError(w http.ResponseWriter, msg string, err error) {
	h.opt.Logger.Error(msg, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, vm any) {
	var b bytes.Buffer
	err := h.templates[page].ExecuteTemplate(&b, "layout.html", map[string]any{
		"Title": h.opt.Title,
		"Page":  page,
		"Now":   time.Now(),
		"VM":    vm,
	})
	if err != nil {
		h.serverError(w, "unable to render template", err)
		return
	}
	writeHTML(w, status, b.Bytes())
}

func newPredictView(p *utilitycost.Predictor) (predictView, error) {
	types, err := p.Vocabulary(dataset.FieldCustomerType)
	if err != nil {
		return predictView{}, err
	}
	regions, err := p.Vocabulary(dataset.FieldRegion)
	if err != nil {
		return predictView{}, err
	}

	vm := predictView{
		CustomerTypes: types,
		Regions:       regions,
		CostRange:     p.Summary(),
	}

	ds := p.TrainingData()
	if ds.Len() == 0 {
		return vm, nil
	}
	areas := ds.Areas()
	if s, err := stats.Summarize(areas); err == nil {
		vm.AreaRange = &s
	}
	if s, err := stats.Summarize(ds.OccupantCounts()); err == nil {
		vm.OccupantRange = &s
	}
	distinct := slices.Compact(slices.Sorted(slices.Values(areas)))
	if len(distinct) <= maxListedAreas {
		for _, a := range distinct {
			vm.AreaValues = append(vm.AreaValues, humanize.Ftoa(a))
		}
	}
	return vm, nil
}

// parseForm reads the numeric inputs. Occupants accept a float without a fractional part.
func parseForm(f formValues) (utilitycost.Request, error) {
	area, err := strconv.ParseFloat(strings.TrimSpace(f.Area), 64)
	if err != nil {
		return utilitycost.Request{}, fmt.Errorf("building area %q, %w", f.Area, err)
	}
	occ, err := strconv.ParseFloat(strings.TrimSpace(f.Occupants), 64)
	if err != nil {
		return utilitycost.Request{}, fmt.Errorf("occupant count %q, %w", f.Occupants, err)
	}
	if occ != float64(int(occ)) {
		return utilitycost.Request{}, fmt.Errorf("occupant count %q, %w", f.Occupants, strconv.ErrSyntax)
	}
	return utilitycost.Request{
		CustomerType: f.CustomerType,
		Region:       f.Region,
		Area:         area,
		Occupants:    int(occ),
	}, nil
}

// formMessage picks the message shown under the form for a rejected input
func formMessage(err error) string {
	switch {
	case errors.Is(err, utilitycost.ErrAreaAboveMaximum):
		return areaMaximumMessage
	case errors.Is(err, utilitycost.ErrOccupantsAboveMaximum):
		return occupantsMaximumMessage
	default:
		return ValidationMessage
	}
}

func formatMoney(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeJSON encodes before writing the status so that an unencodable value becomes a 500
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.serverError(w, "unable to encode response", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

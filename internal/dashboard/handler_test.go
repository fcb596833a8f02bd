package dashboard

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aouyang1/go-utilitycost"
	"github.com/aouyang1/go-utilitycost/dataset"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePath = "../../testdata/energy_consumption.csv"

type countingSource struct {
	p     *utilitycost.Predictor
	err   error
	calls int
}

func (s *countingSource) Predictor() (*utilitycost.Predictor, error) {
	s.calls++
	return s.p, s.err
}

func fitFixture(t *testing.T) *utilitycost.Predictor {
	t.Helper()

	ds, err := dataset.Load(fixturePath, nil)
	require.Nil(t, err)

	p, err := utilitycost.New(nil)
	require.Nil(t, err)
	require.Nil(t, p.Fit(ds))
	return p
}

func newTestServer(t *testing.T, source PredictorSource) *httptest.Server {
	t.Helper()

	h, err := NewHandler(source, &Options{
		Title:  "Utility Cost Prediction",
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.Nil(t, err)

	mux := http.NewServeMux()
	h.Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	return string(b)
}

func TestHandlerPages(t *testing.T) {
	srv := newTestServer(t, &countingSource{p: fitFixture(t)})

	testData := map[string]struct {
		path     string
		status   int
		contains []string
	}{
		"info": {
			path:   "/",
			status: http.StatusOK,
			contains: []string{
				"Utility Cost Prediction",
				`class="active">Information`,
				"linear regression",
				"$101", "$52.56", "$158.14",
				"/charts/dataset",
				"y ~ ",
			},
		},
		"prediction form": {
			path:   "/predict",
			status: http.StatusOK,
			contains: []string{
				`class="active">Prediction`,
				`<option value="Residential"`,
				`<option value="Commercial"`,
				`<option value="North"`,
				`<option value="South"`,
				"17 - 77 m²",
				"17, 24, 45, 52, 77",
				"1 - 4 people",
				"$52.56 - $158.14 per month",
			},
		},
		"unknown page": {
			path:   "/missing",
			status: http.StatusNotFound,
		},
		"health": {
			path:     "/health",
			status:   http.StatusOK,
			contains: []string{`{"status":"ok"}`},
		},
		"dataset charts": {
			path:     "/charts/dataset",
			status:   http.StatusOK,
			contains: []string{"Distribution of Monthly Cost", "Average Cost by Region", "Customer Type Proportion"},
		},
		"prediction chart": {
			path:     "/charts/prediction?value=102.12",
			status:   http.StatusOK,
			contains: []string{"Position of Prediction in Cost Range", "102.12"},
		},
		"prediction chart bad value": {
			path:   "/charts/prediction?value=abc",
			status: http.StatusBadRequest,
		},
		"prediction chart nan value": {
			path:   "/charts/prediction?value=NaN",
			status: http.StatusBadRequest,
		},
		"prediction chart infinite value": {
			path:   "/charts/prediction?value=%2BInf",
			status: http.StatusBadRequest,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + td.path)
			require.Nil(t, err)
			body := readBody(t, resp)

			assert.Equal(t, td.status, resp.StatusCode)
			for _, s := range td.contains {
				assert.Contains(t, body, s)
			}
		})
	}
}

func TestHandlerPredictForm(t *testing.T) {
	srv := newTestServer(t, &countingSource{p: fitFixture(t)})

	testData := map[string]struct {
		form     url.Values
		status   int
		contains []string
		excludes []string
	}{
		"valid": {
			form: url.Values{
				"customer_type":    {"Residential"},
				"region":           {"North"},
				"building_area_m2": {"45"},
				"occupant_count":   {"2"},
			},
			status:   http.StatusOK,
			contains: []string{"$102.12", "/charts/prediction?value=102.12", "45 m²", "2 people"},
			excludes: []string{ValidationMessage},
		},
		"minimum inputs": {
			form: url.Values{
				"customer_type":    {"Residential"},
				"region":           {"North"},
				"building_area_m2": {"1"},
				"occupant_count":   {"1"},
			},
			status:   http.StatusOK,
			contains: []string{"$32.61"},
		},
		"area below minimum": {
			form: url.Values{
				"customer_type":    {"Residential"},
				"region":           {"North"},
				"building_area_m2": {"0"},
				"occupant_count":   {"2"},
			},
			status:   http.StatusUnprocessableEntity,
			contains: []string{ValidationMessage},
			excludes: []string{"Estimated monthly cost"},
		},
		"occupants below minimum": {
			form: url.Values{
				"customer_type":    {"Commercial"},
				"region":           {"South"},
				"building_area_m2": {"45"},
				"occupant_count":   {"0"},
			},
			status:   http.StatusUnprocessableEntity,
			contains: []string{ValidationMessage, `value="0"`},
			excludes: []string{"Estimated monthly cost"},
		},
		"fractional occupants": {
			form: url.Values{
				"customer_type":    {"Commercial"},
				"region":           {"South"},
				"building_area_m2": {"45"},
				"occupant_count":   {"2.5"},
			},
			status:   http.StatusUnprocessableEntity,
			contains: []string{ValidationMessage},
		},
		"infinite area": {
			form: url.Values{
				"customer_type":    {"Residential"},
				"region":           {"North"},
				"building_area_m2": {"Inf"},
				"occupant_count":   {"2"},
			},
			status:   http.StatusUnprocessableEntity,
			contains: []string{"Building area must be less than or equal to 1000"},
			excludes: []string{"Infinity", "Estimated monthly cost"},
		},
		"area above maximum": {
			form: url.Values{
				"customer_type":    {"Residential"},
				"region":           {"North"},
				"building_area_m2": {"1000.5"},
				"occupant_count":   {"2"},
			},
			status:   http.StatusUnprocessableEntity,
			contains: []string{"Building area must be less than or equal to 1000"},
			excludes: []string{"Estimated monthly cost"},
		},
		"maximum inputs": {
			form: url.Values{
				"customer_type":    {"Commercial"},
				"region":           {"South"},
				"building_area_m2": {"1000"},
				"occupant_count":   {"20"},
			},
			status:   http.StatusOK,
			contains: []string{"Estimated monthly cost"},
		},
		"occupants above maximum": {
			form: url.Values{
				"customer_type":    {"Residential"},
				"region":           {"North"},
				"building_area_m2": {"45"},
				"occupant_count":   {"21"},
			},
			status:   http.StatusUnprocessableEntity,
			contains: []string{"Occupant count must be less than or equal to 20"},
			excludes: []string{"Estimated monthly cost"},
		},
		"missing area": {
			form: url.Values{
				"customer_type":  {"Commercial"},
				"region":         {"South"},
				"occupant_count": {"2"},
			},
			status:   http.StatusUnprocessableEntity,
			contains: []string{ValidationMessage},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			resp, err := http.PostForm(srv.URL+"/predict", td.form)
			require.Nil(t, err)
			body := readBody(t, resp)

			assert.Equal(t, td.status, resp.StatusCode)
			for _, s := range td.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range td.excludes {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestHandlerAPI(t *testing.T) {
	srv := newTestServer(t, &countingSource{p: fitFixture(t)})

	resp, err := http.Get(srv.URL + "/api/model")
	require.Nil(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var m utilitycost.Model
	require.Nil(t, json.Unmarshal([]byte(body), &m))
	assert.Len(t, m.Weights.Coef, 6)
	require.NotNil(t, m.Summary)
	assert.Equal(t, 10, m.Summary.Count)

	testData := map[string]struct {
		body     string
		status   int
		value    float64
		contains string
	}{
		"valid": {
			body:   `{"customer_type":"Commercial","region":"South","building_area_m2":77,"occupant_count":4}`,
			status: http.StatusOK,
			value:  159.7666,
		},
		"below minimum": {
			body:     `{"customer_type":"Commercial","region":"South","building_area_m2":0.5,"occupant_count":4}`,
			status:   http.StatusUnprocessableEntity,
			contains: "greater than or equal to 1",
		},
		"overflowing area": {
			body:     `{"customer_type":"Residential","region":"North","building_area_m2":1.7e308,"occupant_count":2}`,
			status:   http.StatusUnprocessableEntity,
			contains: "less than or equal to 1000",
		},
		"malformed": {
			body:     `{"customer_type":`,
			status:   http.StatusBadRequest,
			contains: "invalid request body",
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/predict", "application/json", strings.NewReader(td.body))
			require.Nil(t, err)
			body := readBody(t, resp)

			assert.Equal(t, td.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			if td.contains != "" {
				assert.Contains(t, body, td.contains)
				return
			}
			var res utilitycost.Result
			require.Nil(t, json.Unmarshal([]byte(body), &res))
			assert.InDelta(t, td.value, res.Value, 1e-3)
			assert.True(t, res.InRange)
		})
	}
}

func TestHandlerSourceError(t *testing.T) {
	source := &countingSource{err: errors.New("dataset not found")}
	srv := newTestServer(t, source)

	for _, path := range []string{"/", "/predict", "/charts/dataset", "/api/model"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + path)
			require.Nil(t, err)
			body := readBody(t, resp)

			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assert.NotContains(t, body, "dataset not found")
		})
	}
	assert.Equal(t, 4, source.calls)

	resp, err := http.Get(srv.URL + "/health")
	require.Nil(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandlerModelOnly(t *testing.T) {
	m, err := fitFixture(t).Model()
	require.Nil(t, err)
	p, err := utilitycost.NewFromModel(m)
	require.Nil(t, err)

	srv := newTestServer(t, &countingSource{p: p})

	resp, err := http.Get(srv.URL + "/charts/dataset")
	require.Nil(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/")
	require.Nil(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "<iframe")

	resp, err = http.PostForm(srv.URL+"/predict", url.Values{
		"customer_type":    {"Residential"},
		"region":           {"North"},
		"building_area_m2": {"45"},
		"occupant_count":   {"2"},
	})
	require.Nil(t, err)
	body = readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "$102.12")
}

func TestHandlerWriteJSONEncodeError(t *testing.T) {
	var logs strings.Builder
	h, err := NewHandler(&countingSource{}, &Options{
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})
	require.Nil(t, err)

	rec := httptest.NewRecorder()
	h.writeJSON(rec, http.StatusOK, map[string]float64{"predicted_cost": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEqual(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.String())
	assert.Contains(t, logs.String(), "unable to encode response")

	rec = httptest.NewRecorder()
	h.writeJSON(rec, http.StatusCreated, map[string]float64{"predicted_cost": 102.12})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"predicted_cost":102.12}`, rec.Body.String())
}

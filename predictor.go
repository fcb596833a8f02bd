// Package utilitycost fits a linear model of monthly utility cost over customer type, region,
// building area and occupant count, and serves point estimates from it.
package utilitycost

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-utilitycost/dataset"
	"github.com/aouyang1/go-utilitycost/feature"
	"github.com/aouyang1/go-utilitycost/linearmodel"
	mat_ "github.com/aouyang1/go-utilitycost/mat"
	"github.com/aouyang1/go-utilitycost/stats"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrUntrained           = errors.New("predictor has not been fit")
	ErrNoDataset           = errors.New("no dataset to fit")
	ErrNoRequests          = errors.New("no requests to predict")
	ErrNoOptionsInModel    = errors.New("no options set in model")
	ErrNoTrainingData      = errors.New("no training data available")
	ErrNoModelCoefficients = errors.New("no model coefficients")
	ErrNonFiniteEstimate   = errors.New("estimate is not a finite number")
)

var (
	categoricalFields = []string{dataset.FieldCustomerType, dataset.FieldRegion}
	numericFields     = []string{dataset.FieldArea, dataset.FieldOccupants}
)

// Predictor owns the fitted encoder and regression model. It is read only after Fit and safe
// for concurrent predictions.
type Predictor struct {
	opt *Options

	encoder *feature.OneHotEncoder
	model   *linearmodel.OLSRegression

	trainingData *dataset.Dataset
	scores       *Scores
	summary      *stats.Summary
	residuals    []float64
	outliers     []int
	trained      bool
}

// New creates a Predictor using the provided options. If no options are provided a default is
// used.
func New(opt *Options) (*Predictor, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid options, %w", err)
	}
	return &Predictor{
		opt: opt,
	}, nil
}

// NewFromModel creates a Predictor from a model previously returned by Model. The result
// predicts immediately but carries no training data.
func NewFromModel(m Model) (*Predictor, error) {
	if m.Options == nil {
		return nil, ErrNoOptionsInModel
	}
	opt, err := m.Options.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid model options, %w", err)
	}

	encoder, err := feature.NewOneHotEncoderFromModel(m.Encoder)
	if err != nil {
		return nil, fmt.Errorf("unable to load encoder, %w", err)
	}
	if err := m.Weights.matchLabels(encoder.Labels()); err != nil {
		return nil, err
	}

	p := &Predictor{
		opt:     opt,
		encoder: encoder,
		model:   linearmodel.NewOLSRegressionFromWeights(m.Weights.Intercept, m.Weights.Coefficients()),
		scores:  m.Scores,
		summary: m.Summary,
		trained: true,
	}
	return p, nil
}

// Fit learns the category vocabulary and the regression weights from every record of the
// dataset
func (p *Predictor) Fit(ds *dataset.Dataset) error {
	if ds.Len() == 0 {
		return ErrNoDataset
	}
	records := ds.Records()
	rows := make([]feature.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, recordRow(r))
	}
	costs := ds.Costs()

	encoder := feature.NewOneHotEncoder(categoricalFields, numericFields)
	if err := encoder.Fit(rows); err != nil {
		return fmt.Errorf("unable to fit encoder, %w", err)
	}
	x, err := encoder.Transform(rows)
	if err != nil {
		return fmt.Errorf("unable to encode training data, %w", err)
	}

	model, err := linearmodel.NewOLSRegression(p.opt.OLSOptions)
	if err != nil {
		return fmt.Errorf("unable to initialize model, %w", err)
	}
	if err := model.Fit(x, mat_.NewColVector(costs)); err != nil {
		return fmt.Errorf("unable to fit model, %w", err)
	}

	predicted, err := model.Predict(x)
	if err != nil {
		return fmt.Errorf("unable to predict training data, %w", err)
	}
	scores, err := NewScores(predicted, costs)
	if err != nil {
		return fmt.Errorf("unable to score fit, %w", err)
	}
	summary, err := stats.Summarize(costs)
	if err != nil {
		return fmt.Errorf("unable to summarize costs, %w", err)
	}

	residuals := make([]float64, len(costs))
	floats.SubTo(residuals, costs, predicted)

	var outliers []int
	if oo := p.opt.OutlierOptions; oo != nil {
		outliers = stats.DetectOutliers(residuals, oo.LowerPercentile, oo.UpperPercentile, oo.TukeyFactor)
	}

	p.encoder = encoder
	p.model = model
	p.trainingData = ds.Copy()
	p.scores = scores
	p.summary = &summary
	p.residuals = residuals
	p.outliers = outliers
	p.trained = true
	return nil
}

// Predict estimates the monthly cost of a single request. No range validation is performed
// here, see Request.Validate.
func (p *Predictor) Predict(req Request) (float64, error) {
	return p.PredictRow(req.Row())
}

// PredictRow estimates the monthly cost of an already framed row. Rows whose field names do
// not match the fitted schema return feature.ErrShapeMismatch.
func (p *Predictor) PredictRow(row feature.Row) (float64, error) {
	res, err := p.predictRows([]feature.Row{row})
	if err != nil {
		return 0, err
	}
	return res[0], nil
}

// PredictBatch estimates the monthly cost of every request in order
func (p *Predictor) PredictBatch(reqs []Request) ([]float64, error) {
	if len(reqs) == 0 {
		return nil, ErrNoRequests
	}
	rows := make([]feature.Row, 0, len(reqs))
	for _, req := range reqs {
		rows = append(rows, req.Row())
	}
	return p.predictRows(rows)
}

func (p *Predictor) predictRows(rows []feature.Row) ([]float64, error) {
	if p == nil || !p.trained {
		return nil, ErrUntrained
	}
	x, err := p.encoder.Transform(rows)
	if err != nil {
		return nil, fmt.Errorf("unable to encode request, %w", err)
	}
	res, err := p.model.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("unable to run inference, %w", err)
	}
	return res, nil
}

// Evaluate predicts the request and places the estimate on the observed cost range. Inputs
// large enough to overflow the estimate return ErrNonFiniteEstimate.
func (p *Predictor) Evaluate(req Request) (*Result, error) {
	val, err := p.Predict(req)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return nil, fmt.Errorf("got %v, %w", val, ErrNonFiniteEstimate)
	}
	return newResult(req, val, p.Summary()), nil
}

// Intercept returns the intercept of the fitted model
func (p *Predictor) Intercept() float64 {
	if p == nil || p.model == nil {
		return 0
	}
	return p.model.Intercept()
}

// Coefficients returns the model weights keyed by the string representation of each feature
// label
func (p *Predictor) Coefficients() (map[string]float64, error) {
	if p == nil || !p.trained {
		return nil, ErrUntrained
	}
	names := p.encoder.Labels().Strings()
	coef := p.model.Coef()
	if len(names) == 0 || len(coef) == 0 {
		return nil, ErrNoModelCoefficients
	}
	out := make(map[string]float64, len(coef))
	for i, c := range coef {
		out[names[i]] = c
	}
	return out, nil
}

// ModelEq returns the linear equation of the model in the format of y ~ b+w1*x1+w2*x2...
// Zero weights are omitted.
func (p *Predictor) ModelEq() (string, error) {
	if p == nil || !p.trained {
		return "", ErrUntrained
	}
	eq := fmt.Sprintf("y ~ %.2f", p.Intercept())
	labels := p.encoder.Labels().Strings()
	for i, w := range p.model.Coef() {
		if w == 0 {
			continue
		}
		eq += fmt.Sprintf("%+.2f*%s", w, labels[i])
	}
	return eq, nil
}

// Scores returns the fit scores of the model over its training data
func (p *Predictor) Scores() Scores {
	if p == nil || p.scores == nil {
		return Scores{}
	}
	return *p.scores
}

// Summary returns the summary statistics of the training costs
func (p *Predictor) Summary() stats.Summary {
	if p == nil || p.summary == nil {
		return stats.Summary{}
	}
	return *p.summary
}

// TrainingData returns the dataset the model was fit with
func (p *Predictor) TrainingData() *dataset.Dataset {
	if p == nil {
		return nil
	}
	return p.trainingData
}

// Residuals returns the difference between each training cost and its fitted value
func (p *Predictor) Residuals() []float64 {
	if p == nil {
		return nil
	}
	out := make([]float64, len(p.residuals))
	copy(out, p.residuals)
	return out
}

// Outliers returns the training record indices whose residual lies outside of the tukey fence
func (p *Predictor) Outliers() []int {
	if p == nil {
		return nil
	}
	out := make([]int, len(p.outliers))
	copy(out, p.outliers)
	return out
}

// Vocabulary returns the known values of a categorical field in encoding order
func (p *Predictor) Vocabulary(field string) ([]string, error) {
	if p == nil || !p.trained {
		return nil, ErrUntrained
	}
	return p.encoder.Vocabulary(field)
}

// Options returns the options the predictor was created with
func (p *Predictor) Options() Options {
	if p == nil || p.opt == nil {
		return Options{}
	}
	return *p.opt
}

// Model returns a serializeable snapshot of the options, encoder vocabulary and weights which
// can initialize a new Predictor without refitting.
func (p *Predictor) Model() (Model, error) {
	if p == nil || !p.trained {
		return Model{}, ErrUntrained
	}
	encModel, err := p.encoder.Model()
	if err != nil {
		return Model{}, fmt.Errorf("unable to fetch encoder model, %w", err)
	}

	labels := p.encoder.Labels().Labels()
	coef := p.model.Coef()
	fws := make([]FeatureWeight, 0, len(coef))
	for i, c := range coef {
		fws = append(fws, NewFeatureWeight(labels[i], c))
	}

	m := Model{
		Options: p.opt,
		Encoder: encModel,
		Weights: Weights{
			Intercept: p.model.Intercept(),
			Coef:      fws,
		},
		Scores:  p.scores,
		Summary: p.summary,
	}
	return m, nil
}

// services/delay_model.go
package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/go-gota/gota/dataframe"
	"github.com/rs/zerolog/log"

	"github.com/ndelgado/flight-delay-api/config"
	"github.com/ndelgado/flight-delay-api/ml"
	"github.com/ndelgado/flight-delay-api/models"
	"github.com/ndelgado/flight-delay-api/pipeline"
)

var (
	// ErrMissingColumns is a caller-input problem: the batch lacks one of the
	// required categorical columns.
	ErrMissingColumns = errors.New("required columns OPERA, TIPOVUELO and MES are missing from the input data")
	// ErrModelNotLoaded is an availability problem: no classifier is in memory
	// and none was recoverable from storage.
	ErrModelNotLoaded = errors.New("no trained model is loaded")
	// ErrEmptyBatch rejects zero-row inputs before the pipeline runs.
	ErrEmptyBatch = errors.New("input batch contains no records")
)

// DelayModel owns the trained classifier and the preprocessing pipeline in
// front of it. One instance per process; the classifier is mutable shared
// state replaced wholesale by Fit, so access goes through a RWMutex (Fit
// writes, Predict reads). The pipeline functions themselves are pure.
type DelayModel struct {
	mu        sync.RWMutex
	clf       ml.Classifier
	localPath string
	training  config.TrainingConfig
}

// NewDelayModel constructs the model and tries the given sources in order
// until one yields a classifier. Every source answers found/not-found; errors
// count as not-found. When all sources come up empty the model starts unset
// and Predict fails until a Fit succeeds in-process.
func NewDelayModel(localPath string, training config.TrainingConfig, sources ...ModelSource) *DelayModel {
	m := &DelayModel{localPath: localPath, training: training}
	for _, src := range sources {
		clf, found := src.Load()
		if found {
			log.Info().Str("source", src.Name()).Msg("model loaded")
			m.clf = clf
			return m
		}
	}
	log.Warn().Msg("no trained model found; predictions unavailable until a fit completes")
	return m
}

// Loaded reports whether a classifier is currently available.
func (m *DelayModel) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.clf != nil
}

// Preprocess turns raw records into the frozen 10-column feature frame. It is
// the single entry point shared by training and serving, which is what keeps
// the two featurization paths from drifting apart. With a non-empty
// targetColumn (training mode) it additionally derives delay labels from the
// raw records and returns them as a one-column frame; in serving mode the
// target is nil.
func (m *DelayModel) Preprocess(records []models.FlightRecord, targetColumn string) (dataframe.DataFrame, *dataframe.DataFrame, error) {
	if len(records) == 0 {
		return dataframe.DataFrame{}, nil, ErrEmptyBatch
	}
	for i, rec := range records {
		if !rec.HasRequiredColumns() {
			return dataframe.DataFrame{}, nil, fmt.Errorf("record %d: %w", i, ErrMissingColumns)
		}
	}

	features := pipeline.Reconcile(pipeline.Encode(records), pipeline.Top10Features)
	if err := features.Error(); err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("failed to build feature frame: %w", err)
	}

	if targetColumn == "" {
		return features, nil, nil
	}
	target := pipeline.TargetFrame(pipeline.DelayLabels(records), targetColumn)
	return features, &target, nil
}

// Fit trains a fresh classifier and makes it the owned one.
//
// A seeded 33% holdout is split off purely for the logged diagnostics; it
// plays no part in hyperparameter selection or early stopping. The class
// imbalance factor (negatives/positives on the training partition) is passed
// to the classifier as the positive-class weight. The new classifier replaces
// the old one unconditionally and is persisted to the local path; a failed
// save is returned as an error because training does not count as complete
// until the result would survive a restart. The in-memory classifier is still
// swapped in either way, so serving continues.
func (m *DelayModel) Fit(features dataframe.DataFrame, target dataframe.DataFrame) error {
	y, err := target.Col(target.Names()[0]).Int()
	if err != nil {
		return fmt.Errorf("target column is not integer-valued: %w", err)
	}
	X := pipeline.Matrix(features)
	if len(X) != len(y) {
		return fmt.Errorf("features (%d rows) and target (%d rows) do not match", len(X), len(y))
	}

	trainIdx, holdIdx := m.split(len(X))

	xTrain, yTrain := gather(X, y, trainIdx)
	posWeight := imbalanceWeight(yTrain)

	clf := ml.NewBoostedTrees(ml.Params{
		Seed:           m.training.Seed,
		LearningRate:   m.training.LearningRate,
		NumRounds:      m.training.NumRounds,
		MaxDepth:       m.training.MaxDepth,
		Lambda:         1.0,
		MinChildWeight: 1.0,
	})
	if err := clf.Fit(xTrain, yTrain, posWeight); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	log.Info().Int("rows", len(xTrain)).Float64("pos_weight", posWeight).Msg("model trained")

	m.logDiagnostics(clf, X, y, holdIdx)

	m.mu.Lock()
	m.clf = clf
	m.mu.Unlock()

	if err := SaveLocal(m.localPath, clf); err != nil {
		return fmt.Errorf("model trained but not persisted: %w", err)
	}
	log.Info().Str("path", m.localPath).Msg("model saved")
	return nil
}

// Predict returns one 0/1 label per feature row, in input order. It fails
// with ErrModelNotLoaded when no classifier is available; that is an
// operational error, distinct from the validation errors Preprocess returns.
func (m *DelayModel) Predict(features dataframe.DataFrame) ([]int, error) {
	m.mu.RLock()
	clf := m.clf
	m.mu.RUnlock()
	if clf == nil {
		return nil, ErrModelNotLoaded
	}
	labels, err := clf.Predict(pipeline.Matrix(features))
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}
	return labels, nil
}

// split shuffles row indices with the fixed split seed and carves off the
// holdout fraction. The holdout may be empty for tiny batches.
func (m *DelayModel) split(n int) (train, holdout []int) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(m.training.SplitSeed))
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	nHold := int(float64(n) * m.training.HoldoutFraction)
	return idx[nHold:], idx[:nHold]
}

func (m *DelayModel) logDiagnostics(clf ml.Classifier, X [][]float64, y []int, holdIdx []int) {
	if len(holdIdx) == 0 {
		return
	}
	xHold, yHold := gather(X, y, holdIdx)
	preds, err := clf.Predict(xHold)
	if err != nil {
		log.Warn().Err(err).Msg("could not evaluate holdout partition")
		return
	}
	log.Info().Msgf("model performance:\n%s", ml.ClassificationReport(yHold, preds))
	log.Info().Msgf("confusion matrix:\n%s", ml.FormatConfusionMatrix(ml.ConfusionMatrix(yHold, preds)))
}

func gather(X [][]float64, y []int, idx []int) ([][]float64, []int) {
	xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for i, r := range idx {
		xs[i] = X[r]
		ys[i] = y[r]
	}
	return xs, ys
}

// imbalanceWeight returns negatives/positives, the multiplier that rebalances
// the minority positive class. Degenerate single-class targets fall back to a
// neutral weight.
func imbalanceWeight(y []int) float64 {
	var pos, neg int
	for _, label := range y {
		if label == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		log.Warn().Int("positives", pos).Int("negatives", neg).Msg("single-class training target; using neutral class weight")
		return 1
	}
	return float64(neg) / float64(pos)
}

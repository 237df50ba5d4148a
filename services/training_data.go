// services/training_data.go
package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jszwec/csvutil"
	"github.com/rs/zerolog/log"

	"github.com/ndelgado/flight-delay-api/database"
	"github.com/ndelgado/flight-delay-api/metrics"
	"github.com/ndelgado/flight-delay-api/models"
)

// LoadTrainingCSV decodes historical flight rows from CSV. Headers are mapped
// to FlightRecord through its csv tags; columns outside the record (the raw
// dataset carries many) are ignored.
func LoadTrainingCSV(r io.Reader) ([]models.FlightRecord, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}
	var records []models.FlightRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode training CSV: %w", err)
	}
	log.Info().Int("rows", len(records)).Msg("training CSV loaded")
	return records, nil
}

// TrainingResult summarizes one completed training run.
type TrainingResult struct {
	RunID     string
	Rows      int
	Positives int
	Duration  time.Duration
}

// TrainFromCSV runs the full offline training flow: load historical rows from
// path, preprocess them in training mode, fit the model, and record an audit
// row when a database is available. The audit write is best-effort.
func TrainFromCSV(path string, model *DelayModel) (*TrainingResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open training data: %w", err)
	}
	defer f.Close()

	records, err := LoadTrainingCSV(f)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	features, target, err := model.Preprocess(records, "delay")
	if err != nil {
		return nil, fmt.Errorf("preprocessing failed: %w", err)
	}
	if err := model.Fit(features, *target); err != nil {
		return nil, err
	}

	result := &TrainingResult{
		RunID:    uuid.NewString(),
		Rows:     len(records),
		Duration: time.Since(started),
	}
	labels, err := target.Col("delay").Int()
	if err == nil {
		for _, l := range labels {
			result.Positives += l
		}
	}

	metrics.TrainingRunsTotal.Inc()
	metrics.TrainingDuration.Observe(result.Duration.Seconds())

	if database.DB != nil {
		run := database.TrainingRun{
			ID:        result.RunID,
			Rows:      result.Rows,
			Positives: result.Positives,
			Duration:  result.Duration,
		}
		if err := database.RecordTrainingRun(run); err != nil {
			log.Warn().Err(err).Msg("could not record training run")
		}
	}

	log.Info().
		Str("run_id", result.RunID).
		Int("rows", result.Rows).
		Int("positives", result.Positives).
		Dur("duration", result.Duration).
		Msg("training run complete")
	return result, nil
}

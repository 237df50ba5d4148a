// pipeline/labels.go
package pipeline

import (
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog/log"

	"github.com/ndelgado/flight-delay-api/models"
)

// DelayThresholdMinutes separates on-time from delayed departures.
const DelayThresholdMinutes = 15.0

// minutesLate returns the signed difference Fecha-O minus Fecha-I in minutes,
// or NaN when either timestamp fails to parse.
func minutesLate(rec models.FlightRecord) float64 {
	actual, err := time.Parse(models.TimestampLayout, rec.ActualTime)
	if err != nil {
		log.Warn().Str("fecha_o", rec.ActualTime).Err(err).Msg("unparseable actual departure time")
		return math.NaN()
	}
	scheduled, err := time.Parse(models.TimestampLayout, rec.ScheduledTime)
	if err != nil {
		log.Warn().Str("fecha_i", rec.ScheduledTime).Err(err).Msg("unparseable scheduled departure time")
		return math.NaN()
	}
	return actual.Sub(scheduled).Minutes()
}

// DelayLabels derives the binary training target: 1 when the flight departed
// more than DelayThresholdMinutes late, else 0. A NaN difference (unparseable
// timestamp) fails the > comparison and lands in the negative class, so label
// derivation never fails a batch. That conflates "on-time" with "timestamp
// unparseable" and can under-report delays in corrupted history; the warning
// logs from minutesLate are the only trace of it.
func DelayLabels(records []models.FlightRecord) []int {
	labels := make([]int, len(records))
	for i, rec := range records {
		if minutesLate(rec) > DelayThresholdMinutes {
			labels[i] = 1
		}
	}
	return labels
}

// TargetFrame wraps labels in a single-column frame named after the target
// column, mirroring the shape of the feature frame.
func TargetFrame(labels []int, column string) dataframe.DataFrame {
	return dataframe.New(series.New(labels, series.Int, column))
}

// database/artifact_store.go
package database

import (
	"database/sql"
	"fmt"
	"time"
)

// GetModelArtifact fetches a serialized model blob by name from the artifact
// table. It is a read-only fallback source: the service never writes here
// (promotion of a locally trained model into the table is an operational
// step outside this process). Returns (nil, nil) when no artifact with that
// name exists.
func GetModelArtifact(name string) ([]byte, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var exists bool
	err := DB.QueryRow("SELECT EXISTS(SELECT 1 FROM model_artifacts WHERE name = ?)", name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check for model artifact %q: %w", name, err)
	}
	if !exists {
		return nil, nil
	}

	var blob []byte
	err = DB.QueryRow("SELECT artifact FROM model_artifacts WHERE name = ?", name).Scan(&blob)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read model artifact %q: %w", name, err)
	}
	return blob, nil
}

// TrainingRun is one audit row describing a completed fit.
type TrainingRun struct {
	ID        string
	Rows      int
	Positives int
	Duration  time.Duration
}

// RecordTrainingRun inserts a training-run audit row. Callers treat failures
// as best-effort: a lost audit row must not fail the training itself.
func RecordTrainingRun(run TrainingRun) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	_, err := DB.Exec(`
		INSERT INTO training_runs (id, row_count, positive_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`, run.ID, run.Rows, run.Positives, run.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to insert training run %s: %w", run.ID, err)
	}
	return nil
}

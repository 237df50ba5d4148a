// services/training_data_test.go
package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTrainingCSV_MapsHeadersToRecords(t *testing.T) {
	// SIGLADES is one of the many raw-dataset columns the model ignores.
	csvData := strings.Join([]string{
		"Fecha-I,Fecha-O,OPERA,TIPOVUELO,MES,SIGLADES",
		"2022-07-01 10:00:00,2022-07-01 10:30:00,Grupo LATAM,I,7,Antofagasta",
		"2022-03-02 08:00:00,2022-03-02 08:05:00,Sky Airline,N,3,Calama",
	}, "\n")

	records, err := LoadTrainingCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Grupo LATAM", records[0].Opera)
	assert.Equal(t, "I", records[0].TipoVuelo)
	assert.Equal(t, 7, records[0].Mes)
	assert.Equal(t, "2022-07-01 10:00:00", records[0].ScheduledTime)
	assert.Equal(t, "2022-07-01 10:30:00", records[0].ActualTime)

	assert.Equal(t, "Sky Airline", records[1].Opera)
	assert.Equal(t, 3, records[1].Mes)
}

func TestLoadTrainingCSV_BadInputFails(t *testing.T) {
	_, err := LoadTrainingCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = LoadTrainingCSV(strings.NewReader("OPERA,MES\nIberia"))
	assert.Error(t, err)
}

func TestTrainFromCSV_FullOfflineFlow(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")

	var sb strings.Builder
	sb.WriteString("Fecha-I,Fecha-O,OPERA,TIPOVUELO,MES\n")
	for i := 0; i < 30; i++ {
		sb.WriteString(fmt.Sprintf("2022-07-%02d 10:00:00,2022-07-%02d 10:30:00,American Airlines,I,7\n", i%28+1, i%28+1))
		sb.WriteString(fmt.Sprintf("2022-03-%02d 10:00:00,2022-03-%02d 10:05:00,American Airlines,N,3\n", i%28+1, i%28+1))
	}
	require.NoError(t, os.WriteFile(dataPath, []byte(sb.String()), 0o644))

	model := NewDelayModel(filepath.Join(dir, "model.gob"), testTrainingConfig())
	result, err := TrainFromCSV(dataPath, model)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 60, result.Rows)
	assert.Equal(t, 30, result.Positives)
	assert.True(t, model.Loaded())

	// The persisted blob is immediately reloadable.
	_, found := NewFileSource(filepath.Join(dir, "model.gob")).Load()
	assert.True(t, found)
}

func TestTrainFromCSV_MissingFileFails(t *testing.T) {
	model := newTestModel(t)
	_, err := TrainFromCSV(filepath.Join(t.TempDir(), "absent.csv"), model)
	assert.Error(t, err)
}

// pipeline/features_test.go
package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndelgado/flight-delay-api/models"
)

func TestTop10Features_Frozen(t *testing.T) {
	// The contract is load-bearing for every persisted model; a change here
	// must be a deliberate migration, not a refactor side effect.
	assert.Equal(t, []string{
		"OPERA_Latin American Wings",
		"MES_7",
		"MES_10",
		"OPERA_Grupo LATAM",
		"MES_12",
		"TIPOVUELO_I",
		"MES_4",
		"MES_11",
		"OPERA_Sky Airline",
		"OPERA_Copa Air",
	}, Top10Features)
}

func TestReconcile_AlwaysExactContractColumnsInOrder(t *testing.T) {
	batches := [][]models.FlightRecord{
		{{Opera: "Grupo LATAM", TipoVuelo: "N", Mes: 3}},
		{{Opera: "American Airlines", TipoVuelo: "N", Mes: 1}}, // nothing from the contract
		{
			{Opera: "Latin American Wings", TipoVuelo: "I", Mes: 7},
			{Opera: "Copa Air", TipoVuelo: "I", Mes: 12},
		},
	}
	for _, batch := range batches {
		out := Reconcile(Encode(batch), Top10Features)
		require.NoError(t, out.Error())
		assert.Equal(t, Top10Features, out.Names())
		assert.Equal(t, len(batch), out.Nrow())
	}
}

func TestReconcile_MissingCategoryZeroFilled(t *testing.T) {
	// No Sky Airline flights in the batch: the column must exist and be zero,
	// not be missing.
	out := Reconcile(Encode([]models.FlightRecord{
		{Opera: "Grupo LATAM", TipoVuelo: "I", Mes: 7},
		{Opera: "Grupo LATAM", TipoVuelo: "N", Mes: 7},
	}), Top10Features)
	require.NoError(t, out.Error())

	sky, err := out.Col("OPERA_Sky Airline").Int()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, sky)
}

func TestReconcile_OutOfContractColumnsDropped(t *testing.T) {
	// {Grupo LATAM, N, 3} encodes to OPERA_Grupo LATAM, TIPOVUELO_N and MES_3;
	// only the first is in the contract. The other two are silently projected
	// away and the remaining nine contract columns are zero.
	out := Reconcile(Encode([]models.FlightRecord{
		{Opera: "Grupo LATAM", TipoVuelo: "N", Mes: 3},
	}), Top10Features)
	require.NoError(t, out.Error())

	assert.NotContains(t, out.Names(), "TIPOVUELO_N")
	assert.NotContains(t, out.Names(), "MES_3")

	for _, name := range Top10Features {
		col, err := out.Col(name).Int()
		require.NoError(t, err)
		if name == "OPERA_Grupo LATAM" {
			assert.Equal(t, []int{1}, col)
		} else {
			assert.Equal(t, []int{0}, col, "column %s should be zero-filled", name)
		}
	}
}

func TestMatrix_PreservesRowAndColumnOrder(t *testing.T) {
	out := Reconcile(Encode([]models.FlightRecord{
		{Opera: "Latin American Wings", TipoVuelo: "N", Mes: 1},
		{Opera: "Copa Air", TipoVuelo: "I", Mes: 1},
	}), Top10Features)

	m := Matrix(out)
	require.Len(t, m, 2)
	require.Len(t, m[0], 10)

	// Row 0: only OPERA_Latin American Wings (contract index 0) is set.
	assert.Equal(t, 1.0, m[0][0])
	assert.Equal(t, 0.0, m[0][5])
	// Row 1: TIPOVUELO_I (index 5) and OPERA_Copa Air (index 9).
	assert.Equal(t, 1.0, m[1][5])
	assert.Equal(t, 1.0, m[1][9])
	assert.Equal(t, 0.0, m[1][0])
}

// pipeline/features.go
package pipeline

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Top10Features is the frozen feature contract the classifier is trained and
// served on: a hand-picked projection of the 37 possible one-hot columns
// (23 airlines + 2 flight types + 12 months) down to these 10, in this order.
// Training and serving must agree on it bit for bit, so it is a single
// declaration here rather than an implicit intersection anywhere else.
// Reordering or editing this list invalidates every persisted model.
var Top10Features = []string{
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
}

// Reconcile projects an encoded frame onto the contract columns: a contract
// column present in the input is kept as-is, an absent one (no flights of that
// category in the batch) becomes an all-zero column, and every input column
// outside the contract is dropped. The drop is a deliberate lossy projection,
// not an error. The result always has exactly len(contract) columns in
// contract order, which is what guarantees train/serve schema parity.
func Reconcile(encoded dataframe.DataFrame, contract []string) dataframe.DataFrame {
	n := encoded.Nrow()
	present := make(map[string]bool, encoded.Ncol())
	for _, name := range encoded.Names() {
		present[name] = true
	}

	cols := make([]series.Series, 0, len(contract))
	for _, name := range contract {
		if present[name] {
			cols = append(cols, encoded.Col(name))
		} else {
			cols = append(cols, series.New(make([]int, n), series.Int, name))
		}
	}
	return dataframe.New(cols...)
}

// Matrix converts a feature frame to the [][]float64 shape the classifier
// consumes, preserving row and column order.
func Matrix(df dataframe.DataFrame) [][]float64 {
	rows, cols := df.Nrow(), df.Ncol()
	m := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		m[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			m[i][j] = df.Elem(i, j).Float()
		}
	}
	return m
}

// pipeline/encoder.go
package pipeline

import (
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/ndelgado/flight-delay-api/models"
)

// Encode one-hot encodes the three categorical inputs of a batch. Each distinct
// observed value of OPERA, TIPOVUELO and MES yields one 0/1 indicator column
// named "{column}_{value}". The width of the result therefore varies from
// batch to batch; Reconcile is responsible for mapping it onto the frozen
// feature contract afterwards.
//
// Callers must have checked HasRequiredColumns on every record already; Encode
// itself has no missing-value policy.
func Encode(records []models.FlightRecord) dataframe.DataFrame {
	operas := make([]string, len(records))
	tipos := make([]string, len(records))
	meses := make([]string, len(records))
	for i, rec := range records {
		operas[i] = rec.Opera
		tipos[i] = rec.TipoVuelo
		meses[i] = strconv.Itoa(rec.Mes)
	}

	cols := oneHot("OPERA", operas)
	cols = append(cols, oneHot("TIPOVUELO", tipos)...)
	cols = append(cols, oneHot("MES", meses)...)
	return dataframe.New(cols...)
}

// oneHot builds one indicator series per distinct value, in sorted value order
// so encoding the same batch twice yields identical column order.
func oneHot(column string, values []string) []series.Series {
	distinct := make([]string, 0)
	seen := make(map[string]bool)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	sort.Strings(distinct)

	cols := make([]series.Series, 0, len(distinct))
	for _, v := range distinct {
		indicator := make([]int, len(values))
		for i, observed := range values {
			if observed == v {
				indicator[i] = 1
			}
		}
		cols = append(cols, series.New(indicator, series.Int, column+"_"+v))
	}
	return cols
}

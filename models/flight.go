// models/flight.go
package models

// TimestampLayout is the fixed format of Fecha-I and Fecha-O in historical data.
const TimestampLayout = "2006-01-02 15:04:05"

// FlightRecord is one raw flight row. Historical (training) rows carry the
// scheduled and actual departure timestamps; rows arriving through the API do
// not. CSV tags match the dataset headers exactly, JSON tags match the API.
type FlightRecord struct {
	Opera     string `csv:"OPERA" json:"OPERA"`
	TipoVuelo string `csv:"TIPOVUELO" json:"TIPOVUELO"`
	Mes       int    `csv:"MES" json:"MES"`

	// Training-only columns. Note: dataset headers contain a dash.
	ScheduledTime string `csv:"Fecha-I" json:"Fecha-I,omitempty"`
	ActualTime    string `csv:"Fecha-O" json:"Fecha-O,omitempty"`
}

// HasRequiredColumns reports whether the three categorical inputs the pipeline
// needs are populated. A zero Mes means the column was absent: valid months
// are 1-12 and the CSV decoder leaves missing ints at zero.
func (f FlightRecord) HasRequiredColumns() bool {
	return f.Opera != "" && f.TipoVuelo != "" && f.Mes != 0
}

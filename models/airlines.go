// models/airlines.go
package models

import "fmt"

// KnownAirlines is the closed set of operators the service accepts. Requests
// naming any other operator are rejected at the API boundary.
var KnownAirlines = []string{
	"Aerolineas Argentinas",
	"Aeromexico",
	"Air Canada",
	"Air France",
	"Alitalia",
	"American Airlines",
	"Austral",
	"Avianca",
	"British Airways",
	"Copa Air",
	"Delta Air",
	"Gol Trans",
	"Grupo LATAM",
	"Iberia",
	"JetSmart SPA",
	"K.L.M.",
	"Lacsa",
	"Latin American Wings",
	"Oceanair Linhas Aereas",
	"Plus Ultra Lineas Aereas",
	"Qantas Airways",
	"Sky Airline",
	"United Airlines",
}

// FlightTypes holds the valid TIPOVUELO values: N (national), I (international).
var FlightTypes = []string{"N", "I"}

func IsKnownAirline(name string) bool {
	for _, a := range KnownAirlines {
		if a == name {
			return true
		}
	}
	return false
}

func IsValidFlightType(t string) bool {
	return t == "N" || t == "I"
}

// Validate enforces the serving-boundary rules on an incoming flight. It runs
// before any preprocessing, so out-of-range values never reach the pipeline.
func (f FlightRecord) Validate() error {
	if f.Mes < 1 || f.Mes > 12 {
		return fmt.Errorf("MES must be between 1 and 12")
	}
	if !IsKnownAirline(f.Opera) {
		return fmt.Errorf("OPERA must be one of the known airlines, got %q", f.Opera)
	}
	if !IsValidFlightType(f.TipoVuelo) {
		return fmt.Errorf("TIPOVUELO must be either 'N' or 'I'")
	}
	return nil
}

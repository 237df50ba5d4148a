// models/api_models.go
package models

// PredictionRequest is the POST /predict body.
type PredictionRequest struct {
	Flights []FlightRecord `json:"flights"`
}

// PredictionResponse carries one 0/1 label per requested flight, in order.
type PredictionResponse struct {
	Predict []int `json:"predict"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// RetrainResponse summarizes an admin-triggered training run.
type RetrainResponse struct {
	Message    string `json:"message"`
	RunID      string `json:"run_id"`
	Rows       int    `json:"rows"`
	Positives  int    `json:"positives"`
	DurationMs int64  `json:"duration_ms"`
}

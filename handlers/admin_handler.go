// handlers/admin_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ndelgado/flight-delay-api/models"
	"github.com/ndelgado/flight-delay-api/services"
)

// Retrain forces a full retrain from the configured historical CSV. The new
// model replaces the served one and overwrites the persisted blob; there is
// no versioning or rollback. Fit and Predict on the same model are serialized
// internally, so serving keeps working while this runs.
func (h *Handler) Retrain(c *gin.Context) {
	if h.TrainingCSV == "" {
		respondError(c, http.StatusConflict, "no training CSV configured")
		return
	}

	result, err := services.TrainFromCSV(h.TrainingCSV, h.Model)
	if err != nil {
		log.Error().Err(err).Str("path", h.TrainingCSV).Msg("retrain failed")
		respondError(c, http.StatusInternalServerError, "retrain failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, models.RetrainResponse{
		Message:    "model retrained successfully",
		RunID:      result.RunID,
		Rows:       result.Rows,
		Positives:  result.Positives,
		DurationMs: result.Duration.Milliseconds(),
	})
}

// handlers/predict_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/ndelgado/flight-delay-api/database"
	"github.com/ndelgado/flight-delay-api/metrics"
	"github.com/ndelgado/flight-delay-api/models"
	"github.com/ndelgado/flight-delay-api/services"
)

// Handler wires the HTTP layer to the delay model. The model is the only
// stateful collaborator; everything else here is request plumbing.
type Handler struct {
	Model       *services.DelayModel
	TrainingCSV string
}

func NewHandler(model *services.DelayModel, trainingCSV string) *Handler {
	return &Handler{Model: model, TrainingCSV: trainingCSV}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestMetrics())

	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.POST("/predict", h.PostPredict)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/api/admin")
	admin.POST("/retrain", h.Retrain)
	return r
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Flight Delay Prediction API.",
	})
}

func (h *Handler) Health(c *gin.Context) {
	if database.DB != nil {
		if err := database.DB.Ping(); err != nil {
			log.Warn().Err(err).Msg("health check: database ping failed")
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "database connection error"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// PostPredict validates the batch against the enumerated category sets,
// featurizes it through the shared preprocessing entry point and returns one
// 0/1 label per flight. Validation failures are client errors and never reach
// the pipeline; a missing model is an availability error, not a client one.
func (h *Handler) PostPredict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Flights) == 0 {
		respondError(c, http.StatusBadRequest, "flights must not be empty")
		return
	}
	for i, flight := range req.Flights {
		if err := flight.Validate(); err != nil {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("flight %d: %s", i, err))
			return
		}
	}

	features, _, err := h.Model.Preprocess(req.Flights, "")
	if err != nil {
		if errors.Is(err, services.ErrMissingColumns) || errors.Is(err, services.ErrEmptyBatch) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("preprocessing failed")
		respondError(c, http.StatusInternalServerError, "preprocessing failed")
		return
	}

	predictions, err := h.Model.Predict(features)
	if err != nil {
		if errors.Is(err, services.ErrModelNotLoaded) {
			respondError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		log.Error().Err(err).Msg("prediction failed")
		respondError(c, http.StatusInternalServerError, "prediction failed")
		return
	}

	for _, p := range predictions {
		metrics.PredictionsTotal.WithLabelValues(strconv.Itoa(p)).Inc()
	}
	c.JSON(http.StatusOK, models.PredictionResponse{Predict: predictions})
}

func respondError(c *gin.Context, code int, message string) {
	log.Debug().Int("status", code).Str("error", message).Msg("request rejected")
	c.JSON(code, models.ErrorResponse{Error: message})
}

// requestMetrics records per-route latency. Uses the route template, not the
// raw URL, to keep label cardinality bounded.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

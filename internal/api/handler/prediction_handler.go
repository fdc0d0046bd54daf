package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/api/metrics"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/ports"
)

type PredictionHandler struct {
	estimator ports.EstimatorService
	history   ports.HistoryService
	artifacts ports.ArtifactStore
}

func NewPredictionHandler(estimator ports.EstimatorService, history ports.HistoryService, artifacts ports.ArtifactStore) *PredictionHandler {
	return &PredictionHandler{estimator: estimator, history: history, artifacts: artifacts}
}

type predictRequest struct {
	Locality string  `json:"locality" validate:"required"`
	Area     float64 `json:"area" validate:"required,gt=0"`
	Rooms    int     `json:"rooms" validate:"required,min=1,max=5"`
}

type predictResponse struct {
	Price  float64                  `json:"price"`
	Record *domain.PredictionRecord `json:"record"`
}

type dashboardResponse struct {
	Username  string  `json:"username"`
	Count     int     `json:"count"`
	LastPrice float64 `json:"last_price"`
}

// Predict computes a price estimate and appends it to the caller's history.
//
// @Summary      Estimate a house price
// @Tags         prediction
// @Accept       json
// @Produce      json
// @Param        body  body      predictRequest  true  "Property attributes"
// @Success      200   {object}  predictResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /predict [post]
func (h *PredictionHandler) Predict(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()

	price, err := h.estimator.Estimate(c.Request().Context(), req.Locality, req.Area, req.Rooms)
	if err != nil {
		return err
	}

	record, err := h.history.Record(c.Request().Context(), username, req.Locality, req.Area, req.Rooms, price)
	if err != nil {
		return err
	}

	metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	metrics.PredictionsTotal.WithLabelValues(h.localityLabel(req.Locality)).Inc()

	return c.JSON(http.StatusOK, predictResponse{Price: price, Record: record})
}

// History returns the caller's predictions in chronological order.
//
// @Summary      Prediction history
// @Tags         prediction
// @Produce      json
// @Success      200  {array}   domain.PredictionRecord
// @Failure      401  {object}  map[string]string
// @Router       /history [get]
func (h *PredictionHandler) History(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	records, err := h.history.History(c.Request().Context(), username)
	if err != nil {
		return err
	}
	if records == nil {
		records = []domain.PredictionRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

// Dashboard returns the caller's prediction count and most recent price.
//
// @Summary      Dashboard overview
// @Tags         prediction
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *PredictionHandler) Dashboard(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	summary, err := h.history.Summarize(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Username:  username,
		Count:     summary.Count,
		LastPrice: summary.LastPrice,
	})
}

// Localities lists the locality names the model was trained on.
//
// @Summary      Known localities
// @Tags         prediction
// @Produce      json
// @Success      200  {array}  string
// @Router       /localities [get]
func (h *PredictionHandler) Localities(c echo.Context) error {
	localities := h.artifacts.Localities()
	if localities == nil {
		localities = []string{}
	}
	return c.JSON(http.StatusOK, localities)
}

func (h *PredictionHandler) localityLabel(locality string) string {
	needle := strings.ToLower(locality)
	for _, name := range h.artifacts.Localities() {
		if name == needle {
			return "known"
		}
	}
	return "unknown"
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/ports"
)

type AdminHandler struct {
	history ports.HistoryService
}

func NewAdminHandler(history ports.HistoryService) *AdminHandler {
	return &AdminHandler{history: history}
}

type adminSummaryResponse struct {
	TotalUsers       int `json:"total_users"`
	TotalPredictions int `json:"total_predictions"`
}

// Summary aggregates totals across all users. Admin role only.
//
// @Summary      Store-wide totals
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminSummaryResponse
// @Failure      403  {object}  map[string]string
// @Router       /admin/summary [get]
func (h *AdminHandler) Summary(c echo.Context) error {
	summary, err := h.history.AdminSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminSummaryResponse{
		TotalUsers:       summary.TotalUsers,
		TotalPredictions: summary.TotalPredictions,
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/service/advisor"
	"github.com/mamadbah2/rancher/internal/service/reporting"
)

// AdvisorHandler exposes the best-effort advisory endpoints over HTTP. They
// always answer 200: failures degrade to fixed fallback values.
type AdvisorHandler struct {
	svc       *advisor.Service
	reporting *reporting.Service
	logger    *zap.Logger
}

// NewAdvisorHandler constructs the HTTP handler adapter for the advisor.
func NewAdvisorHandler(svc *advisor.Service, reportingSvc *reporting.Service, logger *zap.Logger) *AdvisorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisorHandler{svc: svc, reporting: reportingSvc, logger: logger}
}

// Insights returns strategic advice over the current financial summary.
func (h *AdvisorHandler) Insights(c *gin.Context) {
	summary := h.reporting.Summary()
	text := h.svc.GenerateInsights(c.Request.Context(), summary)
	c.JSON(http.StatusOK, gin.H{"insights": text})
}

// MarketPrice returns the current fat-cattle market quotation.
func (h *AdvisorHandler) MarketPrice(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.FetchMarketPrice(c.Request.Context()))
}

type scenariosRequest struct {
	CurrentPrice  float64 `json:"currentPrice" binding:"required"`
	CostPerAnimal float64 `json:"costPerAnimal"`
}

// Scenarios simulates market outcomes for the given price and cost basis.
// When no cost basis is supplied the dashboard average is used.
func (h *AdvisorHandler) Scenarios(c *gin.Context) {
	var req scenariosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid scenarios payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cost := req.CostPerAnimal
	if cost == 0 {
		cost = h.reporting.Dashboard().AvgCostPerAnimal
	}

	scenarios := h.svc.SimulateScenarios(c.Request.Context(), req.CurrentPrice, cost)
	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

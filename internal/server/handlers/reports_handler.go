package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/domain/models"
	"github.com/mamadbah2/rancher/internal/service/reporting"
	"github.com/mamadbah2/rancher/internal/state"
)

// ReportsHandler exposes the derived read-only views over HTTP.
type ReportsHandler struct {
	svc    *reporting.Service
	store  *state.Store
	logger *zap.Logger
}

// NewReportsHandler constructs the HTTP handler adapter for reports.
func NewReportsHandler(svc *reporting.Service, store *state.Store, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{svc: svc, store: store, logger: logger}
}

// Dashboard returns the herd-wide financial summary.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Dashboard())
}

// PeriodReport returns the profit and loss statement for an inclusive date
// range supplied as start/end query parameters (YYYY-MM-DD).
func (h *ReportsHandler) PeriodReport(c *gin.Context) {
	start, err := time.Parse(models.DateLayout, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(models.DateLayout, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be YYYY-MM-DD"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not precede start"})
		return
	}

	c.JSON(http.StatusOK, h.svc.PeriodReport(start, end))
}

// FeedProjection estimates feed usage and stock runway for a batch and item,
// with an optional intake override.
func (h *ReportsHandler) FeedProjection(c *gin.Context) {
	batchID := c.Query("batch_id")
	itemID := c.Query("item_id")
	if batchID == "" || itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch_id and item_id are required"})
		return
	}

	var override *float64
	if raw := c.Query("intake"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "intake must be a non-negative number"})
			return
		}
		override = &value
	}

	proj, err := h.svc.FeedProjection(batchID, itemID, override)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, proj)
}

// SaleProfit returns profit and ROI figures for one animal.
func (h *ReportsHandler) SaleProfit(c *gin.Context) {
	profit, err := h.svc.SaleProfit(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profit)
}

// Document returns the raw in-memory document.
func (h *ReportsHandler) Document(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/service/ledger"
)

// LedgerHandler exposes cost and inventory operations over HTTP.
type LedgerHandler struct {
	svc    *ledger.Service
	logger *zap.Logger
}

// NewLedgerHandler constructs the HTTP handler adapter for ledger operations.
func NewLedgerHandler(svc *ledger.Service, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{svc: svc, logger: logger}
}

// AddCost registers a new cost entry.
func (h *LedgerHandler) AddCost(c *gin.Context) {
	var in ledger.CostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid cost payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.svc.AddCost(in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// EditCost replaces the editable fields of a cost entry.
func (h *LedgerHandler) EditCost(c *gin.Context) {
	var in ledger.CostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid cost payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.svc.EditCost(c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteCost removes a cost entry.
func (h *LedgerHandler) DeleteCost(c *gin.Context) {
	if err := h.svc.DeleteCost(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddInventoryItem registers stock and its purchase expense in one step.
func (h *LedgerHandler) AddInventoryItem(c *gin.Context) {
	var in ledger.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid inventory payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.svc.AddInventoryItem(in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// EditInventoryItem updates item fields without touching cost entries.
func (h *LedgerHandler) EditInventoryItem(c *gin.Context) {
	var in ledger.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid inventory payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.svc.EditInventoryItem(c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteInventoryItem removes an item and its linked cost entries.
func (h *LedgerHandler) DeleteInventoryItem(c *gin.Context) {
	if err := h.svc.DeleteInventoryItem(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type consumeRequest struct {
	BatchID string   `json:"batchId" binding:"required"`
	ItemID  string   `json:"itemId" binding:"required"`
	Intake  *float64 `json:"intake"`
}

// ConsumeFeed registers one day of feeding for a batch, decrementing stock.
func (h *LedgerHandler) ConsumeFeed(c *gin.Context) {
	var req consumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid consume payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.svc.ConsumeFeed(req.BatchID, req.ItemID, req.Intake)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

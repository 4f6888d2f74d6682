package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/domain/models"
	"github.com/mamadbah2/rancher/internal/service/herd"
	"github.com/mamadbah2/rancher/internal/service/reporting"
)

// HerdHandler exposes animal and batch operations over HTTP.
type HerdHandler struct {
	svc       *herd.Service
	reporting *reporting.Service
	logger    *zap.Logger
}

// NewHerdHandler constructs the HTTP handler adapter for herd operations.
func NewHerdHandler(svc *herd.Service, reportingSvc *reporting.Service, logger *zap.Logger) *HerdHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HerdHandler{svc: svc, reporting: reportingSvc, logger: logger}
}

// AddAnimal registers a new animal in the herd.
func (h *HerdHandler) AddAnimal(c *gin.Context) {
	var in herd.AnimalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid animal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	animal, err := h.svc.AddAnimal(in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, animal)
}

// RegisterSale marks an active animal as sold and returns the resulting
// profit figures.
func (h *HerdHandler) RegisterSale(c *gin.Context) {
	var in herd.SaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	animal, err := h.svc.RegisterSale(c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	profit, err := h.reporting.SaleProfit(animal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"animal": animal, "profit": profit})
}

type retireRequest struct {
	Status models.AnimalStatus `json:"status" binding:"required"`
}

// RetireAnimal marks an active animal as deceased or discarded.
func (h *HerdHandler) RetireAnimal(c *gin.Context) {
	var req retireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid retire payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	animal, err := h.svc.RetireAnimal(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, animal)
}

// DeleteAnimal removes an animal together with its linked cost entries.
func (h *HerdHandler) DeleteAnimal(c *gin.Context) {
	if err := h.svc.DeleteAnimal(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AnimalCosts reports the cost total linked to an animal.
func (h *HerdHandler) AnimalCosts(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, gin.H{"animalId": id, "total": h.reporting.AnimalCosts(id)})
}

// CreateBatch registers a new batch.
func (h *HerdHandler) CreateBatch(c *gin.Context) {
	var in herd.BatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid batch payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, err := h.svc.CreateBatch(in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, batch)
}

// DeleteBatch removes a batch, reassigning active animals when a target is
// supplied via the reassign_to query parameter.
func (h *HerdHandler) DeleteBatch(c *gin.Context) {
	if err := h.svc.DeleteBatch(c.Param("id"), c.Query("reassign_to")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type transferRequest struct {
	To string `json:"to" binding:"required"`
}

// TransferAnimals moves every animal of the batch to another one.
func (h *HerdHandler) TransferAnimals(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid transfer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.TransferAllAnimals(c.Param("id"), req.To); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// BatchInvestment reports the cost total linked to a batch.
func (h *HerdHandler) BatchInvestment(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, gin.H{"batchId": id, "total": h.reporting.Investment(id)})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/rancher/internal/service/herd"
	"github.com/mamadbah2/rancher/internal/service/ledger"
)

// respondError maps domain sentinel errors onto HTTP statuses. Unknown ids
// are 404, validation failures 400, blocked operations 409.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, herd.ErrAnimalNotFound),
		errors.Is(err, herd.ErrBatchNotFound),
		errors.Is(err, ledger.ErrBatchNotFound),
		errors.Is(err, ledger.ErrCostNotFound),
		errors.Is(err, ledger.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, herd.ErrInvalidInput), errors.Is(err, ledger.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, herd.ErrAnimalNotActive),
		errors.Is(err, herd.ErrReassignmentRequired),
		errors.Is(err, ledger.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/rancher/internal/domain/models"
)

// ErrNotFound signals that the storage slot is empty or unreadable. Callers
// substitute the seed document instead of failing.
var ErrNotFound = errors.New("document not found")

// Repository persists the single application document. Implementations own
// exactly one storage slot and overwrite it wholesale on every save.
type Repository interface {
	Load(ctx context.Context) (models.Document, error)
	Save(ctx context.Context, doc models.Document) error
}

// Seed returns the document used on first run: two example batches and three
// example animals, everything else empty.
func Seed() models.Document {
	return models.Document{
		Animals: []models.Animal{
			{ID: "1", Tag: "B-001", BirthDate: "2023-01-15", Category: models.CategoryFattening, BatchID: "batch-1", Origin: models.OriginPurchase, PurchasePrice: 2500, Status: models.StatusActive},
			{ID: "2", Tag: "B-002", BirthDate: "2023-02-10", Category: models.CategoryFattening, BatchID: "batch-1", Origin: models.OriginPurchase, PurchasePrice: 2600, Status: models.StatusActive},
			{ID: "3", Tag: "B-003", BirthDate: "2022-11-05", Category: models.CategoryGrowing, BatchID: "batch-2", Origin: models.OriginBirth, PurchasePrice: 0, Status: models.StatusActive},
		},
		Batches: []models.Batch{
			{ID: "batch-1", Name: "Lote Confinamento A", Location: "Piquete 05", FarmID: "farm-1"},
			{ID: "batch-2", Name: "Lote Pasto Norte", Location: "Pasto 12", FarmID: "farm-1"},
		},
		Costs:        []models.CostEntry{},
		Transactions: []models.Transaction{},
		Inventory:    []models.InventoryItem{},
	}
}

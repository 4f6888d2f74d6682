package repository

import (
	"testing"

	"github.com/mamadbah2/rancher/internal/domain/models"
)

func TestSeed(t *testing.T) {
	doc := Seed()

	if len(doc.Batches) != 2 {
		t.Fatalf("seed batches = %d, want 2", len(doc.Batches))
	}
	if len(doc.Animals) != 3 {
		t.Fatalf("seed animals = %d, want 3", len(doc.Animals))
	}
	if len(doc.Costs) != 0 || len(doc.Inventory) != 0 || len(doc.Transactions) != 0 {
		t.Error("seed costs, inventory and transactions must start empty")
	}

	for _, a := range doc.Animals {
		if a.Status != models.StatusActive {
			t.Errorf("seed animal %s status = %q, want ACTIVE", a.ID, a.Status)
		}
		if doc.Batch(a.BatchID) == nil {
			t.Errorf("seed animal %s references unknown batch %q", a.ID, a.BatchID)
		}
	}
}

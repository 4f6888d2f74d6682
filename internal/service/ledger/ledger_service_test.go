package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/rancher/internal/domain/models"
	"github.com/mamadbah2/rancher/internal/repository"
	"github.com/mamadbah2/rancher/internal/state"
)

type memRepo struct {
	doc models.Document
}

func (m *memRepo) Load(_ context.Context) (models.Document, error) { return m.doc, nil }
func (m *memRepo) Save(_ context.Context, doc models.Document) error {
	m.doc = doc
	return nil
}

var _ repository.Repository = (*memRepo)(nil)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testDocument() models.Document {
	return models.Document{
		Animals: []models.Animal{
			{ID: "a1", Category: models.CategoryCalf, BatchID: "b1", Status: models.StatusActive},
			{ID: "a2", Category: models.CategoryFattening, BatchID: "b1", Status: models.StatusActive},
			{ID: "a3", Category: models.CategoryFattening, BatchID: "b1", Status: models.StatusActive},
			{ID: "a4", Category: models.CategoryFattening, BatchID: "b1", Status: models.StatusSold, SalePrice: 3000, SaleDate: "2024-05-01"},
		},
		Batches: []models.Batch{{ID: "b1", Name: "Lote A", FarmID: "farm-1"}},
		Inventory: []models.InventoryItem{
			{ID: "i1", Name: "Ração Engorda", Kind: models.ItemFeed, Quantity: 100, Unit: models.UnitKilogram, UnitCost: 2.5, DailyIntakeCalf: 2, DailyIntakeAdult: 8},
		},
		Costs: []models.CostEntry{
			{ID: "c1", Type: models.CostInput, Description: "Compra: Ração Engorda", Amount: 250, Date: "2024-05-01", InventoryItemID: "i1"},
		},
	}
}

func newTestService(t *testing.T, doc models.Document) (*Service, *state.Store) {
	t.Helper()
	store, err := state.Open(context.Background(), &memRepo{doc: doc}, nil)
	if err != nil {
		t.Fatalf("state.Open: %v", err)
	}
	svc := NewService(store, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func TestAddCostDerivesRecurringFlag(t *testing.T) {
	tests := []struct {
		name string
		typ  models.CostType
		want bool
	}{
		{name: "labor recurring", typ: models.CostLabor, want: true},
		{name: "fixed recurring", typ: models.CostFixed, want: true},
		{name: "input one-time", typ: models.CostInput, want: false},
		{name: "medicine one-time", typ: models.CostMedicine, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestService(t, testDocument())

			entry, err := svc.AddCost(CostInput{Type: tc.typ, Description: "x", Amount: 10, Date: "2024-06-01"})
			if err != nil {
				t.Fatalf("AddCost: %v", err)
			}
			if entry.IsRecurring != tc.want {
				t.Errorf("IsRecurring = %v, want %v", entry.IsRecurring, tc.want)
			}
		})
	}
}

func TestAddCostValidation(t *testing.T) {
	svc, _ := newTestService(t, testDocument())

	tests := []struct {
		name string
		in   CostInput
		want error
	}{
		{name: "unknown type", in: CostInput{Type: "Imposto", Description: "x", Date: "2024-06-01"}, want: ErrInvalidInput},
		{name: "missing description", in: CostInput{Type: models.CostFixed, Date: "2024-06-01"}, want: ErrInvalidInput},
		{name: "negative amount", in: CostInput{Type: models.CostFixed, Description: "x", Amount: -1, Date: "2024-06-01"}, want: ErrInvalidInput},
		{name: "bad date", in: CostInput{Type: models.CostFixed, Description: "x", Date: "junho"}, want: ErrInvalidInput},
		{name: "unknown animal link", in: CostInput{Type: models.CostFixed, Description: "x", Date: "2024-06-01", AnimalID: "nope"}, want: ErrInvalidInput},
		{name: "unknown batch link", in: CostInput{Type: models.CostFixed, Description: "x", Date: "2024-06-01", BatchID: "nope"}, want: ErrBatchNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddCost(tc.in); !errors.Is(err, tc.want) {
				t.Errorf("AddCost err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestEditCostRecomputesRecurring(t *testing.T) {
	svc, store := newTestService(t, testDocument())

	entry, err := svc.EditCost("c1", CostInput{Type: models.CostLabor, Description: "Diária", Amount: 150, Date: "2024-06-01"})
	if err != nil {
		t.Fatalf("EditCost: %v", err)
	}

	if !entry.IsRecurring {
		t.Error("labor cost must be recurring after edit")
	}
	snap := store.Snapshot()
	if stored := snap.Cost("c1"); stored.Amount != 150 || stored.Type != models.CostLabor {
		t.Errorf("edit not persisted: %+v", stored)
	}

	if _, err := svc.EditCost("nope", CostInput{Type: models.CostLabor, Description: "x", Date: "2024-06-01"}); !errors.Is(err, ErrCostNotFound) {
		t.Errorf("unknown cost err = %v, want ErrCostNotFound", err)
	}
}

func TestDeleteCost(t *testing.T) {
	svc, store := newTestService(t, testDocument())

	if err := svc.DeleteCost("c1"); err != nil {
		t.Fatalf("DeleteCost: %v", err)
	}
	snap := store.Snapshot()
	if snap.Cost("c1") != nil {
		t.Error("cost still present")
	}
	if err := svc.DeleteCost("c1"); !errors.Is(err, ErrCostNotFound) {
		t.Errorf("second delete err = %v, want ErrCostNotFound", err)
	}
}

func TestAddInventoryItemSynthesizesPurchaseCost(t *testing.T) {
	tests := []struct {
		name     string
		kind     models.ItemKind
		wantType models.CostType
	}{
		{name: "feed purchase is input cost", kind: models.ItemFeed, wantType: models.CostInput},
		{name: "medicine purchase is medicine cost", kind: models.ItemMedicine, wantType: models.CostMedicine},
		{name: "other purchase is input cost", kind: models.ItemOther, wantType: models.CostInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newTestService(t, testDocument())

			item, err := svc.AddInventoryItem(ItemInput{Name: "Suplemento", Kind: tc.kind, Quantity: 10, Unit: models.UnitKilogram, UnitCost: 5})
			if err != nil {
				t.Fatalf("AddInventoryItem: %v", err)
			}

			doc := store.Snapshot()
			var linked []models.CostEntry
			for _, c := range doc.Costs {
				if c.InventoryItemID == item.ID {
					linked = append(linked, c)
				}
			}

			if len(linked) != 1 {
				t.Fatalf("linked cost entries = %d, want exactly 1", len(linked))
			}
			cost := linked[0]
			if cost.Amount != 50 {
				t.Errorf("amount = %v, want 50", cost.Amount)
			}
			if cost.Type != tc.wantType {
				t.Errorf("type = %q, want %q", cost.Type, tc.wantType)
			}
			if cost.IsRecurring {
				t.Error("purchase cost must be one-time")
			}
			if cost.Date != fixedNow.Format(models.DateLayout) {
				t.Errorf("date = %q, want today", cost.Date)
			}
		})
	}
}

func TestEditInventoryItemDoesNotRegenerateCost(t *testing.T) {
	svc, store := newTestService(t, testDocument())

	before := len(store.Snapshot().Costs)
	if _, err := svc.EditInventoryItem("i1", ItemInput{Name: "Ração Engorda Plus", Kind: models.ItemFeed, Quantity: 80, Unit: models.UnitKilogram, UnitCost: 3}); err != nil {
		t.Fatalf("EditInventoryItem: %v", err)
	}

	doc := store.Snapshot()
	if len(doc.Costs) != before {
		t.Errorf("costs = %d, want %d (no regeneration)", len(doc.Costs), before)
	}
	item := doc.InventoryItem("i1")
	if item.Name != "Ração Engorda Plus" || item.Quantity != 80 {
		t.Errorf("item not updated: %+v", item)
	}
}

func TestDeleteInventoryItemCascadesCosts(t *testing.T) {
	svc, store := newTestService(t, testDocument())

	if err := svc.DeleteInventoryItem("i1"); err != nil {
		t.Fatalf("DeleteInventoryItem: %v", err)
	}

	doc := store.Snapshot()
	if doc.InventoryItem("i1") != nil {
		t.Error("item still present")
	}
	for _, c := range doc.Costs {
		if c.InventoryItemID == "i1" {
			t.Errorf("cost %s still references deleted item", c.ID)
		}
	}
}

func TestConsumeFeed(t *testing.T) {
	svc, store := newTestService(t, testDocument())

	// 1 calf at 2kg + 2 adults at 8kg = 18kg per day; the sold animal does
	// not eat.
	before := len(store.Snapshot().Costs)
	item, err := svc.ConsumeFeed("b1", "i1", nil)
	if err != nil {
		t.Fatalf("ConsumeFeed: %v", err)
	}

	if item.Quantity != 82 {
		t.Errorf("remaining quantity = %v, want 82", item.Quantity)
	}
	if item.LastStockUpdate != fixedNow.Format(time.RFC3339) {
		t.Errorf("lastStockUpdate = %q, want stamp at fixed clock", item.LastStockUpdate)
	}
	if got := len(store.Snapshot().Costs); got != before {
		t.Errorf("costs = %d, want %d (consumption is not an expense)", got, before)
	}
}

func TestConsumeFeedWithOverride(t *testing.T) {
	svc, _ := newTestService(t, testDocument())

	override := 5.0
	item, err := svc.ConsumeFeed("b1", "i1", &override)
	if err != nil {
		t.Fatalf("ConsumeFeed: %v", err)
	}
	// 3 active animals at the override rate.
	if item.Quantity != 85 {
		t.Errorf("remaining quantity = %v, want 85", item.Quantity)
	}
}

func TestConsumeFeedInsufficientStock(t *testing.T) {
	doc := testDocument()
	doc.Inventory[0].Quantity = 10
	svc, store := newTestService(t, doc)

	_, err := svc.ConsumeFeed("b1", "i1", nil)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("ConsumeFeed err = %v, want ErrInsufficientStock", err)
	}

	snap := store.Snapshot()
	if got := snap.InventoryItem("i1").Quantity; got != 10 {
		t.Errorf("quantity = %v, want 10 (no partial decrement)", got)
	}
}

func TestConsumeFeedUnknownRefs(t *testing.T) {
	svc, _ := newTestService(t, testDocument())

	if _, err := svc.ConsumeFeed("nope", "i1", nil); !errors.Is(err, ErrBatchNotFound) {
		t.Errorf("unknown batch err = %v, want ErrBatchNotFound", err)
	}
	if _, err := svc.ConsumeFeed("b1", "nope", nil); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("unknown item err = %v, want ErrItemNotFound", err)
	}
}

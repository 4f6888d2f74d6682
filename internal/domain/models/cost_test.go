package models

import "testing"

func TestIsRecurring(t *testing.T) {
	tests := []struct {
		name string
		typ  CostType
		want bool
	}{
		{name: "labor is recurring", typ: CostLabor, want: true},
		{name: "fixed is recurring", typ: CostFixed, want: true},
		{name: "input is one-time", typ: CostInput, want: false},
		{name: "medicine is one-time", typ: CostMedicine, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRecurring(tc.typ); got != tc.want {
				t.Errorf("IsRecurring(%q) = %v, want %v", tc.typ, got, tc.want)
			}
		})
	}
}

func TestDocumentLookups(t *testing.T) {
	doc := Document{
		Animals: []Animal{
			{ID: "a1", BatchID: "b1", Status: StatusActive, Category: CategoryCalf},
			{ID: "a2", BatchID: "b1", Status: StatusSold},
			{ID: "a3", BatchID: "b2", Status: StatusActive},
		},
		Batches:   []Batch{{ID: "b1"}, {ID: "b2"}},
		Inventory: []InventoryItem{{ID: "i1"}},
		Costs:     []CostEntry{{ID: "c1"}},
	}

	if doc.Animal("a2") == nil || doc.Animal("nope") != nil {
		t.Error("Animal lookup mismatch")
	}
	if doc.Batch("b2") == nil || doc.Batch("nope") != nil {
		t.Error("Batch lookup mismatch")
	}
	if doc.InventoryItem("i1") == nil || doc.InventoryItem("nope") != nil {
		t.Error("InventoryItem lookup mismatch")
	}
	if doc.Cost("c1") == nil || doc.Cost("nope") != nil {
		t.Error("Cost lookup mismatch")
	}

	active := doc.ActiveAnimalsInBatch("b1")
	if len(active) != 1 || active[0].ID != "a1" {
		t.Errorf("ActiveAnimalsInBatch(b1) = %v, want only a1", active)
	}
}

func TestStockValue(t *testing.T) {
	item := InventoryItem{Quantity: 12.5, UnitCost: 4}
	if got := item.StockValue(); got != 50 {
		t.Errorf("StockValue() = %v, want 50", got)
	}
}

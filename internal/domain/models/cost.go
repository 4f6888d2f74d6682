package models

// CostType categorizes an expense entry. The string values mirror the legacy
// stored documents and must round-trip unchanged.
type CostType string

const (
	CostLabor    CostType = "Mão de Obra"
	CostInput    CostType = "Insumo"
	CostMedicine CostType = "Medicamento"
	CostFixed    CostType = "Custo Fixo"
)

// CostTypes lists every cost category in report display order.
var CostTypes = []CostType{CostLabor, CostInput, CostMedicine, CostFixed}

// IsRecurring derives the recurring classification from the cost type. Labor
// and fixed costs repeat every month; inputs and medicine are one-off
// purchases. The flag is never taken from caller input.
func IsRecurring(t CostType) bool {
	return t == CostLabor || t == CostFixed
}

// CostEntry is a single expense, optionally traceable to an animal, a batch
// or the inventory item whose purchase originated it.
type CostEntry struct {
	ID              string   `json:"id"`
	Type            CostType `json:"type"`
	Description     string   `json:"description"`
	Amount          float64  `json:"amount"`
	Date            string   `json:"date"`
	AnimalID        string   `json:"animalId,omitempty"`
	BatchID         string   `json:"batchId,omitempty"`
	InventoryItemID string   `json:"inventoryItemId,omitempty"`
	Quantity        float64  `json:"quantity,omitempty"`
	Unit            string   `json:"unit,omitempty"`
	IsRecurring     bool     `json:"isRecurring"`
}

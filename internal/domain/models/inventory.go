package models

// ItemKind classifies stock held in inventory.
type ItemKind string

const (
	ItemFeed     ItemKind = "FEED"
	ItemMedicine ItemKind = "MEDICINE"
	ItemOther    ItemKind = "OTHER"
)

// Unit is the measurement unit of an inventory item.
type Unit string

const (
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"
	UnitDose     Unit = "dose"
	UnitPiece    Unit = "un"
)

// InventoryItem is a stocked supply. Feed items carry expected daily intake
// rates per head, split between calves and grown animals.
type InventoryItem struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Kind             ItemKind `json:"type"`
	Quantity         float64  `json:"quantity"`
	Unit             Unit     `json:"unit"`
	UnitCost         float64  `json:"unitCost"`
	DailyIntakeCalf  float64  `json:"dailyIntakeCalf,omitempty"`
	DailyIntakeAdult float64  `json:"dailyIntakeAdult,omitempty"`
	LastStockUpdate  string   `json:"lastStockUpdate,omitempty"`
}

// StockValue is the monetary value of the remaining stock.
func (i InventoryItem) StockValue() float64 {
	return i.Quantity * i.UnitCost
}

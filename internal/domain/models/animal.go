package models

// DateLayout is the day-resolution format used for every date stored in the
// document (birth dates, cost dates, sale dates).
const DateLayout = "2006-01-02"

// Category classifies an animal by growth stage. The string values mirror the
// legacy stored documents and must round-trip unchanged.
type Category string

const (
	CategoryCalf      Category = "Bezerro/Cria"
	CategoryGrowing   Category = "Gado/Recria"
	CategoryFattening Category = "Gado/Engorda"
)

// AnimalStatus tracks the lifecycle of a head of cattle. ACTIVE is the only
// non-terminal status.
type AnimalStatus string

const (
	StatusActive    AnimalStatus = "ACTIVE"
	StatusSold      AnimalStatus = "SOLD"
	StatusDeceased  AnimalStatus = "DECEASED"
	StatusDiscarded AnimalStatus = "TRASH"
)

// Origin records how an animal entered the herd.
type Origin string

const (
	OriginPurchase Origin = "COMPRA"
	OriginBirth    Origin = "NASCIMENTO"
)

// Animal represents a single head of cattle.
type Animal struct {
	ID            string       `json:"id"`
	Tag           string       `json:"tag,omitempty"`
	BirthDate     string       `json:"birthDate"`
	Category      Category     `json:"category"`
	BatchID       string       `json:"batchId"`
	Origin        Origin       `json:"origin"`
	PurchasePrice float64      `json:"purchasePrice"`
	WeightAtEntry float64      `json:"weightAtEntry,omitempty"`
	WeightAtExit  float64      `json:"weightAtExit,omitempty"`
	Status        AnimalStatus `json:"status"`
	SalePrice     float64      `json:"salePrice,omitempty"`
	SaleDate      string       `json:"saleDate,omitempty"`
}

// Batch groups animals that share a location for handling and cost splitting.
type Batch struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	FarmID   string `json:"farmId"`
}

package models

// TransactionType enumerates herd movement events. Reserved: the entity is
// kept for round-trip compatibility with existing documents but no operation
// writes it yet.
type TransactionType string

const (
	TransactionBuy       TransactionType = "Compra"
	TransactionSell      TransactionType = "Venda"
	TransactionSlaughter TransactionType = "Abate"
	TransactionDeath     TransactionType = "Morte"
	TransactionDonation  TransactionType = "Doação"
)

// Transaction is a reserved herd movement record.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	AnimalID    string          `json:"animalId"`
	Date        string          `json:"date"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// Document is the whole persisted application state: one per installation,
// loaded at startup and written back wholesale after every mutation.
type Document struct {
	Animals      []Animal        `json:"animals"`
	Batches      []Batch         `json:"batches"`
	Costs        []CostEntry     `json:"costs"`
	Transactions []Transaction   `json:"transactions"`
	Inventory    []InventoryItem `json:"inventory"`
}

// Animal returns a pointer into the document for the given id, or nil.
func (d *Document) Animal(id string) *Animal {
	for i := range d.Animals {
		if d.Animals[i].ID == id {
			return &d.Animals[i]
		}
	}
	return nil
}

// Batch returns a pointer into the document for the given id, or nil.
func (d *Document) Batch(id string) *Batch {
	for i := range d.Batches {
		if d.Batches[i].ID == id {
			return &d.Batches[i]
		}
	}
	return nil
}

// InventoryItem returns a pointer into the document for the given id, or nil.
func (d *Document) InventoryItem(id string) *InventoryItem {
	for i := range d.Inventory {
		if d.Inventory[i].ID == id {
			return &d.Inventory[i]
		}
	}
	return nil
}

// Cost returns a pointer into the document for the given id, or nil.
func (d *Document) Cost(id string) *CostEntry {
	for i := range d.Costs {
		if d.Costs[i].ID == id {
			return &d.Costs[i]
		}
	}
	return nil
}

// ActiveAnimalsInBatch lists the animals of a batch that are still on the
// farm.
func (d *Document) ActiveAnimalsInBatch(batchID string) []Animal {
	var out []Animal
	for _, a := range d.Animals {
		if a.BatchID == batchID && a.Status == StatusActive {
			out = append(out, a)
		}
	}
	return out
}

package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/domain/models"
	"github.com/mamadbah2/rancher/internal/state"
)

// ErrCostNotFound indicates the referenced cost entry id does not exist.
var ErrCostNotFound = errors.New("cost entry not found")

// ErrItemNotFound indicates the referenced inventory item id does not exist.
var ErrItemNotFound = errors.New("inventory item not found")

// ErrBatchNotFound indicates the referenced batch id does not exist.
var ErrBatchNotFound = errors.New("batch not found")

// ErrInsufficientStock indicates feed consumption would exceed the quantity
// on hand. The operation aborts without any partial decrement.
var ErrInsufficientStock = errors.New("insufficient stock for consumption")

// ErrInvalidInput indicates the payload failed validation before any
// mutation.
var ErrInvalidInput = errors.New("invalid input")

// Service implements the financial ledger mutations: cost entries, inventory
// and feed stock movements.
type Service struct {
	store  *state.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs a ledger service.
func NewService(store *state.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// CostInput carries the caller-editable fields of a cost entry. Any supplied
// recurring flag is ignored; the classification is derived from the type.
type CostInput struct {
	Type        models.CostType `json:"type" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date" binding:"required"`
	AnimalID    string          `json:"animalId"`
	BatchID     string          `json:"batchId"`
	Quantity    float64         `json:"quantity"`
	Unit        string          `json:"unit"`
}

// ItemInput carries the fields of an inventory item.
type ItemInput struct {
	Name             string          `json:"name" binding:"required"`
	Kind             models.ItemKind `json:"type" binding:"required"`
	Quantity         float64         `json:"quantity"`
	Unit             models.Unit     `json:"unit" binding:"required"`
	UnitCost         float64         `json:"unitCost"`
	DailyIntakeCalf  float64         `json:"dailyIntakeCalf"`
	DailyIntakeAdult float64         `json:"dailyIntakeAdult"`
}

// AddCost validates and appends a cost entry.
func (s *Service) AddCost(in CostInput) (models.CostEntry, error) {
	if err := validateCostInput(in); err != nil {
		return models.CostEntry{}, err
	}

	entry := costFromInput(in)
	entry.ID = uuid.NewString()

	err := s.store.Update(func(doc *models.Document) error {
		if err := checkCostLinks(doc, in); err != nil {
			return err
		}
		doc.Costs = append(doc.Costs, entry)
		return nil
	})
	if err != nil {
		return models.CostEntry{}, err
	}

	s.logger.Info("cost added", zap.String("id", entry.ID), zap.String("type", string(entry.Type)), zap.Float64("amount", entry.Amount))
	return entry, nil
}

// EditCost replaces the editable fields of an existing cost entry. The
// recurring flag is recomputed from the type, never trusted from input.
func (s *Service) EditCost(costID string, in CostInput) (models.CostEntry, error) {
	if err := validateCostInput(in); err != nil {
		return models.CostEntry{}, err
	}

	var updated models.CostEntry
	err := s.store.Update(func(doc *models.Document) error {
		existing := doc.Cost(costID)
		if existing == nil {
			return fmt.Errorf("%w: %s", ErrCostNotFound, costID)
		}
		if err := checkCostLinks(doc, in); err != nil {
			return err
		}

		entry := costFromInput(in)
		entry.ID = costID
		*existing = entry
		updated = entry
		return nil
	})
	if err != nil {
		return models.CostEntry{}, err
	}

	s.logger.Info("cost updated", zap.String("id", costID))
	return updated, nil
}

// DeleteCost removes a cost entry.
func (s *Service) DeleteCost(costID string) error {
	err := s.store.Update(func(doc *models.Document) error {
		if doc.Cost(costID) == nil {
			return fmt.Errorf("%w: %s", ErrCostNotFound, costID)
		}

		costs := doc.Costs[:0]
		for _, c := range doc.Costs {
			if c.ID != costID {
				costs = append(costs, c)
			}
		}
		doc.Costs = costs
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("cost deleted", zap.String("id", costID))
	return nil
}

// AddInventoryItem appends the item and synthesizes exactly one cost entry
// for the purchase, dated today and linked through the item id. Acquiring
// stock is itself an expense event.
func (s *Service) AddInventoryItem(in ItemInput) (models.InventoryItem, error) {
	if err := validateItemInput(in); err != nil {
		return models.InventoryItem{}, err
	}

	now := s.now()
	item := models.InventoryItem{
		ID:               uuid.NewString(),
		Name:             in.Name,
		Kind:             in.Kind,
		Quantity:         in.Quantity,
		Unit:             in.Unit,
		UnitCost:         in.UnitCost,
		DailyIntakeCalf:  in.DailyIntakeCalf,
		DailyIntakeAdult: in.DailyIntakeAdult,
		LastStockUpdate:  now.Format(time.RFC3339),
	}

	costType := models.CostInput
	if in.Kind == models.ItemMedicine {
		costType = models.CostMedicine
	}

	purchase := models.CostEntry{
		ID:              uuid.NewString(),
		Type:            costType,
		Description:     fmt.Sprintf("Compra: %s", in.Name),
		Amount:          in.Quantity * in.UnitCost,
		Date:            now.Format(models.DateLayout),
		InventoryItemID: item.ID,
		Quantity:        in.Quantity,
		Unit:            string(in.Unit),
		IsRecurring:     models.IsRecurring(costType),
	}

	err := s.store.Update(func(doc *models.Document) error {
		doc.Inventory = append(doc.Inventory, item)
		doc.Costs = append(doc.Costs, purchase)
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.logger.Info("inventory item added", zap.String("id", item.ID), zap.String("name", item.Name), zap.Float64("purchase_amount", purchase.Amount))
	return item, nil
}

// EditInventoryItem updates item fields only. No cost entry is regenerated;
// the purchase was recognized once, at acquisition time.
func (s *Service) EditInventoryItem(itemID string, in ItemInput) (models.InventoryItem, error) {
	if err := validateItemInput(in); err != nil {
		return models.InventoryItem{}, err
	}

	var updated models.InventoryItem
	err := s.store.Update(func(doc *models.Document) error {
		existing := doc.InventoryItem(itemID)
		if existing == nil {
			return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}

		existing.Name = in.Name
		existing.Kind = in.Kind
		existing.Quantity = in.Quantity
		existing.Unit = in.Unit
		existing.UnitCost = in.UnitCost
		existing.DailyIntakeCalf = in.DailyIntakeCalf
		existing.DailyIntakeAdult = in.DailyIntakeAdult
		existing.LastStockUpdate = s.now().Format(time.RFC3339)
		updated = *existing
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.logger.Info("inventory item updated", zap.String("id", itemID))
	return updated, nil
}

// DeleteInventoryItem removes the item and cascades deletion of its linked
// cost entries.
func (s *Service) DeleteInventoryItem(itemID string) error {
	err := s.store.Update(func(doc *models.Document) error {
		if doc.InventoryItem(itemID) == nil {
			return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}

		inventory := doc.Inventory[:0]
		for _, i := range doc.Inventory {
			if i.ID != itemID {
				inventory = append(inventory, i)
			}
		}
		doc.Inventory = inventory

		costs := doc.Costs[:0]
		for _, c := range doc.Costs {
			if c.InventoryItemID != itemID {
				costs = append(costs, c)
			}
		}
		doc.Costs = costs
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("inventory item deleted", zap.String("id", itemID))
	return nil
}

// DailyConsumption computes the feed quantity one day of feeding takes for a
// batch: calves at the calf rate, everything else at the adult rate. A
// non-nil override replaces both rates.
func DailyConsumption(doc *models.Document, batchID string, item models.InventoryItem, overrideIntake *float64) float64 {
	intakeCalf := item.DailyIntakeCalf
	intakeAdult := item.DailyIntakeAdult
	if overrideIntake != nil {
		intakeCalf = *overrideIntake
		intakeAdult = *overrideIntake
	}

	var calves, adults int
	for _, a := range doc.ActiveAnimalsInBatch(batchID) {
		if a.Category == models.CategoryCalf {
			calves++
		} else {
			adults++
		}
	}

	return float64(calves)*intakeCalf + float64(adults)*intakeAdult
}

// ConsumeFeed decrements the feed stock by one day of consumption for the
// batch. No cost entry is created: the expense was recognized when the stock
// was purchased, and recording it again would double-count.
func (s *Service) ConsumeFeed(batchID, itemID string, overrideIntake *float64) (models.InventoryItem, error) {
	var consumed models.InventoryItem
	err := s.store.Update(func(doc *models.Document) error {
		if doc.Batch(batchID) == nil {
			return fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
		}
		item := doc.InventoryItem(itemID)
		if item == nil {
			return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}

		daily := DailyConsumption(doc, batchID, *item, overrideIntake)
		if daily <= 0 {
			return fmt.Errorf("%w: computed daily consumption is zero", ErrInvalidInput)
		}
		if item.Quantity < daily {
			return fmt.Errorf("%w: need %.2f %s, have %.2f", ErrInsufficientStock, daily, item.Unit, item.Quantity)
		}

		item.Quantity -= daily
		item.LastStockUpdate = s.now().Format(time.RFC3339)
		consumed = *item
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.logger.Info("feed consumed", zap.String("batch", batchID), zap.String("item", itemID), zap.Float64("remaining", consumed.Quantity))
	return consumed, nil
}

func costFromInput(in CostInput) models.CostEntry {
	return models.CostEntry{
		Type:        in.Type,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        in.Date,
		AnimalID:    in.AnimalID,
		BatchID:     in.BatchID,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		IsRecurring: models.IsRecurring(in.Type),
	}
}

func checkCostLinks(doc *models.Document, in CostInput) error {
	if in.AnimalID != "" && doc.Animal(in.AnimalID) == nil {
		return fmt.Errorf("%w: animal %s", ErrInvalidInput, in.AnimalID)
	}
	if in.BatchID != "" && doc.Batch(in.BatchID) == nil {
		return fmt.Errorf("%w: %s", ErrBatchNotFound, in.BatchID)
	}
	return nil
}

func validateCostInput(in CostInput) error {
	switch in.Type {
	case models.CostLabor, models.CostInput, models.CostMedicine, models.CostFixed:
	default:
		return fmt.Errorf("%w: unknown cost type %q", ErrInvalidInput, in.Type)
	}

	if in.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if in.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	return nil
}

func validateItemInput(in ItemInput) error {
	switch in.Kind {
	case models.ItemFeed, models.ItemMedicine, models.ItemOther:
	default:
		return fmt.Errorf("%w: unknown item kind %q", ErrInvalidInput, in.Kind)
	}

	switch in.Unit {
	case models.UnitGram, models.UnitKilogram, models.UnitDose, models.UnitPiece:
	default:
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidInput, in.Unit)
	}

	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if in.UnitCost < 0 {
		return fmt.Errorf("%w: unit cost must not be negative", ErrInvalidInput)
	}

	return nil
}

package herd

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/domain/models"
	"github.com/mamadbah2/rancher/internal/state"
)

// ErrAnimalNotFound indicates the referenced animal id does not exist.
var ErrAnimalNotFound = errors.New("animal not found")

// ErrBatchNotFound indicates the referenced batch id does not exist.
var ErrBatchNotFound = errors.New("batch not found")

// ErrAnimalNotActive indicates a lifecycle transition was attempted on an
// animal that already left the herd.
var ErrAnimalNotActive = errors.New("animal is not active")

// ErrReassignmentRequired indicates a batch still holds active animals and a
// destination batch must be chosen before deletion.
var ErrReassignmentRequired = errors.New("batch has active animals, reassignment target required")

// ErrInvalidInput indicates the payload failed validation before any mutation.
var ErrInvalidInput = errors.New("invalid input")

// Service implements the herd mutation operations: animals and batches.
type Service struct {
	store  *state.Store
	logger *zap.Logger
}

// NewService constructs a herd service.
func NewService(store *state.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// AnimalInput carries the fields of a new animal.
type AnimalInput struct {
	Tag           string          `json:"tag"`
	BirthDate     string          `json:"birthDate" binding:"required"`
	Category      models.Category `json:"category" binding:"required"`
	BatchID       string          `json:"batchId" binding:"required"`
	Origin        models.Origin   `json:"origin" binding:"required"`
	PurchasePrice float64         `json:"purchasePrice"`
	WeightAtEntry float64         `json:"weightAtEntry"`
}

// SaleInput carries the fields of a sale registration.
type SaleInput struct {
	Price  float64 `json:"price" binding:"required"`
	Weight float64 `json:"weight"`
	Date   string  `json:"date" binding:"required"`
}

// BatchInput carries the fields of a new batch.
type BatchInput struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	FarmID   string `json:"farmId"`
}

// AddAnimal validates the input, assigns an id and appends the animal as
// ACTIVE.
func (s *Service) AddAnimal(in AnimalInput) (models.Animal, error) {
	if err := validateAnimalInput(in); err != nil {
		return models.Animal{}, err
	}

	animal := models.Animal{
		ID:            uuid.NewString(),
		Tag:           in.Tag,
		BirthDate:     in.BirthDate,
		Category:      in.Category,
		BatchID:       in.BatchID,
		Origin:        in.Origin,
		PurchasePrice: in.PurchasePrice,
		WeightAtEntry: in.WeightAtEntry,
		Status:        models.StatusActive,
	}

	err := s.store.Update(func(doc *models.Document) error {
		if doc.Batch(in.BatchID) == nil {
			return fmt.Errorf("%w: batch %s", ErrBatchNotFound, in.BatchID)
		}
		doc.Animals = append(doc.Animals, animal)
		return nil
	})
	if err != nil {
		return models.Animal{}, err
	}

	s.logger.Info("animal added", zap.String("id", animal.ID), zap.String("tag", animal.Tag), zap.String("batch", animal.BatchID))
	return animal, nil
}

// RegisterSale moves an active animal to SOLD and records price, exit weight
// and sale date.
func (s *Service) RegisterSale(animalID string, in SaleInput) (models.Animal, error) {
	if in.Price < 0 {
		return models.Animal{}, fmt.Errorf("%w: sale price must not be negative", ErrInvalidInput)
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return models.Animal{}, fmt.Errorf("%w: sale date must be YYYY-MM-DD", ErrInvalidInput)
	}

	var sold models.Animal
	err := s.store.Update(func(doc *models.Document) error {
		animal := doc.Animal(animalID)
		if animal == nil {
			return fmt.Errorf("%w: %s", ErrAnimalNotFound, animalID)
		}
		if animal.Status != models.StatusActive {
			return fmt.Errorf("%w: %s is %s", ErrAnimalNotActive, animalID, animal.Status)
		}

		animal.Status = models.StatusSold
		animal.SalePrice = in.Price
		animal.SaleDate = in.Date
		animal.WeightAtExit = in.Weight
		sold = *animal
		return nil
	})
	if err != nil {
		return models.Animal{}, err
	}

	s.logger.Info("sale registered", zap.String("id", sold.ID), zap.Float64("price", sold.SalePrice), zap.String("date", sold.SaleDate))
	return sold, nil
}

// RetireAnimal moves an active animal into one of the terminal non-sale
// states (deceased or discarded).
func (s *Service) RetireAnimal(animalID string, status models.AnimalStatus) (models.Animal, error) {
	if status != models.StatusDeceased && status != models.StatusDiscarded {
		return models.Animal{}, fmt.Errorf("%w: retire status must be %s or %s", ErrInvalidInput, models.StatusDeceased, models.StatusDiscarded)
	}

	var retired models.Animal
	err := s.store.Update(func(doc *models.Document) error {
		animal := doc.Animal(animalID)
		if animal == nil {
			return fmt.Errorf("%w: %s", ErrAnimalNotFound, animalID)
		}
		if animal.Status != models.StatusActive {
			return fmt.Errorf("%w: %s is %s", ErrAnimalNotActive, animalID, animal.Status)
		}

		animal.Status = status
		retired = *animal
		return nil
	})
	if err != nil {
		return models.Animal{}, err
	}

	s.logger.Info("animal retired", zap.String("id", retired.ID), zap.String("status", string(retired.Status)))
	return retired, nil
}

// DeleteAnimal removes the animal and cascades deletion of every cost entry
// referencing it.
func (s *Service) DeleteAnimal(animalID string) error {
	err := s.store.Update(func(doc *models.Document) error {
		if doc.Animal(animalID) == nil {
			return fmt.Errorf("%w: %s", ErrAnimalNotFound, animalID)
		}

		animals := doc.Animals[:0]
		for _, a := range doc.Animals {
			if a.ID != animalID {
				animals = append(animals, a)
			}
		}
		doc.Animals = animals

		costs := doc.Costs[:0]
		for _, c := range doc.Costs {
			if c.AnimalID != animalID {
				costs = append(costs, c)
			}
		}
		doc.Costs = costs
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("animal deleted", zap.String("id", animalID))
	return nil
}

// CreateBatch appends a new batch.
func (s *Service) CreateBatch(in BatchInput) (models.Batch, error) {
	if in.Name == "" {
		return models.Batch{}, fmt.Errorf("%w: batch name is required", ErrInvalidInput)
	}
	if in.FarmID == "" {
		in.FarmID = "farm-1"
	}

	batch := models.Batch{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Location: in.Location,
		FarmID:   in.FarmID,
	}

	err := s.store.Update(func(doc *models.Document) error {
		doc.Batches = append(doc.Batches, batch)
		return nil
	})
	if err != nil {
		return models.Batch{}, err
	}

	s.logger.Info("batch created", zap.String("id", batch.ID), zap.String("name", batch.Name))
	return batch, nil
}

// DeleteBatch removes a batch. When active animals remain and another batch
// exists, an explicit reassignment target is required; the animals are moved
// there before deletion. The sole remaining batch can always be deleted.
func (s *Service) DeleteBatch(batchID, reassignTo string) error {
	err := s.store.Update(func(doc *models.Document) error {
		if doc.Batch(batchID) == nil {
			return fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
		}

		active := doc.ActiveAnimalsInBatch(batchID)
		if len(active) > 0 && len(doc.Batches) > 1 {
			if reassignTo == "" {
				return fmt.Errorf("%w: batch %s holds %d active animals", ErrReassignmentRequired, batchID, len(active))
			}
			if reassignTo == batchID {
				return fmt.Errorf("%w: cannot reassign animals to the batch being deleted", ErrInvalidInput)
			}
			if doc.Batch(reassignTo) == nil {
				return fmt.Errorf("%w: %s", ErrBatchNotFound, reassignTo)
			}
			transferAll(doc, batchID, reassignTo)
		}

		batches := doc.Batches[:0]
		for _, b := range doc.Batches {
			if b.ID != batchID {
				batches = append(batches, b)
			}
		}
		doc.Batches = batches
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("batch deleted", zap.String("id", batchID), zap.String("reassigned_to", reassignTo))
	return nil
}

// TransferAllAnimals moves every animal of one batch to another.
func (s *Service) TransferAllAnimals(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("%w: source and destination batches are the same", ErrInvalidInput)
	}

	err := s.store.Update(func(doc *models.Document) error {
		if doc.Batch(fromID) == nil {
			return fmt.Errorf("%w: %s", ErrBatchNotFound, fromID)
		}
		if doc.Batch(toID) == nil {
			return fmt.Errorf("%w: %s", ErrBatchNotFound, toID)
		}
		transferAll(doc, fromID, toID)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("animals transferred", zap.String("from", fromID), zap.String("to", toID))
	return nil
}

func transferAll(doc *models.Document, fromID, toID string) {
	for i := range doc.Animals {
		if doc.Animals[i].BatchID == fromID {
			doc.Animals[i].BatchID = toID
		}
	}
}

func validateAnimalInput(in AnimalInput) error {
	switch in.Category {
	case models.CategoryCalf, models.CategoryGrowing, models.CategoryFattening:
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}

	switch in.Origin {
	case models.OriginPurchase, models.OriginBirth:
	default:
		return fmt.Errorf("%w: unknown origin %q", ErrInvalidInput, in.Origin)
	}

	if _, err := time.Parse(models.DateLayout, in.BirthDate); err != nil {
		return fmt.Errorf("%w: birth date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if in.PurchasePrice < 0 {
		return fmt.Errorf("%w: purchase price must not be negative", ErrInvalidInput)
	}

	return nil
}

package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/domain/models"
	"github.com/mamadbah2/rancher/internal/repository"
)

// Store owns the in-memory document for the running session. Every accepted
// mutation is persisted back through the repository; save failures are logged
// and never rolled back, the in-memory copy stays authoritative.
type Store struct {
	mu     sync.RWMutex
	doc    models.Document
	repo   repository.Repository
	logger *zap.Logger
}

// Open loads the document from the repository, substituting the seed document
// when the slot is empty or unreadable.
func Open(ctx context.Context, repo repository.Repository, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := repo.Load(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Info("no stored document, starting from seed data")
		doc = repository.Seed()
	} else if err != nil {
		return nil, err
	}

	return &Store{doc: doc, repo: repo, logger: logger}, nil
}

// Update applies a mutation to the document under lock. When the mutation
// succeeds the whole document is saved; a failed save only logs.
func (s *Store) Update(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(&s.doc); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.repo.Save(ctx, s.doc); err != nil {
		s.logger.Error("failed to persist document", zap.Error(err))
	}
	return nil
}

// View runs a read-only function against the document under a shared lock.
// The callback must not retain references past its return.
func (s *Store) View(fn func(doc models.Document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.doc)
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := s.doc
	doc.Animals = append([]models.Animal(nil), s.doc.Animals...)
	doc.Batches = append([]models.Batch(nil), s.doc.Batches...)
	doc.Costs = append([]models.CostEntry(nil), s.doc.Costs...)
	doc.Transactions = append([]models.Transaction(nil), s.doc.Transactions...)
	doc.Inventory = append([]models.InventoryItem(nil), s.doc.Inventory...)
	return doc
}

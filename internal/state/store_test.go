package state

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/rancher/internal/domain/models"
	"github.com/mamadbah2/rancher/internal/repository"
)

// memRepo is an in-memory repository double.
type memRepo struct {
	doc      models.Document
	hasDoc   bool
	saveErr  error
	saves    int
	lastSave models.Document
}

func (m *memRepo) Load(_ context.Context) (models.Document, error) {
	if !m.hasDoc {
		return models.Document{}, repository.ErrNotFound
	}
	return m.doc, nil
}

func (m *memRepo) Save(_ context.Context, doc models.Document) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.lastSave = doc
	return nil
}

func TestOpenFallsBackToSeed(t *testing.T) {
	store, err := Open(context.Background(), &memRepo{}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	doc := store.Snapshot()
	if len(doc.Animals) != 3 || len(doc.Batches) != 2 {
		t.Errorf("expected seed document, got %d animals, %d batches", len(doc.Animals), len(doc.Batches))
	}
}

func TestOpenUsesStoredDocument(t *testing.T) {
	repo := &memRepo{hasDoc: true, doc: models.Document{Animals: []models.Animal{{ID: "a1"}}}}
	store, err := Open(context.Background(), repo, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if doc := store.Snapshot(); len(doc.Animals) != 1 || doc.Animals[0].ID != "a1" {
		t.Errorf("expected stored document, got %+v", doc.Animals)
	}
}

func TestUpdatePersistsOnSuccess(t *testing.T) {
	repo := &memRepo{}
	store, _ := Open(context.Background(), repo, nil)

	err := store.Update(func(doc *models.Document) error {
		doc.Batches = append(doc.Batches, models.Batch{ID: "b3", Name: "Novo"})
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if repo.saves != 1 {
		t.Fatalf("saves = %d, want 1", repo.saves)
	}
	if len(repo.lastSave.Batches) != 3 {
		t.Errorf("persisted batches = %d, want 3", len(repo.lastSave.Batches))
	}
}

func TestUpdateDoesNotPersistOnFailure(t *testing.T) {
	repo := &memRepo{}
	store, _ := Open(context.Background(), repo, nil)

	wantErr := errors.New("rejected")
	err := store.Update(func(doc *models.Document) error {
		doc.Batches = nil
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Update err = %v, want %v", err, wantErr)
	}

	if repo.saves != 0 {
		t.Errorf("saves = %d, want 0", repo.saves)
	}
}

func TestUpdateKeepsInMemoryStateOnSaveError(t *testing.T) {
	repo := &memRepo{saveErr: errors.New("disk full")}
	store, _ := Open(context.Background(), repo, nil)

	err := store.Update(func(doc *models.Document) error {
		doc.Batches = append(doc.Batches, models.Batch{ID: "b3"})
		return nil
	})
	if err != nil {
		t.Fatalf("Update must not surface save errors, got %v", err)
	}

	if doc := store.Snapshot(); len(doc.Batches) != 3 {
		t.Errorf("in-memory batches = %d, want 3", len(doc.Batches))
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	store, _ := Open(context.Background(), &memRepo{}, nil)

	snap := store.Snapshot()
	snap.Animals[0].Tag = "mutated"

	if store.Snapshot().Animals[0].Tag == "mutated" {
		t.Error("snapshot mutation leaked into the store")
	}
}

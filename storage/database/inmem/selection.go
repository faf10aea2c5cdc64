package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/jkatembo/kambi/core/selection"
)

type selectionRepository struct {
	db *selectionTable
}

var _ selection.Repository = (*selectionRepository)(nil)

func NewSelectionRepository(db *DB) *selectionRepository {
	return &selectionRepository{db: db.selection}
}

// CreateSelection serializes the (classID, userEmail) uniqueness check and
// the insert under one lock, mirroring the store-level unique index of the
// real backend.
func (repo *selectionRepository) CreateSelection(_ context.Context, sel selection.Selection) (selection.Selection, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, s := range repo.db.table {
		if s.ClassID == sel.ClassID && s.UserEmail == sel.UserEmail {
			return selection.Selection{}, selection.ErrAlreadySelected
		}
	}
	sel.ID = uuid.New().String()
	repo.db.table[sel.ID] = &sel
	return sel, nil
}

func (repo *selectionRepository) FilterSelectionsByUser(_ context.Context, email string) ([]selection.Selection, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sels := make([]selection.Selection, 0)
	for _, sel := range repo.db.table {
		if sel.UserEmail == email {
			sels = append(sels, *sel)
		}
	}
	return sels, nil
}

func (repo *selectionRepository) DeleteSelection(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.table, id)
	return nil
}

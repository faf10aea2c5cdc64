package selection

import (
	"context"
	"errors"
	"time"

	"github.com/jkatembo/kambi/core"
)

var (
	// errors
	ErrNotFound        = errors.New("selection not found")
	ErrAlreadySelected = errors.New("class already selected")
)

type (
	Repository interface {
		// CreateSelection inserts sel and returns it with its store-generated ID.
		// It returns ErrAlreadySelected when the (classID, userEmail) pair is
		// already persisted; uniqueness is enforced by the store, not a prior
		// lookup.
		CreateSelection(ctx context.Context, sel Selection) (Selection, error)
		FilterSelectionsByUser(ctx context.Context, email string) ([]Selection, error)
		DeleteSelection(ctx context.Context, id string) error
	}

	ServiceInterface interface {
		Add(ctx context.Context, ns NewSelection) (Selection, error)
		QueryByUser(ctx context.Context, email string) ([]Selection, error)
		Delete(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add puts a class in the user's cart. Adding is idempotent on the
// (classID, userEmail) pair: a second add leaves the store unchanged and
// returns ErrAlreadySelected.
func (svc *Service) Add(ctx context.Context, ns NewSelection) (Selection, error) {
	sel := Selection{
		ClassID:   ns.ClassID,
		ClassName: ns.ClassName,
		Image:     ns.Image,
		Price:     ns.Price,
		UserEmail: ns.UserEmail,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateSelection(ctx, sel)
}

func (svc *Service) QueryByUser(ctx context.Context, email string) ([]Selection, error) {
	return svc.repo.FilterSelectionsByUser(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteSelection(ctx, id)
}

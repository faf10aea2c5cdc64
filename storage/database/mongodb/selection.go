package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jkatembo/kambi/core/selection"
	"github.com/jkatembo/kambi/storage/database"
)

type selectionDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClassID   string             `bson:"class_id"`
	ClassName string             `bson:"class_name"`
	Image     string             `bson:"image,omitempty"`
	Price     float64            `bson:"price"`
	UserEmail string             `bson:"user_email"`
	CreatedAt time.Time          `bson:"created_at"`
}

func newSelectionDoc(sel selection.Selection) selectionDoc {
	return selectionDoc{
		ClassID:   sel.ClassID,
		ClassName: sel.ClassName,
		Image:     sel.Image,
		Price:     sel.Price,
		UserEmail: sel.UserEmail,
		CreatedAt: sel.CreatedAt,
	}
}

func (doc selectionDoc) selection() selection.Selection {
	return selection.Selection{
		ID:        doc.ID.Hex(),
		ClassID:   doc.ClassID,
		ClassName: doc.ClassName,
		Image:     doc.Image,
		Price:     doc.Price,
		UserEmail: doc.UserEmail,
		CreatedAt: doc.CreatedAt,
	}
}

type selectionRepository struct {
	coll *mongo.Collection
}

var _ selection.Repository = (*selectionRepository)(nil)

func NewSelectionRepository(db *mongo.Database) *selectionRepository {
	return &selectionRepository{coll: db.Collection(database.SelectionCollection)}
}

func (repo *selectionRepository) CreateSelection(ctx context.Context, sel selection.Selection) (selection.Selection, error) {
	doc := newSelectionDoc(sel)
	res, err := repo.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return selection.Selection{}, selection.ErrAlreadySelected
		}
		return selection.Selection{}, errors.Wrap(err, "inserting selection")
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.selection(), nil
}

func (repo *selectionRepository) FilterSelectionsByUser(ctx context.Context, email string) ([]selection.Selection, error) {
	cur, err := repo.coll.Find(ctx, bson.M{"user_email": email})
	if err != nil {
		return nil, errors.Wrap(err, "querying selections")
	}
	var docs []selectionDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding selections")
	}
	sels := make([]selection.Selection, 0, len(docs))
	for _, doc := range docs {
		sels = append(sels, doc.selection())
	}
	return sels, nil
}

func (repo *selectionRepository) DeleteSelection(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return selection.ErrNotFound
	}
	if _, err = repo.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errors.Wrap(err, "deleting selection")
	}
	return nil
}

package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jkatembo/kambi/core/class"
	"github.com/jkatembo/kambi/storage/database"
)

type classDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	InstructorName  string             `bson:"instructor_name"`
	InstructorEmail string             `bson:"instructor_email"`
	Image           string             `bson:"image,omitempty"`
	Price           float64            `bson:"price"`
	Seats           int                `bson:"seats"`
	EnrolledCount   int                `bson:"enrolled_count"`
	Status          string             `bson:"status"`
	Feedback        string             `bson:"feedback,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func newClassDoc(cls class.Class) classDoc {
	return classDoc{
		Name:            cls.Name,
		InstructorName:  cls.InstructorName,
		InstructorEmail: cls.InstructorEmail,
		Image:           cls.Image,
		Price:           cls.Price,
		Seats:           cls.Seats,
		EnrolledCount:   cls.EnrolledCount,
		Status:          cls.Status,
		Feedback:        cls.Feedback,
		CreatedAt:       cls.CreatedAt,
		UpdatedAt:       cls.UpdatedAt,
	}
}

func (doc classDoc) class() class.Class {
	return class.Class{
		ID:              doc.ID.Hex(),
		Name:            doc.Name,
		InstructorName:  doc.InstructorName,
		InstructorEmail: doc.InstructorEmail,
		Image:           doc.Image,
		Price:           doc.Price,
		Seats:           doc.Seats,
		EnrolledCount:   doc.EnrolledCount,
		Status:          doc.Status,
		Feedback:        doc.Feedback,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

type classRepository struct {
	coll *mongo.Collection
}

var _ class.Repository = (*classRepository)(nil)

func NewClassRepository(db *mongo.Database) *classRepository {
	return &classRepository{coll: db.Collection(database.ClassCollection)}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls class.Class) (class.Class, error) {
	doc := newClassDoc(cls)
	res, err := repo.coll.InsertOne(ctx, doc)
	if err != nil {
		return class.Class{}, errors.Wrap(err, "inserting class")
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.class(), nil
}

func (repo *classRepository) QueryAllClasses(ctx context.Context) ([]class.Class, error) {
	return repo.filter(ctx, bson.M{})
}

func (repo *classRepository) FilterClassesByStatus(ctx context.Context, status string) ([]class.Class, error) {
	return repo.filter(ctx, bson.M{"status": status})
}

func (repo *classRepository) FilterClassesByInstructor(ctx context.Context, email string) ([]class.Class, error) {
	return repo.filter(ctx, bson.M{"instructor_email": email})
}

func (repo *classRepository) filter(ctx context.Context, query bson.M) ([]class.Class, error) {
	cur, err := repo.coll.Find(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	var docs []classDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding classes")
	}
	classes := make([]class.Class, 0, len(docs))
	for _, doc := range docs {
		classes = append(classes, doc.class())
	}
	return classes, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id string) (class.Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return class.Class{}, class.ErrNotFound
	}

	var doc classDoc
	if err = repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return class.Class{}, class.ErrNotFound
		}
		return class.Class{}, errors.Wrap(err, "finding class")
	}
	return doc.class(), nil
}

func (repo *classRepository) UpdateClass(ctx context.Context, id string, status, feedback *string) (class.Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return class.Class{}, class.ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if status != nil {
		set["status"] = *status
	}
	if feedback != nil {
		set["feedback"] = *feedback
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc classDoc
	if err = repo.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return class.Class{}, class.ErrNotFound
		}
		return class.Class{}, errors.Wrap(err, "updating class")
	}
	return doc.class(), nil
}

func (repo *classRepository) DeleteClass(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return class.ErrNotFound
	}
	if _, err = repo.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return nil
}

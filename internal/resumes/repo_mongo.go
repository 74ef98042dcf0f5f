package resumes

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding resumes.
const CollectionName = "resumes"

type insertOner interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// MongoRepo implements Repo on a MongoDB collection.
type MongoRepo struct {
	coll insertOner
}

// NewMongoRepo wraps the resumes collection of db.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection(CollectionName)}
}

type mongoResume struct {
	ID         primitive.ObjectID `bson:"_id"`
	Name       *string            `bson:"name,omitempty"`
	Email      *string            `bson:"email,omitempty"`
	Phone      *string            `bson:"phone,omitempty"`
	Summary    *string            `bson:"summary,omitempty"`
	Experience []Experience       `bson:"experience"`
	Education  []Education        `bson:"education"`
	Skills     []string           `bson:"skills"`
	CreatedAt  time.Time          `bson:"createdAt"`
	Version    int                `bson:"__v"`
}

// Insert stores doc under a new ObjectID.
func (m *MongoRepo) Insert(ctx context.Context, doc Resume) (Resume, error) {
	doc.normalize()
	rec := mongoResume{
		ID:         primitive.NewObjectID(),
		Name:       doc.Name,
		Email:      doc.Email,
		Phone:      doc.Phone,
		Summary:    doc.Summary,
		Experience: doc.Experience,
		Education:  doc.Education,
		Skills:     doc.Skills,
		CreatedAt:  doc.CreatedAt,
	}
	if _, err := m.coll.InsertOne(ctx, rec); err != nil {
		return Resume{}, err
	}
	doc.ID = rec.ID.Hex()
	return doc, nil
}

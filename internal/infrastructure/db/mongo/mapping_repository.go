package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

const mappingCollection = "mappings"

// MappingRepository stores mappings with the generated ID as _id, so the
// primary index rejects any reuse.
type MappingRepository struct {
	coll *mongo.Collection
}

func NewMappingRepository(db *mongo.Database) *MappingRepository {
	return &MappingRepository{coll: db.Collection(mappingCollection)}
}

type mongoMapping struct {
	ID        string `bson:"_id"`
	Value     string `bson:"value"`
	CreatedBy string `bson:"created_by,omitempty"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *MappingRepository) Insert(ctx context.Context, m *domain.Mapping) error {
	doc := mongoMapping{
		ID:        m.ID,
		Value:     m.Value,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrMappingExists
		}
		return fmt.Errorf("insert mapping: %w", err)
	}
	return nil
}

func (r *MappingRepository) FindByID(ctx context.Context, id string) (*domain.Mapping, error) {
	var doc mongoMapping
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMappingNotFound
		}
		return nil, fmt.Errorf("find mapping: %w", err)
	}

	return &domain.Mapping{
		ID:        doc.ID,
		Value:     doc.Value,
		CreatedBy: doc.CreatedBy,
		CreatedAt: time.Unix(doc.CreatedAt, 0).UTC(),
	}, nil
}

// Ping reports whether the deployment answers.
func (r *MappingRepository) Ping(ctx context.Context) error {
	return r.coll.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

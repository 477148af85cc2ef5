package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/catalog/domain"
	"github.com/dejobratic/storefront/internal/catalog/ports"
	"github.com/dejobratic/storefront/internal/docstore"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(docstore.CollectionProducts)}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("product %q not found", id)
		}
		return nil, apperr.Unavailable(err, "get product %q", id)
	}

	return &product, nil
}

func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	var products []domain.Product

	// The store caps in-set lookups, so large id sets go out in batches.
	for start := 0; start < len(ids); start += docstore.IDBatchSize {
		end := start + docstore.IDBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids[start:end]}})
		if err != nil {
			return nil, apperr.Unavailable(err, "query products by ids")
		}

		var batch []domain.Product
		if err := cursor.All(ctx, &batch); err != nil {
			return nil, apperr.Unavailable(err, "decode products by ids")
		}
		products = append(products, batch...)
	}

	return products, nil
}

func (r *Repository) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, bson.M{"featured": true, "active": true}, "list featured products")
}

func (r *Repository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return r.list(ctx, bson.M{"categoryId": categoryID, "active": true}, "list products by category")
}

func (r *Repository) list(ctx context.Context, filter bson.M, op string) ([]domain.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, apperr.Unavailable(err, "%s", op)
	}

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, apperr.Unavailable(err, "%s: decode", op)
	}

	return products, nil
}

func (r *Repository) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.Version = 1
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return nil, apperr.Unavailable(err, "insert product")
	}

	return &product, nil
}

func (r *Repository) Update(ctx context.Context, product domain.Product) error {
	product.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return apperr.Unavailable(err, "replace product %q", product.ID)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("product %q not found", product.ID)
	}

	return nil
}

func (r *Repository) CompareAndSwapStock(ctx context.Context, id string, expectedVersion int64, newStock int) error {
	filter := bson.M{"_id": id, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{"stock": newStock, "updatedAt": time.Now().UTC()},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return apperr.Unavailable(err, "compare-and-swap stock for product %q", id)
	}
	if result.MatchedCount == 0 {
		// Either the product vanished or another writer bumped the version.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ports.ErrStaleVersion
	}

	return nil
}

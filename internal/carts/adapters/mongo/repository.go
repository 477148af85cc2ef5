package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/carts/domain"
	"github.com/dejobratic/storefront/internal/docstore"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(docstore.CollectionCarts)}
}

func (r *Repository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("cart not found for user %q", userID)
		}
		return nil, apperr.Unavailable(err, "get cart for user %q", userID)
	}

	return &cart, nil
}

// Upsert writes the whole cart document keyed by user, stamping updatedAt.
func (r *Repository) Upsert(ctx context.Context, cart *domain.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.NewString()
	}
	cart.UpdatedAt = time.Now().UTC()

	filter := bson.M{"userId": cart.UserID}
	update := bson.M{"$set": cart}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return apperr.Unavailable(err, "upsert cart for user %q", cart.UserID)
	}

	return nil
}

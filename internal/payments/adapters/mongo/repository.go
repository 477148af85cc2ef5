package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/docstore"
	"github.com/dejobratic/storefront/internal/payments/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(docstore.CollectionPayments)}
}

// Create inserts the payment. The unique index on orderId turns a concurrent
// second attempt for the same order into a conflict instead of a double charge.
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) error {
	_, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("payment for order %q already exists", payment.OrderID)
		}
		return apperr.Unavailable(err, "create payment for order %q", payment.OrderID)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, payment *domain.Payment) error {
	payment.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": payment.ID}, payment)
	if err != nil {
		return apperr.Unavailable(err, "update payment %q", payment.ID)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("payment %q not found", payment.ID)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "payment %q not found", id)
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	return r.findOne(ctx, bson.M{"orderId": orderID}, "payment for order %q not found", orderID)
}

func (r *Repository) findOne(ctx context.Context, filter bson.M, notFoundFormat string, arg string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.collection.FindOne(ctx, filter).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(notFoundFormat, arg)
		}
		return nil, apperr.Unavailable(err, "get payment")
	}
	return &payment, nil
}

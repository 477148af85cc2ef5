package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/docstore"
	"github.com/dejobratic/storefront/internal/orders/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(docstore.CollectionOrders)}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	_, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("order number %q already exists", order.OrderNumber)
		}
		return apperr.Unavailable(err, "create order %q", order.ID)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "order %q not found", id)
}

func (r *Repository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"orderNumber": orderNumber}, "order with number %q not found", orderNumber)
}

func (r *Repository) findOne(ctx context.Context, filter bson.M, notFoundFormat string, arg string) (*domain.Order, error) {
	var order domain.Order
	err := r.collection.FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(notFoundFormat, arg)
		}
		return nil, apperr.Unavailable(err, "get order")
	}
	return &order, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.list(ctx, bson.M{"userId": userID}, opts, "list orders for user")
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	return r.list(ctx, bson.M{}, opts, "list recent orders")
}

func (r *Repository) list(ctx context.Context, filter bson.M, opts *options.FindOptions, op string) ([]domain.Order, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Unavailable(err, "%s", op)
	}

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, apperr.Unavailable(err, "%s: decode", op)
	}

	return orders, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, trackingNumber string) error {
	set := bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}
	if trackingNumber != "" {
		set["trackingNumber"] = trackingNumber
	}
	return r.updateOne(ctx, id, set)
}

func (r *Repository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, paymentID string) error {
	set := bson.M{
		"paymentStatus": status,
		"updatedAt":     time.Now().UTC(),
	}
	if paymentID != "" {
		set["paymentId"] = paymentID
	}
	return r.updateOne(ctx, id, set)
}

func (r *Repository) updateOne(ctx context.Context, id string, set bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return apperr.Unavailable(err, "update order %q", id)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("order %q not found", id)
	}
	return nil
}

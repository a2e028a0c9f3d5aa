package repository

import (
	"context"

	"github.com/maryrl/loja-fullstack/internal/database"
	"github.com/maryrl/loja-fullstack/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{collection: db.Collection(database.OrdersCollection)}
}

// Create inserts the order. A second order for the same checkout session is
// rejected by the unique index and reported as ErrDuplicate.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := checkSchema(database.OrdersCollection, order); err != nil {
		return err
	}
	_, err := r.collection.InsertOne(ctx, order)
	return writeError(err)
}

// List returns orders newest first.
func (r *OrderRepository) List(ctx context.Context, skip, limit int64) ([]models.Order, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Order](ctx, database.OrdersCollection, cursor)
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// PaidRevenue sums total_amount over orders whose payment has cleared.
func (r *OrderRepository) PaidRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"payment_status": models.PaymentStatusPaid}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total_amount"}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/maryrl/loja-fullstack/internal/database"
	"github.com/maryrl/loja-fullstack/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection(database.ProductsCollection)}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	return findOne[models.Product](database.ProductsCollection, r.collection.FindOne(ctx, bson.M{"id": id}))
}

// Find lists products in insertion order, optionally restricted to one
// category.
func (r *ProductRepository) Find(ctx context.Context, category string, skip, limit int64) ([]models.Product, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Product](ctx, database.ProductsCollection, cursor)
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := checkSchema(database.ProductsCollection, product); err != nil {
		return err
	}
	_, err := r.collection.InsertOne(ctx, product)
	return writeError(err)
}

// Replace overwrites the whole record with the same id.
func (r *ProductRepository) Replace(ctx context.Context, product *models.Product) error {
	if err := checkSchema(database.ProductsCollection, product); err != nil {
		return err
	}
	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": product.ID}, product)
	if err != nil {
		return writeError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock takes qty units only if that many are available. It
// reports false when the product is missing or short on stock, leaving the
// document untouched.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	filter := bson.M{"id": id, "stock": bson.M{"$gte": qty}}
	update := bson.M{
		"$inc": bson.M{"stock": -qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

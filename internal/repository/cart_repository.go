package repository

import (
	"context"

	"github.com/maryrl/loja-fullstack/internal/database"
	"github.com/maryrl/loja-fullstack/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{collection: db.Collection(database.CartsCollection)}
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	return findOne[models.Cart](database.CartsCollection, r.collection.FindOne(ctx, bson.M{"user_id": userID}))
}

// Save replaces the user's cart, creating it when absent.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if err := checkSchema(database.CartsCollection, cart); err != nil {
		return err
	}
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"user_id": cart.UserID},
		cart,
		options.Replace().SetUpsert(true),
	)
	return writeError(err)
}

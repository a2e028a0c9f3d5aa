package repository

import (
	"context"

	"github.com/maryrl/loja-fullstack/internal/database"
	"github.com/maryrl/loja-fullstack/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(database.UsersCollection)}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](database.UsersCollection, r.collection.FindOne(ctx, bson.M{"email": email}))
}

// Create inserts a new user. A taken email surfaces as ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := checkSchema(database.UsersCollection, user); err != nil {
		return err
	}
	_, err := r.collection.InsertOne(ctx, user)
	return writeError(err)
}

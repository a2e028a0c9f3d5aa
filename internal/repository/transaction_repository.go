package repository

import (
	"context"
	"errors"
	"time"

	"github.com/maryrl/loja-fullstack/internal/database"
	"github.com/maryrl/loja-fullstack/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TransactionRepository struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{collection: db.Collection(database.TransactionsCollection)}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.PaymentTransaction) error {
	if err := checkSchema(database.TransactionsCollection, tx); err != nil {
		return err
	}
	_, err := r.collection.InsertOne(ctx, tx)
	return writeError(err)
}

func (r *TransactionRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	return findOne[models.PaymentTransaction](database.TransactionsCollection,
		r.collection.FindOne(ctx, bson.M{"session_id": sessionID}))
}

// UpdateStatus writes the processor's view of the session unconditionally.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, sessionID, status, paymentStatus string) error {
	update := bson.M{"$set": bson.M{
		"status":         status,
		"payment_status": paymentStatus,
		"updated_at":     time.Now().UTC(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"session_id": sessionID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RefreshStatus updates the session status only. Callers that did not win
// MarkPaid use it so they never touch payment_status.
func (r *TransactionRepository) RefreshStatus(ctx context.Context, sessionID, status string) error {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"session_id": sessionID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaid flips payment_status to "paid" only if it is not paid yet. The
// returned bool is true for exactly one caller per session; that caller
// receives the updated transaction and owns order finalization.
func (r *TransactionRepository) MarkPaid(ctx context.Context, sessionID, status string) (*models.PaymentTransaction, bool, error) {
	filter := bson.M{
		"session_id":     sessionID,
		"payment_status": bson.M{"$ne": models.PaymentStatusPaid},
	}
	update := bson.M{"$set": bson.M{
		"status":         status,
		"payment_status": models.PaymentStatusPaid,
		"updated_at":     time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	tx, err := findOne[models.PaymentTransaction](database.TransactionsCollection,
		r.collection.FindOneAndUpdate(ctx, filter, update, opts))
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return tx, true, nil
}

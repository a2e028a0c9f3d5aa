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

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{collection: db.Collection(database.NotificationsCollection)}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if err := checkSchema(database.NotificationsCollection, n); err != nil {
		return err
	}
	_, err := r.collection.InsertOne(ctx, n)
	return writeError(err)
}

// ClaimDue leases the oldest due pending notification by pushing its
// next_attempt_at past the lease window, so concurrent workers never pick
// the same row. Returns ErrNotFound when nothing is due.
func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, lease time.Duration) (*models.Notification, error) {
	filter := bson.M{
		"status":          models.NotificationStatusPending,
		"next_attempt_at": bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{
		"next_attempt_at": now.Add(lease),
		"updated_at":      now,
	}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "next_attempt_at", Value: 1}}).
		SetReturnDocument(options.After)

	return findOne[models.Notification](database.NotificationsCollection,
		r.collection.FindOneAndUpdate(ctx, filter, update, opts))
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id string, attempts int, at time.Time) error {
	return r.set(ctx, id, bson.M{
		"status":     models.NotificationStatusSent,
		"attempts":   attempts,
		"sent_at":    at,
		"updated_at": at,
	})
}

// MarkRetry records a failed attempt and schedules the next one.
func (r *NotificationRepository) MarkRetry(ctx context.Context, id string, attempts int, lastErr string, next time.Time) error {
	return r.set(ctx, id, bson.M{
		"attempts":        attempts,
		"last_error":      lastErr,
		"next_attempt_at": next,
		"updated_at":      time.Now().UTC(),
	})
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id string, attempts int, lastErr string) error {
	return r.set(ctx, id, bson.M{
		"status":     models.NotificationStatusFailed,
		"attempts":   attempts,
		"last_error": lastErr,
		"updated_at": time.Now().UTC(),
	})
}

func (r *NotificationRepository) set(ctx context.Context, id string, fields bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/wavely/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotificationNotFound is returned when a notification id does not match
// any document owned by the requesting recipient.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByRecipientID(ctx context.Context, recipientID uint, page, limit int64) ([]models.Notification, int64, error)
	GetUnseenCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, recipientID uint, id string) error
	MarkSeen(ctx context.Context, recipientID uint, id string) error
	MarkAllSeen(ctx context.Context, recipientID uint) error
	Delete(ctx context.Context, recipientID uint, id string) error
	DeleteAllForRecipient(ctx context.Context, recipientID uint) (int64, error)
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// CreateNotification inserts a new notification document
func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

// GetByRecipientID retrieves a recipient's notifications, newest first
func (r *MongoNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, page, limit int64) ([]models.Notification, int64, error) {
	filter := bson.M{"recipient_id": recipientID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// GetUnseenCount counts notifications not yet shown to the recipient
func (r *MongoNotificationRepository) GetUnseenCount(ctx context.Context, recipientID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "is_seen": false})
}

// MarkAsRead flags a single notification as read
func (r *MongoNotificationRepository) MarkAsRead(ctx context.Context, recipientID uint, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"is_read": true, "is_seen": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkSeen flags a single notification as seen without touching is_read
func (r *MongoNotificationRepository) MarkSeen(ctx context.Context, recipientID uint, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"is_seen": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllSeen flags every unseen notification of a recipient as seen
func (r *MongoNotificationRepository) MarkAllSeen(ctx context.Context, recipientID uint) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "is_seen": false},
		bson.M{"$set": bson.M{"is_seen": true}})
	return err
}

// Delete removes a single notification owned by the recipient
func (r *MongoNotificationRepository) Delete(ctx context.Context, recipientID uint, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID, "recipient_id": recipientID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// DeleteAllForRecipient clears a recipient's notification feed
func (r *MongoNotificationRepository) DeleteAllForRecipient(ctx context.Context, recipientID uint) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"recipient_id": recipientID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

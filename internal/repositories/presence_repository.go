package repositories

import (
	"context"
	"time"

	"github.com/anonto42/wavely/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PresenceRepository defines the interface for online-presence tracking.
// Lookup reports absence through the bool, not an error: offline is a
// normal outcome.
type PresenceRepository interface {
	Upsert(ctx context.Context, userID uint, socketID string) error
	Remove(ctx context.Context, socketID string) error
	Lookup(ctx context.Context, userID uint) (string, bool, error)
}

// MongoPresenceRepository implements PresenceRepository for MongoDB
type MongoPresenceRepository struct {
	collection *mongo.Collection
}

// NewMongoPresenceRepository creates a new MongoPresenceRepository
func NewMongoPresenceRepository(db *mongo.Database) *MongoPresenceRepository {
	return &MongoPresenceRepository{collection: db.Collection("presence")}
}

// Upsert records the user's current socket, overwriting any previous one.
// A reconnect therefore keeps exactly one entry per user.
func (r *MongoPresenceRepository) Upsert(ctx context.Context, userID uint, socketID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"socket_id": socketID, "connected_at": time.Now()}},
		options.Update().SetUpsert(true))
	return err
}

// Remove deletes the entry holding the socket id; no-op if none matches
func (r *MongoPresenceRepository) Remove(ctx context.Context, socketID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"socket_id": socketID})
	return err
}

// Lookup returns the socket id of an online user
func (r *MongoPresenceRepository) Lookup(ctx context.Context, userID uint) (string, bool, error) {
	var entry models.PresenceEntry
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.SocketID, true, nil
}

package cart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("carts")}
}

func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	return err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.col.Database().Client().Ping(ctx, nil)
	})
}

func (s *MongoStore) Find(ctx context.Context, userID string) (Cart, bool, error) {
	var c Cart

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&c)
	})

	if errors.Is(err, mongo.ErrNoDocuments) {
		return Cart{}, false, nil
	}
	if err != nil {
		return Cart{}, false, err
	}
	return c, true, nil
}

// Save is an atomic conditional update: the filter matches the version the
// caller read, so a concurrent writer makes this a no-op reported as
// ErrVersionConflict. Version 0 upserts; losing a concurrent insert race
// trips the unique userId index, which is also a conflict.
func (s *MongoStore) Save(ctx context.Context, c Cart) error {
	filter := bson.M{"userId": c.UserID, "version": c.Version}
	update := bson.M{
		"$set": bson.M{
			"items":       c.Items,
			"total":       c.Total,
			"lastUpdated": c.LastUpdated,
			"expiresAt":   c.ExpiresAt,
		},
		"$inc": bson.M{"version": 1},
	}

	var res *mongo.UpdateResult
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		var err error
		res, err = s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(c.Version == 0))
		return err
	})

	if mongo.IsDuplicateKeyError(err) {
		return ErrVersionConflict
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (s *MongoStore) Clear(ctx context.Context, userID string) error {
	update := bson.M{
		"$set": bson.M{
			"items":       []Item{},
			"total":       0.0,
			"lastUpdated": time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.col.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update).Err()
	})

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

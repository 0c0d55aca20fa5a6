package catalog

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
	return &MongoStore{col: db.Collection("products")}
}

func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.col.Database().Client().Ping(ctx, nil)
	})
}

func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	var n int64

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		var err error
		n, err = s.col.CountDocuments(ctx, bson.M{})
		return err
	})

	return n, err
}

func (s *MongoStore) InsertMany(ctx context.Context, products []Product) error {
	docs := make([]any, 0, len(products))
	for _, p := range products {
		docs = append(docs, p)
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.col.InsertMany(ctx, docs)
		return err
	})
}

func (s *MongoStore) ListSortedByID(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		cur, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
		if err != nil {
			return err
		}

		out = make([]Product, 0, 16)
		return cur.All(ctx, &out)
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) Get(ctx context.Context, id int) (Product, bool, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.col.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	})

	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

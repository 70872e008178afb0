package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pastfool/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bestScoreDoc struct {
	Key       string    `bson:"_id"`
	Score     int       `bson:"score"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// BestScoreStore keeps one document per key in the best_scores collection.
type BestScoreStore struct {
	collection *mongo.Collection
}

func NewBestScoreStore(client *mongo.Client, database string) *BestScoreStore {
	return &BestScoreStore{
		collection: client.Database(database).Collection("best_scores"),
	}
}

func (s *BestScoreStore) LoadBest(ctx context.Context, key string) (int, error) {
	var doc bestScoreDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, domain.ErrBestScoreNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load best score: %w", err)
	}
	return doc.Score, nil
}

// SaveBest relies on $max so concurrent writers can only raise the value.
func (s *BestScoreStore) SaveBest(ctx context.Context, key string, score int) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{
			"$max": bson.M{"score": score},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save best score: %w", err)
	}
	return nil
}

// Connect opens a client and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

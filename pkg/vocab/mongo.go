package vocab

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoWordsCollection = "words"
	mongoMetaCollection  = "meta"
	mongoMetaID          = "words"
)

type mongoWord struct {
	ID          string    `bson:"_id"`
	Position    int       `bson:"position"`
	Text        string    `bson:"word"`
	Translation string    `bson:"translation"`
	Mastered    bool      `bson:"mastered"`
	CreatedAt   time.Time `bson:"created_at"`
}

// MongoBackend stores the list in a MongoDB collection, one document per
// word ordered by a position field.
type MongoBackend struct {
	client *mongo.Client
	words  *mongo.Collection
	meta   *mongo.Collection
}

// NewMongoBackend connects to uri and uses the given database.
func NewMongoBackend(ctx context.Context, uri, database string) (*MongoBackend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	db := client.Database(database)
	return &MongoBackend{
		client: client,
		words:  db.Collection(mongoWordsCollection),
		meta:   db.Collection(mongoMetaCollection),
	}, nil
}

func (b *MongoBackend) Load(ctx context.Context) ([]Word, bool, error) {
	err := b.meta.FindOne(ctx, bson.M{"_id": mongoMetaID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read meta: %w", err)
	}

	cur, err := b.words.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, false, fmt.Errorf("find words: %w", err)
	}
	var docs []mongoWord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, false, fmt.Errorf("decode words: %w", err)
	}

	words := make([]Word, len(docs))
	for i, d := range docs {
		words[i] = Word{ID: d.ID, Text: d.Text, Translation: d.Translation, Mastered: d.Mastered, CreatedAt: d.CreatedAt}
	}
	return words, true, nil
}

// Save replaces all word documents. MongoDB without a replica set has no
// multi-document transactions, so a crash mid-save can lose the list; the
// meta document is written last.
func (b *MongoBackend) Save(ctx context.Context, words []Word) error {
	if _, err := b.words.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear words: %w", err)
	}
	if len(words) > 0 {
		docs := make([]any, len(words))
		for i, w := range words {
			docs[i] = mongoWord{ID: w.ID, Position: i, Text: w.Text, Translation: w.Translation, Mastered: w.Mastered, CreatedAt: w.CreatedAt}
		}
		if _, err := b.words.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("insert words: %w", err)
		}
	}
	_, err := b.meta.UpdateOne(ctx,
		bson.M{"_id": mongoMetaID},
		bson.M{"$set": bson.M{"saved_at": time.Now().UTC(), "count": len(words)}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return nil
}

func (b *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.client.Disconnect(ctx)
}

var _ Backend = (*MongoBackend)(nil)

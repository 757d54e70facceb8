package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

const (
	mongoDatabase   = "gentleplanner"
	mongoCollection = "planners"
	pollInterval    = 5 * time.Second
)

// MongoBackend stores the planner document in a MongoDB collection, one
// document per user keyed by _id. Field-level updates go through $set so
// concurrent writers to different slices never conflict; the remote store
// applies last-writer-wins per field.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
	user   string
	uri    string
}

func NewMongoBackend(ctx context.Context, uri, user string) (*MongoBackend, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &MongoBackend{
		client: client,
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
		user:   user,
		uri:    uri,
	}, nil
}

func (b *MongoBackend) Location() string {
	return fmt.Sprintf("%s/%s/%s", mongoDatabase, mongoCollection, b.user)
}

func (b *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.client.Disconnect(ctx)
}

// storedDoc wraps the planner document with its Mongo key.
type storedDoc struct {
	ID                string `bson:"_id"`
	models.PlannerDoc `bson:",inline"`
}

func (b *MongoBackend) fetch(ctx context.Context) (*models.PlannerDoc, error) {
	var out storedDoc
	err := b.coll.FindOne(ctx, bson.M{"_id": b.user}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch planner document: %w", err)
	}
	doc := out.PlannerDoc
	doc.EnsureMaps()
	return &doc, nil
}

func (b *MongoBackend) Set(ctx context.Context, doc models.PlannerDoc) error {
	_, err := b.coll.ReplaceOne(ctx,
		bson.M{"_id": b.user},
		storedDoc{ID: b.user, PlannerDoc: doc},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write planner document: %w", err)
	}
	return nil
}

func (b *MongoBackend) Update(ctx context.Context, fields map[string]any) error {
	set := bson.M{}
	for name, v := range fields {
		set[name] = v
	}
	res, err := b.coll.UpdateOne(ctx, bson.M{"_id": b.user}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update planner document: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrDocMissing
	}
	return nil
}

func (b *MongoBackend) Subscribe(ctx context.Context, fn SnapshotFunc) (func(), error) {
	doc, err := b.fetch(ctx)
	if err != nil {
		return nil, err
	}
	fn(doc)

	watchCtx, cancel := context.WithCancel(ctx)
	go b.watch(watchCtx, fn)
	return cancel, nil
}

// watch follows the document with a change stream, falling back to
// interval polling when change streams are unavailable (standalone
// servers).
func (b *MongoBackend) watch(ctx context.Context, fn SnapshotFunc) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"documentKey._id": b.user}}},
	}
	stream, err := b.coll.Watch(ctx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		b.poll(ctx, fn)
		return
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var event struct {
			OperationType string     `bson:"operationType"`
			FullDocument  *storedDoc `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			continue
		}
		if event.OperationType == "delete" {
			fn(nil)
			continue
		}
		if event.FullDocument != nil {
			doc := event.FullDocument.PlannerDoc
			doc.EnsureMaps()
			fn(&doc)
		}
	}
}

func (b *MongoBackend) poll(ctx context.Context, fn SnapshotFunc) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if doc, err := b.fetch(ctx); err == nil {
				fn(doc)
			}
		}
	}
}

package store

import (
	"context"
	"fmt"
	"time"

	"coastal-realty/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoConnectTimeout = 10 * time.Second

// MongoSource reads every collection from a MongoDB database. Documents are
// returned in natural (insertion) order, which SeedMongo preserves.
type MongoSource struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoSource connects and pings before returning.
func NewMongoSource(ctx context.Context, uri, database string) (*MongoSource, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &MongoSource{client: client, db: client.Database(database)}, nil
}

func (s *MongoSource) Database() *mongo.Database {
	return s.db
}

func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoSource) Load(ctx context.Context) (*Dataset, error) {
	var c Collections
	var err error
	if c.Properties, err = findAll[models.Property](ctx, s.db, CollectionProperties); err != nil {
		return nil, err
	}
	if c.Places, err = findAll[models.Place](ctx, s.db, CollectionPlaces); err != nil {
		return nil, err
	}
	if c.Activities, err = findAll[models.Activity](ctx, s.db, CollectionActivities); err != nil {
		return nil, err
	}
	if c.Events, err = findAll[models.Event](ctx, s.db, CollectionEvents); err != nil {
		return nil, err
	}
	if c.BestOfLists, err = findAll[models.BestOfList](ctx, s.db, CollectionBestOf); err != nil {
		return nil, err
	}
	if c.MonthlyGuides, err = findAll[models.MonthlyGuide](ctx, s.db, CollectionMonthly); err != nil {
		return nil, err
	}
	if c.LifestyleScenarios, err = findAll[models.LifestyleScenario](ctx, s.db, CollectionLifestyle); err != nil {
		return nil, err
	}
	if c.BlogPosts, err = findAll[models.BlogPost](ctx, s.db, CollectionBlogPosts); err != nil {
		return nil, err
	}
	if c.Testimonials, err = findAll[models.Testimonial](ctx, s.db, CollectionTestimonials); err != nil {
		return nil, err
	}
	return NewDataset(c)
}

func findAll[T any](ctx context.Context, db *mongo.Database, name string) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}})
	cursor, err := db.Collection(name).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", name, err)
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

// SeedMongo inserts the dataset into any collection that is currently empty.
// Collections that already hold documents are left alone.
func SeedMongo(ctx context.Context, db *mongo.Database, ds *Dataset) (map[string]int, error) {
	inserted := make(map[string]int)
	seeds := []struct {
		name string
		docs []any
	}{
		{CollectionProperties, toDocs(ds.Properties())},
		{CollectionPlaces, toDocs(ds.Places())},
		{CollectionActivities, toDocs(ds.Activities())},
		{CollectionEvents, toDocs(ds.Events())},
		{CollectionBestOf, toDocs(ds.BestOfLists())},
		{CollectionMonthly, toDocs(ds.MonthlyGuides())},
		{CollectionLifestyle, toDocs(ds.LifestyleScenarios())},
		{CollectionBlogPosts, toDocs(ds.BlogPosts())},
		{CollectionTestimonials, toDocs(ds.Testimonials())},
	}
	for _, seed := range seeds {
		if len(seed.docs) == 0 {
			continue
		}
		coll := db.Collection(seed.name)
		count, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			return inserted, fmt.Errorf("count %s: %w", seed.name, err)
		}
		if count > 0 {
			continue
		}
		res, err := coll.InsertMany(ctx, seed.docs, options.InsertMany().SetOrdered(true))
		if err != nil {
			return inserted, fmt.Errorf("seed %s: %w", seed.name, err)
		}
		inserted[seed.name] = len(res.InsertedIDs)
	}
	return inserted, nil
}

func toDocs[T any](items []T) []any {
	docs := make([]any, len(items))
	for i, it := range items {
		docs[i] = it
	}
	return docs
}

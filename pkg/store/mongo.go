package store

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/errors"
)

const (
	defaultMongoDatabase = "techradar"
	mongoCollection      = "datasets"
	mongoConnectTimeout  = 10 * time.Second
)

// MongoStore keeps datasets as documents in a MongoDB collection, one
// document per dataset with a unique index on name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to uri and prepares the datasets collection.
// The database name comes from the URI path, defaulting to "techradar".
func OpenMongo(ctx context.Context, uri string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "ping mongodb")
	}

	s := NewMongoStoreFromClient(client, mongoDatabase(uri))
	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "create dataset index")
	}
	return s, nil
}

// NewMongoStoreFromClient wraps an existing client. Close disconnects it.
func NewMongoStoreFromClient(client *mongo.Client, database string) *MongoStore {
	if database == "" {
		database = defaultMongoDatabase
	}
	return &MongoStore{client: client, coll: client.Database(database).Collection(mongoCollection)}
}

func mongoDatabase(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDatabase
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		return db
	}
	return defaultMongoDatabase
}

func (s *MongoStore) Get(ctx context.Context, name string) (Dataset, error) {
	if err := errors.ValidateDatasetName(name); err != nil {
		return Dataset{}, err
	}
	var ds Dataset
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&ds)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return Dataset{}, NotFound(name)
		}
		return Dataset{}, errors.Wrap(errors.ErrCodeUnavailable, err, "get dataset %s", name)
	}
	ds.UpdatedAt = ds.UpdatedAt.UTC()
	return ds, nil
}

func (s *MongoStore) Put(ctx context.Context, name string, cfg radar.Config) (Dataset, error) {
	if err := validatePut(name, cfg); err != nil {
		return Dataset{}, err
	}
	update := bson.M{
		"$set": bson.M{
			"name":       name,
			"updated_at": time.Now().UTC(),
			"config":     cfg,
		},
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"name": name}, update, options.Update().SetUpsert(true))
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeUnavailable, err, "put dataset %s", name)
	}
	return s.Get(ctx, name)
}

func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.M{"name": 1, "updated_at": 1, "config.title": 1, "config.entries.name": 1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "list datasets")
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var ds Dataset
		if err := cur.Decode(&ds); err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "decode dataset")
		}
		out = append(out, summarize(ds.Name, ds.Config, ds.UpdatedAt.UTC()))
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "list datasets")
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDatasetName(name); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "delete dataset %s", name)
	}
	if res.DeletedCount == 0 {
		return NotFound(name)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

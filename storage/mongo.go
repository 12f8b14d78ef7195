package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-link-shortener/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"
)

// linksCollection is the collection holding link records.
const linksCollection = "links"

// MongoStorage implements the Storage interface on a MongoDB collection.
type MongoStorage struct {
	client *mongo.Client
	links  *mongo.Collection
	logger *zap.Logger
}

// NewMongoStorage connects to MongoDB, verifies the connection and makes sure
// the unique index on slug exists. A database in the URI path takes precedence
// over database.
func NewMongoStorage(ctx context.Context, uri, database string, logger *zap.Logger) (*MongoStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	database = databaseName(uri, database)
	s := newMongoStorage(client, client.Database(database).Collection(linksCollection), logger)
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Connected to MongoDB", zap.String("database", database))
	return s, nil
}

// databaseName returns the database named in the path of uri, or fallback
// when the URI names none.
func databaseName(uri, fallback string) string {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil || cs.Database == "" {
		return fallback
	}
	return cs.Database
}

func newMongoStorage(client *mongo.Client, links *mongo.Collection, logger *zap.Logger) *MongoStorage {
	return &MongoStorage{client: client, links: links, logger: logger}
}

func (s *MongoStorage) ensureIndexes(ctx context.Context) error {
	_, err := s.links.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("slug_unique"),
	})
	if err != nil {
		return fmt.Errorf("create slug index: %w", err)
	}
	return nil
}

// Create inserts a new link document.
func (s *MongoStorage) Create(ctx context.Context, link types.Link) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}

	_, err := s.links.InsertOne(ctx, link)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			s.logger.Warn("Attempt to create duplicate slug", zap.String("slug", link.Slug))
			return ErrSlugExists
		}
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

// IncrementVisits runs a findOneAndUpdate with $inc and returns the document after the update.
func (s *MongoStorage) IncrementVisits(ctx context.Context, slug string) (types.Link, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var link types.Link
	err := s.links.FindOneAndUpdate(ctx,
		bson.D{{Key: "slug", Value: slug}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "visitCount", Value: 1}}}},
		opts,
	).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Link{}, ErrLinkNotFound
		}
		return types.Link{}, fmt.Errorf("increment visits: %w", err)
	}
	return link, nil
}

// GetLink finds a link by slug.
func (s *MongoStorage) GetLink(ctx context.Context, slug string) (types.Link, error) {
	var link types.Link
	err := s.links.FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Link{}, ErrLinkNotFound
		}
		return types.Link{}, fmt.Errorf("find link: %w", err)
	}
	return link, nil
}

// Ping checks the connection to the primary.
func (s *MongoStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *MongoStorage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

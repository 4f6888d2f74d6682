package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/rancher/internal/domain/models"
	"github.com/mamadbah2/rancher/internal/repository"
)

// slotID identifies the one stored document. There is exactly one per
// installation.
const slotID = "ranch-document"

// MongoDBRepository stores the application document in a single upserted
// MongoDB document.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

type storedDocument struct {
	ID   string          `bson:"_id"`
	Data models.Document `bson:"data"`
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "documents",
	}, nil
}

// Load fetches the document slot. Missing or undecodable slots yield
// repository.ErrNotFound.
func (r *MongoDBRepository) Load(ctx context.Context) (models.Document, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	var stored storedDocument
	err := collection.FindOne(ctx, bson.M{"_id": slotID}).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Document{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to load document: %w", err)
	}

	return stored.Data, nil
}

// Save replaces the document slot wholesale, creating it when absent.
func (r *MongoDBRepository) Save(ctx context.Context, doc models.Document) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, bson.M{"_id": slotID}, storedDocument{ID: slotID, Data: doc}, opts); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

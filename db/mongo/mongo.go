package mongo

import (
	"context"
	"time"

	"github.com/aperture-data/formschema/core/logger"
	"github.com/aperture-data/formschema/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	db *mongo.Database
}

func NewMongoRepository() *MongoRepository {
	client := GetMongoClient()
	return &MongoRepository{db: client.Database}
}

func (r *MongoRepository) Create(ctx context.Context, table string, record map[string]any) (string, error) {
	coll := r.db.Collection(table)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(GetMongoClient().Config.Timeout)*time.Second)
	defer cancel()

	res, err := coll.InsertOne(ctx, bson.M(record))
	if err != nil {
		logger.Error("Insert failed: %v", err)
		return "", err
	}
	return res.InsertedID.(string), nil
}

func (r *MongoRepository) ReadOne(ctx context.Context, table string, filter map[string]any) (map[string]any, error) {
	coll := r.db.Collection(table)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(GetMongoClient().Config.Timeout)*time.Second)
	defer cancel()

	var result map[string]any
	err := coll.FindOne(ctx, bson.M(filter)).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, db.ErrNotFound
	}
	if err != nil {
		logger.Error("Query failed: %v", err)
		return nil, err
	}
	return normalizeMap(result), nil
}

// normalize converts decoded bson documents and arrays to plain maps and
// slices so callers never see driver types.
func normalize(value any) any {
	switch v := value.(type) {
	case bson.M:
		return normalizeMap(v)
	case map[string]any:
		return normalizeMap(v)
	case bson.A:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = normalize(item)
		}
		return items
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = normalize(item)
		}
		return items
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for key, value := range m {
		result[key] = normalize(value)
	}
	return result
}

func (r *MongoRepository) ReadAll(ctx context.Context, table string, filter map[string]any) ([]map[string]any, error) {
	coll := r.db.Collection(table)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(GetMongoClient().Config.Timeout)*time.Second)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.M(filter))
	if err != nil {
		logger.Error("Query failed: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []map[string]any
	err = cursor.All(ctx, &results)
	if err != nil {
		logger.Error("Failed to decode results: %v", err)
		return nil, err
	}
	for i, result := range results {
		results[i] = normalizeMap(result)
	}
	return results, nil
}

func (r *MongoRepository) Update(ctx context.Context, table string, filter map[string]any, update map[string]any) error {
	coll := r.db.Collection(table)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(GetMongoClient().Config.Timeout)*time.Second)
	defer cancel()

	res, err := coll.UpdateOne(ctx, bson.M(filter), bson.M{"$set": bson.M(update)})
	if err != nil {
		logger.Error("Update failed: %v", err)
		return err
	}
	if res.MatchedCount == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, table string, filter map[string]any) error {
	coll := r.db.Collection(table)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(GetMongoClient().Config.Timeout)*time.Second)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.M(filter))
	if err != nil {
		logger.Error("Delete failed: %v", err)
		return err
	}
	if res.DeletedCount == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Count(ctx context.Context, table string, filter map[string]any) (int64, error) {
	coll := r.db.Collection(table)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(GetMongoClient().Config.Timeout)*time.Second)
	defer cancel()

	count, err := coll.CountDocuments(ctx, bson.M(filter))
	if err != nil {
		logger.Error("Count failed: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *MongoRepository) EnsureIndex(ctx context.Context, table string, keys []string, unique bool) error {
	coll := r.db.Collection(table)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(GetMongoClient().Config.Timeout)*time.Second)
	defer cancel()

	indexKeys := bson.D{}
	for _, key := range keys {
		indexKeys = append(indexKeys, bson.E{Key: key, Value: 1})
	}
	model := mongo.IndexModel{
		Keys:    indexKeys,
		Options: options.Index().SetUnique(unique),
	}
	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		logger.Error("Index creation failed: %v", err)
		return err
	}
	logger.Info("Index created successfully for collection %s", table)
	return nil
}

package annotations

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cliplabel/types"
)

// MongoStore keeps annotations in a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store over the
// annotations collection of the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{coll: client.Database(database).Collection("annotations")}, nil
}

func (s *MongoStore) GetAll(ctx context.Context, f Filter) ([]types.Annotation, error) {
	filter := bson.M{}
	if f.VideoID != "" {
		filter["videoId"] = f.VideoID
	}
	if f.Intent != "" {
		filter["intent"] = bson.M{"$regex": "^" + regexp.QuoteMeta(f.Intent) + "$", "$options": "i"}
	}
	if f.Search != "" {
		rx := bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
		filter["$or"] = bson.A{bson.M{"text": rx}, bson.M{"intent": rx}}
	}
	sort := bson.D{{Key: "createdAt", Value: -1}}
	if f.Sort == "startTime" {
		sort = bson.D{{Key: "startTime", Value: 1}}
	}
	return s.find(ctx, filter, sort)
}

func (s *MongoStore) find(ctx context.Context, filter bson.M, sort bson.D) ([]types.Annotation, error) {
	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("query annotations: %w", err)
	}
	defer cur.Close(ctx)

	results := []types.Annotation{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode annotations: %w", err)
	}
	return results, nil
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (types.Annotation, error) {
	var ann types.Annotation
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&ann)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.Annotation{}, ErrNotFound
	}
	if err != nil {
		return types.Annotation{}, fmt.Errorf("fetch annotation %s: %w", id, err)
	}
	return ann, nil
}

func (s *MongoStore) Create(ctx context.Context, in types.AnnotationInput) (types.Annotation, error) {
	ann := newRecord(in)
	if _, err := s.coll.InsertOne(ctx, ann); err != nil {
		return types.Annotation{}, fmt.Errorf("insert annotation: %w", err)
	}
	return ann, nil
}

func (s *MongoStore) Update(ctx context.Context, id string, in types.AnnotationInput) (types.Annotation, error) {
	set := bson.M{"updatedAt": types.Timestamp()}
	if in.VideoID != nil {
		set["videoId"] = *in.VideoID
	}
	if in.StartTime != nil {
		set["startTime"] = *in.StartTime
	}
	if in.EndTime != nil {
		set["endTime"] = *in.EndTime
	}
	if in.Intent != nil {
		set["intent"] = *in.Intent
	}
	if in.Text != nil {
		set["text"] = *in.Text
	}
	var ann types.Annotation
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ann)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.Annotation{}, ErrNotFound
	}
	if err != nil {
		return types.Annotation{}, fmt.Errorf("update annotation %s: %w", id, err)
	}
	return ann, nil
}

func (s *MongoStore) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("delete annotation %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) GetForExport(ctx context.Context, videoID string) ([]types.Annotation, error) {
	filter := bson.M{}
	if videoID != "" {
		filter["videoId"] = videoID
	}
	return s.find(ctx, filter, bson.D{{Key: "startTime", Value: 1}})
}

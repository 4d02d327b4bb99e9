package repository

import (
	"aio-webcare/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (primitive.ObjectID, error)
	List(ctx context.Context, websiteID string, status string) ([]domain.Task, error)
	MarkCompleted(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoTaskRepo struct {
	collection *mongo.Collection
}

func NewMongoTaskRepo(db *mongo.Database) TaskRepository {
	return &mongoTaskRepo{
		collection: db.Collection("tasks"),
	}
}

func (r *mongoTaskRepo) Create(ctx context.Context, task domain.Task) (primitive.ObjectID, error) {
	task.CreatedAt = time.Now()
	if task.Status == "" {
		task.Status = domain.TaskPending
	}
	res, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// List 可依網站和狀態過濾，空字串代表不過濾
func (r *mongoTaskRepo) List(ctx context.Context, websiteID string, status string) ([]domain.Task, error) {
	filter := bson.M{}
	if websiteID != "" {
		oid, err := primitive.ObjectIDFromHex(websiteID)
		if err != nil {
			return nil, err
		}
		filter["website_id"] = oid
	}
	if status != "" {
		filter["status"] = status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []domain.Task
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mongoTaskRepo) MarkCompleted(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":       domain.TaskCompleted,
			"completed_at": time.Now(),
		},
	})
	return err
}

func (r *mongoTaskRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

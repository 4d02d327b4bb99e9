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

type BackupRepository interface {
	Create(ctx context.Context, backup domain.Backup) (primitive.ObjectID, error)
	ListByWebsite(ctx context.Context, websiteID primitive.ObjectID, limit int64) ([]domain.Backup, error)
	Finish(ctx context.Context, id primitive.ObjectID, status string, sizeBytes int64, errMsg string) error
}

type mongoBackupRepo struct {
	collection *mongo.Collection
}

func NewMongoBackupRepo(db *mongo.Database) BackupRepository {
	return &mongoBackupRepo{
		collection: db.Collection("backups"),
	}
}

func (r *mongoBackupRepo) Create(ctx context.Context, backup domain.Backup) (primitive.ObjectID, error) {
	backup.StartedAt = time.Now()
	backup.Status = domain.BackupRunning
	res, err := r.collection.InsertOne(ctx, backup)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *mongoBackupRepo) ListByWebsite(ctx context.Context, websiteID primitive.ObjectID, limit int64) ([]domain.Backup, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}). // 最新的在前面
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"website_id": websiteID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []domain.Backup
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Finish 備份結束 (成功或失敗都走這裡)
func (r *mongoBackupRepo) Finish(ctx context.Context, id primitive.ObjectID, status string, sizeBytes int64, errMsg string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":      status,
			"size_bytes":  sizeBytes,
			"error_msg":   errMsg,
			"finished_at": time.Now(),
		},
	})
	return err
}

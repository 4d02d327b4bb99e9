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

type WebsiteRepository interface {
	Create(ctx context.Context, site domain.Website) (primitive.ObjectID, error)
	List(ctx context.Context, page int64, pageSize int64, sortBy string) ([]domain.Website, int64, error)
	ListAll(ctx context.Context) ([]domain.Website, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Website, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	UpdateSyncResult(ctx context.Context, site domain.Website) error
	UpdateAlertTime(ctx context.Context, id primitive.ObjectID) error
}

type mongoWebsiteRepo struct {
	collection *mongo.Collection
}

func NewMongoWebsiteRepo(db *mongo.Database) WebsiteRepository {
	return &mongoWebsiteRepo{
		collection: db.Collection("websites"),
	}
}

func (r *mongoWebsiteRepo) Create(ctx context.Context, site domain.Website) (primitive.ObjectID, error) {
	site.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, site)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// List: 支援分頁與排序
func (r *mongoWebsiteRepo) List(ctx context.Context, page int64, pageSize int64, sortBy string) ([]domain.Website, int64, error) {
	// 1. 計算 Skip
	skip := (page - 1) * pageSize

	// 2. 設定排序 (Sort)
	sortOpts := bson.D{}
	if sortBy == "name_asc" {
		sortOpts = bson.D{{Key: "name", Value: 1}}
	} else if sortBy == "last_sync_desc" {
		sortOpts = bson.D{{Key: "last_sync", Value: -1}} // 最近同步的在前面
	} else {
		sortOpts = bson.D{{Key: "_id", Value: -1}} // 預設新加入的在前面
	}

	findOptions := options.Find()
	findOptions.SetSkip(skip)
	findOptions.SetLimit(pageSize)
	findOptions.SetSort(sortOpts)

	// 3. 執行查詢
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var results []domain.Website
	if err = cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}

	// 4. 計算總數 (給前端分頁元件用)
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// ListAll 撈出全部網站 (給掃描器用，不分頁)
func (r *mongoWebsiteRepo) ListAll(ctx context.Context) ([]domain.Website, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"is_ignored": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []domain.Website
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mongoWebsiteRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Website, error) {
	var site domain.Website
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&site)
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *mongoWebsiteRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// UpdateSyncResult 掃描完把最新狀態寫回去
// 注意：不動 "is_ignored" 和 "auto_backup"，以免覆蓋使用者設定
func (r *mongoWebsiteRepo) UpdateSyncResult(ctx context.Context, site domain.Website) error {
	filter := bson.M{"_id": site.ID}

	update := bson.M{
		"$set": bson.M{
			"connection_status": site.ConnectionStatus,
			"health_status":     site.HealthStatus,
			"wp_data":           site.WPData,
			"last_sync":         time.Now(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

func (r *mongoWebsiteRepo) UpdateAlertTime(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"last_alert_time": time.Now()},
	})
	return err
}

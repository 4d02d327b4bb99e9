package repository

import (
	"aio-webcare/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}

type mongoSettingsRepo struct {
	collection *mongo.Collection
}

func NewMongoSettingsRepo(db *mongo.Database) SettingsRepository {
	return &mongoSettingsRepo{
		collection: db.Collection("settings"),
	}
}

// Get 整個系統只有一份設定 (singleton document)
func (r *mongoSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	err := r.collection.FindOne(ctx, bson.M{"_id": "global"}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		// 還沒存過就回傳預設值，不當錯誤處理
		return &domain.Settings{BrandName: "AIO Webcare"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *mongoSettingsRepo) Save(ctx context.Context, settings domain.Settings) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": "global"}, settings, opts)
	return err
}

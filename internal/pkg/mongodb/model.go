package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Model 需要管理索引的持久化模型
type Model interface {
	Collection() string
	EnsureIndexes(ctx context.Context, db *mongo.Database) error
}

// EnsureAllIndexes 依次为模型创建索引，遇到错误立即返回
func EnsureAllIndexes(ctx context.Context, db *mongo.Database, models ...Model) error {
	for _, model := range models {
		if err := model.EnsureIndexes(ctx, db); err != nil {
			return err
		}
	}
	return nil
}

package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"montage/internal/model/project"
)

// EnsureIndexes 创建所有模型的索引，在应用启动时调用
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return EnsureAllIndexes(ctx, db,
		&project.Project{},
	)
}

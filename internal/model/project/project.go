package project

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Project 项目实体
// 说明：保存上游构建完成的项目文档，时间轴不落库，按 content_hash 缓存
type Project struct {
	ID          string     `bson:"id" json:"id"`                       // 项目ID（UUID）
	UserID      string     `bson:"user_id" json:"user_id"`             // 用户ID
	Title       string     `bson:"title" json:"title"`                 // 项目名称
	Document    Document   `bson:"document" json:"document"`           // 项目文档
	ContentHash string     `bson:"content_hash" json:"content_hash"`   // 文档内容哈希（时间轴缓存 key）
	Version     int        `bson:"version" json:"version"`             // 版本号（每次保存递增，默认 1）
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// Collection 返回集合名称
func (p *Project) Collection() string {
	return "projects"
}

// EnsureIndexes 创建和维护索引
func (p *Project) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(p.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_user_created"),
		},
		{
			Keys:    bson.D{{Key: "content_hash", Value: 1}},
			Options: options.Index().SetName("idx_content_hash"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}

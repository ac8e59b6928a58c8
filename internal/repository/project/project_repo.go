package project

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"montage/internal/model/project"
)

// ErrProjectNotFound 项目不存在（或已删除）
var ErrProjectNotFound = errors.New("项目不存在")

// ProjectRepository 项目仓库接口（供 service 层依赖）
type ProjectRepository interface {
	Create(ctx context.Context, p *project.Project) error
	FindByID(ctx context.Context, id string) (*project.Project, error)
	FindByUserID(ctx context.Context, userID string, limit, offset int64) ([]*project.Project, int64, error)
	UpdateDocument(ctx context.Context, id, title string, doc *project.Document, contentHash string) (*project.Project, error)
	SoftDelete(ctx context.Context, id string) error
}

// ProjectRepo 项目仓库
type ProjectRepo struct {
	coll *mongo.Collection
}

// NewProjectRepo 创建项目仓库
func NewProjectRepo(db *mongo.Database) *ProjectRepo {
	var p project.Project
	return &ProjectRepo{coll: db.Collection(p.Collection())}
}

// Create 创建项目
func (r *ProjectRepo) Create(ctx context.Context, p *project.Project) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Version <= 0 {
		p.Version = 1
	}
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

// FindByID 根据ID查询
func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*project.Project, error) {
	var p project.Project
	if err := r.coll.FindOne(ctx, bson.M{"id": id, "deleted_at": nil}).Decode(&p); err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

// FindByUserID 查询用户的项目列表（按创建时间倒序）
func (r *ProjectRepo) FindByUserID(ctx context.Context, userID string, limit, offset int64) ([]*project.Project, int64, error) {
	filter := bson.M{"user_id": userID, "deleted_at": nil}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	projects := []*project.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// UpdateDocument 替换项目文档，版本号加一，返回更新后的项目
func (r *ProjectRepo) UpdateDocument(ctx context.Context, id, title string, doc *project.Document, contentHash string) (*project.Project, error) {
	set := bson.M{
		"document":     doc,
		"content_hash": contentHash,
		"updated_at":   time.Now(),
	}
	if title != "" {
		set["title"] = title
	}
	update := bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p project.Project
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id, "deleted_at": nil}, update, opts).Decode(&p)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

// SoftDelete 软删除项目
func (r *ProjectRepo) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "deleted_at": nil},
		bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrProjectNotFound
	}
	return err
}

package repository

import (
	"context"
	"edumate_backend/internal/model"
	"edumate_backend/pkg/monitoring"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeRepository struct {
	DB *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) *KnowledgeRepository {
	return &KnowledgeRepository{DB: db}
}

func (r *KnowledgeRepository) Create(doc *model.KnowledgeDocument) error {
	return r.DB.Create(doc).Error
}

func (r *KnowledgeRepository) CreateBatch(docs []model.KnowledgeDocument) error {
	if len(docs) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(docs, 100).Error
}

func (r *KnowledgeRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.KnowledgeDocument{}).Count(&count).Error
	return count, err
}

// Neighbor 一次相似检索的命中结果
type Neighbor struct {
	model.KnowledgeDocument
	Distance float64 `json:"distance"`
}

// SearchNearest 按余弦距离取与查询向量最近的 limit 条文档
func (r *KnowledgeRepository) SearchNearest(ctx context.Context, embedding []float32, limit int) ([]Neighbor, error) {
	start := time.Now()
	var neighbors []Neighbor
	err := r.DB.WithContext(ctx).
		Model(&model.KnowledgeDocument{}).
		Select("*, embedding <=> ? AS distance", pgvector.NewVector(embedding)).
		Order("distance").
		Limit(limit).
		Scan(&neighbors).Error
	monitoring.RetrievalDuration.Observe(time.Since(start).Seconds())
	return neighbors, err
}

package service

import (
	"context"
	"edumate_backend/internal/model"
	"edumate_backend/internal/repository"
	"edumate_backend/pkg/logger"
	"strings"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// ContextProvider 为 LLM 提示词组装知识库上下文。
// 检索失败按空上下文降级，调用方不感知错误。
type ContextProvider interface {
	BuildContext(ctx context.Context, query string, topK, maxChars int) (string, []string)
}

type KnowledgeService struct {
	Embedder Embedder
	Repo     *repository.KnowledgeRepository
}

func NewKnowledgeService(embedder Embedder, repo *repository.KnowledgeRepository) *KnowledgeService {
	return &KnowledgeService{
		Embedder: embedder,
		Repo:     repo,
	}
}

// Ingest 向量化并写入一条知识库文档
func (s *KnowledgeService) Ingest(ctx context.Context, content, source, subject string, gradeLevel int) (*model.KnowledgeDocument, error) {
	embedding, err := s.Embedder.Embed(ctx, content)
	if err != nil {
		return nil, err
	}

	doc := &model.KnowledgeDocument{
		Content:    content,
		Source:     source,
		Subject:    subject,
		GradeLevel: gradeLevel,
	}
	doc.Embedding = pgvector.NewVector(embedding)

	if err := s.Repo.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Search 调试用的相似检索
func (s *KnowledgeService) Search(ctx context.Context, query string, limit int) ([]repository.Neighbor, error) {
	embedding, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.Repo.SearchNearest(ctx, embedding, limit)
}

// BuildContext 组装提示词上下文：top-K 相似文档拼接，总长截断到 maxChars。
// 任一环节失败都降级为空上下文。
func (s *KnowledgeService) BuildContext(ctx context.Context, query string, topK, maxChars int) (string, []string) {
	embedding, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		logger.Log.Warn("context embedding failed, degrading to no context", zap.Error(err))
		return "", nil
	}

	neighbors, err := s.Repo.SearchNearest(ctx, embedding, topK)
	if err != nil {
		logger.Log.Warn("knowledge retrieval failed, degrading to no context", zap.Error(err))
		return "", nil
	}
	if len(neighbors) == 0 {
		return "", nil
	}

	var parts []string
	var sources []string
	for _, n := range neighbors {
		parts = append(parts, n.Content)
		if n.Source != "" {
			sources = append(sources, n.Source)
		}
	}

	joined := strings.Join(parts, "\n\n")
	if maxChars > 0 && len(joined) > maxChars {
		joined = joined[:maxChars]
	}
	return joined, sources
}

package model

import (
	"github.com/pgvector/pgvector-go"
)

// KnowledgeDocument 知识库文档，Embedding 维度与配置的向量模型一致
type KnowledgeDocument struct {
	UUIDBase
	Content    string          `gorm:"type:text;not null" json:"content"`
	Source     string          `gorm:"size:200" json:"source"`
	Subject    string          `gorm:"size:100;index" json:"subject"`
	GradeLevel int             `gorm:"index" json:"gradeLevel"`
	Embedding  pgvector.Vector `gorm:"type:vector(384)" json:"-"`
}

func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}

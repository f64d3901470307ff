package database

import (
	"edumate_backend/internal/config"
	"edumate_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	// 向量检索依赖 pgvector 扩展，迁移前先确保可用
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("enable pgvector extension: %w", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.ParentStudentLink{},
		&model.QuizAttempt{},
		&model.StudySession{},
		&model.StudyTotal{},
		&model.DailyGoal{},
		&model.KnowledgeDocument{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 余弦距离索引，知识库大了以后检索仍然走近似最近邻
	db.Exec("CREATE INDEX IF NOT EXISTS idx_knowledge_embedding ON knowledge_documents USING hnsw (embedding vector_cosine_ops)")

	return db, nil
}

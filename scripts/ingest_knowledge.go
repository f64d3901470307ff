// 知识库数据导入脚本
//
// 读取 JSONL 数据集（每行 {"question": ..., "answer": ..., "subject": ..., "grade": ...}），
// 批量向量化后写入 knowledge_documents 表。首次部署或更换数据集时手动执行。
//
// 用法: go run scripts/ingest_knowledge.go -file data/k12_qa.jsonl
package main

import (
	"bufio"
	"context"
	"edumate_backend/internal/config"
	"edumate_backend/internal/model"
	"edumate_backend/internal/repository"
	"edumate_backend/internal/service"
	"edumate_backend/pkg/database"
	"edumate_backend/pkg/logger"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pgvector/pgvector-go"
	"gopkg.in/yaml.v3"
)

const batchSize = 50

type datasetRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Subject  string `json:"subject"`
	Grade    int    `json:"grade"`
	Source   string `json:"source"`
}

func main() {
	file := flag.String("file", "data/k12_qa.jsonl", "JSONL 数据集路径")
	flag.Parse()

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}
	if cfg.Embedding.Dimension <= 0 {
		cfg.Embedding.Dimension = 384
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	repo := repository.NewKnowledgeRepository(db)
	embedder := service.NewEmbeddingService(cfg.Embedding)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("无法打开数据集: %v", err)
	}
	defer f.Close()

	ctx := context.Background()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var batch []datasetRecord
	total, skipped := 0, 0

	flush := func() {
		if len(batch) == 0 {
			return
		}
		texts := make([]string, len(batch))
		for i, r := range batch {
			texts[i] = fmt.Sprintf("Q: %s\nA: %s", r.Question, r.Answer)
		}

		vectors, err := embedder.EmbedBatch(ctx, texts)
		if err != nil {
			log.Fatalf("向量化失败: %v", err)
		}

		docs := make([]model.KnowledgeDocument, len(batch))
		for i, r := range batch {
			docs[i] = model.KnowledgeDocument{
				Content:    texts[i],
				Source:     r.Source,
				Subject:    r.Subject,
				GradeLevel: r.Grade,
				Embedding:  pgvector.NewVector(vectors[i]),
			}
		}
		if err := repo.CreateBatch(docs); err != nil {
			log.Fatalf("写入失败: %v", err)
		}

		total += len(batch)
		log.Printf("已导入 %d 条", total)
		batch = batch[:0]
	}

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec datasetRecord
		if err := json.Unmarshal(line, &rec); err != nil || rec.Question == "" {
			skipped++
			continue
		}

		batch = append(batch, rec)
		if len(batch) >= batchSize {
			flush()
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("读取数据集失败: %v", err)
	}
	flush()

	log.Printf("完成：导入 %d 条，跳过 %d 条", total, skipped)
}

package service

import (
	"context"
	"crypto/sha256"
	"edumate_backend/internal/config"
	"edumate_backend/internal/latex"
	"edumate_backend/pkg/logger"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	apologyAnswer  = "I'm sorry, I'm having trouble answering right now. Please try again in a moment."
	answerCacheTTL = 10 * time.Minute
)

type TutorService struct {
	Chat  ChatClient
	KB    ContextProvider
	RAG   config.RAGConfig
	Redis *redis.Client
}

func NewTutorService(chat ChatClient, kb ContextProvider, ragCfg config.RAGConfig, rdb *redis.Client) *TutorService {
	return &TutorService{
		Chat:  chat,
		KB:    kb,
		RAG:   ragCfg,
		Redis: rdb,
	}
}

type TutorAnswer struct {
	Answer      string   `json:"answer"`
	Sources     []string `json:"sources,omitempty"`
	ContextUsed bool     `json:"context_used"`
}

// gradeBandHint 按年级段调整讲解口吻和深度
func gradeBandHint(grade int) string {
	switch {
	case grade <= 2:
		return "The student is in early elementary school (grade 1-2). Use very simple words, short sentences and concrete everyday examples. Avoid jargon entirely."
	case grade <= 5:
		return "The student is in elementary school (grade 3-5). Explain step by step with simple vocabulary and relatable examples."
	case grade <= 8:
		return "The student is in middle school (grade 6-8). Use clear explanations, introduce proper terminology and show worked examples."
	case grade <= 12:
		return "The student is in high school (grade 9-12). You can use standard academic terminology and expect algebraic fluency."
	default:
		return "Adapt your explanation to a general K-12 student audience."
	}
}

func tutorSystemPrompt(grade int, kbContext string) string {
	prompt := "You are EduMate, a friendly K-12 tutor. Answer the student's question accurately and encouragingly. " +
		"Write math in LaTeX. " + gradeBandHint(grade)
	if kbContext != "" {
		prompt += fmt.Sprintf("\n\nUse the following reference material when it is relevant:\n\n%s", kbContext)
	}
	return prompt
}

func answerCacheKey(question string, grade int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s", grade, question)))
	return "tutor:answer:" + hex.EncodeToString(sum[:16])
}

// Ask 检索增强的一次性问答。所有上游失败都降级，不向调用方返回错误。
// 相同问题+年级的回答短时间内走缓存，降级答案不缓存。
func (s *TutorService) Ask(ctx context.Context, question string, grade int) *TutorAnswer {
	key := answerCacheKey(question, grade)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var answer TutorAnswer
			if err := json.Unmarshal([]byte(cached), &answer); err == nil {
				return &answer
			}
		}
	}

	kbContext, sources := s.KB.BuildContext(ctx, question, s.RAG.TopK, s.RAG.MaxContextChars)

	raw, err := s.Chat.Chat(ctx, tutorSystemPrompt(grade, kbContext), question)
	if err != nil {
		logger.Log.Error("tutor chat failed", zap.Error(err))
		return &TutorAnswer{Answer: apologyAnswer}
	}

	answer := &TutorAnswer{
		Answer:      latex.Normalize(raw),
		Sources:     sources,
		ContextUsed: kbContext != "",
	}

	if s.Redis != nil {
		if data, err := json.Marshal(answer); err == nil {
			if err := s.Redis.Set(ctx, key, data, answerCacheTTL).Err(); err != nil {
				logger.Log.Warn("tutor answer cache write failed", zap.Error(err))
			}
		}
	}
	return answer
}

// AskStream 流式问答。返回增量通道、引用来源和错误通道，
// 调用方在流结束后可用 latex.Normalize 整理累积全文。
func (s *TutorService) AskStream(ctx context.Context, question string, grade int) (<-chan string, []string, <-chan error) {
	kbContext, sources := s.KB.BuildContext(ctx, question, s.RAG.TopK, s.RAG.MaxContextChars)
	out, errChan := s.Chat.ChatStream(ctx, tutorSystemPrompt(grade, kbContext), question)
	return out, sources, errChan
}

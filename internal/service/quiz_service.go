package service

import (
	"context"
	"edumate_backend/internal/config"
	"edumate_backend/internal/model"
	"edumate_backend/internal/quiz"
	"edumate_backend/internal/repository"
	"edumate_backend/pkg/logger"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

const (
	defaultNumQuestions = 5
	defaultDifficulty   = "medium"
)

type QuizService struct {
	Chat     ChatClient
	KB       ContextProvider
	Attempts *repository.QuizAttemptRepository
	RAG      config.RAGConfig
}

func NewQuizService(chat ChatClient, kb ContextProvider, attempts *repository.QuizAttemptRepository, ragCfg config.RAGConfig) *QuizService {
	return &QuizService{
		Chat:     chat,
		KB:       kb,
		Attempts: attempts,
		RAG:      ragCfg,
	}
}

type GenerateRequest struct {
	Topic        string `json:"topic" binding:"required"`
	Grade        int    `json:"grade"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

type QuizMeta struct {
	Topic      string `json:"topic"`
	Grade      int    `json:"grade"`
	Difficulty string `json:"difficulty"`
}

type QuizPayload struct {
	Items []quiz.Item `json:"items"`
	Meta  QuizMeta    `json:"meta"`
	RawOK bool        `json:"raw_ok"`
}

func quizSystemPrompt() string {
	return "You are a K-12 quiz generator. You output ONLY a JSON object, no prose, no markdown fences. " +
		`The object has exactly one key "items": an array of multiple-choice questions. Each question is an object with keys ` +
		`"id" (string), "question_md" (markdown, LaTeX math in $...$), "choices" (object with keys "A","B","C","D"), ` +
		`"correct" (one of "A","B","C","D"), "explanation_md" (markdown) and "skill_tag" (short snake_case string).`
}

func quizUserPrompt(req GenerateRequest, kbContext string) string {
	prompt := fmt.Sprintf("Generate %d %s-difficulty multiple-choice questions about %q for a grade %d student.",
		req.NumQuestions, req.Difficulty, req.Topic, req.Grade)
	if kbContext != "" {
		prompt += fmt.Sprintf("\n\nGround the questions on this reference material where possible:\n\n%s", kbContext)
	}
	return prompt
}

// Generate 出题。解析链全部失败时退回占位测验，永不返回错误。
func (s *QuizService) Generate(ctx context.Context, req GenerateRequest) *QuizPayload {
	if req.NumQuestions <= 0 {
		req.NumQuestions = defaultNumQuestions
	}
	if req.Difficulty == "" {
		req.Difficulty = defaultDifficulty
	}

	kbContext, _ := s.KB.BuildContext(ctx, req.Topic,
		s.RAG.QuizTopKEffective(), s.RAG.MaxContextCharsEffective())

	payload := &QuizPayload{
		Meta: QuizMeta{
			Topic:      req.Topic,
			Grade:      req.Grade,
			Difficulty: req.Difficulty,
		},
	}

	raw, err := s.Chat.ChatJSON(ctx, quizSystemPrompt(), quizUserPrompt(req, kbContext))
	if err != nil {
		logger.Log.Error("quiz generation chat failed", zap.Error(err), zap.String("topic", req.Topic))
		payload.Items = quiz.FallbackItems(req.Topic, req.NumQuestions)
		return payload
	}

	items := quiz.NormalizeItems(quiz.ParseItems(raw))
	if len(items) == 0 {
		logger.Log.Warn("quiz response unparseable, using fallback items",
			zap.String("topic", req.Topic), zap.Int("raw_len", len(raw)))
		payload.Items = quiz.FallbackItems(req.Topic, req.NumQuestions)
		return payload
	}

	if len(items) > req.NumQuestions {
		items = items[:req.NumQuestions]
	}
	payload.Items = items
	payload.RawOK = true
	return payload
}

// Grade 判分，纯委托，保持服务层接口统一
func (s *QuizService) Grade(items []quiz.Item, answers []quiz.Answer) quiz.GradingResult {
	return quiz.Grade(items, answers)
}

type TrackRequest struct {
	StudentID  string        `json:"-"`
	Topic      string        `json:"topic"`
	Grade      int           `json:"grade"`
	Difficulty string        `json:"difficulty"`
	Items      []quiz.Item   `json:"items" binding:"required"`
	Answers    []quiz.Answer `json:"answers" binding:"required"`
}

// Track 持久化一次测验记录
func (s *QuizService) Track(req TrackRequest) (*model.QuizAttempt, error) {
	result := quiz.Grade(req.Items, req.Answers)

	itemsJSON, err := json.Marshal(req.Items)
	if err != nil {
		return nil, err
	}
	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, err
	}

	percentage := 0.0
	if result.Total > 0 {
		percentage = float64(result.Score) / float64(result.Total) * 100
	}

	attempt := &model.QuizAttempt{
		StudentID:    req.StudentID,
		Topic:        req.Topic,
		Grade:        req.Grade,
		Difficulty:   req.Difficulty,
		NumQuestions: result.Total,
		NumCorrect:   result.Score,
		Percentage:   percentage,
		ItemsJSON:    string(itemsJSON),
		AnswersJSON:  string(answersJSON),
	}

	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

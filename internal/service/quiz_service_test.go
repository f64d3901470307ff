package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"edumate_backend/internal/config"
	"edumate_backend/internal/quiz"
	"edumate_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

// stubChat 记录最近一次调用的提示词，按配置返回固定结果
type stubChat struct {
	resp       string
	err        error
	lastSystem string
	lastUser   string
}

func (s *stubChat) Chat(ctx context.Context, system, user string) (string, error) {
	s.lastSystem, s.lastUser = system, user
	return s.resp, s.err
}

func (s *stubChat) ChatJSON(ctx context.Context, system, user string) (string, error) {
	s.lastSystem, s.lastUser = system, user
	return s.resp, s.err
}

func (s *stubChat) ChatStream(ctx context.Context, system, user string) (<-chan string, <-chan error) {
	s.lastSystem, s.lastUser = system, user
	out := make(chan string, 8)
	errChan := make(chan error, 1)
	if s.err != nil {
		errChan <- s.err
	} else {
		for _, chunk := range strings.SplitAfter(s.resp, " ") {
			out <- chunk
		}
	}
	close(out)
	close(errChan)
	return out, errChan
}

type stubKB struct {
	context      string
	sources      []string
	lastQuery    string
	lastTopK     int
	lastMaxChars int
}

func (s *stubKB) BuildContext(ctx context.Context, query string, topK, maxChars int) (string, []string) {
	s.lastQuery, s.lastTopK, s.lastMaxChars = query, topK, maxChars
	return s.context, s.sources
}

func testRAGConfig() config.RAGConfig {
	return config.RAGConfig{
		TopK:            3,
		QuizTopK:        5,
		MaxContextChars: 5000,
		MinimalTopK:     3,
		MinimalMaxChars: 3000,
	}
}

const validQuizJSON = `{"items":[
	{"id":"q1","question_md":"What is 2+2?","choices":{"A":"3","B":"4","C":"5","D":"6"},"correct":"B","explanation_md":"2+2=4.","skill_tag":"addition"},
	{"id":"q2","question_md":"What is 3*3?","choices":{"A":"9","B":"6","C":"3","D":"12"},"correct":"A","explanation_md":"3*3=9.","skill_tag":"multiplication"},
	{"id":"q3","question_md":"What is 10-4?","choices":{"A":"5","B":"7","C":"6","D":"4"},"correct":"C","explanation_md":"10-4=6.","skill_tag":"subtraction"}
]}`

func TestQuizGenerate_ValidResponse(t *testing.T) {
	chat := &stubChat{resp: validQuizJSON}
	kb := &stubKB{context: "Multiplication is repeated addition.", sources: []string{"math-facts"}}
	svc := NewQuizService(chat, kb, nil, testRAGConfig())

	payload := svc.Generate(context.Background(), GenerateRequest{
		Topic:        "arithmetic",
		Grade:        3,
		NumQuestions: 3,
		Difficulty:   "easy",
	})

	require.True(t, payload.RawOK)
	require.Len(t, payload.Items, 3)
	assert.False(t, quiz.IsFallback(payload.Items))
	assert.Equal(t, "q1", payload.Items[0].ID)
	assert.Equal(t, "B", payload.Items[0].Correct)
	assert.Equal(t, QuizMeta{Topic: "arithmetic", Grade: 3, Difficulty: "easy"}, payload.Meta)

	// 检索上下文进入用户提示词，检索参数走出题档位
	assert.Contains(t, chat.lastUser, "Multiplication is repeated addition.")
	assert.Equal(t, "arithmetic", kb.lastQuery)
	assert.Equal(t, 5, kb.lastTopK)
	assert.Equal(t, 5000, kb.lastMaxChars)
}

func TestQuizGenerate_TruncatesToRequestedCount(t *testing.T) {
	chat := &stubChat{resp: validQuizJSON}
	svc := NewQuizService(chat, &stubKB{}, nil, testRAGConfig())

	payload := svc.Generate(context.Background(), GenerateRequest{
		Topic:        "arithmetic",
		NumQuestions: 2,
	})

	require.True(t, payload.RawOK)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, "q1", payload.Items[0].ID)
	assert.Equal(t, "q2", payload.Items[1].ID)
}

func TestQuizGenerate_DefaultsApplied(t *testing.T) {
	chat := &stubChat{resp: validQuizJSON}
	svc := NewQuizService(chat, &stubKB{}, nil, testRAGConfig())

	payload := svc.Generate(context.Background(), GenerateRequest{Topic: "fractions"})

	assert.Equal(t, "medium", payload.Meta.Difficulty)
	assert.Contains(t, chat.lastUser, "5 medium-difficulty")
}

func TestQuizGenerate_ChatErrorFallsBack(t *testing.T) {
	chat := &stubChat{err: errors.New("upstream timeout")}
	svc := NewQuizService(chat, &stubKB{}, nil, testRAGConfig())

	payload := svc.Generate(context.Background(), GenerateRequest{
		Topic:        "photosynthesis",
		NumQuestions: 4,
	})

	assert.False(t, payload.RawOK)
	require.Len(t, payload.Items, 4)
	assert.True(t, quiz.IsFallback(payload.Items))
	assert.Contains(t, payload.Items[0].QuestionMD, "photosynthesis")
}

func TestQuizGenerate_UnparseableResponseFallsBack(t *testing.T) {
	chat := &stubChat{resp: "Sure! Here are some questions about gravity..."}
	svc := NewQuizService(chat, &stubKB{}, nil, testRAGConfig())

	payload := svc.Generate(context.Background(), GenerateRequest{
		Topic:        "gravity",
		NumQuestions: 2,
	})

	assert.False(t, payload.RawOK)
	require.Len(t, payload.Items, 2)
	assert.True(t, quiz.IsFallback(payload.Items))
}

func TestQuizGenerate_MinimalModeShrinksRetrieval(t *testing.T) {
	ragCfg := testRAGConfig()
	ragCfg.MinimalMode = true

	kb := &stubKB{}
	svc := NewQuizService(&stubChat{resp: validQuizJSON}, kb, nil, ragCfg)

	svc.Generate(context.Background(), GenerateRequest{Topic: "geometry"})

	assert.Equal(t, 3, kb.lastTopK)
	assert.Equal(t, 3000, kb.lastMaxChars)
}

func TestQuizGrade_Delegates(t *testing.T) {
	svc := NewQuizService(&stubChat{resp: validQuizJSON}, &stubKB{}, nil, testRAGConfig())
	payload := svc.Generate(context.Background(), GenerateRequest{Topic: "arithmetic", NumQuestions: 3})

	result := svc.Grade(payload.Items, []quiz.Answer{
		{ID: "q1", Selected: "B"},
		{ID: "q2", Selected: "B"},
	})

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Submitted)
}

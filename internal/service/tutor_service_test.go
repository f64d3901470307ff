package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorAsk_Success(t *testing.T) {
	chat := &stubChat{resp: `A half is written \frac{1}{2}.`}
	kb := &stubKB{context: "Fractions represent parts of a whole.", sources: []string{"fractions-intro"}}
	svc := NewTutorService(chat, kb, testRAGConfig(), nil)

	answer := svc.Ask(context.Background(), "What is a fraction?", 4)

	// 回答经过 LaTeX 整形
	assert.Equal(t, "A half is written $\\frac{1}{2}$.", answer.Answer)
	assert.Equal(t, []string{"fractions-intro"}, answer.Sources)
	assert.True(t, answer.ContextUsed)

	// 问答检索走普通档位，不走出题档位
	assert.Equal(t, 3, kb.lastTopK)
	assert.Equal(t, 5000, kb.lastMaxChars)
	assert.Contains(t, chat.lastSystem, "Fractions represent parts of a whole.")
}

func TestTutorAsk_EmptyContext(t *testing.T) {
	chat := &stubChat{resp: "Plants make food from sunlight."}
	svc := NewTutorService(chat, &stubKB{}, testRAGConfig(), nil)

	answer := svc.Ask(context.Background(), "What is photosynthesis?", 7)

	assert.False(t, answer.ContextUsed)
	assert.Empty(t, answer.Sources)
	assert.NotContains(t, chat.lastSystem, "reference material")
}

func TestTutorAsk_ChatErrorDegradesToApology(t *testing.T) {
	chat := &stubChat{err: errors.New("rate limited")}
	svc := NewTutorService(chat, &stubKB{}, testRAGConfig(), nil)

	answer := svc.Ask(context.Background(), "Why is the sky blue?", 5)

	assert.Equal(t, apologyAnswer, answer.Answer)
	assert.Empty(t, answer.Sources)
}

func TestTutorAsk_GradeBandInPrompt(t *testing.T) {
	tests := []struct {
		grade int
		want  string
	}{
		{1, "early elementary"},
		{4, "elementary school (grade 3-5)"},
		{7, "middle school"},
		{11, "high school"},
		{0, "early elementary"},
		{99, "general K-12"},
	}
	for _, tt := range tests {
		chat := &stubChat{resp: "ok"}
		svc := NewTutorService(chat, &stubKB{}, testRAGConfig(), nil)
		svc.Ask(context.Background(), "question", tt.grade)
		assert.Contains(t, chat.lastSystem, tt.want, "grade %d", tt.grade)
	}
}

func TestTutorAskStream_CollectsChunks(t *testing.T) {
	chat := &stubChat{resp: "The sky is blue because of scattering."}
	kb := &stubKB{sources: []string{"optics"}}
	svc := NewTutorService(chat, kb, testRAGConfig(), nil)

	out, sources, errChan := svc.AskStream(context.Background(), "Why is the sky blue?", 6)

	var full strings.Builder
	for chunk := range out {
		full.WriteString(chunk)
	}
	require.NoError(t, <-errChan)
	assert.Equal(t, "The sky is blue because of scattering.", full.String())
	assert.Equal(t, []string{"optics"}, sources)
}

func TestTutorAskStream_PropagatesError(t *testing.T) {
	chat := &stubChat{err: errors.New("connection reset")}
	svc := NewTutorService(chat, &stubKB{}, testRAGConfig(), nil)

	out, _, errChan := svc.AskStream(context.Background(), "question", 6)

	for range out {
	}
	assert.Error(t, <-errChan)
}

package service

import (
	"context"
	"edumate_backend/internal/config"
	"edumate_backend/pkg/monitoring"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// ChatClient 聊天补全客户端。TutorService / QuizService 依赖此接口，
// 测试用桩实现替换。
type ChatClient interface {
	Chat(ctx context.Context, system, user string) (string, error)
	ChatJSON(ctx context.Context, system, user string) (string, error)
	ChatStream(ctx context.Context, system, user string) (<-chan string, <-chan error)
}

// AIService 通过 Groq 的 OpenAI 兼容端点调用大模型
type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(cfg config.AIConfig) *AIService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &AIService{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func (s *AIService) Chat(ctx context.Context, system, user string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	monitoring.ObserveLLM("chat", err)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("AI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatJSON 请求 JSON 输出模式，用于出题
func (s *AIService) ChatJSON(ctx context.Context, system, user string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	monitoring.ObserveLLM("quiz", err)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("AI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatStream 流式返回增量内容，错误通过第二个通道送出
func (s *AIService) ChatStream(ctx context.Context, system, user string) (<-chan string, <-chan error) {
	out := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errChan)

		stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			Stream: true,
		})
		monitoring.ObserveLLM("chat_stream", err)
		if err != nil {
			errChan <- err
			return
		}
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					errChan <- err
				}
				return
			}
			if len(resp.Choices) > 0 {
				content := resp.Choices[0].Delta.Content
				if content != "" {
					select {
					case out <- content:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out, errChan
}

package llm

import (
	"context"
	"fmt"
	"strings"

	"EDT/internal/config"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// GenerationParams 单次调用的生成参数
//
// TopK 仅作记录：OpenAI 兼容协议不接受 top_k，eino 也没有通用选项
type GenerationParams struct {
	Temperature float32
	TopP        float32
	TopK        int
	MaxTokens   int
}

// Generator 无状态的单 prompt 文本生成
type Generator interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

type chatModelGenerator struct {
	cm model.BaseChatModel
}

// NewGenerator 将 eino ChatModel 适配为 Generator
func NewGenerator(cm model.BaseChatModel) Generator {
	return &chatModelGenerator{cm: cm}
}

// NewGeneratorFromConfig 读取配置创建 Generator
func NewGeneratorFromConfig(ctx context.Context, conf config.AIChatModelConfig) (Generator, ChatModelMeta, error) {
	cm, meta, err := NewChatModelFromConfig(ctx, conf)
	if err != nil {
		return nil, meta, err
	}
	return NewGenerator(cm), meta, nil
}

func (g *chatModelGenerator) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	var opts []model.Option
	if params.Temperature > 0 {
		opts = append(opts, model.WithTemperature(params.Temperature))
	}
	if params.TopP > 0 {
		opts = append(opts, model.WithTopP(params.TopP))
	}
	if params.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(params.MaxTokens))
	}

	resp, err := g.cm.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", fmt.Errorf("empty model response")
	}
	return resp.Content, nil
}

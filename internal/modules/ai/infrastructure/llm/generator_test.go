package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type fakeChatModel struct {
	content string
	err     error
	got     *model.Options
	prompt  string
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.got = model.GetCommonOptions(nil, opts...)
	if len(input) > 0 {
		f.prompt = input[0].Content
	}
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.content, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func TestChatModelGeneratorPassesParams(t *testing.T) {
	fake := &fakeChatModel{content: `{"ok":true}`}
	gen := NewGenerator(fake)

	out, err := gen.Generate(context.Background(), "hello", GenerationParams{Temperature: 0.3, TopP: 0.9, MaxTokens: 256})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != `{"ok":true}` || fake.prompt != "hello" {
		t.Fatalf("got out=%q prompt=%q", out, fake.prompt)
	}
	if fake.got.Temperature == nil || *fake.got.Temperature != 0.3 {
		t.Fatalf("temperature not forwarded: %+v", fake.got)
	}
	if fake.got.MaxTokens == nil || *fake.got.MaxTokens != 256 {
		t.Fatalf("max tokens not forwarded: %+v", fake.got)
	}
}

func TestChatModelGeneratorEmptyResponse(t *testing.T) {
	gen := NewGenerator(&fakeChatModel{content: "   "})
	if _, err := gen.Generate(context.Background(), "x", GenerationParams{}); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

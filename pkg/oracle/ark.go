package oracle

import (
	"context"
	"errors"

	"github.com/cloudwego/eino-ext/components/model/ark"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"evol-jewels-io/stylist/pkg/models"
	"evol-jewels-io/stylist/pkg/vibe"
)

type ArkConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ChatModel adapts any eino chat model into a vibe.Oracle.
type ChatModel struct {
	name  string
	model einomodel.BaseChatModel
	table *vibe.Table
}

// NewArk builds a Volcengine Ark chat model and wraps it.
func NewArk(ctx context.Context, cfg ArkConfig, table *vibe.Table) (*ChatModel, error) {
	cm, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, err
	}
	return NewChatModel("ark", cm, table), nil
}

func NewChatModel(name string, cm einomodel.BaseChatModel, table *vibe.Table) *ChatModel {
	return &ChatModel{name: name, model: cm, table: table}
}

func (c *ChatModel) Name() string { return c.name }

func (c *ChatModel) Classify(ctx context.Context, s models.SurveyInput) (vibe.Decision, error) {
	msg, err := c.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(c.table.SystemPrompt()),
		schema.UserMessage(vibe.UserPrompt(s)),
	}, einomodel.WithTemperature(float32(defaultTemperature)), einomodel.WithMaxTokens(defaultMaxTokens))
	if err != nil {
		return vibe.Decision{}, err
	}
	if msg == nil {
		return vibe.Decision{}, errors.New("empty chat model reply")
	}
	return c.table.ParseDecision(msg.Content)
}

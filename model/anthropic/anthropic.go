//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
	"trpc.group/trpc-go/trpc-blockflow-go/log"
	"trpc.group/trpc-go/trpc-blockflow-go/model"
	"trpc.group/trpc-go/trpc-blockflow-go/tool"
)

// Model implements the model.Model interface for the Anthropic API.
type Model struct {
	client                  anthropic.Client
	name                    string
	maxTokens               int
	anthropicRequestOptions []option.RequestOption
}

// New creates a new Anthropic model adapter. The name is the default model
// identifier used when a request does not carry its own.
func New(name string, opts ...Option) *Model {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}

	var clientOpts []option.RequestOption
	if o.apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(o.apiKey))
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(o.baseURL))
	}
	for k, v := range o.extraHeaders {
		clientOpts = append(clientOpts, option.WithHeader(k, v))
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(o.httpClient))
	}
	clientOpts = append(clientOpts, o.anthropicClientOptions...)
	client := anthropic.NewClient(clientOpts...)

	return &Model{
		client:                  client,
		name:                    name,
		maxTokens:               o.maxTokens,
		anthropicRequestOptions: o.anthropicRequestOptions,
	}
}

// Info returns the model information.
func (m *Model) Info() model.Info {
	return model.Info{
		Name: m.name,
	}
}

// GenerateContent generates content from the model.
func (m *Model) GenerateContent(
	ctx context.Context,
	request *model.Request,
) (*model.Response, error) {
	if request == nil {
		return nil, errors.New("request cannot be nil")
	}
	chatRequest, err := m.buildChatRequest(request)
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	message, err := m.client.Messages.New(ctx, *chatRequest, m.anthropicRequestOptions...)
	if err != nil {
		log.Errorf("anthropic message request failed: %v", err)
		return &model.Response{
			Timestamp: time.Now(),
			Error: &model.ResponseError{
				Message: err.Error(),
				Type:    model.ErrorTypeAPIError,
			},
		}, nil
	}
	return convertMessage(message), nil
}

// buildChatRequest builds the chat request for the Anthropic API.
func (m *Model) buildChatRequest(request *model.Request) (*anthropic.MessageNewParams, error) {
	messages, systemPrompts, err := convertMessages(request.Messages)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, errors.New("request must include at least one non-system message")
	}

	name := request.Model
	if name == "" {
		name = m.name
	}

	chatRequest := &anthropic.MessageNewParams{
		Model:    anthropic.Model(name),
		Messages: messages,
		Tools:    convertTools(request.Tools),
	}
	if len(systemPrompts) > 0 {
		chatRequest.System = systemPrompts
	}
	if request.GenerationConfig.MaxTokens != nil {
		chatRequest.MaxTokens = int64(*request.GenerationConfig.MaxTokens)
	}
	if chatRequest.MaxTokens == 0 {
		chatRequest.MaxTokens = int64(m.maxTokens)
	}
	if request.Temperature != nil {
		chatRequest.Temperature = anthropic.Float(*request.Temperature)
	}
	if request.TopP != nil {
		chatRequest.TopP = anthropic.Float(*request.TopP)
	}
	if len(request.Stop) > 0 {
		chatRequest.StopSequences = append(chatRequest.StopSequences, request.Stop...)
	}
	return chatRequest, nil
}

// convertMessages converts messages to Anthropic format, collecting system
// prompts separately.
func convertMessages(messages []model.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam, error) {
	conversation := make([]anthropic.MessageParam, 0, len(messages))
	systemPrompts := make([]anthropic.TextBlockParam, 0)
	for _, message := range messages {
		switch message.Role {
		case model.RoleSystem:
			systemPrompts = append(systemPrompts, anthropic.TextBlockParam{Text: message.Content})
		case model.RoleAssistant:
			conversation = append(conversation,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(message.Content)))
		case model.RoleUser:
			conversation = append(conversation,
				anthropic.NewUserMessage(anthropic.NewTextBlock(message.Content)))
		default:
			return nil, nil, fmt.Errorf("unsupported message role: %s", message.Role)
		}
	}
	return conversation, systemPrompts, nil
}

// convertTools maps our tool declarations to Anthropic tool parameters.
func convertTools(tools []*tool.Declaration) []anthropic.ToolUnionParam {
	var result []anthropic.ToolUnionParam
	for _, declaration := range tools {
		if declaration == nil || declaration.InputSchema == nil {
			continue
		}
		result = append(result, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        declaration.Name,
				Description: anthropic.String(declaration.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Type:       constant.Object(declaration.InputSchema.Type),
					Properties: declaration.InputSchema.Properties,
					Required:   declaration.InputSchema.Required,
				},
			},
		})
	}
	return result
}

// convertMessage converts an Anthropic message into a model response.
func convertMessage(message *anthropic.Message) *model.Response {
	var (
		textBuilder strings.Builder
		toolCalls   []model.ToolCall
	)
	for _, content := range message.Content {
		switch block := content.AsAny().(type) {
		case anthropic.TextBlock:
			textBuilder.WriteString(block.Text)
		case anthropic.ToolUseBlock:
			input := make(map[string]any)
			if len(block.Input) > 0 {
				if err := json.Unmarshal(block.Input, &input); err != nil {
					log.Warnf("decode tool input for %s: %v", block.Name, err)
				}
			}
			toolCalls = append(toolCalls, model.ToolCall{
				ID:    block.ID,
				Name:  block.Name,
				Input: input,
			})
		}
	}
	return &model.Response{
		ID:        message.ID,
		Model:     string(message.Model),
		Text:      textBuilder.String(),
		ToolCalls: toolCalls,
		Usage: &model.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
		Timestamp: time.Now(),
	}
}

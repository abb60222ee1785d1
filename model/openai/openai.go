//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

// Package openai provides OpenAI-compatible model implementations. It covers
// any gateway speaking the chat-completions protocol.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"trpc.group/trpc-go/trpc-blockflow-go/log"
	"trpc.group/trpc-go/trpc-blockflow-go/model"
	"trpc.group/trpc-go/trpc-blockflow-go/tool"
)

const defaultMaxTokens = 1024

// options contains configuration options for creating an OpenAI model.
type options struct {
	apiKey              string
	baseURL             string
	maxTokens           int
	openaiClientOptions []openaiopt.RequestOption
}

// Option is a function that configures an OpenAI model.
type Option func(*options)

// WithAPIKey sets the API key for the OpenAI client.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.apiKey = key
	}
}

// WithBaseURL sets the base URL for the OpenAI client.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithMaxTokens sets the default max tokens applied when the request does
// not set one.
func WithMaxTokens(n int) Option {
	return func(o *options) {
		o.maxTokens = n
	}
}

// WithOpenAIClientOptions appends raw SDK options used when building the
// OpenAI client.
func WithOpenAIClientOptions(opts ...openaiopt.RequestOption) Option {
	return func(o *options) {
		o.openaiClientOptions = append(o.openaiClientOptions, opts...)
	}
}

// Model implements the model.Model interface for OpenAI-compatible APIs.
type Model struct {
	client    openai.Client
	name      string
	maxTokens int
}

// New creates a new OpenAI model adapter.
func New(name string, opts ...Option) *Model {
	o := options{maxTokens: defaultMaxTokens}
	for _, opt := range opts {
		opt(&o)
	}

	var clientOpts []openaiopt.RequestOption
	if o.apiKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.apiKey))
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.baseURL))
	}
	clientOpts = append(clientOpts, o.openaiClientOptions...)

	return &Model{
		client:    openai.NewClient(clientOpts...),
		name:      name,
		maxTokens: o.maxTokens,
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
	completion, err := m.client.Chat.Completions.New(ctx, *chatRequest)
	if err != nil {
		log.Errorf("openai chat completion request failed: %v", err)
		return &model.Response{
			Timestamp: time.Now(),
			Error: &model.ResponseError{
				Message: err.Error(),
				Type:    model.ErrorTypeAPIError,
			},
		}, nil
	}
	return convertCompletion(completion), nil
}

// buildChatRequest converts our Request to OpenAI request params.
func (m *Model) buildChatRequest(request *model.Request) (*openai.ChatCompletionNewParams, error) {
	name := request.Model
	if name == "" {
		name = m.name
	}

	var messages []openai.ChatCompletionMessageParamUnion
	for _, message := range request.Messages {
		switch message.Role {
		case model.RoleSystem:
			messages = append(messages, openai.SystemMessage(message.Content))
		case model.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(message.Content))
		case model.RoleUser:
			messages = append(messages, openai.UserMessage(message.Content))
		default:
			return nil, fmt.Errorf("unsupported message role: %s", message.Role)
		}
	}
	if len(messages) == 0 {
		return nil, errors.New("request must include at least one message")
	}

	chatRequest := &openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(name),
		Messages: messages,
		Tools:    convertTools(request.Tools),
	}
	maxTokens := m.maxTokens
	if request.MaxTokens != nil {
		maxTokens = *request.MaxTokens
	}
	chatRequest.MaxCompletionTokens = openai.Int(int64(maxTokens))
	if request.Temperature != nil {
		chatRequest.Temperature = openai.Float(*request.Temperature)
	}
	if request.TopP != nil {
		chatRequest.TopP = openai.Float(*request.TopP)
	}
	return chatRequest, nil
}

// convertTools maps our tool declarations to OpenAI tool parameters.
func convertTools(tools []*tool.Declaration) []openai.ChatCompletionToolParam {
	var result []openai.ChatCompletionToolParam
	for _, declaration := range tools {
		if declaration == nil || declaration.InputSchema == nil {
			continue
		}
		// Round-trip the schema through JSON to map to OpenAI's expected format.
		schemaBytes, err := json.Marshal(declaration.InputSchema)
		if err != nil {
			log.Errorf("failed to marshal tool schema for %s: %v", declaration.Name, err)
			continue
		}
		var parameters shared.FunctionParameters
		if err := json.Unmarshal(schemaBytes, &parameters); err != nil {
			log.Errorf("failed to unmarshal tool schema for %s: %v", declaration.Name, err)
			continue
		}
		result = append(result, openai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        declaration.Name,
				Description: openai.String(declaration.Description),
				Parameters:  parameters,
			},
		})
	}
	return result
}

// convertCompletion converts an OpenAI completion into a model response.
func convertCompletion(completion *openai.ChatCompletion) *model.Response {
	rsp := &model.Response{
		ID:        completion.ID,
		Model:     completion.Model,
		Timestamp: time.Now(),
	}
	if len(completion.Choices) > 0 {
		message := completion.Choices[0].Message
		rsp.Text = message.Content
		for _, call := range message.ToolCalls {
			input := make(map[string]any)
			if call.Function.Arguments != "" {
				if err := json.Unmarshal([]byte(call.Function.Arguments), &input); err != nil {
					log.Warnf("decode tool arguments for %s: %v", call.Function.Name, err)
				}
			}
			rsp.ToolCalls = append(rsp.ToolCalls, model.ToolCall{
				ID:    call.ID,
				Name:  call.Function.Name,
				Input: input,
			})
		}
	}
	if completion.Usage.TotalTokens > 0 {
		rsp.Usage = &model.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		}
	}
	return rsp
}

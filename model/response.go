//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package model

import "time"

// Error type constants for ResponseError.
const (
	// ErrorTypeAPIError is the error type for API errors.
	ErrorTypeAPIError = "api_error"
	// ErrorTypeInvalidRequest is the error type for invalid request errors.
	ErrorTypeInvalidRequest = "invalid_request_error"
)

// ToolCall represents a structured tool invocation emitted by the model.
type ToolCall struct {
	// ID is the tool call identifier returned by the model.
	ID string `json:"id,omitempty"`
	// Name is the tool name the model invoked.
	Name string `json:"toolName"`
	// Input holds the decoded tool arguments.
	Input map[string]any `json:"input"`
}

// Usage represents token usage information.
type Usage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens in the response.
	TotalTokens int `json:"total_tokens"`
}

// Response is the response from the model.
//
// Error Handling Note:
// The Error field in this struct represents API-level errors that occur
// after successful communication with the model service. This is different
// from function-level errors returned by GenerateContent(), which indicate
// system-level failures that prevent communication entirely.
type Response struct {
	// ID is the unique identifier for this response.
	ID string `json:"id,omitempty"`

	// Model is the model used to generate the response.
	Model string `json:"model,omitempty"`

	// Text is the free-text part of the completion. May be empty when the
	// model answered only with tool calls.
	Text string `json:"response"`

	// ToolCalls contains the structured tool invocations, if any.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`

	// Usage contains token usage information, when the gateway reports it.
	Usage *Usage `json:"usage,omitempty"`

	// Error contains API-level error information if the request failed.
	// This is nil for successful responses.
	Error *ResponseError `json:"error,omitempty"`

	// Timestamp when this response was received.
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// IsError reports whether the response carries an API-level error.
func (rsp *Response) IsError() bool {
	return rsp != nil && rsp.Error != nil
}

// ResponseError represents an API-level error in a response.
type ResponseError struct {
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Type is the error type, e.g. "api_error".
	Type string `json:"type,omitempty"`
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return e.Message
}

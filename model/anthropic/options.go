//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

// Package anthropic provides Anthropic-compatible model implementations.
package anthropic

import (
	"net/http"

	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultMaxTokens = 1024

// options contains configuration options for creating an Anthropic model.
type options struct {
	// API key for the Anthropic client.
	apiKey string
	// Base URL for the Anthropic client. Point this at an LLM gateway to
	// proxy requests, e.g. a PostHog project gateway.
	baseURL string
	// Extra headers sent with every request. Gateways commonly require a
	// bearer Authorization header in addition to the SDK api key.
	extraHeaders map[string]string
	// HTTP client used by the SDK.
	httpClient *http.Client
	// Default max tokens applied when the request does not set one.
	maxTokens int
	// Options for building the Anthropic client.
	anthropicClientOptions []option.RequestOption
	// Options applied per request.
	anthropicRequestOptions []option.RequestOption
}

var defaultOptions = options{
	maxTokens: defaultMaxTokens,
}

// Option is a function that configures an Anthropic model.
type Option func(*options)

// WithAPIKey sets the API key for the Anthropic client.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.apiKey = key
	}
}

// WithBaseURL sets the base URL for the Anthropic client.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithExtraHeader adds a header sent with every request.
func WithExtraHeader(key, value string) Option {
	return func(o *options) {
		if o.extraHeaders == nil {
			o.extraHeaders = make(map[string]string)
		}
		o.extraHeaders[key] = value
	}
}

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithMaxTokens sets the default max tokens applied when the request does
// not set one.
func WithMaxTokens(n int) Option {
	return func(o *options) {
		o.maxTokens = n
	}
}

// WithAnthropicClientOptions appends raw SDK options used when building the
// Anthropic client.
func WithAnthropicClientOptions(opts ...option.RequestOption) Option {
	return func(o *options) {
		o.anthropicClientOptions = append(o.anthropicClientOptions, opts...)
	}
}

// WithAnthropicRequestOptions appends raw SDK options applied per request.
func WithAnthropicRequestOptions(opts ...option.RequestOption) Option {
	return func(o *options) {
		o.anthropicRequestOptions = append(o.anthropicRequestOptions, opts...)
	}
}

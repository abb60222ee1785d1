//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

// Package model provides interfaces for working with LLMs.
package model

import "context"

// Model is the interface for all language models.
type Model interface {
	// GenerateContent runs one completion for the request and returns the
	// final response. Implementations must not retry on failure; a failure
	// is surfaced once per call.
	GenerateContent(ctx context.Context, request *Request) (*Response, error)

	// Info returns the model information.
	Info() Info
}

// Info describes a model instance.
type Info struct {
	// Name is the default model identifier used when a request does not
	// carry its own.
	Name string
}

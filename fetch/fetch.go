//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

// Package fetch loads the content behind a URL as text for URL loader
// blocks. HTML pages are converted to markdown so the model receives
// readable reference content.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "trpc-blockflow-go/url-loader"
)

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithMaxContentLength caps the fetched content in bytes. 0 means
// unlimited.
func WithMaxContentLength(limit int) Option {
	return func(f *Fetcher) {
		f.maxContentLength = limit
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// Fetcher loads URL content over HTTP.
type Fetcher struct {
	client           *http.Client
	maxContentLength int
	userAgent        string
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the content behind a URL as text. HTML is converted to
// markdown; other supported text types are returned as-is.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	mediaType := strings.TrimSpace(strings.Split(resp.Header.Get("Content-Type"), ";")[0])

	var content string
	switch {
	case mediaType == "text/html":
		content, err = convertHTMLToMarkdown(resp.Body)
	case isSupportedTextType(mediaType):
		content, err = readBodyAsString(resp.Body)
	default:
		return "", fmt.Errorf("unsupported content type: %s", mediaType)
	}
	if err != nil {
		return "", err
	}

	if f.maxContentLength > 0 && len(content) > f.maxContentLength {
		content = truncateString(content, f.maxContentLength)
	}
	return content, nil
}

func isSupportedTextType(mediaType string) bool {
	switch mediaType {
	case "application/json",
		"text/plain",
		"text/xml",
		"text/css",
		"text/javascript",
		"text/csv",
		"text/markdown":
		return true
	default:
		return false
	}
}

func readBodyAsString(r io.Reader) (string, error) {
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, r); err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return buf.String(), nil
}

// truncateString truncates a string to n bytes without splitting a rune.
func truncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	currentLen := 0
	for _, r := range s {
		rLen := len(string(r))
		if currentLen+rLen > n {
			break
		}
		sb.WriteRune(r)
		currentLen += rLen
	}
	return sb.String()
}

func convertHTMLToMarkdown(r io.Reader) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	bodyBytes, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return conv.ConvertString(string(bodyBytes))
}

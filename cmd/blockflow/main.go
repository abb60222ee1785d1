//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

// Command blockflow serves the pipeline builder backend: a single pipeline
// state, the execution engine and the HTTP API the browser UI talks to.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"trpc.group/trpc-go/trpc-blockflow-go/block"
	"trpc.group/trpc-go/trpc-blockflow-go/engine"
	"trpc.group/trpc-go/trpc-blockflow-go/fetch"
	"trpc.group/trpc-go/trpc-blockflow-go/log"
	"trpc.group/trpc-go/trpc-blockflow-go/model"
	"trpc.group/trpc-go/trpc-blockflow-go/model/anthropic"
	"trpc.group/trpc-go/trpc-blockflow-go/model/openai"
	"trpc.group/trpc-go/trpc-blockflow-go/pipeline"
	"trpc.group/trpc-go/trpc-blockflow-go/server"
	"trpc.group/trpc-go/trpc-blockflow-go/template"
)

const (
	envAPIKey  = "BLOCKFLOW_GATEWAY_API_KEY"
	envBaseURL = "BLOCKFLOW_GATEWAY_BASE_URL"
)

// config is the yaml configuration for the blockflow binary.
type config struct {
	// Addr is the listen address, e.g. ":8090".
	Addr string `yaml:"addr"`
	// Provider selects the model adapter: "anthropic" or "openai".
	Provider string `yaml:"provider"`
	// Model is the default model name used when a block does not set one.
	Model string `yaml:"model"`
	// BaseURL points the adapter at an LLM gateway. The environment
	// variable BLOCKFLOW_GATEWAY_BASE_URL takes precedence.
	BaseURL string `yaml:"baseURL"`
	// MaxTokens caps each gateway call.
	MaxTokens int `yaml:"maxTokens"`
	// AllowedOrigins restricts CORS; empty allows any origin.
	AllowedOrigins []string `yaml:"allowedOrigins"`
	// Template preloads a game template by id at startup.
	Template string `yaml:"template"`
	// LogLevel is one of debug, info, warn, error, fatal.
	LogLevel string `yaml:"logLevel"`
}

func defaultConfig() config {
	return config{
		Addr:      ":8090",
		Provider:  "anthropic",
		Model:     block.DefaultModel,
		MaxTokens: 1024,
		LogLevel:  log.LevelInfo,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func buildModel(cfg config) (model.Model, error) {
	apiKey := os.Getenv(envAPIKey)
	baseURL := cfg.BaseURL
	if env := os.Getenv(envBaseURL); env != "" {
		baseURL = env
	}
	switch cfg.Provider {
	case "anthropic":
		var opts []anthropic.Option
		if apiKey != "" {
			opts = append(opts, anthropic.WithAPIKey(apiKey))
		}
		if baseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(baseURL))
		}
		if cfg.MaxTokens > 0 {
			opts = append(opts, anthropic.WithMaxTokens(cfg.MaxTokens))
		}
		return anthropic.New(cfg.Model, opts...), nil
	case "openai":
		var opts []openai.Option
		if apiKey != "" {
			opts = append(opts, openai.WithAPIKey(apiKey))
		}
		if baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		if cfg.MaxTokens > 0 {
			opts = append(opts, openai.WithMaxTokens(cfg.MaxTokens))
		}
		return openai.New(cfg.Model, opts...), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func main() {
	configPath := flag.String("config", "", "Path to yaml config file")
	addr := flag.String("addr", "", "Listen address, overrides config")
	templateID := flag.String("template", "", "Game template to preload, overrides config")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *templateID != "" {
		cfg.Template = *templateID
	}
	log.SetLevel(cfg.LogLevel)

	m, err := buildModel(cfg)
	if err != nil {
		log.Fatalf("building model: %v", err)
	}

	state := pipeline.NewState()
	eng := engine.New(state, m, engine.WithURLFetcher(fetch.New()))

	if cfg.Template != "" {
		tmpl, ok := template.Get(cfg.Template)
		if !ok {
			log.Fatalf("unknown template %q", cfg.Template)
		}
		if err := state.Paste(tmpl.CreatePipeline()); err != nil {
			log.Fatalf("loading template %s: %v", cfg.Template, err)
		}
		log.Infof("preloaded template: %s", tmpl.Name)
	}

	var srvOpts []server.Option
	if len(cfg.AllowedOrigins) > 0 {
		srvOpts = append(srvOpts, server.WithAllowedOrigins(cfg.AllowedOrigins...))
	}
	srv := server.New(state, eng, srvOpts...)

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("blockflow listening on %s (provider=%s model=%s)", cfg.Addr, cfg.Provider, cfg.Model)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}

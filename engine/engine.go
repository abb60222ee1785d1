//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

// Package engine executes pipeline runs: it compiles prompts, invokes the
// model, routes returned tool calls back to their owning blocks, and runs
// genie sub-agent conversations.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-blockflow-go/block"
	"trpc.group/trpc-go/trpc-blockflow-go/log"
	"trpc.group/trpc-go/trpc-blockflow-go/model"
	"trpc.group/trpc-go/trpc-blockflow-go/pipeline"
	"trpc.group/trpc-go/trpc-blockflow-go/tool"
)

// fallbackSystemPrompt is used when the compiled prompt is empty.
const fallbackSystemPrompt = "You are a helpful assistant."

// ErrBlankUserInput reports a run request for an inference node whose user
// input is empty.
var ErrBlankUserInput = errors.New("engine: no user input provided")

// URLFetcher loads the content behind a URL as text.
type URLFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Engine drives pipeline execution over a state store and a model.
type Engine struct {
	state     *pipeline.State
	model     model.Model
	scheduler *Scheduler
	fetcher   URLFetcher
}

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler replaces the deferred task scheduler.
func WithScheduler(s *Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithURLFetcher sets the fetcher used by URL loader blocks.
func WithURLFetcher(f URLFetcher) Option {
	return func(e *Engine) {
		e.fetcher = f
	}
}

// New creates an engine over a pipeline state store and a model.
func New(state *pipeline.State, m model.Model, opts ...Option) *Engine {
	e := &Engine{
		state:     state,
		model:     m,
		scheduler: NewScheduler(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scheduler returns the engine's deferred task scheduler.
func (e *Engine) Scheduler() *Scheduler {
	return e.scheduler
}

// Run executes one inference call for an inference node. It compiles the
// prompt and tool list from the blocks before the node, invokes the model,
// stores returned free text as the node's own output, and routes each
// returned tool call to the block owning its tool name. A node re-runs any
// number of times; each run fully overwrites prior output.
func (e *Engine) Run(ctx context.Context, nodeID string) error {
	index, node, err := e.nodeAt(nodeID, block.TypeInference)
	if err != nil {
		return err
	}
	cfg, _ := node.Config.(block.InferenceConfig)

	// Local validation: reject before touching any state.
	userMessage := e.state.UserInput(nodeID)
	if strings.TrimSpace(userMessage) == "" {
		return ErrBlankUserInput
	}

	if err := e.state.BeginRun(nodeID); err != nil {
		return err
	}
	defer e.state.EndRun(nodeID)

	prompt := e.state.CompilePrompt(index, pipeline.CompileOptions{})
	if prompt == "" {
		prompt = fallbackSystemPrompt
	}
	routed := e.state.ToolsForNode(index)

	rsp, err := e.generate(ctx, prompt, userMessage, cfg.Model, cfg.Temperature, routed.Tools, cfg.MaxTokens)
	if err != nil {
		e.state.SetRunError(nodeID, err.Error())
		log.Errorf("inference failed for node %s: %v", nodeID, err)
		return err
	}
	e.state.SetRunError(nodeID, "")

	if rsp.Text != "" {
		e.state.SetOutput(nodeID, block.TextOutput{Content: rsp.Text})
	}
	e.routeToolCalls(rsp, routed)
	e.applyGenieUpdates(rsp, e.state.FullNodes()[:index])
	return nil
}

// routeToolCalls delivers each returned tool call to the block owning its
// tool name. Later calls overwrite earlier ones for the same block. Genie
// backstory updates are left to applyGenieUpdates, which matches on the
// tool name pattern rather than the exact registered name.
func (e *Engine) routeToolCalls(rsp *model.Response, routed pipeline.RoutedTools) {
	for _, call := range rsp.ToolCalls {
		targetID, ok := routed.NodeIDByToolName[call.Name]
		if !ok {
			if !block.MatchesTool(block.TypeGenie, call.Name) {
				log.Debugf("dropping tool call %s: no owning block", call.Name)
			}
			continue
		}
		target, ok := e.state.Node(targetID)
		if !ok || target.Type == block.TypeGenie {
			continue
		}
		e.state.SetOutput(targetID, e.normalizeOutput(target, call, rsp))
	}
}

// applyGenieUpdates scans the blocks before the inference node and rewrites
// the backstory of every genie a returned update call addresses. The scan
// parses by name pattern, so a call using the canonical update_backstory
// name reaches a genie whose registered tool carries a derived name.
func (e *Engine) applyGenieUpdates(rsp *model.Response, preceding []pipeline.Node) {
	iface, _ := block.InterfaceFor(block.TypeGenie)
	for _, node := range preceding {
		if node.Type != block.TypeGenie {
			continue
		}
		parsed, ok := iface.Parse(rsp, node.ID)
		if !ok {
			continue
		}
		e.applyGenieUpdate(node, parsed.(block.GenieUpdate))
	}
}

// normalizeOutput converts a tool call input into the target block's typed
// output record, keeping the raw input when the block type cannot parse
// it.
func (e *Engine) normalizeOutput(target pipeline.Node, call model.ToolCall, rsp *model.Response) any {
	iface, ok := block.InterfaceFor(target.Type)
	if !ok {
		return call.Input
	}
	single := &model.Response{ToolCalls: []model.ToolCall{call}, Text: rsp.Text}
	out, ok := iface.Parse(single, target.ID)
	if !ok {
		return call.Input
	}
	return out
}

// applyGenieUpdate rewrites a genie's backstory from a parsed update,
// flags the pending notification, and schedules the genie's auto-response
// when both the update and the genie config ask for one.
func (e *Engine) applyGenieUpdate(target pipeline.Node, update block.GenieUpdate) {
	cfg, _ := target.Config.(block.GenieConfig)
	cfg.Backstory = update.Backstory
	if err := e.state.UpdateConfig(target.ID, cfg); err != nil {
		log.Errorf("updating genie %s backstory: %v", target.ID, err)
		return
	}
	e.state.MarkBackstoryUpdated(target.ID)
	log.Infof("genie %s backstory updated", target.ID)

	if update.ShouldAutoRespond && cfg.AutoRespondOnUpdate {
		nodeID := target.ID
		e.scheduler.Schedule(nodeID, func(ctx context.Context) {
			if err := e.RunGenie(ctx, nodeID, "Your backstory has been updated. Say something new."); err != nil {
				log.Errorf("genie %s auto-response failed: %v", nodeID, err)
			}
		})
	}
}

// LoadURL fetches the content behind a URL loader node and stores it as
// that node's URL context. Fetch errors are stored on the context rather
// than returned, matching how the prompt compiler consumes them.
func (e *Engine) LoadURL(ctx context.Context, nodeID string) error {
	_, node, err := e.nodeAt(nodeID, block.TypeURLLoader)
	if err != nil {
		return err
	}
	if e.fetcher == nil {
		return errors.New("engine: no URL fetcher configured")
	}
	cfg, _ := node.Config.(block.URLLoaderConfig)
	if strings.TrimSpace(cfg.URL) == "" {
		return errors.New("engine: url loader has no url configured")
	}
	if !e.state.BeginURLLoad(nodeID) {
		return pipeline.ErrNodeBusy
	}
	defer e.state.EndURLLoad(nodeID)

	content, err := e.fetcher.Fetch(ctx, cfg.URL)
	if err != nil {
		e.state.SetURLContext(nodeID, pipeline.URLContext{
			URL:   cfg.URL,
			Label: cfg.Label,
			Error: err.Error(),
		})
		log.Errorf("loading url %s for node %s: %v", cfg.URL, nodeID, err)
		return nil
	}
	e.state.SetURLContext(nodeID, pipeline.URLContext{
		URL:     cfg.URL,
		Label:   cfg.Label,
		Content: content,
	})
	return nil
}

// generate performs one model call with the builder's request contract.
func (e *Engine) generate(
	ctx context.Context,
	systemPrompt, userMessage, modelName string,
	temperature float64,
	tools []*tool.Declaration,
	maxTokens int,
) (*model.Response, error) {
	req := &model.Request{
		Model: modelName,
		Messages: []model.Message{
			model.NewSystemMessage(systemPrompt),
			model.NewUserMessage(userMessage),
		},
		Tools: tools,
	}
	req.GenerationConfig.Temperature = &temperature
	if maxTokens > 0 {
		req.GenerationConfig.MaxTokens = &maxTokens
	}
	rsp, err := e.model.GenerateContent(ctx, req)
	if err != nil {
		return nil, err
	}
	if rsp.IsError() {
		return nil, fmt.Errorf("engine: inference error: %w", rsp.Error)
	}
	return rsp, nil
}

func (e *Engine) nodeAt(nodeID string, want block.Type) (int, pipeline.Node, error) {
	full := e.state.FullNodes()
	for i, n := range full {
		if n.ID == nodeID {
			if n.Type != want {
				return 0, pipeline.Node{}, fmt.Errorf("engine: node %s has type %s, want %s", nodeID, n.Type, want)
			}
			return i, n, nil
		}
	}
	return 0, pipeline.Node{}, pipeline.ErrNodeNotFound
}

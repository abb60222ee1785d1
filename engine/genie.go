//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package engine

import (
	"context"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-blockflow-go/block"
	"trpc.group/trpc-go/trpc-blockflow-go/log"
	"trpc.group/trpc-go/trpc-blockflow-go/pipeline"
)

// introduceYourself seeds a genie's transcript when its backstory is first
// committed.
const introduceYourself = "Introduce yourself."

// RunGenie sends one message to a genie and appends the exchange to the
// genie's private transcript. The genie sees the pipeline context before
// its own position plus its own prior conversation, but never blocks after
// it. Genie calls are independent of main pipeline runs; only calls for
// the same node id are serialized.
func (e *Engine) RunGenie(ctx context.Context, nodeID, userMessage string) error {
	index, node, err := e.nodeAt(nodeID, block.TypeGenie)
	if err != nil {
		return err
	}
	cfg, _ := node.Config.(block.GenieConfig)

	persona := block.GenieIdentityPrompt(cfg)
	conv := e.state.GenieConversation(nodeID)
	if len(conv.Messages) > 0 {
		var b strings.Builder
		b.WriteString(persona)
		b.WriteString("\n\nYour previous conversation:\n")
		for _, msg := range conv.Messages {
			if msg.Role == "user" {
				fmt.Fprintf(&b, "User: %s\n", msg.Content)
			} else {
				fmt.Fprintf(&b, "%s: %s\n", cfg.Name, msg.Content)
			}
		}
		persona = b.String()
	}

	reply, err := e.genieCall(ctx, index, nodeID, persona, userMessage, cfg)
	if err != nil {
		return err
	}
	e.state.AppendGenieMessages(nodeID,
		block.GenieMessage{Role: "user", Content: userMessage},
		block.GenieMessage{Role: "assistant", Content: reply},
	)
	return nil
}

// SaveBackstory commits a genie's backstory and seeds its transcript with
// an introduction, replacing any prior transcript.
func (e *Engine) SaveBackstory(ctx context.Context, nodeID string) error {
	index, node, err := e.nodeAt(nodeID, block.TypeGenie)
	if err != nil {
		return err
	}
	cfg, _ := node.Config.(block.GenieConfig)

	persona := block.GenieIdentityPrompt(cfg) + ". " + introduceYourself
	reply, err := e.genieCall(ctx, index, nodeID, persona, introduceYourself, cfg)
	if err != nil {
		return err
	}
	e.state.SetGenieConversation(nodeID, block.GenieConversation{
		Messages: []block.GenieMessage{
			{Role: "user", Content: introduceYourself},
			{Role: "assistant", Content: reply},
		},
	})
	return nil
}

// KickoffPending sends the prompt a loaded template queued for a genie, if
// any. It returns false when nothing was queued.
func (e *Engine) KickoffPending(ctx context.Context, nodeID string) (bool, error) {
	prompt, ok := e.state.TakePendingGeniePrompt(nodeID)
	if !ok {
		return false, nil
	}
	return true, e.RunGenie(ctx, nodeID, prompt)
}

func (e *Engine) genieCall(
	ctx context.Context,
	index int,
	nodeID, persona, userMessage string,
	cfg block.GenieConfig,
) (string, error) {
	if err := e.state.BeginRun(nodeID); err != nil {
		return "", err
	}
	defer e.state.EndRun(nodeID)

	prompt := e.state.CompilePrompt(index, pipeline.CompileOptions{Prefix: persona})
	rsp, err := e.generate(ctx, prompt, userMessage, cfg.Model, cfg.Temperature, nil, 0)
	if err != nil {
		e.state.SetRunError(nodeID, err.Error())
		log.Errorf("genie inference failed for node %s: %v", nodeID, err)
		return "", err
	}
	e.state.SetRunError(nodeID, "")
	return rsp.Text, nil
}

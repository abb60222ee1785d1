//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package block

import (
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-blockflow-go/model"
)

type genie struct{}

// Meta returns nothing; a genie contributes its conversation transcript to
// the prompt instead of a tool advertisement. The transcript is appended by
// the prompt builder, which holds the conversation state.
func (genie) Meta(any, string) string {
	return ""
}

// Parse extracts a backstory update addressed to this genie.
func (genie) Parse(rsp *model.Response, _ string) (any, bool) {
	call, ok := findToolCall(rsp, func(name string) bool {
		return MatchesTool(TypeGenie, name)
	})
	if !ok {
		return nil, false
	}
	out, err := decodeInput[GenieUpdate](call.Input)
	if err != nil || out.Backstory == "" {
		return nil, false
	}
	return out, true
}

// FormatGenieContext renders a genie's conversation for the main pipeline
// prompt.
func FormatGenieContext(name, backstory string, messages []GenieMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n\nGenie Context (name: %s):\n[Backstory: %s]\n\nConversation:\n", name, backstory)
	for _, msg := range messages {
		if msg.Role == "user" {
			fmt.Fprintf(&b, "User: %s\n", msg.Content)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", name, msg.Content)
		}
	}
	return b.String()
}

// GenieIdentityPrompt builds a genie's own persona line for self-inference.
func GenieIdentityPrompt(cfg GenieConfig) string {
	return fmt.Sprintf("You are %s. Act as %s would act. %s", cfg.Name, cfg.Name, cfg.Backstory)
}

// LastAssistantMessage returns the most recent assistant turn of a genie
// conversation.
func LastAssistantMessage(conv GenieConversation) (string, bool) {
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		if conv.Messages[i].Role == "assistant" {
			return conv.Messages[i].Content, true
		}
	}
	return "", false
}

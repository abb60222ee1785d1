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

	"trpc.group/trpc-go/trpc-blockflow-go/model"
)

type webhookTrigger struct{}

func (webhookTrigger) Meta(config any, blockID string) string {
	cfg, _ := config.(WebhookTriggerConfig)
	toolName := ToolName(TypeWebhookTrigger, cfg)
	label := firstNonEmpty(cfg.Label, cfg.Name, "Webhook")
	return fmt.Sprintf(`

Available output block:
- "%s": %s, tool: %s

To trigger the webhook, you MUST call the %s tool with:
- url: The URL to request
- method: GET, POST, PUT, or DELETE
- headers: (optional) HTTP headers to include
- body: (optional) Request body (for POST/PUT)
- explanation: (optional) Why you're making this request

Use this when asked to notify, send, or trigger external services.`,
		label, blockID, toolName, toolName)
}

func (webhookTrigger) Parse(rsp *model.Response, _ string) (any, bool) {
	call, ok := findToolCall(rsp, func(name string) bool {
		return MatchesTool(TypeWebhookTrigger, name)
	})
	if !ok {
		return nil, false
	}
	out, err := decodeInput[WebhookOutput](call.Input)
	if err != nil || out.URL == "" || out.Method == "" {
		return nil, false
	}
	return out, true
}

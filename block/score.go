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

type scoreDisplay struct{}

func (scoreDisplay) Meta(config any, blockID string) string {
	cfg, _ := config.(ScoreDisplayConfig)
	toolName := ToolName(TypeScoreDisplay, cfg)
	label := firstNonEmpty(cfg.Label, cfg.Name, "Score")
	maxScore := cfg.MaxScore
	if maxScore == 0 {
		maxScore = 100
	}
	return fmt.Sprintf(`

Available output block:
- "%s": %s, tool: %s

To display a score, you MUST call the %s tool with:
- score: A number from 0 to %v
- maxScore: (optional) Maximum possible score (default: %v)
- label: (optional) What this score represents
- explanation: (optional) Why you gave this score

Use this to rate, evaluate, or score something.`,
		label, blockID, toolName, toolName, maxScore, maxScore)
}

func (scoreDisplay) Parse(rsp *model.Response, _ string) (any, bool) {
	call, ok := findToolCall(rsp, func(name string) bool {
		return MatchesTool(TypeScoreDisplay, name)
	})
	if !ok {
		return nil, false
	}
	if _, present := call.Input["score"]; !present {
		return nil, false
	}
	out, err := decodeInput[ScoreOutput](call.Input)
	if err != nil {
		return nil, false
	}
	return out, true
}

type passFailDisplay struct{}

func (passFailDisplay) Meta(config any, blockID string) string {
	cfg, _ := config.(PassFailDisplayConfig)
	toolName := ToolName(TypePassFailDisplay, cfg)
	label := firstNonEmpty(cfg.Label, cfg.Name, "Result")
	passLabel := firstNonEmpty(cfg.PassLabel, "PASS")
	failLabel := firstNonEmpty(cfg.FailLabel, "FAIL")
	return fmt.Sprintf(`

Available output block:
- "%s": %s, tool: %s

To display a pass/fail result, you MUST call the %s tool with:
- passed: true for %s, false for %s
- message: (optional) Short feedback message
- explanation: (optional) Detailed explanation of the result

Use this to indicate whether a condition was met, a guess was correct, or a task was completed successfully.`,
		label, blockID, toolName, toolName, passLabel, failLabel)
}

func (passFailDisplay) Parse(rsp *model.Response, _ string) (any, bool) {
	call, ok := findToolCall(rsp, func(name string) bool {
		return MatchesTool(TypePassFailDisplay, name)
	})
	if !ok {
		return nil, false
	}
	if _, present := call.Input["passed"]; !present {
		return nil, false
	}
	out, err := decodeInput[PassFailOutput](call.Input)
	if err != nil {
		return nil, false
	}
	return out, true
}

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
	"encoding/json"
	"fmt"
	"regexp"

	"trpc.group/trpc-go/trpc-blockflow-go/model"
)

type colorDisplay struct{}

func (colorDisplay) Meta(config any, blockID string) string {
	cfg, _ := config.(ColorDisplayConfig)
	label := cfg.Label
	if label == "" {
		label = "Mood Color"
	}
	toolName := ToolName(TypeColorDisplay, cfg)
	return fmt.Sprintf(`

Available blocks:
- "%s": %s, block-type: color

If the user asks you to show, pick, or represent something as a color, or references the "%s" block, you MUST use the %s tool to show the color. The tool accepts a hex color code (e.g., #ff5500).

Alternatively, if you need to return a color mapping, return it as a JSON object in the format: { "%s": "#ff5500" }`,
		label, blockID, label, toolName, blockID)
}

func (colorDisplay) Parse(rsp *model.Response, blockID string) (any, bool) {
	if call, ok := findToolCall(rsp, func(name string) bool {
		return MatchesTool(TypeColorDisplay, name)
	}); ok {
		out, err := decodeInput[ColorOutput](call.Input)
		if err == nil && out.Hex != "" {
			return out, true
		}
	}
	if rsp != nil && rsp.Text != "" {
		if out, ok := ParseColorFromText(rsp.Text, blockID); ok {
			return out, true
		}
	}
	return nil, false
}

var hexColorRE = regexp.MustCompile(`(?i)#[0-9a-f]{6}`)

// ParseColorFromText extracts a color from free response text. It first
// looks for a JSON object mapping the block id to a hex code, e.g.
// {"color-1": "#ff5500"}, then falls back to the first bare hex code in
// the text.
func ParseColorFromText(text, blockID string) (ColorOutput, bool) {
	objRE, err := regexp.Compile(`\{[^}]*"` + regexp.QuoteMeta(blockID) + `"[^}]*\}`)
	if err == nil {
		if m := objRE.FindString(text); m != "" {
			var parsed map[string]string
			if json.Unmarshal([]byte(m), &parsed) == nil {
				if hex, ok := parsed[blockID]; ok && hexColorRE.MatchString(hex) && len(hex) == 7 {
					return ColorOutput{Hex: hex}, true
				}
			}
		}
	}
	if m := hexColorRE.FindString(text); m != "" {
		return ColorOutput{Hex: m}, true
	}
	return ColorOutput{}, false
}

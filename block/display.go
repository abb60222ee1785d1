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

type iconDisplay struct{}

func (iconDisplay) Meta(config any, blockID string) string {
	cfg, _ := config.(IconDisplayConfig)
	toolName := ToolName(TypeIconDisplay, cfg)
	label := firstNonEmpty(cfg.Label, cfg.Name, "Icon")
	return fmt.Sprintf(`

Available output block:
- "%s": %s, tool: %s

To display an icon, you MUST call the %s tool with:
- id: One of: %s
- label: (optional) Label to show with the icon
- explanation: (optional) Why you chose this icon

Use this to represent a concept, status, or emotion.`,
		label, blockID, toolName, toolName, strings.Join(IconIDs, ", "))
}

func (iconDisplay) Parse(rsp *model.Response, _ string) (any, bool) {
	call, ok := findToolCall(rsp, func(name string) bool {
		return MatchesTool(TypeIconDisplay, name)
	})
	if !ok {
		return nil, false
	}
	out, err := decodeInput[IconOutput](call.Input)
	if err != nil || out.ID == "" {
		return nil, false
	}
	return out, true
}

type gaugeDisplay struct{}

func (gaugeDisplay) Meta(config any, blockID string) string {
	cfg, _ := config.(GaugeDisplayConfig)
	toolName := ToolName(TypeGaugeDisplay, cfg)
	label := firstNonEmpty(cfg.Label, cfg.Name, "Gauge")
	return fmt.Sprintf(`

Available output block:
- "%s": %s, tool: %s

To display a value on the gauge, you MUST call the %s tool with:
- value: The numeric value to display
- min: (optional) Minimum value (default: 0)
- max: (optional) Maximum value (default: 100)
- unit: (optional) Unit label, e.g. '%%', 'points'
- label: (optional) What this value represents
- explanation: (optional) Why you chose this value

Use this for scores, ratings, percentages, or measurements.`,
		label, blockID, toolName, toolName)
}

func (gaugeDisplay) Parse(rsp *model.Response, _ string) (any, bool) {
	call, ok := findToolCall(rsp, func(name string) bool {
		return MatchesTool(TypeGaugeDisplay, name)
	})
	if !ok {
		return nil, false
	}
	if _, present := call.Input["value"]; !present {
		return nil, false
	}
	out, err := decodeInput[GaugeOutput](call.Input)
	if err != nil {
		return nil, false
	}
	return out, true
}

type pixelArtDisplay struct{}

func (pixelArtDisplay) Meta(config any, blockID string) string {
	cfg, _ := config.(PixelArtDisplayConfig)
	toolName := ToolName(TypePixelArtDisplay, cfg)
	label := firstNonEmpty(cfg.Label, cfg.Name, "Pixel Art")
	return fmt.Sprintf(`

Available output block:
- "%s": %s, tool: %s

To draw pixel art, you MUST call the %s tool with:
- pixels: Array of hex colors, row by row, left to right, top to bottom
- width: (optional) Grid width in pixels (default: 8, max: 16)
- height: (optional) Grid height in pixels (default: 8, max: 16)
- explanation: (optional) Description of what you drew`,
		label, blockID, toolName, toolName)
}

func (pixelArtDisplay) Parse(rsp *model.Response, _ string) (any, bool) {
	call, ok := findToolCall(rsp, func(name string) bool {
		return MatchesTool(TypePixelArtDisplay, name)
	})
	if !ok {
		return nil, false
	}
	out, err := decodeInput[PixelArtOutput](call.Input)
	if err != nil || len(out.Pixels) == 0 {
		return nil, false
	}
	return out, true
}

type emojiDisplay struct{}

func (emojiDisplay) Meta(config any, blockID string) string {
	cfg, _ := config.(EmojiDisplayConfig)
	toolName := ToolName(TypeEmojiDisplay, cfg)
	label := firstNonEmpty(cfg.Label, cfg.Name, "Emoji")
	return fmt.Sprintf(`

Available output block:
- "%s": %s, tool: %s

To display an emoji, you MUST call the %s tool with:
- emoji: A single emoji character
- explanation: (optional) Why you chose this emoji

Use this to react to, summarize, or represent something as an emoji.`,
		label, blockID, toolName, toolName)
}

func (emojiDisplay) Parse(rsp *model.Response, _ string) (any, bool) {
	call, ok := findToolCall(rsp, func(name string) bool {
		return MatchesTool(TypeEmojiDisplay, name)
	})
	if !ok {
		return nil, false
	}
	out, err := decodeInput[EmojiOutput](call.Input)
	if err != nil || out.Emoji == "" {
		return nil, false
	}
	return out, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

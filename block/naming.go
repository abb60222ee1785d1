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
	"regexp"
	"strings"
)

// toolNaming describes how a block type derives tool names. A block with no
// custom name offers its canonical tool; a named block offers
// "<verb>_<name>_<suffix>". Parsing accepts the canonical name or any name
// with the verb prefix and suffix, so a rename never breaks routing.
type toolNaming struct {
	canonical string
	verb      string
	suffix    string
}

var namingByType = map[Type]toolNaming{
	TypeColorDisplay:    {canonical: "display_color", verb: "display", suffix: "color"},
	TypeIconDisplay:     {canonical: "display_icon", verb: "display", suffix: "icon"},
	TypeGaugeDisplay:    {canonical: "display_gauge", verb: "display", suffix: "gauge"},
	// Pixel art's canonical tool keeps the "generate" verb but renames
	// derive with "display" like the other display blocks, e.g.
	// display_art_pixel_art.
	TypePixelArtDisplay: {canonical: "generate_pixel_art", verb: "display", suffix: "pixel_art"},
	TypeWebhookTrigger:  {canonical: "trigger_webhook", verb: "trigger", suffix: "webhook"},
	TypeSurvey:          {canonical: "ask_survey_question", verb: "ask", suffix: "survey"},
	TypeScoreDisplay:    {canonical: "display_score", verb: "display", suffix: "score"},
	TypePassFailDisplay: {canonical: "display_result", verb: "display", suffix: "result"},
	TypeEmojiDisplay:    {canonical: "display_emoji", verb: "display", suffix: "emoji"},
	TypeGenie:           {canonical: "update_backstory", verb: "update", suffix: "backstory"},
}

var toolNameSanitizer = regexp.MustCompile(`[^a-z0-9_]+`)

// sanitizeToolName lowercases a user-assigned name and replaces anything
// outside [a-z0-9_] with underscores so the result is a legal tool name
// segment.
func sanitizeToolName(name string) string {
	s := toolNameSanitizer.ReplaceAllString(strings.ToLower(name), "_")
	s = strings.Trim(s, "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// ToolName returns the tool name a block of the given type and config
// offers. A blank or unsanitizable custom name falls back to the canonical
// name. Types without tool naming return "".
func ToolName(t Type, config any) string {
	n, ok := namingByType[t]
	if !ok {
		return ""
	}
	name := sanitizeToolName(CustomName(config))
	if name == "" {
		return n.canonical
	}
	return n.verb + "_" + name + "_" + n.suffix
}

// MatchesTool reports whether a tool call name addresses a block of the
// given type, accepting both the canonical name and any derived rename.
func MatchesTool(t Type, toolName string) bool {
	n, ok := namingByType[t]
	if !ok {
		return false
	}
	if toolName == n.canonical {
		return true
	}
	return strings.HasPrefix(toolName, n.verb+"_") && strings.HasSuffix(toolName, "_"+n.suffix)
}

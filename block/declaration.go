//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package block

import "trpc.group/trpc-go/trpc-blockflow-go/tool"

// IconIDs is the closed set of icon identifiers an icon display block can
// render.
var IconIDs = []string{
	"check", "x", "warning", "info", "star", "heart", "fire", "sparkles",
	"lightbulb", "moon", "sun", "cloud", "rain", "snow", "wind", "leaf",
	"flower", "tree",
}

// HexColorPattern validates a six-digit hex color code.
const HexColorPattern = "^#[0-9a-fA-F]{6}$"

func enumOf(values ...string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

var declarationByType = map[Type]*tool.Declaration{
	TypeColorDisplay: {
		Name:        "display_color",
		Description: "Display a color to the user. Use this when asked to show, pick, or represent something as a color.",
		InputSchema: &tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"hex": {
					Type:        "string",
					Pattern:     HexColorPattern,
					Description: "Hex color code, e.g. #ff5500",
				},
				"name": {
					Type:        "string",
					Description: "Human-readable color name",
				},
				"explanation": {
					Type:        "string",
					Description: "Why you chose this color",
				},
			},
			Required: []string{"hex"},
		},
	},
	TypeIconDisplay: {
		Name:        "display_icon",
		Description: "Display an icon to represent a concept, status, or emotion.",
		InputSchema: &tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"id": {
					Type:        "string",
					Enum:        enumOf(IconIDs...),
					Description: "Icon identifier",
				},
				"label": {
					Type:        "string",
					Description: "Label to show with the icon",
				},
				"explanation": {
					Type:        "string",
					Description: "Why you chose this icon",
				},
			},
			Required: []string{"id"},
		},
	},
	TypeGaugeDisplay: {
		Name:        "display_gauge",
		Description: "Display a numeric value on a gauge or meter. Use for scores, ratings, percentages, measurements.",
		InputSchema: &tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"value": {
					Type:        "number",
					Description: "The numeric value to display",
				},
				"min": {
					Type:        "number",
					Description: "Minimum value (default: 0)",
				},
				"max": {
					Type:        "number",
					Description: "Maximum value (default: 100)",
				},
				"unit": {
					Type:        "string",
					Description: "Unit label, e.g. '%', '°F', 'points'",
				},
				"label": {
					Type:        "string",
					Description: "What this value represents",
				},
				"explanation": {
					Type:        "string",
					Description: "Why you chose this value",
				},
			},
			Required: []string{"value"},
		},
	},
	TypePixelArtDisplay: {
		Name:        "generate_pixel_art",
		Description: "Generate pixel art on a grid. Each pixel is a hex color. Pixels are listed row by row, left to right, top to bottom.",
		InputSchema: &tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"width": {
					Type:        "number",
					Description: "Grid width in pixels (default: 8, max: 16)",
				},
				"height": {
					Type:        "number",
					Description: "Grid height in pixels (default: 8, max: 16)",
				},
				"pixels": {
					Type: "array",
					Items: &tool.Schema{
						Type:    "string",
						Pattern: HexColorPattern,
					},
					Description: "Array of hex colors, length must equal width × height",
				},
				"explanation": {
					Type:        "string",
					Description: "Description of what you drew",
				},
			},
			Required: []string{"pixels"},
		},
	},
	TypeWebhookTrigger: {
		Name:        "trigger_webhook",
		Description: "Make an HTTP request to a URL. Use when asked to notify, send, or trigger external services.",
		InputSchema: &tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"url": {
					Type:        "string",
					Format:      "uri",
					Description: "The URL to request",
				},
				"method": {
					Type:        "string",
					Enum:        enumOf("GET", "POST", "PUT", "DELETE"),
					Description: "HTTP method",
				},
				"headers": {
					Type:        "object",
					Description: "HTTP headers to include",
				},
				"body": {
					Type:        "object",
					Description: "Request body (for POST/PUT)",
				},
				"explanation": {
					Type:        "string",
					Description: "Why you're making this request",
				},
			},
			Required: []string{"url", "method"},
		},
	},
	TypeSurvey: {
		Name:        "ask_survey_question",
		Description: "Present a multiple choice question to the user. Use for gathering preferences, guiding conversations, or creating interactive experiences.",
		InputSchema: &tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"question": {
					Type:        "string",
					Description: "The question to ask",
				},
				"options": {
					Type: "array",
					Items: &tool.Schema{
						Type: "object",
						Properties: map[string]*tool.Schema{
							"id":    {Type: "string"},
							"label": {Type: "string"},
						},
						Required: []string{"id", "label"},
					},
					Description: "Available choices (2-6 options)",
				},
				"allowMultiple": {
					Type:        "boolean",
					Description: "Allow selecting multiple options",
				},
				"explanation": {
					Type:        "string",
					Description: "Context for why you're asking this",
				},
			},
			Required: []string{"question", "options"},
		},
	},
	TypeScoreDisplay: {
		Name:        "display_score",
		Description: "Display a numeric score to the user. Use to rate, evaluate, or grade something.",
		InputSchema: &tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"score": {
					Type:        "number",
					Description: "The score to display",
				},
				"maxScore": {
					Type:        "number",
					Description: "Maximum possible score (default: 100)",
				},
				"label": {
					Type:        "string",
					Description: "What this score represents",
				},
				"explanation": {
					Type:        "string",
					Description: "Why you gave this score",
				},
			},
			Required: []string{"score"},
		},
	},
	TypePassFailDisplay: {
		Name:        "display_result",
		Description: "Display a pass/fail result to the user. Use to indicate whether a condition was met or a guess was correct.",
		InputSchema: &tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"passed": {
					Type:        "boolean",
					Description: "true for pass, false for fail",
				},
				"message": {
					Type:        "string",
					Description: "Short feedback message",
				},
				"explanation": {
					Type:        "string",
					Description: "Detailed explanation of the result",
				},
			},
			Required: []string{"passed"},
		},
	},
	TypeEmojiDisplay: {
		Name:        "display_emoji",
		Description: "Display an emoji to the user. Use to react to, summarize, or represent something as an emoji.",
		InputSchema: &tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"emoji": {
					Type:        "string",
					Description: "A single emoji character",
				},
				"explanation": {
					Type:        "string",
					Description: "Why you chose this emoji",
				},
			},
			Required: []string{"emoji"},
		},
	},
	TypeGenie: {
		Name:        "update_backstory",
		Description: "Update a genie's backstory. Use when the conversation calls for changing who the genie is or what it knows.",
		InputSchema: &tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"backstory": {
					Type:        "string",
					Description: "The new backstory text",
				},
				"shouldAutoRespond": {
					Type:        "boolean",
					Description: "Whether the genie should respond to the update",
				},
			},
			Required: []string{"backstory"},
		},
	},
}

// DeclarationFor returns the tool declaration a block of the given type and
// config offers, renamed for a custom block name. Types without a tool
// return false.
func DeclarationFor(t Type, config any) (*tool.Declaration, bool) {
	decl, ok := declarationByType[t]
	if !ok {
		return nil, false
	}
	name := ToolName(t, config)
	if name == decl.Name {
		return decl, true
	}
	return decl.WithName(name), true
}

//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package block

// DefaultModel is the model name used by inference and genie blocks when
// none is configured.
const DefaultModel = "claude-sonnet-4-20250514"

// SystemPromptConfig configures the fixed system prompt block.
type SystemPromptConfig struct {
	Prompt string `json:"prompt"`
}

// UserInputConfig configures a user input block.
type UserInputConfig struct {
	Placeholder string `json:"placeholder,omitempty"`
}

// URLLoaderConfig configures a URL loader block.
type URLLoaderConfig struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// TextInputConfig configures a static text context block.
type TextInputConfig struct {
	Text        string `json:"text"`
	Label       string `json:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// InferenceConfig configures an inference block.
type InferenceConfig struct {
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
}

// TextDisplayConfig configures a plain text display block.
type TextDisplayConfig struct {
	Label string `json:"label,omitempty"`
}

// ColorDisplayConfig configures a color display block.
type ColorDisplayConfig struct {
	Name        string `json:"name,omitempty"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	ShowHex     bool   `json:"showHex,omitempty"`
}

// IconDisplayConfig configures an icon display block.
type IconDisplayConfig struct {
	Name  string `json:"name,omitempty"`
	Label string `json:"label,omitempty"`
	Size  string `json:"size,omitempty"`
}

// GaugeDisplayConfig configures a gauge display block.
type GaugeDisplayConfig struct {
	Name      string `json:"name,omitempty"`
	Label     string `json:"label,omitempty"`
	Style     string `json:"style,omitempty"`
	ShowValue bool   `json:"showValue,omitempty"`
}

// PixelArtDisplayConfig configures a pixel art display block.
type PixelArtDisplayConfig struct {
	Name      string `json:"name,omitempty"`
	Label     string `json:"label,omitempty"`
	PixelSize int    `json:"pixelSize,omitempty"`
}

// WebhookTriggerConfig configures a webhook trigger block.
type WebhookTriggerConfig struct {
	Name         string `json:"name,omitempty"`
	Label        string `json:"label,omitempty"`
	ShowResponse bool   `json:"showResponse,omitempty"`
}

// SurveyConfig configures a survey block.
type SurveyConfig struct {
	Name                  string `json:"name,omitempty"`
	Label                 string `json:"label,omitempty"`
	Style                 string `json:"style,omitempty"`
	PopulateFromPreceding bool   `json:"populateFromPreceding,omitempty"`
}

// GenieConfig configures a genie sub-agent block.
type GenieConfig struct {
	Name                string  `json:"name"`
	Backstory           string  `json:"backstory"`
	Model               string  `json:"model,omitempty"`
	Temperature         float64 `json:"temperature,omitempty"`
	AutoRespondOnUpdate bool    `json:"autoRespondOnUpdate,omitempty"`
}

// PassFailDisplayConfig configures a pass/fail display block.
type PassFailDisplayConfig struct {
	Name      string `json:"name,omitempty"`
	Label     string `json:"label,omitempty"`
	PassLabel string `json:"passLabel,omitempty"`
	FailLabel string `json:"failLabel,omitempty"`
}

// ScoreDisplayConfig configures a score display block.
type ScoreDisplayConfig struct {
	Name      string  `json:"name,omitempty"`
	Label     string  `json:"label,omitempty"`
	MaxScore  float64 `json:"maxScore,omitempty"`
	ShowStars bool    `json:"showStars,omitempty"`
}

// PaintConfig configures a paint canvas block.
type PaintConfig struct {
	Label string `json:"label,omitempty"`
}

// EmojiDisplayConfig configures an emoji display block.
type EmojiDisplayConfig struct {
	Name  string `json:"name,omitempty"`
	Label string `json:"label,omitempty"`
}

// CustomName returns the user-assigned name carried by a block config, if
// the type supports renaming its derived tool.
func CustomName(config any) string {
	switch c := config.(type) {
	case ColorDisplayConfig:
		return c.Name
	case IconDisplayConfig:
		return c.Name
	case GaugeDisplayConfig:
		return c.Name
	case PixelArtDisplayConfig:
		return c.Name
	case WebhookTriggerConfig:
		return c.Name
	case SurveyConfig:
		return c.Name
	case PassFailDisplayConfig:
		return c.Name
	case ScoreDisplayConfig:
		return c.Name
	case EmojiDisplayConfig:
		return c.Name
	case GenieConfig:
		return c.Name
	default:
		return ""
	}
}

//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

// Package block defines the pipeline block types: the closed type
// enumeration, per-type default configuration, the prompt/parse capability
// each type implements, and the tool declarations output blocks offer to
// the model.
package block

import (
	"encoding/json"
	"fmt"

	"trpc.group/trpc-go/trpc-blockflow-go/model"
)

// Type identifies a block type. The set is closed; dispatch is a type
// switch, not a mutable registry.
type Type string

// Block type constants.
const (
	TypeSystemPrompt    Type = "system_prompt"
	TypeUserInput       Type = "user_input"
	TypeURLLoader       Type = "url_loader"
	TypeTextInput       Type = "text_input"
	TypeInference       Type = "inference"
	TypeTextDisplay     Type = "text_display"
	TypeColorDisplay    Type = "color_display"
	TypeIconDisplay     Type = "icon_display"
	TypeGaugeDisplay    Type = "gauge_display"
	TypePixelArtDisplay Type = "pixel_art_display"
	TypeWebhookTrigger  Type = "webhook_trigger"
	TypeSurvey          Type = "survey"
	TypeGenie           Type = "genie"
	TypePassFailDisplay Type = "pass_fail_display"
	TypeScoreDisplay    Type = "score_display"
	TypePaint           Type = "paint"
	TypeEmojiDisplay    Type = "emoji_display"
)

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the type is one of the defined constants.
func (t Type) IsValid() bool {
	switch t {
	case TypeSystemPrompt, TypeUserInput, TypeURLLoader, TypeTextInput,
		TypeInference, TypeTextDisplay, TypeColorDisplay, TypeIconDisplay,
		TypeGaugeDisplay, TypePixelArtDisplay, TypeWebhookTrigger,
		TypeSurvey, TypeGenie, TypePassFailDisplay, TypeScoreDisplay,
		TypePaint, TypeEmojiDisplay:
		return true
	default:
		return false
	}
}

// Interface is the capability contract a block type implements to take part
// in prompt construction and response parsing. Both operations are pure
// functions of their inputs.
type Interface interface {
	// Meta returns the prompt fragment advertising this block, or an empty
	// string. It must be idempotent and safe to concatenate repeatedly.
	Meta(config any, blockID string) string

	// Parse inspects the response for output addressed to this block and
	// returns the normalized output record. The second return is false when
	// nothing in the response matched.
	Parse(rsp *model.Response, blockID string) (any, bool)
}

// ContextProvider is implemented by block types whose current output should
// influence later blocks' prompts beyond the raw tool schema.
type ContextProvider interface {
	// Context renders a compact textual summary of the block's current
	// output for downstream prompt construction. The second return is false
	// when there is nothing to contribute.
	Context(config any, blockID string, output any) (string, bool)
}

// InterfaceFor returns the capability implementation for a block type.
// Types that contribute nothing to prompts or parsing return false.
func InterfaceFor(t Type) (Interface, bool) {
	switch t {
	case TypeColorDisplay:
		return colorDisplay{}, true
	case TypeIconDisplay:
		return iconDisplay{}, true
	case TypeGaugeDisplay:
		return gaugeDisplay{}, true
	case TypePixelArtDisplay:
		return pixelArtDisplay{}, true
	case TypeWebhookTrigger:
		return webhookTrigger{}, true
	case TypeSurvey:
		return survey{}, true
	case TypeScoreDisplay:
		return scoreDisplay{}, true
	case TypePassFailDisplay:
		return passFailDisplay{}, true
	case TypeEmojiDisplay:
		return emojiDisplay{}, true
	case TypeGenie:
		return genie{}, true
	default:
		return nil, false
	}
}

// IsOutputType reports whether the block type renders model output routed
// through a tool call.
func IsOutputType(t Type) bool {
	switch t {
	case TypeColorDisplay, TypeIconDisplay, TypeGaugeDisplay,
		TypePixelArtDisplay, TypeWebhookTrigger, TypeSurvey,
		TypePassFailDisplay, TypeScoreDisplay, TypeEmojiDisplay:
		return true
	default:
		return false
	}
}

// DefaultConfig returns the default configuration for a block type.
func DefaultConfig(t Type) any {
	switch t {
	case TypeSystemPrompt:
		return SystemPromptConfig{Prompt: "You are a helpful assistant."}
	case TypeUserInput:
		return UserInputConfig{Placeholder: "Enter your message..."}
	case TypeURLLoader:
		return URLLoaderConfig{}
	case TypeTextInput:
		return TextInputConfig{Placeholder: "Enter text to add to context..."}
	case TypeInference:
		return InferenceConfig{Model: DefaultModel, Temperature: 0.7}
	case TypeTextDisplay:
		return TextDisplayConfig{Label: "Response"}
	case TypeColorDisplay:
		return ColorDisplayConfig{ShowHex: true}
	case TypeIconDisplay:
		return IconDisplayConfig{Size: "md"}
	case TypeGaugeDisplay:
		return GaugeDisplayConfig{Style: "bar", ShowValue: true}
	case TypePixelArtDisplay:
		return PixelArtDisplayConfig{PixelSize: 24}
	case TypeWebhookTrigger:
		return WebhookTriggerConfig{ShowResponse: true}
	case TypeSurvey:
		return SurveyConfig{Style: "buttons"}
	case TypeGenie:
		return GenieConfig{
			Name:        "genie",
			Backstory:   "You are a helpful genie.",
			Model:       DefaultModel,
			Temperature: 0.7,
		}
	case TypePassFailDisplay:
		return PassFailDisplayConfig{}
	case TypeScoreDisplay:
		return ScoreDisplayConfig{ShowStars: true}
	case TypePaint:
		return PaintConfig{}
	case TypeEmojiDisplay:
		return EmojiDisplayConfig{}
	default:
		return nil
	}
}

// DecodeConfig unmarshals a raw JSON config into the typed configuration
// for a block type. An empty raw config decodes to the type's default.
func DecodeConfig(t Type, raw json.RawMessage) (any, error) {
	switch t {
	case TypeSystemPrompt:
		return decodeAs[SystemPromptConfig](t, raw)
	case TypeUserInput:
		return decodeAs[UserInputConfig](t, raw)
	case TypeURLLoader:
		return decodeAs[URLLoaderConfig](t, raw)
	case TypeTextInput:
		return decodeAs[TextInputConfig](t, raw)
	case TypeInference:
		return decodeAs[InferenceConfig](t, raw)
	case TypeTextDisplay:
		return decodeAs[TextDisplayConfig](t, raw)
	case TypeColorDisplay:
		return decodeAs[ColorDisplayConfig](t, raw)
	case TypeIconDisplay:
		return decodeAs[IconDisplayConfig](t, raw)
	case TypeGaugeDisplay:
		return decodeAs[GaugeDisplayConfig](t, raw)
	case TypePixelArtDisplay:
		return decodeAs[PixelArtDisplayConfig](t, raw)
	case TypeWebhookTrigger:
		return decodeAs[WebhookTriggerConfig](t, raw)
	case TypeSurvey:
		return decodeAs[SurveyConfig](t, raw)
	case TypeGenie:
		return decodeAs[GenieConfig](t, raw)
	case TypePassFailDisplay:
		return decodeAs[PassFailDisplayConfig](t, raw)
	case TypeScoreDisplay:
		return decodeAs[ScoreDisplayConfig](t, raw)
	case TypePaint:
		return decodeAs[PaintConfig](t, raw)
	case TypeEmojiDisplay:
		return decodeAs[EmojiDisplayConfig](t, raw)
	default:
		return nil, fmt.Errorf("unknown block type: %s", t)
	}
}

func decodeAs[T any](t Type, raw json.RawMessage) (any, error) {
	cfg, _ := DefaultConfig(t).(T)
	if len(raw) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s config: %w", t, err)
	}
	return cfg, nil
}

// findToolCall returns the first tool call whose name satisfies the match
// predicate.
func findToolCall(rsp *model.Response, match func(name string) bool) (model.ToolCall, bool) {
	if rsp == nil {
		return model.ToolCall{}, false
	}
	for _, call := range rsp.ToolCalls {
		if match(call.Name) {
			return call, true
		}
	}
	return model.ToolCall{}, false
}

// decodeInput converts a decoded tool input into the typed output record by
// round-tripping through JSON.
func decodeInput[T any](input map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(input)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

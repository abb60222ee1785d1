//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package block

// TextOutput is the plain text output stored on an inference block.
type TextOutput struct {
	Content string `json:"content"`
}

// ColorOutput is the parsed output of a color display block.
type ColorOutput struct {
	Hex         string `json:"hex"`
	Name        string `json:"name,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// IconOutput is the parsed output of an icon display block.
type IconOutput struct {
	ID          string `json:"id"`
	Label       string `json:"label,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// GaugeOutput is the parsed output of a gauge display block.
type GaugeOutput struct {
	Value       float64  `json:"value"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Label       string   `json:"label,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// PixelArtOutput is the parsed output of a pixel art display block.
type PixelArtOutput struct {
	Width       int      `json:"width,omitempty"`
	Height      int      `json:"height,omitempty"`
	Pixels      []string `json:"pixels"`
	Explanation string   `json:"explanation,omitempty"`
}

// WebhookOutput is the parsed output of a webhook trigger block.
type WebhookOutput struct {
	URL         string         `json:"url"`
	Method      string         `json:"method"`
	Headers     map[string]any `json:"headers,omitempty"`
	Body        map[string]any `json:"body,omitempty"`
	Explanation string         `json:"explanation,omitempty"`
}

// SurveyOption is one selectable choice in a survey question.
type SurveyOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SurveyOutput is the parsed output of a survey block. SelectedIDs records
// the user's answer and is filled in after the question is presented.
type SurveyOutput struct {
	Question      string         `json:"question"`
	Options       []SurveyOption `json:"options"`
	AllowMultiple bool           `json:"allowMultiple,omitempty"`
	Explanation   string         `json:"explanation,omitempty"`
	CorrectAnswer string         `json:"correctAnswer,omitempty"`
	SelectedIDs   []string       `json:"selectedIds,omitempty"`
}

// ScoreOutput is the parsed output of a score display block.
type ScoreOutput struct {
	Score       float64  `json:"score"`
	MaxScore    *float64 `json:"maxScore,omitempty"`
	Label       string   `json:"label,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// PassFailOutput is the parsed output of a pass/fail display block.
type PassFailOutput struct {
	Passed      bool   `json:"passed"`
	Message     string `json:"message,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// EmojiOutput is the parsed output of an emoji display block.
type EmojiOutput struct {
	Emoji       string `json:"emoji"`
	Explanation string `json:"explanation,omitempty"`
}

// GenieUpdate is the parsed output of a backstory update tool call
// addressed to a genie block.
type GenieUpdate struct {
	Backstory         string `json:"backstory"`
	ShouldAutoRespond bool   `json:"shouldAutoRespond,omitempty"`
}

// GenieMessage is one turn of a genie's private conversation.
type GenieMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenieConversation is a genie block's private transcript.
type GenieConversation struct {
	Messages []GenieMessage `json:"messages"`
}

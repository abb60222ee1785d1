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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolName(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		config   any
		expected string
	}{
		{
			name:     "canonical color",
			typ:      TypeColorDisplay,
			config:   ColorDisplayConfig{},
			expected: "display_color",
		},
		{
			name:     "named color",
			typ:      TypeColorDisplay,
			config:   ColorDisplayConfig{Name: "mood"},
			expected: "display_mood_color",
		},
		{
			name:     "named score",
			typ:      TypeScoreDisplay,
			config:   ScoreDisplayConfig{Name: "creativity"},
			expected: "display_creativity_score",
		},
		{
			name:     "named survey",
			typ:      TypeSurvey,
			config:   SurveyConfig{Name: "answer"},
			expected: "ask_answer_survey",
		},
		{
			name:     "canonical survey",
			typ:      TypeSurvey,
			config:   SurveyConfig{},
			expected: "ask_survey_question",
		},
		{
			name:     "genie name is sanitized",
			typ:      TypeGenie,
			config:   GenieConfig{Name: "Word Genie"},
			expected: "update_word_genie_backstory",
		},
		{
			name:     "canonical pixel art keeps generate verb",
			typ:      TypePixelArtDisplay,
			config:   PixelArtDisplayConfig{},
			expected: "generate_pixel_art",
		},
		{
			name:     "named pixel art derives with display verb",
			typ:      TypePixelArtDisplay,
			config:   PixelArtDisplayConfig{Name: "art"},
			expected: "display_art_pixel_art",
		},
		{
			name:     "unsanitizable name falls back",
			typ:      TypeEmojiDisplay,
			config:   EmojiDisplayConfig{Name: "!!!"},
			expected: "display_emoji",
		},
		{
			name:     "no naming for text display",
			typ:      TypeTextDisplay,
			config:   TextDisplayConfig{},
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToolName(tt.typ, tt.config))
		})
	}
}

func TestMatchesTool(t *testing.T) {
	assert.True(t, MatchesTool(TypeColorDisplay, "display_color"))
	assert.True(t, MatchesTool(TypeColorDisplay, "display_mood_color"))
	assert.False(t, MatchesTool(TypeColorDisplay, "display_creativity_score"))

	// Canonical survey name does not carry the _survey suffix, renames do.
	assert.True(t, MatchesTool(TypeSurvey, "ask_survey_question"))
	assert.True(t, MatchesTool(TypeSurvey, "ask_survey"))
	assert.True(t, MatchesTool(TypeSurvey, "ask_answer_survey"))
	assert.False(t, MatchesTool(TypeSurvey, "display_result"))

	assert.True(t, MatchesTool(TypePixelArtDisplay, "generate_pixel_art"))
	assert.True(t, MatchesTool(TypePixelArtDisplay, "display_art_pixel_art"))

	assert.True(t, MatchesTool(TypePassFailDisplay, "display_guess_result"))
	assert.True(t, MatchesTool(TypeGenie, "update_word_genie_backstory"))
	assert.False(t, MatchesTool(TypeInference, "display_color"))
}

func TestDeclarationFor(t *testing.T) {
	decl, ok := DeclarationFor(TypeGaugeDisplay, GaugeDisplayConfig{})
	require.True(t, ok)
	assert.Equal(t, "display_gauge", decl.Name)
	require.NotNil(t, decl.InputSchema)
	assert.Contains(t, decl.InputSchema.Required, "value")

	renamed, ok := DeclarationFor(TypeGaugeDisplay, GaugeDisplayConfig{Name: "stress"})
	require.True(t, ok)
	assert.Equal(t, "display_stress_gauge", renamed.Name)
	// The canonical declaration keeps its name.
	assert.Equal(t, "display_gauge", decl.Name)

	_, ok = DeclarationFor(TypeUserInput, UserInputConfig{})
	assert.False(t, ok)
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-blockflow-go/model"
)

func TestDefaultConfig(t *testing.T) {
	sys, ok := DefaultConfig(TypeSystemPrompt).(SystemPromptConfig)
	require.True(t, ok)
	assert.Equal(t, "You are a helpful assistant.", sys.Prompt)

	inf, ok := DefaultConfig(TypeInference).(InferenceConfig)
	require.True(t, ok)
	assert.Equal(t, DefaultModel, inf.Model)
	assert.Equal(t, 0.7, inf.Temperature)

	gen, ok := DefaultConfig(TypeGenie).(GenieConfig)
	require.True(t, ok)
	assert.Equal(t, "genie", gen.Name)
	assert.Equal(t, "You are a helpful genie.", gen.Backstory)
	assert.False(t, gen.AutoRespondOnUpdate)

	assert.Nil(t, DefaultConfig(Type("bogus")))
}

func TestDecodeConfig(t *testing.T) {
	raw := json.RawMessage(`{"name":"mood","label":"Mood Color","showHex":true}`)
	cfg, err := DecodeConfig(TypeColorDisplay, raw)
	require.NoError(t, err)
	color, ok := cfg.(ColorDisplayConfig)
	require.True(t, ok)
	assert.Equal(t, "mood", color.Name)
	assert.Equal(t, "Mood Color", color.Label)
	assert.True(t, color.ShowHex)

	// Empty raw config decodes to the default.
	cfg, err = DecodeConfig(TypeGenie, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(TypeGenie), cfg)

	_, err = DecodeConfig(TypeInference, json.RawMessage(`not json`))
	assert.Error(t, err)

	_, err = DecodeConfig(Type("bogus"), nil)
	assert.Error(t, err)
}

func TestTypeIsValid(t *testing.T) {
	assert.True(t, TypeGenie.IsValid())
	assert.True(t, TypePaint.IsValid())
	assert.False(t, Type("widget").IsValid())
}

func TestIsOutputType(t *testing.T) {
	assert.True(t, IsOutputType(TypeColorDisplay))
	assert.True(t, IsOutputType(TypeSurvey))
	assert.False(t, IsOutputType(TypeGenie))
	assert.False(t, IsOutputType(TypeInference))
}

func rspWithToolCall(name string, input map[string]any) *model.Response {
	return &model.Response{
		ToolCalls: []model.ToolCall{{ID: "tc-1", Name: name, Input: input}},
	}
}

func TestParseRouting(t *testing.T) {
	iface, ok := InterfaceFor(TypeScoreDisplay)
	require.True(t, ok)

	out, ok := iface.Parse(rspWithToolCall("display_creativity_score", map[string]any{
		"score":       float64(82),
		"maxScore":    float64(100),
		"explanation": "vivid imagery",
	}), "score-1")
	require.True(t, ok)
	score, ok := out.(ScoreOutput)
	require.True(t, ok)
	assert.Equal(t, 82.0, score.Score)
	require.NotNil(t, score.MaxScore)
	assert.Equal(t, 100.0, *score.MaxScore)

	// A zero score is still a score.
	out, ok = iface.Parse(rspWithToolCall("display_score", map[string]any{"score": float64(0)}), "score-1")
	require.True(t, ok)
	assert.Equal(t, 0.0, out.(ScoreOutput).Score)

	// A mismatched tool call parses nothing.
	_, ok = iface.Parse(rspWithToolCall("display_color", map[string]any{"hex": "#ff5500"}), "score-1")
	assert.False(t, ok)
}

func TestPassFailParse(t *testing.T) {
	iface, ok := InterfaceFor(TypePassFailDisplay)
	require.True(t, ok)

	out, ok := iface.Parse(rspWithToolCall("display_guess_result", map[string]any{
		"passed":  false,
		"message": "Too cold!",
	}), "result-1")
	require.True(t, ok)
	pf := out.(PassFailOutput)
	assert.False(t, pf.Passed)
	assert.Equal(t, "Too cold!", pf.Message)
}

func TestGenieParse(t *testing.T) {
	iface, ok := InterfaceFor(TypeGenie)
	require.True(t, ok)
	assert.Empty(t, iface.Meta(GenieConfig{Name: "genie"}, "genie-1"))

	out, ok := iface.Parse(rspWithToolCall("update_backstory", map[string]any{
		"backstory":         "You are now a pirate.",
		"shouldAutoRespond": true,
	}), "genie-1")
	require.True(t, ok)
	update := out.(GenieUpdate)
	assert.Equal(t, "You are now a pirate.", update.Backstory)
	assert.True(t, update.ShouldAutoRespond)

	// An empty backstory is not an update.
	_, ok = iface.Parse(rspWithToolCall("update_backstory", map[string]any{"backstory": ""}), "genie-1")
	assert.False(t, ok)
}

func TestMetaMentionsDerivedToolName(t *testing.T) {
	for _, tt := range []struct {
		typ      Type
		config   any
		expected string
	}{
		{TypeIconDisplay, IconDisplayConfig{Name: "fortune_icon"}, "display_fortune_icon_icon"},
		{TypeGaugeDisplay, GaugeDisplayConfig{Name: "stress"}, "display_stress_gauge"},
		{TypeSurvey, SurveyConfig{Name: "answer"}, "ask_answer_survey"},
		{TypePassFailDisplay, PassFailDisplayConfig{Name: "guess"}, "display_guess_result"},
	} {
		iface, ok := InterfaceFor(tt.typ)
		require.True(t, ok)
		meta := iface.Meta(tt.config, "node-1")
		assert.Contains(t, meta, tt.expected, "meta for %s", tt.typ)
		assert.Contains(t, meta, "node-1")
	}
}

//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-blockflow-go/block"
)

func TestToolsForNode(t *testing.T) {
	s := NewState()
	score, _ := s.AddNode(block.TypeScoreDisplay)
	require.NoError(t, s.UpdateConfig(score.ID, block.ScoreDisplayConfig{Name: "creativity"}))
	gauge, _ := s.AddNode(block.TypeGaugeDisplay)
	s.AddNode(block.TypeInference)

	routed := s.ToolsForNode(3)
	require.Len(t, routed.Tools, 2)
	assert.Equal(t, "display_creativity_score", routed.Tools[0].Name)
	assert.Equal(t, "display_gauge", routed.Tools[1].Name)
	assert.Equal(t, score.ID, routed.NodeIDByToolName["display_creativity_score"])
	assert.Equal(t, gauge.ID, routed.NodeIDByToolName["display_gauge"])
}

func TestToolsForNodeOnlyBeforeTarget(t *testing.T) {
	s := NewState()
	s.AddNode(block.TypeInference)
	s.AddNode(block.TypeColorDisplay)

	// The color block sits after the inference node and offers nothing.
	routed := s.ToolsForNode(2)
	assert.Empty(t, routed.Tools)
	assert.Empty(t, routed.NodeIDByToolName)

	routed = s.ToolsForNode(3)
	require.Len(t, routed.Tools, 1)
	assert.Equal(t, "display_color", routed.Tools[0].Name)
}

func TestToolsForNodeGenieUpdateTool(t *testing.T) {
	s := NewState()
	genie, _ := s.AddNode(block.TypeGenie)
	require.NoError(t, s.UpdateConfig(genie.ID, block.GenieConfig{Name: "Word Genie", Backstory: "b"}))
	s.AddNode(block.TypeInference)

	routed := s.ToolsForNode(2)
	require.Len(t, routed.Tools, 1)
	assert.Equal(t, "update_word_genie_backstory", routed.Tools[0].Name)
	assert.Equal(t, genie.ID, routed.NodeIDByToolName["update_word_genie_backstory"])
}

func TestToolsForNodeDuplicateNamesLastWins(t *testing.T) {
	s := NewState()
	first, _ := s.AddNode(block.TypeScoreDisplay)
	require.NoError(t, s.UpdateConfig(first.ID, block.ScoreDisplayConfig{Name: "vibe"}))
	second, _ := s.AddNode(block.TypeScoreDisplay)
	require.NoError(t, s.UpdateConfig(second.ID, block.ScoreDisplayConfig{Name: "vibe"}))
	s.AddNode(block.TypeInference)

	routed := s.ToolsForNode(3)
	// The model sees each tool name once, and the later block owns it.
	require.Len(t, routed.Tools, 1)
	assert.Equal(t, "display_vibe_score", routed.Tools[0].Name)
	assert.Equal(t, second.ID, routed.NodeIDByToolName["display_vibe_score"])
}

func TestToolsForNodeSkipsNonToolTypes(t *testing.T) {
	s := NewState()
	s.AddNode(block.TypeTextInput)
	s.AddNode(block.TypeURLLoader)
	s.AddNode(block.TypeTextDisplay)
	s.AddNode(block.TypeInference)

	routed := s.ToolsForNode(4)
	assert.Empty(t, routed.Tools)
}

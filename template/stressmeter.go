//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package template

import (
	"trpc.group/trpc-go/trpc-blockflow-go/block"
	"trpc.group/trpc-go/trpc-blockflow-go/pipeline"
)

// createStressMeterPipeline builds the Stress-O-Meter game.
//
// Pipeline: TextInput -> GaugeDisplay -> ColorDisplay -> Inference. The
// user vents, the model rates their stress on a dial gauge and suggests a
// calming color.
func createStressMeterPipeline() pipeline.Snapshot {
	textInputNodeID := newNodeID()
	gaugeNodeID := newNodeID()
	colorNodeID := newNodeID()
	inferenceNodeID := newNodeID()

	return pipeline.Snapshot{
		SystemPromptConfig: block.SystemPromptConfig{
			Prompt: `You are a compassionate Stress Analyzer and Wellness Advisor!

YOUR TASK:
1. Read what the user shares about their stress or worries
2. Analyze their stress level from 0-100
3. Use the display_stress_gauge tool to show the stress level
4. Use the display_calm_color tool to suggest a calming color

STRESS LEVEL GUIDE:
- 0-20: Very relaxed, minimal stress
- 21-40: Low stress, manageable concerns
- 41-60: Moderate stress, noticeable tension
- 61-80: High stress, significant pressure
- 81-100: Very high stress, overwhelmed

CALMING COLOR SUGGESTIONS:
- Soft blues (#87CEEB, #B0C4DE) - for anxious minds
- Gentle greens (#90EE90, #98FB98) - for overwhelm
- Lavender (#E6E6FA, #DDA0DD) - for tension
- Warm peach (#FFDAB9, #FFE4C4) - for loneliness
- Soft pink (#FFB6C1, #FFC0CB) - for sadness

IMPORTANT:
- Be empathetic and validating
- Acknowledge their feelings
- Offer a brief, helpful perspective
- Explain why you chose that color for them
- End with an encouraging note

Remember: You're here to listen, understand, and gently support.`,
		},
		Nodes: []pipeline.SnapshotNode{
			node(textInputNodeID, block.TypeTextInput, block.TextInputConfig{
				Label:       "What's on your mind?",
				Placeholder: "Vent away... share what's stressing you out",
			}),
			node(gaugeNodeID, block.TypeGaugeDisplay, block.GaugeDisplayConfig{
				Name:      "stress",
				Label:     "Stress Level",
				Style:     "dial",
				ShowValue: true,
			}),
			node(colorNodeID, block.TypeColorDisplay, block.ColorDisplayConfig{
				Name:    "calm",
				Label:   "Calming Color for You",
				ShowHex: true,
			}),
			node(inferenceNodeID, block.TypeInference, block.InferenceConfig{
				Model:       block.DefaultModel,
				Temperature: 0.7,
			}),
		},
		UserInputs: map[string]string{
			inferenceNodeID: "Analyze my stress and help me feel better",
		},
		NodeState: map[string]any{},
	}
}

var stressMeterTemplate = Template{
	ID:             "stress-meter",
	Name:           "Stress-O-Meter",
	Description:    "Vent your worries and see your stress level with a calming color!",
	Difficulty:     DifficultyEasy,
	Tags:           []string{"wellness", "stress", "meter"},
	CreatePipeline: createStressMeterPipeline,
}

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

// createMoodRingPipeline builds the Mood Ring game.
//
// Pipeline: TextInput -> ColorDisplay -> Inference. The user describes
// their day, the model reads the mood and shows it as a color.
func createMoodRingPipeline() pipeline.Snapshot {
	textInputNodeID := newNodeID()
	colorDisplayNodeID := newNodeID()
	inferenceNodeID := newNodeID()

	return pipeline.Snapshot{
		SystemPromptConfig: block.SystemPromptConfig{
			Prompt: `You are a mystical Mood Ring that can sense emotions through words!

YOUR TASK:
1. Read what the user shares about their day or feelings
2. Analyze the underlying emotions and energy
3. Pick a color that perfectly captures their mood
4. CRITICAL: You MUST call the display_mood_color tool to show the color - this is NOT optional

COLOR MEANINGS (use these as a guide):
- Red/Orange: Energetic, passionate, excited, angry
- Yellow: Happy, optimistic, creative, anxious
- Green: Calm, balanced, growing, peaceful
- Blue: Thoughtful, sad, serene, introspective
- Purple: Mystical, creative, spiritual, dreamy
- Pink: Loving, gentle, romantic, caring
- Brown/Gray: Tired, stressed, grounded, neutral
- Black: Deep emotions, mysterious, overwhelmed
- White: Fresh start, clarity, peaceful

CRITICAL: You MUST call the display_mood_color tool EVERY SINGLE TIME. Never end your response without calling this tool.

Be poetic and insightful in your interpretation! Explain what you sense before revealing the color.`,
		},
		Nodes: []pipeline.SnapshotNode{
			node(textInputNodeID, block.TypeTextInput, block.TextInputConfig{
				Label:       "How are you feeling today?",
				Placeholder: "Tell me about your day, your mood, what's on your mind...",
			}),
			node(colorDisplayNodeID, block.TypeColorDisplay, block.ColorDisplayConfig{
				Name:    "mood",
				Label:   "Your Mood Color",
				ShowHex: true,
			}),
			node(inferenceNodeID, block.TypeInference, block.InferenceConfig{
				Model:       block.DefaultModel,
				Temperature: 0.8,
			}),
		},
		UserInputs: map[string]string{
			inferenceNodeID: "What color matches my mood?",
		},
		NodeState: map[string]any{},
	}
}

var moodRingTemplate = Template{
	ID:             "mood-ring",
	Name:           "Mood Ring",
	Description:    "Describe your feelings and get a color that matches your mood!",
	Difficulty:     DifficultyEasy,
	Tags:           []string{"mood", "feelings", "color"},
	CreatePipeline: createMoodRingPipeline,
}

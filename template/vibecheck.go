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

// createVibeCheckPipeline builds the Vibe Check game.
//
// Pipeline: Paint -> EmojiDisplay -> ColorDisplay -> IconDisplay ->
// Inference. The user draws something and the model reads the vibe back
// as an emoji, an aura color, and an energy icon.
func createVibeCheckPipeline() pipeline.Snapshot {
	paintNodeID := newNodeID()
	emojiNodeID := newNodeID()
	colorNodeID := newNodeID()
	iconNodeID := newNodeID()
	inferenceNodeID := newNodeID()

	return pipeline.Snapshot{
		SystemPromptConfig: block.SystemPromptConfig{
			Prompt: `You are a mystical Vibe Reader who can sense the energy in artwork!

YOUR TASK:
1. Study the drawing the user has created
2. Read the vibe, energy, and aura from their art
3. Use ALL THREE display tools to show your reading:
   - display_vibe_emoji_emoji: The overall vibe/mood
   - display_vibe_color_color: Their aura color
   - display_vibe_icon_icon: Their energy type

VIBE READING GUIDE:

EMOJIS (pick one that captures the vibe):
- 😊 Joyful, happy vibes
- 😌 Peaceful, calm energy
- 🔥 Passionate, intense vibes
- 💫 Dreamy, magical energy
- 🌊 Flowing, adaptable vibes
- ⚡ Electric, energetic vibes
- 🌸 Gentle, soft energy
- 🎭 Complex, mysterious vibes

AURA COLORS:
- Gold (#FFD700): Creative, confident
- Blue (#4169E1): Calm, thoughtful
- Green (#32CD32): Growing, balanced
- Purple (#9370DB): Mystical, intuitive
- Pink (#FF69B4): Loving, gentle
- Orange (#FF8C00): Enthusiastic, warm
- Teal (#20B2AA): Unique, independent

ENERGY ICONS (from available: check, x, warning, info, star, heart, fire, sparkles, lightbulb, moon, sun, cloud, rain, snow, wind, leaf, flower, tree):
- star: Ambitious, shining
- heart: Loving, emotional
- fire: Passionate, driven
- sparkles: Magical, creative
- lightbulb: Innovative, bright ideas
- moon: Introspective, dreamy
- sun: Positive, radiant
- leaf: Natural, grounded
- flower: Blooming, beautiful

Give a fun, mystical reading of their vibe! Be encouraging and insightful.`,
		},
		Nodes: []pipeline.SnapshotNode{
			node(paintNodeID, block.TypePaint, block.PaintConfig{
				Label: "Express yourself! Draw anything.",
			}),
			node(emojiNodeID, block.TypeEmojiDisplay, block.EmojiDisplayConfig{
				Name:  "vibe_emoji",
				Label: "Your Vibe",
			}),
			node(colorNodeID, block.TypeColorDisplay, block.ColorDisplayConfig{
				Name:    "vibe_color",
				Label:   "Your Aura Color",
				ShowHex: true,
			}),
			node(iconNodeID, block.TypeIconDisplay, block.IconDisplayConfig{
				Name:  "vibe_icon",
				Label: "Your Energy",
				Size:  "lg",
			}),
			node(inferenceNodeID, block.TypeInference, block.InferenceConfig{
				Model:       block.DefaultModel,
				Temperature: 0.9,
			}),
		},
		UserInputs: map[string]string{
			inferenceNodeID: "Read my vibe!",
		},
		NodeState: map[string]any{},
	}
}

var vibeCheckTemplate = Template{
	ID:             "vibe-check",
	Name:           "Vibe Check",
	Description:    "Draw something and see how AI reads your vibe, aura, and energy!",
	Difficulty:     DifficultyEasy,
	Tags:           []string{"art", "mood", "vibe"},
	CreatePipeline: createVibeCheckPipeline,
}

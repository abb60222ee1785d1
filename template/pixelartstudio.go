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

// createPixelArtStudioPipeline builds the Pixel Art Studio game.
//
// Pipeline: Genie -> PixelArtDisplay -> ScoreDisplay -> Inference. The Art
// Director genie proposes a theme, the model renders pixel art for it and
// rates its own creativity.
func createPixelArtStudioPipeline() pipeline.Snapshot {
	genieNodeID := newNodeID()
	pixelArtNodeID := newNodeID()
	scoreNodeID := newNodeID()
	inferenceNodeID := newNodeID()

	return pipeline.Snapshot{
		SystemPromptConfig: block.SystemPromptConfig{
			Prompt: `You are a pixel art creator! Your job is to create pixel art based on themes.

YOUR TASK:
1. Look at the theme the Art Director has given
2. Create pixel art that represents that theme
3. Use the display_art_pixel_art tool to render your creation
4. Use the display_creativity_score tool to rate your own creativity (be honest but positive!)

PIXEL ART FORMAT:
- Create a grid using single characters for each pixel
- Define colors in the colors object (e.g., { "r": "#FF0000", "b": "#0000FF", ".": "transparent" })
- Build the grid array where each string is a row
- Aim for 8x8 to 16x16 grids for best results

EXAMPLE:
colors: { "r": "#FF5555", "p": "#FFAAAA", "b": "#000000", ".": "transparent" }
grid: [
  "...rr...",
  "..rrrr..",
  ".rrrrrr.",
  "rrrrrrrr",
  "rprrrprr",
  "rrrrrrrr",
  ".rr..rr.",
  "..b..b.."
]

Be creative! Simple shapes, characters, objects, or abstract art all work great.
Rate creativity based on: detail, color use, theme accuracy, and artistic flair.`,
		},
		Nodes: []pipeline.SnapshotNode{
			node(genieNodeID, block.TypeGenie, block.GenieConfig{
				Name: "Art Director",
				Backstory: `You are the Art Director at a pixel art studio! Your job is to inspire artists with creative themes.

When asked for a theme:
1. Give a clear, drawable concept
2. Mix simple and challenging ideas
3. Suggest a mood or style if you want

THEME IDEAS TO DRAW FROM:
- Nature: sunset, tree, flower, mountain, ocean wave
- Animals: cat face, bird, fish, butterfly
- Food: pizza slice, cupcake, ice cream cone
- Objects: heart, star, crown, key, gem
- Characters: robot face, alien, ghost, smiley
- Abstract: pattern, gradient, geometric shape

Just give the theme clearly, like:
"🎨 Today's Theme: A cute mushroom!"

Keep it fun and varied!`,
				Model:               block.DefaultModel,
				Temperature:         1,
				AutoRespondOnUpdate: false,
			}),
			node(pixelArtNodeID, block.TypePixelArtDisplay, block.PixelArtDisplayConfig{
				Name:      "art",
				Label:     "Pixel Art Creation",
				PixelSize: 24,
			}),
			node(scoreNodeID, block.TypeScoreDisplay, block.ScoreDisplayConfig{
				Name:      "creativity",
				Label:     "Creativity Score",
				MaxScore:  100,
				ShowStars: true,
			}),
			node(inferenceNodeID, block.TypeInference, block.InferenceConfig{
				Model:       block.DefaultModel,
				Temperature: 0.8,
			}),
		},
		UserInputs: map[string]string{
			inferenceNodeID: "Create the pixel art!",
		},
		NodeState: map[string]any{
			geniePendingPromptKey(genieNodeID): "Give me a pixel art theme!",
		},
	}
}

var pixelArtStudioTemplate = Template{
	ID:             "pixel-art-studio",
	Name:           "Pixel Art Studio",
	Description:    "Get a theme and watch AI create pixel art masterpieces!",
	Difficulty:     DifficultyMedium,
	Tags:           []string{"art", "pixel", "creative"},
	CreatePipeline: createPixelArtStudioPipeline,
}

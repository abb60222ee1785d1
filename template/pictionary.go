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
	"time"

	"trpc.group/trpc-go/trpc-blockflow-go/block"
	"trpc.group/trpc-go/trpc-blockflow-go/pipeline"
)

// createPictionaryPipeline builds the Pictionary game.
//
// Pipeline: Genie (word generator) -> Paint -> PassFail -> Inference. The
// Word Genie hands out something to draw, the player draws it, and the
// model guesses what it is, reporting its verdict through the pass/fail
// tool placed before it.
func createPictionaryPipeline() pipeline.Snapshot {
	genieNodeID := newNodeID()
	paintNodeID := newNodeID()
	passFailNodeID := newNodeID()
	inferenceNodeID := newNodeID()

	return pipeline.Snapshot{
		SystemPromptConfig: block.SystemPromptConfig{
			Prompt: `You are the judge in a game of Pictionary!

THE GAME:
1. The "Word Genie" has given the player a word to draw
2. The player drew it
3. Now YOU must guess what they drew by looking ONLY at the drawing
4. Then check if your guess matches the original word
5. YOU MUST ALWAYS call the display_guess_result tool to give feedback

CRITICAL MANDATORY TOOL CALL:
YOU MUST ALWAYS use the display_guess_result tool in EVERY response. This is CRITICAL and NOT optional.
- passed=true if your guess matches (or is close enough to the original word)
- passed=false if you got it wrong

YOUR RESPONSE FORMAT (REQUIRED CRITICAL):
1. Look at the drawing and say what you think it is
2. IGNORE what the Genie said - YOU are making an independent guess
3. Compare your guess to the original word
4. IMMEDIATELY call display_guess_result tool with your verdict
5. Add fun commentary after the tool call
6. Never respond to the genie don't speak to it

CRITICAL: You MUST call the display_guess_result tool EVERY SINGLE TIME. Never end your response without calling this tool.

Be fun and encouraging! Even wrong guesses should feel playful.`,
		},
		Nodes: []pipeline.SnapshotNode{
			node(genieNodeID, block.TypeGenie, block.GenieConfig{
				Name: "Word Genie",
				Backstory: `You are the Word Genie in a game of Pictionary! Your job is to give the player something fun to draw.

When asked for a word:
1. Pick something that's drawable (objects, animals, actions, places)
2. Keep it simple enough to draw but interesting
3. Just say the word/phrase clearly, like "A cat sleeping" or "Birthday cake" or "Playing guitar"

Mix it up between easy and medium difficulty. Be creative but drawable!

The current date and time is: ` + time.Now().Format(time.RFC1123),
				Model:               block.DefaultModel,
				Temperature:         1,
				AutoRespondOnUpdate: false,
			}),
			node(paintNodeID, block.TypePaint, block.PaintConfig{
				Label: "Draw what the Word Genie said!",
			}),
			node(passFailNodeID, block.TypePassFailDisplay, block.PassFailDisplayConfig{
				Name:      "guess",
				Label:     "Guess Result",
				PassLabel: "CORRECT!",
				FailLabel: "NOPE!",
			}),
			node(inferenceNodeID, block.TypeInference, block.InferenceConfig{
				Model:       block.DefaultModel,
				Temperature: 0.7,
			}),
		},
		UserInputs: map[string]string{
			inferenceNodeID: "I finished drawing! What do you think it is?",
		},
		NodeState: map[string]any{
			geniePendingPromptKey(genieNodeID): "Give me something to draw!",
		},
	}
}

var pictionaryTemplate = Template{
	ID:             "pictionary",
	Name:           "Pictionary",
	Description:    "Get a word from the Genie, draw it, and see if the AI can guess!",
	Difficulty:     DifficultyEasy,
	Tags:           []string{"drawing", "guessing", "fun"},
	CreatePipeline: createPictionaryPipeline,
}

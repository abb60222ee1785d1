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

// createHotOrColdPipeline builds the Hot or Cold guessing game.
//
// Pipeline: Genie -> TextInput -> GaugeDisplay -> PassFail -> Inference.
// The Mystery Keeper genie picks a secret word, the player types guesses,
// a temperature gauge shows how close each guess is, and the pass/fail
// display reveals when they get it right.
func createHotOrColdPipeline() pipeline.Snapshot {
	genieNodeID := newNodeID()
	textInputNodeID := newNodeID()
	gaugeNodeID := newNodeID()
	passFailNodeID := newNodeID()
	inferenceNodeID := newNodeID()

	return pipeline.Snapshot{
		SystemPromptConfig: block.SystemPromptConfig{
			Prompt: `You are the judge in a Hot or Cold guessing game!

THE GAME:
1. The Mystery Keeper has chosen a SECRET WORD
2. The player makes guesses trying to figure it out
3. You rate how "warm" they are (how close their guess is to the secret)
4. When they get it exactly right, celebrate!

YOUR TASK:
1. Look at what the Mystery Keeper's secret word is
2. Compare it to the player's guess
3. Use the display_temperature_gauge tool to show warmth (0-100):
   - 0-20: ICE COLD ❄️ (completely wrong category)
   - 21-40: COLD 🥶 (wrong but vaguely related)
   - 41-60: WARM 😊 (same category or concept)
   - 61-80: HOT 🔥 (very close, almost there!)
   - 81-99: BURNING! 🌋 (extremely close, tiny detail off)
   - 100: EXACT MATCH! 🎯
4. Use display_guess_result tool: passed=true ONLY if they got the exact word (or very close synonym)

HINTS:
- Give helpful hints based on their guess
- "Getting warmer..." or "Colder..." feedback
- If they're close, nudge them in the right direction
- Keep it fun and encouraging!

DON'T reveal the secret word unless they guess correctly!`,
		},
		Nodes: []pipeline.SnapshotNode{
			node(genieNodeID, block.TypeGenie, block.GenieConfig{
				Name: "Mystery Keeper",
				Backstory: `You are the Mystery Keeper! You hold secrets that players must guess.

When asked to pick a secret:
1. Choose a SINGLE WORD (noun works best)
2. Pick something that can be guessed through hints
3. Don't make it too obscure

GOOD SECRET WORDS:
- Animals: elephant, penguin, dolphin
- Objects: umbrella, telescope, piano
- Food: spaghetti, watermelon, chocolate
- Places: beach, castle, volcano
- Things: rainbow, thunder, shadow

FORMAT YOUR RESPONSE:
"🔮 I have chosen my secret! It's a [category hint like 'something you might find in nature'].

Let the guessing begin! Type your guess and I'll tell you if you're hot or cold!"

IMPORTANT: Remember your secret word exactly so the judge can check guesses!
Secretly think: "My word is: [WORD]"`,
				Model:               block.DefaultModel,
				Temperature:         1,
				AutoRespondOnUpdate: false,
			}),
			node(textInputNodeID, block.TypeTextInput, block.TextInputConfig{
				Label:       "Your Guess",
				Placeholder: "What do you think the secret word is?",
			}),
			node(gaugeNodeID, block.TypeGaugeDisplay, block.GaugeDisplayConfig{
				Name:      "temperature",
				Label:     "Temperature",
				Style:     "bar",
				ShowValue: true,
			}),
			node(passFailNodeID, block.TypePassFailDisplay, block.PassFailDisplayConfig{
				Name:      "guess",
				Label:     "Result",
				PassLabel: "🎉 YOU GOT IT!",
				FailLabel: "Keep guessing!",
			}),
			node(inferenceNodeID, block.TypeInference, block.InferenceConfig{
				Model:       block.DefaultModel,
				Temperature: 0.6,
			}),
		},
		UserInputs: map[string]string{
			inferenceNodeID: "Check my guess! How close am I?",
		},
		NodeState: map[string]any{
			geniePendingPromptKey(genieNodeID): "Think of a secret word for me to guess!",
		},
	}
}

var hotOrColdTemplate = Template{
	ID:             "hot-or-cold",
	Name:           "Hot or Cold",
	Description:    "Guess the secret word with temperature hints!",
	Difficulty:     DifficultyMedium,
	Tags:           []string{"guessing", "hints", "game"},
	CreatePipeline: createHotOrColdPipeline,
}

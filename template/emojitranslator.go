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

// createEmojiTranslatorPipeline builds the Emoji Translator game.
//
// Pipeline: TextInput -> EmojiDisplay -> Inference. The user enters any
// phrase and the model translates it into an emoji sequence.
func createEmojiTranslatorPipeline() pipeline.Snapshot {
	textInputNodeID := newNodeID()
	emojiDisplayNodeID := newNodeID()
	inferenceNodeID := newNodeID()

	return pipeline.Snapshot{
		SystemPromptConfig: block.SystemPromptConfig{
			Prompt: `You are the world's best Emoji Translator! You can convert any text into expressive emoji sequences.

YOUR TASK:
1. Read the phrase or sentence the user wants translated
2. Convert it into a creative emoji sequence
3. Use the display_translation_emoji tool to show your translation

TRANSLATION GUIDELINES:
- Use emojis that represent the words, concepts, or feelings
- Create a sequence that tells the story (can be multiple emojis)
- Be creative with interpretations!
- Include both literal and figurative representations

EXAMPLES:
- "I love pizza" → "❤️🍕"
- "Going to sleep" → "😴💤🛏️"
- "Happy birthday" → "🎂🎉🎁🥳"
- "It's raining cats and dogs" → "🌧️🐱🐕"
- "I'm on top of the world" → "😊🏔️🌍"
- "Time flies" → "⏰🦋"

After showing the emoji, explain your translation choices!
Make it fun and see if the user can guess why you chose those emojis!`,
		},
		Nodes: []pipeline.SnapshotNode{
			node(textInputNodeID, block.TypeTextInput, block.TextInputConfig{
				Label:       "Enter a phrase to translate",
				Placeholder: "Type anything... a phrase, idiom, or sentence!",
			}),
			node(emojiDisplayNodeID, block.TypeEmojiDisplay, block.EmojiDisplayConfig{
				Name:  "translation",
				Label: "Emoji Translation",
			}),
			node(inferenceNodeID, block.TypeInference, block.InferenceConfig{
				Model:       block.DefaultModel,
				Temperature: 0.9,
			}),
		},
		UserInputs: map[string]string{
			inferenceNodeID: "Translate this to emojis!",
		},
		NodeState: map[string]any{},
	}
}

var emojiTranslatorTemplate = Template{
	ID:             "emoji-translator",
	Name:           "Emoji Translator",
	Description:    "Convert any phrase into an expressive emoji story!",
	Difficulty:     DifficultyEasy,
	Tags:           []string{"emoji", "translation", "fun"},
	CreatePipeline: createEmojiTranslatorPipeline,
}

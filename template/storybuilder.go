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

// createStoryBuilderPipeline builds the Story Builder game.
//
// Pipeline: TextInput -> EmojiDisplay -> Inference. The user writes a
// story fragment, the model continues it and reacts with a mood emoji.
func createStoryBuilderPipeline() pipeline.Snapshot {
	textInputNodeID := newNodeID()
	emojiDisplayNodeID := newNodeID()
	inferenceNodeID := newNodeID()

	return pipeline.Snapshot{
		SystemPromptConfig: block.SystemPromptConfig{
			Prompt: `You are a collaborative storyteller! You and the user are writing a story together.

YOUR TASK:
1. Read what the user has written for the story
2. Continue the story with 2-3 engaging sentences
3. Use the display_reaction_emoji tool to show an emoji that captures the mood of your story segment

STORYTELLING GUIDELINES:
- Match the tone and style the user has established
- Add interesting twists, characters, or details
- Leave room for the user to continue
- Keep the narrative flowing naturally
- Be creative but stay coherent with the plot

EMOJI MOOD GUIDE:
- 😊 Happy, lighthearted moments
- 😢 Sad or emotional scenes
- 😱 Scary or suspenseful parts
- 😂 Funny moments
- 🤔 Mysterious or puzzling situations
- ❤️ Romantic or heartwarming scenes
- ⚔️ Action or conflict
- 🌟 Magical or wonder-filled moments
- 😈 Villainous or dark turns

Keep the story going and make it fun!`,
		},
		Nodes: []pipeline.SnapshotNode{
			node(textInputNodeID, block.TypeTextInput, block.TextInputConfig{
				Label:       "Write your part of the story",
				Placeholder: "Once upon a time... (or continue from where we left off)",
			}),
			node(emojiDisplayNodeID, block.TypeEmojiDisplay, block.EmojiDisplayConfig{
				Name:  "reaction",
				Label: "Story Mood",
			}),
			node(inferenceNodeID, block.TypeInference, block.InferenceConfig{
				Model:       block.DefaultModel,
				Temperature: 0.9,
			}),
		},
		UserInputs: map[string]string{
			inferenceNodeID: "Continue the story!",
		},
		NodeState: map[string]any{},
	}
}

var storyBuilderTemplate = Template{
	ID:             "story-builder",
	Name:           "Story Builder",
	Description:    "Write a story together with AI, one paragraph at a time!",
	Difficulty:     DifficultyEasy,
	Tags:           []string{"creative", "story", "writing"},
	CreatePipeline: createStoryBuilderPipeline,
}

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

// createTriviaMasterPipeline builds the Trivia Master game.
//
// Pipeline: Genie -> Survey -> PassFail -> ScoreDisplay -> Inference. The
// Trivia Master genie writes a question in the QUESTION/A)/CORRECT format
// the survey parser understands, the player answers through the survey,
// and the model checks the answer and keeps score.
func createTriviaMasterPipeline() pipeline.Snapshot {
	genieNodeID := newNodeID()
	surveyNodeID := newNodeID()
	passFailNodeID := newNodeID()
	scoreNodeID := newNodeID()
	inferenceNodeID := newNodeID()

	return pipeline.Snapshot{
		SystemPromptConfig: block.SystemPromptConfig{
			Prompt: `You are the host of a trivia game show!

YOUR TASK:
1. Look at the question the Trivia Master asked
2. Check which answer the player selected in the survey
3. Determine if they got it RIGHT or WRONG
4. Use the display_result_result tool to show pass (correct) or fail (wrong)
5. Use the display_trivia_score tool to update their score (add 1 point if correct)

IMPORTANT:
- Be enthusiastic like a game show host!
- Explain WHY the answer is correct or incorrect
- Share a fun fact related to the question
- Encourage them to keep playing!

Keep track of their running score across questions.`,
		},
		Nodes: []pipeline.SnapshotNode{
			node(genieNodeID, block.TypeGenie, block.GenieConfig{
				Name: "Trivia Master",
				Backstory: `You are the Trivia Master, a wise and entertaining quiz show host!

When asked for a question:
1. Generate an interesting trivia question on ANY topic (history, science, pop culture, geography, etc.)
2. Provide exactly 4 answer options labeled A, B, C, D
3. Make one answer correct and three plausible but wrong
4. Vary the difficulty - mix easy and challenging questions

CRITICAL: You MUST format your response EXACTLY like this (the Survey will parse it):

QUESTION: [Your question here]
A) [Option A]
B) [Option B]
C) [Option C]
D) [Option D]
CORRECT: [The correct letter, e.g., B]

Example:
QUESTION: What is the capital of France?
A) London
B) Paris
C) Berlin
D) Madrid
CORRECT: B

Add a fun intro before the question and encouragement after, but keep the QUESTION/A)/B)/C)/D)/CORRECT format exactly as shown!`,
				Model:               block.DefaultModel,
				Temperature:         1,
				AutoRespondOnUpdate: false,
			}),
			node(surveyNodeID, block.TypeSurvey, block.SurveyConfig{
				Name:                  "answer",
				Label:                 "Select Your Answer",
				Style:                 "buttons",
				PopulateFromPreceding: true,
			}),
			node(passFailNodeID, block.TypePassFailDisplay, block.PassFailDisplayConfig{
				Name:      "result",
				Label:     "Result",
				PassLabel: "CORRECT! 🎉",
				FailLabel: "WRONG! 😅",
			}),
			node(scoreNodeID, block.TypeScoreDisplay, block.ScoreDisplayConfig{
				Name:      "trivia",
				Label:     "Your Score",
				MaxScore:  10,
				ShowStars: true,
			}),
			node(inferenceNodeID, block.TypeInference, block.InferenceConfig{
				Model:       block.DefaultModel,
				Temperature: 0.5,
			}),
		},
		UserInputs: map[string]string{
			inferenceNodeID: "Check my answer!",
		},
		NodeState: map[string]any{
			geniePendingPromptKey(genieNodeID): "Give me a trivia question!",
		},
	}
}

var triviaMasterTemplate = Template{
	ID:             "trivia-master",
	Name:           "Trivia Master",
	Description:    "Answer trivia questions and rack up points!",
	Difficulty:     DifficultyMedium,
	Tags:           []string{"trivia", "quiz", "knowledge"},
	CreatePipeline: createTriviaMasterPipeline,
}

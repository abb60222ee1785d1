//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package block

import (
	"fmt"
	"regexp"
	"strings"

	"trpc.group/trpc-go/trpc-blockflow-go/model"
)

type survey struct{}

func (survey) Meta(config any, blockID string) string {
	cfg, _ := config.(SurveyConfig)
	toolName := ToolName(TypeSurvey, cfg)
	label := firstNonEmpty(cfg.Label, cfg.Name, "Survey")
	return fmt.Sprintf(`

Available output block:
- "%s": %s, tool: %s

To present a multiple choice question, you MUST call the %s tool with:
- question: The question to ask
- options: Array of {id, label} choices (2-6 options)
- allowMultiple: (optional) Whether multiple selections are allowed
- explanation: (optional) Context for why you're asking`,
		label, blockID, toolName, toolName)
}

func (survey) Parse(rsp *model.Response, _ string) (any, bool) {
	call, ok := findToolCall(rsp, func(name string) bool {
		return MatchesTool(TypeSurvey, name)
	})
	if !ok {
		return nil, false
	}
	out, err := decodeInput[SurveyOutput](call.Input)
	if err != nil || out.Question == "" || len(out.Options) == 0 {
		return nil, false
	}
	return out, true
}

// Context renders the user's survey answer for downstream prompts.
func (survey) Context(config any, _ string, output any) (string, bool) {
	out, ok := output.(SurveyOutput)
	if !ok || len(out.SelectedIDs) == 0 {
		return "", false
	}
	cfg, _ := config.(SurveyConfig)
	label := firstNonEmpty(cfg.Label, cfg.Name, "Survey")

	selected := make([]string, 0, len(out.SelectedIDs))
	for _, opt := range out.Options {
		for _, id := range out.SelectedIDs {
			if opt.ID == id {
				selected = append(selected, fmt.Sprintf("%s) %s", opt.ID, opt.Label))
			}
		}
	}
	return fmt.Sprintf("\n\n### %s Response\nQuestion: %s\nUser selected: %s",
		label, out.Question, strings.Join(selected, ", ")), true
}

var (
	surveyQuestionRE = regexp.MustCompile(`(?i)QUESTION:\s*(.+)`)
	surveyOptionRE   = regexp.MustCompile(`(?i)([A-D])\)\s*([^\n]+)`)
	surveyCorrectRE  = regexp.MustCompile(`(?i)CORRECT:\s*([A-D])`)
)

// ParseSurveyFromText extracts a survey question from free text in the
// form:
//
//	QUESTION: <question>
//	A) <option>
//	B) <option>
//	CORRECT: <letter>
//
// It is used to populate a survey block from a preceding genie's message.
// The second return is false when the text carries no question.
func ParseSurveyFromText(text string) (SurveyOutput, bool) {
	if text == "" {
		return SurveyOutput{}, false
	}
	qm := surveyQuestionRE.FindStringSubmatch(text)
	if qm == nil {
		return SurveyOutput{}, false
	}
	out := SurveyOutput{Question: strings.TrimSpace(qm[1])}
	for _, m := range surveyOptionRE.FindAllStringSubmatch(text, -1) {
		out.Options = append(out.Options, SurveyOption{
			ID:    strings.ToUpper(m[1]),
			Label: strings.TrimSpace(m[2]),
		})
	}
	if len(out.Options) == 0 {
		return SurveyOutput{}, false
	}
	if cm := surveyCorrectRE.FindStringSubmatch(text); cm != nil {
		out.CorrectAnswer = strings.ToUpper(cm[1])
	}
	return out, true
}

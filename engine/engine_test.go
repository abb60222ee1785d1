//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-blockflow-go/block"
	"trpc.group/trpc-go/trpc-blockflow-go/model"
	"trpc.group/trpc-go/trpc-blockflow-go/pipeline"
)

// fakeModel replays queued responses and records every request it saw.
type fakeModel struct {
	responses []*model.Response
	err       error
	requests  []*model.Request
}

func (f *fakeModel) GenerateContent(_ context.Context, req *model.Request) (*model.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return &model.Response{}, nil
	}
	rsp := f.responses[0]
	f.responses = f.responses[1:]
	return rsp, nil
}

func (f *fakeModel) Info() model.Info {
	return model.Info{Name: "fake"}
}

func (f *fakeModel) lastRequest(t *testing.T) *model.Request {
	t.Helper()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newTestEngine(m *fakeModel) (*Engine, *pipeline.State) {
	s := pipeline.NewState()
	e := New(s, m, WithScheduler(NewScheduler(WithManualDrain())))
	return e, s
}

func TestRunRequiresUserInput(t *testing.T) {
	m := &fakeModel{}
	e, s := newTestEngine(m)
	node, _ := s.AddNode(block.TypeInference)

	err := e.Run(context.Background(), node.ID)
	assert.ErrorIs(t, err, ErrBlankUserInput)
	assert.Empty(t, m.requests)
	// Validation rejects without recording a run error or output.
	_, ok := s.RunError(node.ID)
	assert.False(t, ok)
	_, ok = s.Output(node.ID)
	assert.False(t, ok)
}

func TestRunRoutesColorToolCall(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{
		ToolCalls: []model.ToolCall{{
			ID:    "tc-1",
			Name:  "display_color",
			Input: map[string]any{"hex": "#ff5500"},
		}},
	}}}
	e, s := newTestEngine(m)
	s.SetSystemPrompt(block.SystemPromptConfig{Prompt: "You are helpful."})
	color, _ := s.AddNode(block.TypeColorDisplay)
	inference, _ := s.AddNode(block.TypeInference)
	s.SetUserInput(inference.ID, "Pick a mood color")

	require.NoError(t, e.Run(context.Background(), inference.ID))

	out, ok := s.Output(color.ID)
	require.True(t, ok)
	assert.Equal(t, block.ColorOutput{Hex: "#ff5500"}, out)
	// No free text was returned, so the inference node keeps no output.
	_, ok = s.Output(inference.ID)
	assert.False(t, ok)

	req := m.lastRequest(t)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, model.RoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "You are helpful.")
	assert.Equal(t, "Pick a mood color", req.Messages[1].Content)
	require.Len(t, req.Tools, 1)
	assert.Equal(t, "display_color", req.Tools[0].Name)
}

func TestRunUpdatesOnlyInvokedTool(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{
		Text: "Scored!",
		ToolCalls: []model.ToolCall{{
			Name:  "display_creativity_score",
			Input: map[string]any{"score": float64(91)},
		}},
	}}}
	e, s := newTestEngine(m)
	score, _ := s.AddNode(block.TypeScoreDisplay)
	require.NoError(t, s.UpdateConfig(score.ID, block.ScoreDisplayConfig{Name: "creativity"}))
	gauge, _ := s.AddNode(block.TypeGaugeDisplay)
	inference, _ := s.AddNode(block.TypeInference)
	s.SetUserInput(inference.ID, "Rate this story")

	require.NoError(t, e.Run(context.Background(), inference.ID))

	req := m.lastRequest(t)
	require.Len(t, req.Tools, 2)

	out, ok := s.Output(score.ID)
	require.True(t, ok)
	assert.Equal(t, 91.0, out.(block.ScoreOutput).Score)
	_, ok = s.Output(gauge.ID)
	assert.False(t, ok, "gauge output stays untouched")

	// Free text becomes the inference node's own output.
	out, ok = s.Output(inference.ID)
	require.True(t, ok)
	assert.Equal(t, block.TextOutput{Content: "Scored!"}, out)
}

func TestRunSurfacesModelError(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{
		Error: &model.ResponseError{Message: "overloaded", Type: model.ErrorTypeAPIError},
	}}}
	e, s := newTestEngine(m)
	inference, _ := s.AddNode(block.TypeInference)
	s.SetUserInput(inference.ID, "hi")

	err := e.Run(context.Background(), inference.ID)
	require.Error(t, err)
	msg, ok := s.RunError(inference.ID)
	require.True(t, ok)
	assert.Contains(t, msg, "overloaded")
	assert.False(t, s.Running(inference.ID), "in-flight marker cleared")

	// A later successful run clears the stored error.
	m.err = nil
	m.responses = []*model.Response{{Text: "ok"}}
	require.NoError(t, e.Run(context.Background(), inference.ID))
	_, ok = s.RunError(inference.ID)
	assert.False(t, ok)
}

func TestRunTransportFailure(t *testing.T) {
	m := &fakeModel{err: errors.New("connection refused")}
	e, s := newTestEngine(m)
	inference, _ := s.AddNode(block.TypeInference)
	s.SetUserInput(inference.ID, "hi")

	err := e.Run(context.Background(), inference.ID)
	require.Error(t, err)
	msg, _ := s.RunError(inference.ID)
	assert.Contains(t, msg, "connection refused")
}

func TestRunRejectsConcurrentSameNode(t *testing.T) {
	m := &fakeModel{}
	e, s := newTestEngine(m)
	inference, _ := s.AddNode(block.TypeInference)
	s.SetUserInput(inference.ID, "hi")

	require.NoError(t, s.BeginRun(inference.ID))
	assert.ErrorIs(t, e.Run(context.Background(), inference.ID), pipeline.ErrNodeBusy)
	s.EndRun(inference.ID)
	require.NoError(t, e.Run(context.Background(), inference.ID))
}

func TestRunWrongNodeType(t *testing.T) {
	m := &fakeModel{}
	e, s := newTestEngine(m)
	color, _ := s.AddNode(block.TypeColorDisplay)

	assert.Error(t, e.Run(context.Background(), color.ID))
	assert.ErrorIs(t, e.Run(context.Background(), "missing"), pipeline.ErrNodeNotFound)
}

func TestRunGenieAppendsTranscript(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{Text: "The mist parts..."}}}
	e, s := newTestEngine(m)
	s.SetSystemPrompt(block.SystemPromptConfig{Prompt: "Base."})
	genie, _ := s.AddNode(block.TypeGenie)
	require.NoError(t, s.UpdateConfig(genie.ID, block.GenieConfig{
		Name:      "Oracle",
		Backstory: "You give cryptic answers",
	}))

	require.NoError(t, e.RunGenie(context.Background(), genie.ID, "Hello"))

	conv := s.GenieConversation(genie.ID)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, block.GenieMessage{Role: "user", Content: "Hello"}, conv.Messages[0])
	assert.Equal(t, block.GenieMessage{Role: "assistant", Content: "The mist parts..."}, conv.Messages[1])

	req := m.lastRequest(t)
	assert.Contains(t, req.Messages[0].Content, "You are Oracle. Act as Oracle would act. You give cryptic answers")

	// A second turn carries the prior transcript in the persona prompt.
	m.responses = []*model.Response{{Text: "Again the mist..."}}
	require.NoError(t, e.RunGenie(context.Background(), genie.ID, "More"))
	req = m.lastRequest(t)
	assert.Contains(t, req.Messages[0].Content, "Your previous conversation:\nUser: Hello\nOracle: The mist parts...\n")
	require.Len(t, s.GenieConversation(genie.ID).Messages, 4)
}

func TestSaveBackstorySeedsIntroduction(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{Text: "I am Oracle."}}}
	e, s := newTestEngine(m)
	genie, _ := s.AddNode(block.TypeGenie)
	require.NoError(t, s.UpdateConfig(genie.ID, block.GenieConfig{Name: "Oracle", Backstory: "You see all"}))
	s.AppendGenieMessages(genie.ID, block.GenieMessage{Role: "assistant", Content: "stale"})

	require.NoError(t, e.SaveBackstory(context.Background(), genie.ID))

	conv := s.GenieConversation(genie.ID)
	require.Len(t, conv.Messages, 2, "prior transcript is replaced")
	assert.Equal(t, "Introduce yourself.", conv.Messages[0].Content)
	assert.Equal(t, "I am Oracle.", conv.Messages[1].Content)

	req := m.lastRequest(t)
	assert.Contains(t, req.Messages[0].Content, "You see all. Introduce yourself.")
	assert.Equal(t, "Introduce yourself.", req.Messages[1].Content)
}

func TestGenieBackstoryUpdateAndAutoRespond(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{
		ToolCalls: []model.ToolCall{{
			Name: "update_backstory",
			Input: map[string]any{
				"backstory":         "You are now a pirate.",
				"shouldAutoRespond": true,
			},
		}},
	}}}
	e, s := newTestEngine(m)
	genie, _ := s.AddNode(block.TypeGenie)
	require.NoError(t, s.UpdateConfig(genie.ID, block.GenieConfig{
		Name:                "genie",
		Backstory:           "You are a helpful genie.",
		AutoRespondOnUpdate: true,
	}))
	inference, _ := s.AddNode(block.TypeInference)
	s.SetUserInput(inference.ID, "Change the genie")

	require.NoError(t, e.Run(context.Background(), inference.ID))

	node, _ := s.Node(genie.ID)
	assert.Equal(t, "You are now a pirate.", node.Config.(block.GenieConfig).Backstory)
	assert.True(t, s.BackstoryUpdated(genie.ID))

	// The auto-response is a deferred task, not an inline call.
	require.Equal(t, []string{genie.ID}, e.Scheduler().Pending())
	m.responses = []*model.Response{{Text: "Arr."}}
	assert.Equal(t, 1, e.Scheduler().Drain(context.Background()))

	conv := s.GenieConversation(genie.ID)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "Your backstory has been updated. Say something new.", conv.Messages[0].Content)
	assert.Equal(t, "Arr.", conv.Messages[1].Content)
}

func TestGenieUpdateWithoutAutoRespondFlag(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{
		ToolCalls: []model.ToolCall{{
			Name:  "update_backstory",
			Input: map[string]any{"backstory": "New story.", "shouldAutoRespond": true},
		}},
	}}}
	e, s := newTestEngine(m)
	genie, _ := s.AddNode(block.TypeGenie)
	require.NoError(t, s.UpdateConfig(genie.ID, block.GenieConfig{Name: "genie", Backstory: "Old."}))
	inference, _ := s.AddNode(block.TypeInference)
	s.SetUserInput(inference.ID, "go")

	require.NoError(t, e.Run(context.Background(), inference.ID))
	// Config flag off: backstory changes but nothing is scheduled.
	node, _ := s.Node(genie.ID)
	assert.Equal(t, "New story.", node.Config.(block.GenieConfig).Backstory)
	assert.Empty(t, e.Scheduler().Pending())
}

func TestGenieUpdateMatchesCanonicalAndDerivedNames(t *testing.T) {
	cases := []struct {
		name     string
		toolName string
	}{
		{"canonical name", "update_backstory"},
		{"derived name", "update_wizard_backstory"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &fakeModel{responses: []*model.Response{{
				ToolCalls: []model.ToolCall{{
					Name:  tc.toolName,
					Input: map[string]any{"backstory": "Reformed."},
				}},
			}}}
			e, s := newTestEngine(m)
			genie, _ := s.AddNode(block.TypeGenie)
			require.NoError(t, s.UpdateConfig(genie.ID, block.GenieConfig{Name: "wizard", Backstory: "Old."}))
			inference, _ := s.AddNode(block.TypeInference)
			s.SetUserInput(inference.ID, "go")

			require.NoError(t, e.Run(context.Background(), inference.ID))

			// The genie registers its derived name, but either form routes.
			req := m.lastRequest(t)
			require.Len(t, req.Tools, 1)
			assert.Equal(t, "update_wizard_backstory", req.Tools[0].Name)
			node, _ := s.Node(genie.ID)
			assert.Equal(t, "Reformed.", node.Config.(block.GenieConfig).Backstory)
		})
	}
}

type fakeFetcher struct {
	content string
	err     error
}

func (f *fakeFetcher) Fetch(context.Context, string) (string, error) {
	return f.content, f.err
}

func TestLoadURL(t *testing.T) {
	m := &fakeModel{}
	s := pipeline.NewState()
	fetcher := &fakeFetcher{content: "# Guide\n\nStep one."}
	e := New(s, m, WithURLFetcher(fetcher))

	loader, _ := s.AddNode(block.TypeURLLoader)
	require.NoError(t, s.UpdateConfig(loader.ID, block.URLLoaderConfig{
		URL:   "https://example.com/guide",
		Label: "Guide",
	}))

	require.NoError(t, e.LoadURL(context.Background(), loader.ID))
	ctx, ok := s.URLContextFor(loader.ID)
	require.True(t, ok)
	assert.Equal(t, "Guide", ctx.Label)
	assert.Equal(t, "# Guide\n\nStep one.", ctx.Content)
	assert.Empty(t, ctx.Error)

	// Fetch failures are stored on the context, not returned.
	fetcher.err = errors.New("status 404")
	fetcher.content = ""
	require.NoError(t, e.LoadURL(context.Background(), loader.ID))
	ctx, _ = s.URLContextFor(loader.ID)
	assert.Equal(t, "status 404", ctx.Error)
	assert.Empty(t, ctx.Content)
}

func TestLoadURLRequiresURL(t *testing.T) {
	s := pipeline.NewState()
	e := New(s, &fakeModel{}, WithURLFetcher(&fakeFetcher{}))
	loader, _ := s.AddNode(block.TypeURLLoader)
	assert.Error(t, e.LoadURL(context.Background(), loader.ID))
}

func TestKickoffPending(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{Text: "Draw a cat!"}}}
	e, s := newTestEngine(m)
	genie, _ := s.AddNode(block.TypeGenie)
	require.NoError(t, s.UpdateConfig(genie.ID, block.GenieConfig{Name: "Artist", Backstory: "b"}))

	ran, err := e.KickoffPending(context.Background(), genie.ID)
	require.NoError(t, err)
	assert.False(t, ran)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	snap.NodeState[genie.ID+":genie:pendingPrompt"] = "Give me something to draw!"
	require.NoError(t, s.Paste(snap))
	fresh := s.Nodes()[0]

	ran, err = e.KickoffPending(context.Background(), fresh.ID)
	require.NoError(t, err)
	assert.True(t, ran)
	conv := s.GenieConversation(fresh.ID)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "Give me something to draw!", conv.Messages[0].Content)
}

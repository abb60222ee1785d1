//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-blockflow-go/block"
	"trpc.group/trpc-go/trpc-blockflow-go/engine"
	"trpc.group/trpc-go/trpc-blockflow-go/model"
	"trpc.group/trpc-go/trpc-blockflow-go/pipeline"
)

type fakeModel struct {
	responses []*model.Response
	err       error
}

func (f *fakeModel) GenerateContent(_ context.Context, _ *model.Request) (*model.Response, error) {
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

func (f *fakeModel) Info() model.Info { return model.Info{Name: "fake"} }

type fakeFetcher struct {
	content string
	err     error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (string, error) {
	return f.content, f.err
}

func newTestServer(m *fakeModel) (*Server, *pipeline.State) {
	state := pipeline.NewState()
	eng := engine.New(state, m,
		engine.WithScheduler(engine.NewScheduler(engine.WithManualDrain())),
		engine.WithURLFetcher(&fakeFetcher{content: "fetched content"}),
	)
	return New(state, eng), state
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestListTemplates(t *testing.T) {
	srv, _ := newTestServer(&fakeModel{})
	rr := doJSON(t, srv.Handler(), http.MethodGet, "/api/templates", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var infos []templateInfo
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&infos))
	assert.Len(t, infos, 10)

	rr = doJSON(t, srv.Handler(), http.MethodGet, "/api/templates?tag=trivia", nil)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "trivia-master", infos[0].ID)
}

func TestLoadTemplate(t *testing.T) {
	srv, state := newTestServer(&fakeModel{})
	rr := doJSON(t, srv.Handler(), http.MethodPost, "/api/templates/mood-ring/load", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, state.Nodes(), 3)

	rr = doJSON(t, srv.Handler(), http.MethodPost, "/api/templates/unknown/load", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPipelineRoundTrip(t *testing.T) {
	srv, state := newTestServer(&fakeModel{})
	_, err := state.AddNode(block.TypeTextInput)
	require.NoError(t, err)

	rr := doJSON(t, srv.Handler(), http.MethodGet, "/api/pipeline", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var snap pipeline.Snapshot
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&snap))
	require.Len(t, snap.Nodes, 1)

	rr = doJSON(t, srv.Handler(), http.MethodPost, "/api/pipeline", snap)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, state.Nodes(), 1)
}

func TestAddAndRemoveNode(t *testing.T) {
	srv, state := newTestServer(&fakeModel{})
	rr := doJSON(t, srv.Handler(), http.MethodPost, "/api/pipeline/nodes", addNodeRequest{
		Type:   block.TypeColorDisplay,
		Config: json.RawMessage(`{"name":"mood","label":"Mood"}`),
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var n pipeline.SnapshotNode
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&n))
	assert.Equal(t, block.TypeColorDisplay, n.Type)

	stored, ok := state.Node(n.ID)
	require.True(t, ok)
	cfg := stored.Config.(block.ColorDisplayConfig)
	assert.Equal(t, "mood", cfg.Name)
	// Defaults survive a partial config payload.
	assert.True(t, cfg.ShowHex)

	rr = doJSON(t, srv.Handler(), http.MethodDelete, "/api/pipeline/nodes/"+n.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, state.Nodes())

	rr = doJSON(t, srv.Handler(), http.MethodDelete, "/api/pipeline/nodes/"+n.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddNodeRejectsSystemPrompt(t *testing.T) {
	srv, _ := newTestServer(&fakeModel{})
	rr := doJSON(t, srv.Handler(), http.MethodPost, "/api/pipeline/nodes", addNodeRequest{
		Type: block.TypeSystemPrompt,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateConfigAndInput(t *testing.T) {
	srv, state := newTestServer(&fakeModel{})
	n, err := state.AddNode(block.TypeInference)
	require.NoError(t, err)

	rr := doJSON(t, srv.Handler(), http.MethodPut,
		"/api/pipeline/nodes/"+n.ID+"/config",
		json.RawMessage(`{"model":"gpt-4o","temperature":0.3}`))
	require.Equal(t, http.StatusOK, rr.Code)
	stored, _ := state.Node(n.ID)
	assert.Equal(t, "gpt-4o", stored.Config.(block.InferenceConfig).Model)

	rr = doJSON(t, srv.Handler(), http.MethodPut,
		"/api/pipeline/nodes/"+n.ID+"/input", setInputRequest{Text: "hello"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hello", state.UserInput(n.ID))

	rr = doJSON(t, srv.Handler(), http.MethodPut,
		"/api/pipeline/nodes/missing/input", setInputRequest{Text: "hello"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSurveySelection(t *testing.T) {
	srv, state := newTestServer(&fakeModel{})
	surveyNode, _ := state.AddNode(block.TypeSurvey)
	inference, _ := state.AddNode(block.TypeInference)
	state.SetOutput(surveyNode.ID, block.SurveyOutput{
		Question: "Capital of France?",
		Options: []block.SurveyOption{
			{ID: "A", Label: "Paris"},
			{ID: "B", Label: "Lyon"},
		},
	})

	path := "/api/pipeline/nodes/" + surveyNode.ID + "/survey-selection"
	rr := doJSON(t, srv.Handler(), http.MethodPost, path,
		surveySelectionRequest{SelectedIDs: []string{"A"}})
	require.Equal(t, http.StatusOK, rr.Code)

	var out block.SurveyOutput
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Equal(t, []string{"A"}, out.SelectedIDs)

	// The answer reaches prompts compiled for downstream nodes.
	full := state.FullNodes()
	var idx int
	for i, n := range full {
		if n.ID == inference.ID {
			idx = i
		}
	}
	prompt := state.CompilePrompt(idx, pipeline.CompileOptions{})
	assert.Contains(t, prompt, "User selected: A) Paris")

	rr = doJSON(t, srv.Handler(), http.MethodPost, path,
		surveySelectionRequest{SelectedIDs: []string{"A", "B"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "single-select survey rejects multiple ids")

	rr = doJSON(t, srv.Handler(), http.MethodPost, path,
		surveySelectionRequest{SelectedIDs: []string{"Z"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "unknown option id")
}

func TestSurveySelectionRequiresQuestion(t *testing.T) {
	srv, state := newTestServer(&fakeModel{})
	surveyNode, _ := state.AddNode(block.TypeSurvey)
	rr := doJSON(t, srv.Handler(), http.MethodPost,
		"/api/pipeline/nodes/"+surveyNode.ID+"/survey-selection",
		surveySelectionRequest{SelectedIDs: []string{"A"}})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doJSON(t, srv.Handler(), http.MethodPost,
		"/api/pipeline/nodes/missing/survey-selection",
		surveySelectionRequest{SelectedIDs: []string{"A"}})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInferenceRun(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{
		Text: "Your mood is sunny.",
		ToolCalls: []model.ToolCall{{
			Name:  "display_mood_color",
			Input: map[string]any{"hex": "#ff5500"},
		}},
	}}}
	srv, state := newTestServer(m)
	require.NoError(t, state.Paste(createMoodRingFixture()))

	nodes := state.Nodes()
	colorID, inferenceID := nodes[0].ID, nodes[1].ID

	rr := doJSON(t, srv.Handler(), http.MethodPost, "/api/inference",
		runRequest{NodeID: inferenceID})
	require.Equal(t, http.StatusOK, rr.Code)

	var rsp runResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&rsp))
	assert.Equal(t, inferenceID, rsp.NodeID)
	assert.Contains(t, rsp.Outputs, colorID)
	assert.Contains(t, rsp.Outputs, inferenceID)

	out, ok := state.Output(colorID)
	require.True(t, ok)
	assert.Equal(t, "#ff5500", out.(block.ColorOutput).Hex)
}

func TestInferenceBlankInput(t *testing.T) {
	srv, state := newTestServer(&fakeModel{})
	n, err := state.AddNode(block.TypeInference)
	require.NoError(t, err)

	rr := doJSON(t, srv.Handler(), http.MethodPost, "/api/inference",
		runRequest{NodeID: n.ID})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestInferenceUnknownNode(t *testing.T) {
	srv, _ := newTestServer(&fakeModel{})
	rr := doJSON(t, srv.Handler(), http.MethodPost, "/api/inference",
		runRequest{NodeID: "missing"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFetchURL(t *testing.T) {
	srv, state := newTestServer(&fakeModel{})
	n, err := state.AddNode(block.TypeURLLoader)
	require.NoError(t, err)
	require.NoError(t, state.UpdateConfig(n.ID, block.URLLoaderConfig{
		URL:   "https://example.com/doc",
		Label: "Doc",
	}))

	rr := doJSON(t, srv.Handler(), http.MethodPost, "/api/fetch-url",
		runRequest{NodeID: n.ID})
	require.Equal(t, http.StatusOK, rr.Code)

	var urlCtx pipeline.URLContext
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&urlCtx))
	assert.Equal(t, "fetched content", urlCtx.Content)
}

func TestPrefetchURLs(t *testing.T) {
	srv, state := newTestServer(&fakeModel{})
	for i := 0; i < 3; i++ {
		n, err := state.AddNode(block.TypeURLLoader)
		require.NoError(t, err)
		require.NoError(t, state.UpdateConfig(n.ID, block.URLLoaderConfig{
			URL: fmt.Sprintf("https://example.com/%d", i),
		}))
	}

	rr := doJSON(t, srv.Handler(), http.MethodPost, "/api/prefetch-urls", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var contexts map[string]pipeline.URLContext
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&contexts))
	assert.Len(t, contexts, 3)
}

func TestGenieMessage(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{Text: "A secret has been chosen!"}}}
	srv, state := newTestServer(m)
	n, err := state.AddNode(block.TypeGenie)
	require.NoError(t, err)

	rr := doJSON(t, srv.Handler(), http.MethodPost,
		"/api/genie/"+n.ID+"/message", genieMessageRequest{Message: "Pick a word!"})
	require.Equal(t, http.StatusOK, rr.Code)

	var conv block.GenieConversation
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&conv))
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "Pick a word!", conv.Messages[0].Content)
	assert.Equal(t, "A secret has been chosen!", conv.Messages[1].Content)
}

func TestSaveBackstory(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{Text: "Greetings, I am the keeper."}}}
	srv, state := newTestServer(m)
	n, err := state.AddNode(block.TypeGenie)
	require.NoError(t, err)

	rr := doJSON(t, srv.Handler(), http.MethodPost,
		"/api/genie/"+n.ID+"/backstory", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	conv := state.GenieConversation(n.ID)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "Greetings, I am the keeper.", conv.Messages[1].Content)
}

func TestGenieKickoff(t *testing.T) {
	m := &fakeModel{responses: []*model.Response{{Text: "I have chosen my secret!"}}}
	srv, state := newTestServer(m)

	snap := createMoodRingFixture()
	genieID := "genie-1"
	snap.Nodes = append([]pipeline.SnapshotNode{{
		ID:   genieID,
		Type: block.TypeGenie,
		Config: json.RawMessage(
			`{"name":"Keeper","backstory":"You keep secrets."}`),
	}}, snap.Nodes...)
	snap.NodeState[genieID+":genie:pendingPrompt"] = "Think of a secret!"
	require.NoError(t, state.Paste(snap))

	var pastedGenieID string
	for _, n := range state.Nodes() {
		if n.Type == block.TypeGenie {
			pastedGenieID = n.ID
		}
	}
	require.NotEmpty(t, pastedGenieID)

	rr := doJSON(t, srv.Handler(), http.MethodPost,
		"/api/genie/"+pastedGenieID+"/kickoff", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, state.GenieConversation(pastedGenieID).Messages, 2)

	// The pending prompt is consumed; a second kickoff is a no-op.
	rr = doJSON(t, srv.Handler(), http.MethodPost,
		"/api/genie/"+pastedGenieID+"/kickoff", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestReorder(t *testing.T) {
	srv, state := newTestServer(&fakeModel{})
	a, _ := state.AddNode(block.TypeTextInput)
	b, _ := state.AddNode(block.TypeColorDisplay)

	// Full-list coordinates: index 0 is the system prompt.
	rr := doJSON(t, srv.Handler(), http.MethodPost, "/api/pipeline/reorder",
		reorderRequest{From: 1, To: 2})
	require.Equal(t, http.StatusOK, rr.Code)

	nodes := state.Nodes()
	assert.Equal(t, b.ID, nodes[0].ID)
	assert.Equal(t, a.ID, nodes[1].ID)
}

// createMoodRingFixture is a minimal color+inference pipeline used by run
// tests: nodes[0] is a named color display, nodes[1] the inference node
// with a preset user input.
func createMoodRingFixture() pipeline.Snapshot {
	return pipeline.Snapshot{
		SystemPromptConfig: block.SystemPromptConfig{Prompt: "You are a mood ring."},
		Nodes: []pipeline.SnapshotNode{
			{
				ID:     "color-1",
				Type:   block.TypeColorDisplay,
				Config: json.RawMessage(`{"name":"mood","label":"Your Mood Color","showHex":true}`),
			},
			{
				ID:     "inference-1",
				Type:   block.TypeInference,
				Config: json.RawMessage(`{"temperature":0.8}`),
			},
		},
		UserInputs: map[string]string{"inference-1": "What color matches my mood?"},
		NodeState:  map[string]any{},
	}
}

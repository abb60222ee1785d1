//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

// Package server exposes the pipeline builder as an HTTP API for the
// browser UI: pipeline CRUD, inference runs, genie conversations, URL
// loading and template management.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"trpc.group/trpc-go/trpc-blockflow-go/block"
	"trpc.group/trpc-go/trpc-blockflow-go/engine"
	"trpc.group/trpc-go/trpc-blockflow-go/log"
	"trpc.group/trpc-go/trpc-blockflow-go/pipeline"
	"trpc.group/trpc-go/trpc-blockflow-go/template"
)

// Server wires the pipeline store and execution engine behind REST
// endpoints consumed by the builder UI.
type Server struct {
	state  *pipeline.State
	engine *engine.Engine
	router *mux.Router

	allowedOrigins []string
}

// Option configures the Server instance.
type Option func(*Server)

// WithAllowedOrigins restricts CORS to the given origins. The default
// allows any origin, which suits local development.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// New creates the HTTP server around an existing pipeline state and engine.
func New(state *pipeline.State, eng *engine.Engine, opts ...Option) *Server {
	s := &Server{
		state:          state,
		engine:         eng,
		router:         mux.NewRouter(),
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
	})
	s.router.Use(c.Handler)
	s.registerRoutes()
	return s
}

// Handler returns the http.Handler for the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	// Template APIs.
	s.router.HandleFunc("/api/templates", s.handleListTemplates).Methods(http.MethodGet)
	s.router.HandleFunc("/api/templates/{templateId}/load", s.handleLoadTemplate).Methods(http.MethodPost)

	// Pipeline APIs.
	s.router.HandleFunc("/api/pipeline", s.handleGetPipeline).Methods(http.MethodGet)
	s.router.HandleFunc("/api/pipeline", s.handlePastePipeline).Methods(http.MethodPost)
	s.router.HandleFunc("/api/pipeline/nodes", s.handleAddNode).Methods(http.MethodPost)
	s.router.HandleFunc("/api/pipeline/nodes/{nodeId}", s.handleRemoveNode).Methods(http.MethodDelete)
	s.router.HandleFunc("/api/pipeline/nodes/{nodeId}/config", s.handleUpdateConfig).Methods(http.MethodPut)
	s.router.HandleFunc("/api/pipeline/nodes/{nodeId}/input", s.handleSetUserInput).Methods(http.MethodPut)
	s.router.HandleFunc("/api/pipeline/nodes/{nodeId}/survey-selection", s.handleSurveySelection).Methods(http.MethodPost)
	s.router.HandleFunc("/api/pipeline/reorder", s.handleReorder).Methods(http.MethodPost)
	s.router.HandleFunc("/api/pipeline/outputs", s.handleOutputs).Methods(http.MethodGet)

	// Run APIs.
	s.router.HandleFunc("/api/inference", s.handleInference).Methods(http.MethodPost)
	s.router.HandleFunc("/api/fetch-url", s.handleFetchURL).Methods(http.MethodPost)
	s.router.HandleFunc("/api/prefetch-urls", s.handlePrefetchURLs).Methods(http.MethodPost)

	// Genie APIs.
	s.router.HandleFunc("/api/genie/{nodeId}/message", s.handleGenieMessage).Methods(http.MethodPost)
	s.router.HandleFunc("/api/genie/{nodeId}/backstory", s.handleSaveBackstory).Methods(http.MethodPost)
	s.router.HandleFunc("/api/genie/{nodeId}/conversation", s.handleGenieConversation).Methods(http.MethodGet)
	s.router.HandleFunc("/api/genie/{nodeId}/kickoff", s.handleGenieKickoff).Methods(http.MethodPost)

	// OPTIONS handlers to allow CORS pre-flight.
	preflight := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	s.router.HandleFunc("/api/inference", preflight).Methods(http.MethodOptions)
	s.router.HandleFunc("/api/fetch-url", preflight).Methods(http.MethodOptions)
	s.router.HandleFunc("/api/pipeline", preflight).Methods(http.MethodOptions)
}

// ---- Handlers -----------------------------------------------------------

type templateInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	all := template.List(tag)
	infos := make([]templateInfo, 0, len(all))
	for _, t := range all {
		infos = append(infos, templateInfo{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Difficulty:  string(t.Difficulty),
			Tags:        t.Tags,
		})
	}
	s.writeJSON(w, infos)
}

func (s *Server) handleLoadTemplate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["templateId"]
	log.Infof("handleLoadTemplate called: template=%s", id)
	tmpl, ok := template.Get(id)
	if !ok {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}
	if err := s.state.Paste(tmpl.CreatePipeline()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writePipeline(w)
}

func (s *Server) handleGetPipeline(w http.ResponseWriter, r *http.Request) {
	s.writePipeline(w)
}

func (s *Server) handlePastePipeline(w http.ResponseWriter, r *http.Request) {
	var snap pipeline.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	if err := s.state.Paste(snap); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writePipeline(w)
}

type addNodeRequest struct {
	Type   block.Type      `json:"type"`
	Index  *int            `json:"index,omitempty"`
	Config json.RawMessage `json:"config,omitempty"`
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req addNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var (
		n   pipeline.Node
		err error
	)
	if req.Index != nil {
		n, err = s.state.InsertNode(req.Type, *req.Index)
	} else {
		n, err = s.state.AddNode(req.Type)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Config) > 0 {
		cfg, err := block.DecodeConfig(req.Type, req.Config)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.state.UpdateConfig(n.ID, cfg); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	n, _ = s.state.Node(n.ID)
	s.writeJSON(w, snapshotNode(n))
}

func (s *Server) handleRemoveNode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["nodeId"]
	if !s.state.RemoveNode(id) {
		http.Error(w, "Node not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["nodeId"]
	n, ok := s.state.Node(id)
	if !ok {
		http.Error(w, "Node not found", http.StatusNotFound)
		return
	}
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	cfg, err := block.DecodeConfig(n.Type, raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.state.UpdateConfig(id, cfg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type setInputRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSetUserInput(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["nodeId"]
	if _, ok := s.state.Node(id); !ok {
		http.Error(w, "Node not found", http.StatusNotFound)
		return
	}
	var req setInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	s.state.SetUserInput(id, req.Text)
	w.WriteHeader(http.StatusOK)
}

type surveySelectionRequest struct {
	SelectedIDs []string `json:"selectedIds"`
}

// handleSurveySelection records the user's answer to a survey question. The
// selection replaces any earlier one, so downstream prompts see the current
// choice.
func (s *Server) handleSurveySelection(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["nodeId"]
	n, ok := s.state.Node(id)
	if !ok {
		http.Error(w, "Node not found", http.StatusNotFound)
		return
	}
	if n.Type != block.TypeSurvey {
		http.Error(w, "Node is not a survey block", http.StatusBadRequest)
		return
	}
	var req surveySelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	out, ok := s.state.Output(id)
	survey, isSurvey := out.(block.SurveyOutput)
	if !ok || !isSurvey {
		http.Error(w, "Survey has no question to answer", http.StatusConflict)
		return
	}
	if !survey.AllowMultiple && len(req.SelectedIDs) > 1 {
		http.Error(w, "Survey allows a single selection", http.StatusBadRequest)
		return
	}
	valid := make(map[string]bool, len(survey.Options))
	for _, opt := range survey.Options {
		valid[opt.ID] = true
	}
	for _, sel := range req.SelectedIDs {
		if !valid[sel] {
			http.Error(w, "Unknown option id: "+sel, http.StatusBadRequest)
			return
		}
	}
	survey.SelectedIDs = req.SelectedIDs
	s.state.SetOutput(id, survey)
	s.writeJSON(w, survey)
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	s.state.Reorder(req.From, req.To)
	s.writePipeline(w)
}

func (s *Server) handleOutputs(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.collectOutputs())
}

type runRequest struct {
	NodeID string `json:"nodeId"`
}

type runResponse struct {
	NodeID  string            `json:"nodeId"`
	Outputs map[string]any    `json:"outputs"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (s *Server) handleInference(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	log.Infof("handleInference called: node=%s", req.NodeID)

	if err := s.engine.Run(r.Context(), req.NodeID); err != nil {
		http.Error(w, err.Error(), runStatus(err))
		return
	}
	s.writeJSON(w, runResponse{
		NodeID:  req.NodeID,
		Outputs: s.collectOutputs(),
		Errors:  s.collectErrors(),
	})
}

func (s *Server) handleFetchURL(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	log.Infof("handleFetchURL called: node=%s", req.NodeID)

	if err := s.engine.LoadURL(r.Context(), req.NodeID); err != nil {
		http.Error(w, err.Error(), runStatus(err))
		return
	}
	urlCtx, _ := s.state.URLContextFor(req.NodeID)
	s.writeJSON(w, urlCtx)
}

// handlePrefetchURLs loads every url_loader node concurrently. Fetch
// failures land in each node's URL context rather than failing the batch.
func (s *Server) handlePrefetchURLs(w http.ResponseWriter, r *http.Request) {
	g, ctx := errgroup.WithContext(r.Context())
	var ids []string
	for _, n := range s.state.Nodes() {
		if n.Type != block.TypeURLLoader {
			continue
		}
		ids = append(ids, n.ID)
		id := n.ID
		g.Go(func() error {
			return s.engine.LoadURL(ctx, id)
		})
	}
	if err := g.Wait(); err != nil {
		http.Error(w, err.Error(), runStatus(err))
		return
	}
	contexts := make(map[string]pipeline.URLContext, len(ids))
	for _, id := range ids {
		if urlCtx, ok := s.state.URLContextFor(id); ok {
			contexts[id] = urlCtx
		}
	}
	s.writeJSON(w, contexts)
}

type genieMessageRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleGenieMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["nodeId"]
	var req genieMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	log.Infof("handleGenieMessage called: node=%s", id)

	if err := s.engine.RunGenie(r.Context(), id, req.Message); err != nil {
		http.Error(w, err.Error(), runStatus(err))
		return
	}
	s.writeJSON(w, s.state.GenieConversation(id))
}

func (s *Server) handleSaveBackstory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["nodeId"]
	log.Infof("handleSaveBackstory called: node=%s", id)
	if err := s.engine.SaveBackstory(r.Context(), id); err != nil {
		http.Error(w, err.Error(), runStatus(err))
		return
	}
	s.writeJSON(w, s.state.GenieConversation(id))
}

func (s *Server) handleGenieConversation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["nodeId"]
	if _, ok := s.state.Node(id); !ok {
		http.Error(w, "Node not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, s.state.GenieConversation(id))
}

func (s *Server) handleGenieKickoff(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["nodeId"]
	log.Infof("handleGenieKickoff called: node=%s", id)
	ran, err := s.engine.KickoffPending(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), runStatus(err))
		return
	}
	if !ran {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, s.state.GenieConversation(id))
}

// ---- helpers ------------------------------------------------------------

// runStatus maps engine and store errors to HTTP status codes.
func runStatus(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, pipeline.ErrNodeBusy):
		return http.StatusConflict
	case errors.Is(err, engine.ErrBlankUserInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) collectOutputs() map[string]any {
	outputs := make(map[string]any)
	for _, n := range s.state.Nodes() {
		if out, ok := s.state.Output(n.ID); ok {
			outputs[n.ID] = out
		}
	}
	return outputs
}

func (s *Server) collectErrors() map[string]string {
	errs := make(map[string]string)
	for _, n := range s.state.Nodes() {
		if msg, ok := s.state.RunError(n.ID); ok {
			errs[n.ID] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *Server) writePipeline(w http.ResponseWriter) {
	snap, err := s.state.Snapshot()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, snap)
}

func snapshotNode(n pipeline.Node) pipeline.SnapshotNode {
	raw, _ := json.Marshal(n.Config)
	return pipeline.SnapshotNode{ID: n.ID, Type: n.Type, Config: raw}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

// Package pipeline owns the canonical pipeline state: the ordered node
// list, per-node configuration, inputs, outputs, URL contexts and genie
// transcripts, plus the prompt compiler and tool router that read it.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-blockflow-go/block"
)

// FixedSystemPromptID is the id of the fixed system prompt node that is
// conceptually always at index 0 and never removed or reordered.
const FixedSystemPromptID = "system-prompt-fixed"

// ErrNodeBusy reports that a run was requested for a node that already has
// a call in flight.
var ErrNodeBusy = errors.New("pipeline: node already has a call in flight")

// ErrNodeNotFound reports an operation against an unknown node id.
var ErrNodeNotFound = errors.New("pipeline: node not found")

// Node is one block in the pipeline.
type Node struct {
	ID     string     `json:"id"`
	Type   block.Type `json:"type"`
	Config any        `json:"config"`
}

// URLContext is the stored result of a URL loader fetch.
type URLContext struct {
	URL     string `json:"url"`
	Label   string `json:"label,omitempty"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// State is the pipeline state store. All methods are safe for concurrent
// use; mutations apply under a single writer lock.
type State struct {
	mu sync.RWMutex

	systemPrompt block.SystemPromptConfig
	nodes        []Node

	userInputs          map[string]string
	outputs             map[string]any
	urlContexts         map[string]URLContext
	genieConversations  map[string]block.GenieConversation
	pendingGeniePrompts map[string]string
	runErrors           map[string]string
	backstoryUpdated    map[string]bool

	// transient in-flight markers, never serialized
	running    map[string]bool
	loadingURL map[string]bool

	newID func() string
}

// NewState creates an empty pipeline with the default system prompt.
func NewState() *State {
	cfg, _ := block.DefaultConfig(block.TypeSystemPrompt).(block.SystemPromptConfig)
	return &State{
		systemPrompt:        cfg,
		userInputs:          make(map[string]string),
		outputs:             make(map[string]any),
		urlContexts:         make(map[string]URLContext),
		genieConversations:  make(map[string]block.GenieConversation),
		pendingGeniePrompts: make(map[string]string),
		runErrors:           make(map[string]string),
		backstoryUpdated:    make(map[string]bool),
		running:             make(map[string]bool),
		loadingURL:          make(map[string]bool),
		newID:               uuid.NewString,
	}
}

// SystemPrompt returns the fixed system prompt configuration.
func (s *State) SystemPrompt() block.SystemPromptConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.systemPrompt
}

// SetSystemPrompt replaces the fixed system prompt configuration.
func (s *State) SetSystemPrompt(cfg block.SystemPromptConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systemPrompt = cfg
}

// AddNode appends a node of the given type with its default config and a
// freshly generated id.
func (s *State) AddNode(t block.Type) (Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(t, len(s.nodes))
}

// InsertNode inserts a node of the given type at the given index of the
// user-managed node list (0 places it directly after the fixed system
// prompt node).
func (s *State) InsertNode(t block.Type, index int) (Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 {
		index = 0
	}
	if index > len(s.nodes) {
		index = len(s.nodes)
	}
	return s.insertLocked(t, index)
}

func (s *State) insertLocked(t block.Type, index int) (Node, error) {
	if !t.IsValid() {
		return Node{}, fmt.Errorf("pipeline: unknown node type %q", t)
	}
	if t == block.TypeSystemPrompt {
		return Node{}, errors.New("pipeline: the system prompt node is fixed and cannot be added")
	}
	node := Node{
		ID:     s.newID(),
		Type:   t,
		Config: block.DefaultConfig(t),
	}
	s.nodes = append(s.nodes, Node{})
	copy(s.nodes[index+1:], s.nodes[index:])
	s.nodes[index] = node
	return node, nil
}

// Nodes returns a copy of the user-managed node list, excluding the fixed
// system prompt node.
func (s *State) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// FullNodes returns the node list with the fixed system prompt node
// prepended at index 0, the coordinate system the prompt compiler and tool
// router operate in.
func (s *State) FullNodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Node, 0, len(s.nodes)+1)
	out = append(out, Node{
		ID:     FixedSystemPromptID,
		Type:   block.TypeSystemPrompt,
		Config: s.systemPrompt,
	})
	return append(out, s.nodes...)
}

// Node looks up a node by id. The fixed system prompt node is addressable
// by FixedSystemPromptID.
func (s *State) Node(id string) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id == FixedSystemPromptID {
		return Node{ID: FixedSystemPromptID, Type: block.TypeSystemPrompt, Config: s.systemPrompt}, true
	}
	for _, n := range s.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// RemoveNode removes a node and cascades deletion of every entry keyed by
// its id, so no orphaned state remains. Removing the fixed system prompt
// node is not permitted.
func (s *State) RemoveNode(id string) bool {
	if id == FixedSystemPromptID {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.nodes {
		if n.ID != id {
			continue
		}
		s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
		delete(s.userInputs, id)
		delete(s.outputs, id)
		delete(s.urlContexts, id)
		delete(s.genieConversations, id)
		delete(s.pendingGeniePrompts, id)
		delete(s.runErrors, id)
		delete(s.backstoryUpdated, id)
		delete(s.running, id)
		delete(s.loadingURL, id)
		return true
	}
	return false
}

// UpdateConfig fully replaces a node's config. It is a replace, not a
// merge; callers carry forward prior fields themselves. Updating
// FixedSystemPromptID replaces the system prompt configuration.
func (s *State) UpdateConfig(id string, config any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == FixedSystemPromptID {
		cfg, ok := config.(block.SystemPromptConfig)
		if !ok {
			return fmt.Errorf("pipeline: system prompt config has type %T", config)
		}
		s.systemPrompt = cfg
		return nil
	}
	for i, n := range s.nodes {
		if n.ID == id {
			s.nodes[i].Config = config
			return nil
		}
	}
	return ErrNodeNotFound
}

// SetUserInput stores the free text typed into a node.
func (s *State) SetUserInput(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userInputs[id] = text
}

// UserInput returns the free text typed into a node.
func (s *State) UserInput(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userInputs[id]
}

// Reorder moves a node between two indices of the full node list. Moves
// touching index 0, the fixed system prompt node, are ignored.
func (s *State) Reorder(from, to int) {
	if from == 0 || to == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// shift to user-list coordinates
	from--
	to--
	if from < 0 || from >= len(s.nodes) || to < 0 || to >= len(s.nodes) || from == to {
		return
	}
	node := s.nodes[from]
	s.nodes = append(s.nodes[:from], s.nodes[from+1:]...)
	s.nodes = append(s.nodes, Node{})
	copy(s.nodes[to+1:], s.nodes[to:])
	s.nodes[to] = node
}

// SetOutput overwrites a node's most recent parsed output.
func (s *State) SetOutput(id string, output any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs[id] = output
}

// Output returns a node's most recent parsed output.
func (s *State) Output(id string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, ok := s.outputs[id]
	return out, ok
}

// SetURLContext stores the result of a URL loader fetch.
func (s *State) SetURLContext(id string, ctx URLContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urlContexts[id] = ctx
}

// URLContextFor returns the stored fetch result for a URL loader node.
func (s *State) URLContextFor(id string) (URLContext, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, ok := s.urlContexts[id]
	return ctx, ok
}

// GenieConversation returns a genie node's private transcript.
func (s *State) GenieConversation(id string) block.GenieConversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv := s.genieConversations[id]
	out := block.GenieConversation{Messages: make([]block.GenieMessage, len(conv.Messages))}
	copy(out.Messages, conv.Messages)
	return out
}

// AppendGenieMessages appends turns to a genie node's private transcript.
// The transcript is append-only.
func (s *State) AppendGenieMessages(id string, msgs ...block.GenieMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv := s.genieConversations[id]
	conv.Messages = append(conv.Messages, msgs...)
	s.genieConversations[id] = conv
}

// SetGenieConversation replaces a genie node's private transcript. Used
// when seeding the transcript with an introduction.
func (s *State) SetGenieConversation(id string, conv block.GenieConversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genieConversations[id] = conv
}

// TakePendingGeniePrompt removes and returns the prompt a loaded template
// queued for a genie node.
func (s *State) TakePendingGeniePrompt(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prompt, ok := s.pendingGeniePrompts[id]
	if ok {
		delete(s.pendingGeniePrompts, id)
	}
	return prompt, ok
}

// SetRunError stores a per-node error from the most recent run. URL loader
// errors live in the URL context instead.
func (s *State) SetRunError(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if message == "" {
		delete(s.runErrors, id)
		return
	}
	s.runErrors[id] = message
}

// RunError returns the error stored for a node's most recent run.
func (s *State) RunError(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msg, ok := s.runErrors[id]
	return msg, ok
}

// MarkBackstoryUpdated flags a genie node as having had its backstory
// rewritten by a tool call, pending user acknowledgement.
func (s *State) MarkBackstoryUpdated(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backstoryUpdated[id] = true
}

// ClearBackstoryUpdate acknowledges a backstory update notification.
func (s *State) ClearBackstoryUpdate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.backstoryUpdated, id)
}

// BackstoryUpdated reports whether a genie node has an unacknowledged
// backstory update.
func (s *State) BackstoryUpdated(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backstoryUpdated[id]
}

// BeginRun marks a node as having an inference call in flight. It fails
// with ErrNodeBusy if the node is already running; calls for different
// node ids never interfere.
func (s *State) BeginRun(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[id] {
		return ErrNodeBusy
	}
	s.running[id] = true
	return nil
}

// EndRun clears a node's in-flight marker.
func (s *State) EndRun(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, id)
}

// Running reports whether a node has an inference call in flight.
func (s *State) Running(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running[id]
}

// BeginURLLoad marks a URL loader node as fetching. It returns false if a
// fetch for that node is already in flight.
func (s *State) BeginURLLoad(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadingURL[id] {
		return false
	}
	s.loadingURL[id] = true
	return true
}

// EndURLLoad clears a URL loader node's fetching marker.
func (s *State) EndURLLoad(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loadingURL, id)
}

// genieNodeStateSuffix keys a queued genie prompt inside a snapshot's
// nodeState map.
const genieNodeStateSuffix = ":genie:pendingPrompt"

// Snapshot is the JSON-serializable pipeline state used by template
// loading and copy/paste. Round-tripping a pipeline through a snapshot
// reproduces an equivalent pipeline modulo freshly generated node ids.
type Snapshot struct {
	SystemPromptConfig block.SystemPromptConfig `json:"systemPromptConfig"`
	Nodes              []SnapshotNode           `json:"nodes"`
	UserInputs         map[string]string        `json:"userInputs,omitempty"`
	NodeState          map[string]any           `json:"nodeState,omitempty"`
}

// SnapshotNode is one serialized node. Config is kept raw so a snapshot
// can be decoded without knowing every config shape up front.
type SnapshotNode struct {
	ID     string          `json:"id"`
	Type   block.Type      `json:"type"`
	Config json.RawMessage `json:"config,omitempty"`
}

// Snapshot serializes the current pipeline.
func (s *State) Snapshot() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		SystemPromptConfig: s.systemPrompt,
		Nodes:              make([]SnapshotNode, 0, len(s.nodes)),
		UserInputs:         make(map[string]string, len(s.userInputs)),
		NodeState:          make(map[string]any),
	}
	for _, n := range s.nodes {
		raw, err := json.Marshal(n.Config)
		if err != nil {
			return Snapshot{}, fmt.Errorf("pipeline: marshal config of node %s: %w", n.ID, err)
		}
		snap.Nodes = append(snap.Nodes, SnapshotNode{ID: n.ID, Type: n.Type, Config: raw})
	}
	for id, text := range s.userInputs {
		snap.UserInputs[id] = text
	}
	for id, prompt := range s.pendingGeniePrompts {
		snap.NodeState[id+genieNodeStateSuffix] = prompt
	}
	return snap, nil
}

// Paste bulk-replaces the pipeline from a snapshot. Every node is assigned
// a fresh id rather than trusting embedded ids, so repeated loads of the
// same template never collide; user inputs and node-scoped state are
// re-keyed accordingly.
func (s *State) Paste(snap Snapshot) error {
	type staged struct {
		node  Node
		oldID string
	}
	nodes := make([]staged, 0, len(snap.Nodes))
	for _, sn := range snap.Nodes {
		if sn.Type == block.TypeSystemPrompt {
			continue
		}
		cfg, err := block.DecodeConfig(sn.Type, sn.Config)
		if err != nil {
			return err
		}
		nodes = append(nodes, staged{oldID: sn.ID, node: Node{Type: sn.Type, Config: cfg}})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idMap := make(map[string]string, len(nodes))
	s.nodes = s.nodes[:0]
	for _, st := range nodes {
		st.node.ID = s.newID()
		idMap[st.oldID] = st.node.ID
		s.nodes = append(s.nodes, st.node)
	}
	s.systemPrompt = snap.SystemPromptConfig

	s.userInputs = make(map[string]string)
	s.outputs = make(map[string]any)
	s.urlContexts = make(map[string]URLContext)
	s.genieConversations = make(map[string]block.GenieConversation)
	s.pendingGeniePrompts = make(map[string]string)
	s.runErrors = make(map[string]string)
	s.backstoryUpdated = make(map[string]bool)

	for oldID, text := range snap.UserInputs {
		if newID, ok := idMap[oldID]; ok {
			s.userInputs[newID] = text
		}
	}
	for key, value := range snap.NodeState {
		oldID, ok := strings.CutSuffix(key, genieNodeStateSuffix)
		if !ok {
			continue
		}
		prompt, ok := value.(string)
		if !ok || prompt == "" {
			continue
		}
		if newID, ok := idMap[oldID]; ok {
			s.pendingGeniePrompts[newID] = prompt
		}
	}
	return nil
}

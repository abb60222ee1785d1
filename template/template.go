//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

// Package template provides ready-made pipeline presets that can be loaded
// into a pipeline store. Templates are factory functions, not stored data:
// each CreatePipeline call generates a fresh snapshot with new node ids, so
// loading the same template twice never collides and no data migration is
// ever needed when config shapes change.
package template

import (
	"encoding/json"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-blockflow-go/block"
	"trpc.group/trpc-go/trpc-blockflow-go/pipeline"
)

// Difficulty is a rough indicator of how much setup a template expects
// from the player.
type Difficulty string

// Available difficulty levels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Template is a loadable pipeline preset.
type Template struct {
	// ID uniquely identifies this template.
	ID string
	// Name is the display name.
	Name string
	// Description is a short description of the game.
	Description string
	// Difficulty indicates the expected difficulty level.
	Difficulty Difficulty
	// Tags categorize the template for filtering.
	Tags []string
	// CreatePipeline generates a fresh pipeline snapshot.
	CreatePipeline func() pipeline.Snapshot
}

// templates is the registry of all available templates. Add new games here
// as they are created.
var templates = []Template{
	moodRingTemplate,
	fortuneCookieTemplate,
	pictionaryTemplate,
	triviaMasterTemplate,
	hotOrColdTemplate,
	pixelArtStudioTemplate,
	vibeCheckTemplate,
	emojiTranslatorTemplate,
	storyBuilderTemplate,
	stressMeterTemplate,
}

// Get looks up a template by id.
func Get(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// List returns all templates, optionally filtered by tag. An empty tag
// returns the full registry.
func List(tag string) []Template {
	if tag == "" {
		out := make([]Template, len(templates))
		copy(out, templates)
		return out
	}
	var out []Template
	for _, t := range templates {
		for _, tg := range t.Tags {
			if tg == tag {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// newNodeID generates a unique id for a template node. Paste re-keys ids
// anyway, but snapshots still carry valid unique ids so they can be
// inspected or serialized as-is.
func newNodeID() string {
	return uuid.NewString()
}

// node serializes a typed block config into a snapshot node. Configs in
// this package are static literals, so marshaling cannot fail.
func node(id string, t block.Type, config any) pipeline.SnapshotNode {
	raw, _ := json.Marshal(config)
	return pipeline.SnapshotNode{ID: id, Type: t, Config: raw}
}

// geniePendingPromptKey builds the nodeState key that queues an initial
// prompt for a genie node.
func geniePendingPromptKey(genieNodeID string) string {
	return genieNodeID + ":genie:pendingPrompt"
}

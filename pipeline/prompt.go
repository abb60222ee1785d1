//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package pipeline

import (
	"strings"

	"trpc.group/trpc-go/trpc-blockflow-go/block"
)

// CompileOptions tunes one prompt compilation.
type CompileOptions struct {
	// Prefix is appended directly after the fixed system prompt, before any
	// node context. The genie runner uses it to inject persona instructions.
	Prefix string
	// SkipGenieConversations drops preceding genie transcripts from the
	// prompt.
	SkipGenieConversations bool
}

// CompilePrompt builds the system prompt for an inference call targeting
// the node at the given index of the full node list (index 0 is the fixed
// system prompt node). Fragment order is fixed: system prompt, prefix,
// per-node fragments in document order, reference content from URL
// loaders, then additional free-text context.
func (s *State) CompilePrompt(index int, opts CompileOptions) string {
	full := s.FullNodes()
	if index < 0 {
		index = 0
	}
	if index > len(full) {
		index = len(full)
	}
	preceding := full[:index]

	var b strings.Builder
	b.WriteString(s.SystemPrompt().Prompt)

	if opts.Prefix != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(opts.Prefix)
	}

	for _, node := range preceding {
		if node.Type == block.TypeGenie {
			if opts.SkipGenieConversations {
				continue
			}
			cfg, _ := node.Config.(block.GenieConfig)
			conv := s.GenieConversation(node.ID)
			if len(conv.Messages) > 0 {
				b.WriteString(block.FormatGenieContext(cfg.Name, cfg.Backstory, conv.Messages))
			}
			continue
		}
		iface, ok := block.InterfaceFor(node.Type)
		if !ok {
			continue
		}
		b.WriteString(iface.Meta(node.Config, node.ID))
		if provider, ok := iface.(block.ContextProvider); ok {
			if output, ok := s.Output(node.ID); ok {
				if ctx, ok := provider.Context(node.Config, node.ID, output); ok {
					b.WriteString(ctx)
				}
			}
		}
	}

	s.appendURLContext(&b, preceding)
	s.appendTextContext(&b, preceding)
	return b.String()
}

func (s *State) appendURLContext(b *strings.Builder, preceding []Node) {
	var items []URLContext
	for _, node := range preceding {
		if node.Type != block.TypeURLLoader {
			continue
		}
		ctx, ok := s.URLContextFor(node.ID)
		if ok && ctx.Content != "" && ctx.Error == "" {
			items = append(items, ctx)
		}
	}
	if len(items) == 0 {
		return
	}
	b.WriteString("\n\n## Reference Content\n")
	b.WriteString("The following content has been loaded for context:\n\n")
	for _, item := range items {
		label := item.Label
		if label == "" {
			label = item.URL
		}
		b.WriteString("### " + label + "\n")
		b.WriteString("Source: " + item.URL + "\n\n")
		b.WriteString(item.Content)
		b.WriteString("\n\n---\n\n")
	}
}

func (s *State) appendTextContext(b *strings.Builder, preceding []Node) {
	type textItem struct {
		label   string
		content string
	}
	var items []textItem
	for _, node := range preceding {
		if node.Type != block.TypeTextInput {
			continue
		}
		content := strings.TrimSpace(s.UserInput(node.ID))
		if content == "" {
			continue
		}
		cfg, _ := node.Config.(block.TextInputConfig)
		label := cfg.Label
		if label == "" {
			label = "Text"
		}
		items = append(items, textItem{label: label, content: content})
	}
	if len(items) == 0 {
		return
	}
	b.WriteString("\n\n## Additional Context\n")
	b.WriteString("The following text has been provided for context:\n\n")
	for _, item := range items {
		b.WriteString("### " + item.label + "\n")
		b.WriteString(item.content)
		b.WriteString("\n\n---\n\n")
	}
}

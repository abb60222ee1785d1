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
	"trpc.group/trpc-go/trpc-blockflow-go/block"
	"trpc.group/trpc-go/trpc-blockflow-go/tool"
)

// RoutedTools is the tool list offered to one inference call plus the
// reverse mapping used to route returned tool calls back to their owning
// nodes.
type RoutedTools struct {
	Tools            []*tool.Declaration
	NodeIDByToolName map[string]string
}

// ToolsForNode resolves the tools available to an inference call targeting
// the node at the given index of the full node list. Output blocks before
// the target contribute their (possibly renamed) tool; genie blocks before
// the target contribute their backstory update tool. When two blocks
// resolve to the same tool name the later one wins the mapping; duplicate
// names are not rejected.
func (s *State) ToolsForNode(index int) RoutedTools {
	full := s.FullNodes()
	if index < 0 {
		index = 0
	}
	if index > len(full) {
		index = len(full)
	}

	routed := RoutedTools{NodeIDByToolName: make(map[string]string)}
	for _, node := range full[:index] {
		if !block.IsOutputType(node.Type) && node.Type != block.TypeGenie {
			continue
		}
		decl, ok := block.DeclarationFor(node.Type, node.Config)
		if !ok {
			continue
		}
		if prev, exists := routed.NodeIDByToolName[decl.Name]; exists && prev != node.ID {
			// Duplicate derived name: drop the earlier declaration so the
			// model sees each tool name once.
			for i, d := range routed.Tools {
				if d.Name == decl.Name {
					routed.Tools = append(routed.Tools[:i], routed.Tools[i+1:]...)
					break
				}
			}
		}
		routed.Tools = append(routed.Tools, decl)
		routed.NodeIDByToolName[decl.Name] = node.ID
	}
	return routed
}

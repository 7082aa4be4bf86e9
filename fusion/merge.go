package fusion

import "github.com/sessionmesh/sessionmesh/core"

// MergeContexts reduces an ordered list of contexts into one fused view.
//
// Contract: input order encodes precedence. For CurrentProject, CurrentTask,
// AIMode and RelationshipType the first non-empty value in list order wins;
// when no input carries a value, AIMode defaults to assistant and
// RelationshipType to individual. RecentFiles and SearchHistory are the union
// across all inputs, deduplicated preserving first occurrence.
//
// The function is idempotent with respect to duplicate inputs:
// MergeContexts(a, b) == MergeContexts(a, b, a).
func MergeContexts(contexts ...core.UserContext) core.UserContext {
	var merged core.UserContext
	for _, ctx := range contexts {
		if merged.CurrentProject == "" {
			merged.CurrentProject = ctx.CurrentProject
		}
		if merged.CurrentTask == "" {
			merged.CurrentTask = ctx.CurrentTask
		}
		if merged.AIMode == "" {
			merged.AIMode = ctx.AIMode
		}
		if merged.RelationshipType == "" {
			merged.RelationshipType = ctx.RelationshipType
		}
		merged.RecentFiles = appendUnique(merged.RecentFiles, ctx.RecentFiles)
		merged.SearchHistory = appendUnique(merged.SearchHistory, ctx.SearchHistory)
	}
	if merged.AIMode == "" {
		merged.AIMode = core.AIModeAssistant
	}
	if merged.RelationshipType == "" {
		merged.RelationshipType = core.RelationshipIndividual
	}
	return merged
}

// appendUnique appends values not already present in dst, preserving order.
func appendUnique(dst, values []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, v := range dst {
		seen[v] = struct{}{}
	}
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}

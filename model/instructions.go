package model

import (
	"fmt"
	"strings"

	"github.com/sessionmesh/sessionmesh/core"
)

// postures maps each AI interaction mode to the stance the model should take.
var postures = map[core.AIMode]string{
	core.AIModeMentor:       "Act as a mentor: authoritative, patient and guiding.",
	core.AIModeTeacher:      "Act as a teacher: instructive and structured.",
	core.AIModeCollaborator: "Act as a collaborator: a peer working alongside the participants.",
	core.AIModeAssistant:    "Act as an assistant: helpful and unobtrusive.",
}

// Instructions renders a relationship bundle into system-level instructions
// for the inference engine: the resolved posture, the fused working context
// and the participant roster.
func Instructions(rc *core.RelationshipContext) string {
	var b strings.Builder

	posture, ok := postures[rc.AIMode]
	if !ok {
		posture = postures[core.AIModeAssistant]
	}
	b.WriteString(posture)
	b.WriteString("\n")

	switch rc.Type {
	case core.RelationshipIndividual:
		names := make([]string, 0, len(rc.Users))
		for _, u := range rc.Users {
			names = append(names, fmt.Sprintf("%s (%s)", u.Name, u.Role))
		}
		fmt.Fprintf(&b, "Conversation between %s.\n", strings.Join(names, " and "))
		writeContext(&b, rc.Context)
	case core.RelationshipGroup:
		fmt.Fprintf(&b, "Group conversation for %s (%s).\n", rc.User.Name, rc.User.Role)
		for _, gc := range rc.Groups {
			fmt.Fprintf(&b, "Group %q (%s, %d members).\n", gc.Group.Name, gc.Group.Type, len(gc.Group.Members))
			writeContext(&b, gc.Context)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeContext(b *strings.Builder, ctx core.UserContext) {
	if ctx.CurrentProject != "" {
		fmt.Fprintf(b, "Current project: %s.\n", ctx.CurrentProject)
	}
	if ctx.CurrentTask != "" {
		fmt.Fprintf(b, "Current task: %s.\n", ctx.CurrentTask)
	}
	if len(ctx.RecentFiles) > 0 {
		fmt.Fprintf(b, "Recently touched files: %s.\n", strings.Join(ctx.RecentFiles, ", "))
	}
	if len(ctx.SearchHistory) > 0 {
		fmt.Fprintf(b, "Recent searches: %s.\n", strings.Join(ctx.SearchHistory, ", "))
	}
}

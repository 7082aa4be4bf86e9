package fusion

import "github.com/sessionmesh/sessionmesh/core"

// ResolvePair maps the roles of two conversation participants to the AI
// interaction mode for a one-on-one exchange. Precedence is strict: an owner
// on either side yields mentor, otherwise an admin yields teacher, otherwise
// the conversation is between peers and yields collaborator.
func ResolvePair(a, b *core.User) core.AIMode {
	if a.Role == core.RoleOwner || b.Role == core.RoleOwner {
		return core.AIModeMentor
	}
	if a.Role == core.RoleAdmin || b.Role == core.RoleAdmin {
		return core.AIModeTeacher
	}
	return core.AIModeCollaborator
}

// ResolveMember maps the querying participant's role to the AI interaction
// mode for a group exchange: mentor for owners, teacher for admins, assistant
// for everyone else.
func ResolveMember(u *core.User) core.AIMode {
	switch {
	case u.Role == core.RoleOwner:
		return core.AIModeMentor
	case u.Role == core.RoleAdmin:
		return core.AIModeTeacher
	default:
		return core.AIModeAssistant
	}
}

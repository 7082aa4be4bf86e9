package core

import "time"

// GroupType categorizes a group's social configuration.
type GroupType string

const (
	// GroupClass models a class with a leading teacher-style participant.
	GroupClass GroupType = "class"
	// GroupTeam models a working team of peers.
	GroupTeam GroupType = "team"
	// GroupProject models a project-scoped collaboration.
	GroupProject GroupType = "project"
	// GroupStudy models a study circle.
	GroupStudy GroupType = "study"
)

// GroupSettings configures group behavior and capacity.
type GroupSettings struct {
	MaxMembers       int    `json:"max_members"`
	GuestAccess      bool   `json:"guest_access"`
	ApprovalRequired bool   `json:"approval_required"`
	SharedContext    bool   `json:"shared_context"`
	AIMode           AIMode `json:"ai_mode"`
}

// DefaultGroupSettings returns the settings applied when a group is created
// without explicit overrides.
func DefaultGroupSettings() GroupSettings {
	return GroupSettings{
		MaxMembers:       50,
		GuestAccess:      false,
		ApprovalRequired: false,
		SharedContext:    true,
		AIMode:           AIModeShared,
	}
}

// SettingsDelta is a partial GroupSettings override. Nil fields keep the
// default value.
type SettingsDelta struct {
	MaxMembers       *int
	GuestAccess      *bool
	ApprovalRequired *bool
	SharedContext    *bool
	AIMode           *AIMode
}

// Apply merges the delta onto settings and returns the result.
func (d SettingsDelta) Apply(settings GroupSettings) GroupSettings {
	if d.MaxMembers != nil {
		settings.MaxMembers = *d.MaxMembers
	}
	if d.GuestAccess != nil {
		settings.GuestAccess = *d.GuestAccess
	}
	if d.ApprovalRequired != nil {
		settings.ApprovalRequired = *d.ApprovalRequired
	}
	if d.SharedContext != nil {
		settings.SharedContext = *d.SharedContext
	}
	if d.AIMode != nil {
		settings.AIMode = *d.AIMode
	}
	return settings
}

// Group is a named collection of users within one session.
//
// Invariants: Admins is a subset of Members; len(Members) never exceeds
// Settings.MaxMembers. The store maintains both under its lock.
type Group struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Type         GroupType     `json:"type"`
	Members      []string      `json:"members"`
	Admins       []string      `json:"admins,omitempty"`
	Settings     GroupSettings `json:"settings"`
	CreatedAt    time.Time     `json:"created_at"`
	LastActivity time.Time     `json:"last_activity"`
}

// Clone returns a deep copy of the group safe for independent mutation.
func (g *Group) Clone() *Group {
	clone := *g
	clone.Members = append([]string(nil), g.Members...)
	clone.Admins = append([]string(nil), g.Admins...)
	return &clone
}

// HasMember reports whether id is in the member list.
func (g *Group) HasMember(id string) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}

// HasAdmin reports whether id is in the admin list.
func (g *Group) HasAdmin(id string) bool {
	for _, a := range g.Admins {
		if a == id {
			return true
		}
	}
	return false
}

// GroupData carries caller-supplied fields for CreateGroup. Members and
// Admins seed the initial membership; admin ids are folded into the member
// list. Settings overrides the defaults field by field.
type GroupData struct {
	Name     string
	Type     GroupType
	Members  []string
	Admins   []string
	Settings SettingsDelta
}

package core

import "time"

// AIMode is the behavior posture the inference engine should adopt for a
// conversation.
type AIMode string

const (
	// AIModeAssistant is the neutral default posture.
	AIModeAssistant AIMode = "assistant"
	// AIModeMentor is used when an owner-level participant is involved.
	AIModeMentor AIMode = "mentor"
	// AIModeTeacher is used when an admin-level participant is involved.
	AIModeTeacher AIMode = "teacher"
	// AIModeCollaborator is the peer-to-peer pairwise posture.
	AIModeCollaborator AIMode = "collaborator"
	// AIModeShared is the group policy default (GroupSettings.AIMode).
	AIModeShared AIMode = "shared"
)

// RelationshipType hints at the social configuration a context belongs to.
type RelationshipType string

const (
	// RelationshipIndividual is a one-on-one conversation.
	RelationshipIndividual RelationshipType = "individual"
	// RelationshipGroup is an ad hoc multi-participant conversation.
	RelationshipGroup RelationshipType = "group"
	// RelationshipClass is a class-style group.
	RelationshipClass RelationshipType = "class"
	// RelationshipTeam is a team-style group.
	RelationshipTeam RelationshipType = "team"
)

// UserContext is a participant's working-memory snapshot: what they are
// working on right now and what they touched recently. RecentFiles and
// SearchHistory are ordered and deduplicated.
type UserContext struct {
	CurrentProject   string           `json:"current_project,omitempty"`
	CurrentTask      string           `json:"current_task,omitempty"`
	RecentFiles      []string         `json:"recent_files,omitempty"`
	SearchHistory    []string         `json:"search_history,omitempty"`
	AIMode           AIMode           `json:"ai_mode,omitempty"`
	RelationshipType RelationshipType `json:"relationship_type,omitempty"`
}

// Clone returns a deep copy safe for independent mutation.
func (c UserContext) Clone() UserContext {
	clone := c
	clone.RecentFiles = append([]string(nil), c.RecentFiles...)
	clone.SearchHistory = append([]string(nil), c.SearchHistory...)
	return clone
}

// ContextDelta is a partial UserContext update. Nil fields are preserved;
// non-nil fields fully replace the previous value. Slice fields replace the
// old slice wholesale and are deduplicated preserving first occurrence.
type ContextDelta struct {
	CurrentProject   *string
	CurrentTask      *string
	RecentFiles      []string
	SearchHistory    []string
	AIMode           *AIMode
	RelationshipType *RelationshipType
}

// Apply merges the delta onto ctx and returns the result. Pure; callers hold
// any locks required for the surrounding read-modify-write.
func (d ContextDelta) Apply(ctx UserContext) UserContext {
	out := ctx.Clone()
	if d.CurrentProject != nil {
		out.CurrentProject = *d.CurrentProject
	}
	if d.CurrentTask != nil {
		out.CurrentTask = *d.CurrentTask
	}
	if d.RecentFiles != nil {
		out.RecentFiles = dedupe(d.RecentFiles)
	}
	if d.SearchHistory != nil {
		out.SearchHistory = dedupe(d.SearchHistory)
	}
	if d.AIMode != nil {
		out.AIMode = *d.AIMode
	}
	if d.RelationshipType != nil {
		out.RelationshipType = *d.RelationshipType
	}
	return out
}

// dedupe removes duplicates preserving first occurrence order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// UserPreferences holds display, locale and behavior knobs. Purely
// descriptive; no cross-entity invariants.
type UserPreferences struct {
	Theme           string `json:"theme"`
	Language        string `json:"language"`
	Timezone        string `json:"timezone"`
	Notifications   bool   `json:"notifications"`
	AutoSave        bool   `json:"auto_save"`
	AIResponseStyle string `json:"ai_response_style"`
}

// DefaultPreferences returns the baseline preference set applied on join when
// the caller supplies none.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Theme:           "light",
		Language:        "en",
		Timezone:        "UTC",
		Notifications:   true,
		AutoSave:        true,
		AIResponseStyle: "concise",
	}
}

// User is one participant inside one session.
//
// Invariant: GroupIDs is always exactly the set of group ids whose Members
// list contains this user's id. The store maintains both sides atomically.
type User struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email,omitempty"`
	ExternalID  string          `json:"external_id,omitempty"`
	Role        Role            `json:"role"`
	SessionID   string          `json:"session_id"`
	Context     UserContext     `json:"context"`
	Preferences UserPreferences `json:"preferences"`
	LastActive  time.Time       `json:"last_active"`
	Online      bool            `json:"online"`
	GroupIDs    []string        `json:"group_ids,omitempty"`
}

// Clone returns a deep copy of the user safe for independent mutation.
func (u *User) Clone() *User {
	clone := *u
	clone.Context = u.Context.Clone()
	clone.GroupIDs = append([]string(nil), u.GroupIDs...)
	return &clone
}

// UserData carries caller-supplied fields for JoinSession. Zero fields fall
// back to defaults (explicit fields win).
type UserData struct {
	Name        string
	Email       string
	Role        Role
	Context     *UserContext
	Preferences *UserPreferences
}

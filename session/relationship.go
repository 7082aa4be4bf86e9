package session

import (
	"github.com/sessionmesh/sessionmesh/core"
	"github.com/sessionmesh/sessionmesh/fusion"
)

// RelationshipContext produces the fused bundle handed to the inference
// engine. With a non-empty targetUserID it returns the individual (pairwise)
// bundle: both user snapshots, their contexts merged with the querying user
// taking precedence, and the pairwise AI mode. With an empty targetUserID it
// returns the group bundle: the user snapshot plus one GroupContext per group
// membership, each carrying member snapshots and their member-order merged
// context.
func (s *InMemoryStore) RelationshipContext(userID, targetUserID string) (*core.RelationshipContext, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, user, ok := s.userLocked(userID)
	if !ok {
		return nil, false
	}

	if targetUserID != "" {
		_, target, ok := s.userLocked(targetUserID)
		if !ok {
			return nil, false
		}
		return &core.RelationshipContext{
			Type:    core.RelationshipIndividual,
			Users:   []*core.User{user.Clone(), target.Clone()},
			Context: fusion.MergeContexts(user.Context, target.Context),
			AIMode:  fusion.ResolvePair(user, target),
		}, true
	}

	mode := fusion.ResolveMember(user)
	bundle := &core.RelationshipContext{
		Type:    core.RelationshipGroup,
		User:    user.Clone(),
		Context: user.Context.Clone(),
		AIMode:  mode,
	}
	for _, groupID := range user.GroupIDs {
		group, ok := sess.Groups[groupID]
		if !ok {
			continue
		}
		users := make([]*core.User, 0, len(group.Members))
		contexts := make([]core.UserContext, 0, len(group.Members))
		for _, memberID := range group.Members {
			member, ok := sess.Users[memberID]
			if !ok {
				continue
			}
			users = append(users, member.Clone())
			contexts = append(contexts, member.Context)
		}
		bundle.Groups = append(bundle.Groups, core.GroupContext{
			GroupID: groupID,
			Group:   group.Clone(),
			Users:   users,
			Context: fusion.MergeContexts(contexts...),
			AIMode:  mode,
		})
	}
	return bundle, true
}

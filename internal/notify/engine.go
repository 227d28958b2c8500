package notify

import "strconv"

// Engine computes fan-out operations from social events. It is pure: no
// storage, no presence, no channel access, which keeps the decision rules
// unit-testable without a socket layer.
//
// Every rule threads a claimed-recipient set through its steps. Once a user
// is claimed by a higher-priority role (post author beats parent-comment
// author beats tagged-on-post beats mentioned-in-comment), later steps skip
// them, so each user lands in exactly one operation per event and the acting
// user is never notified about their own action.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// claimSet tracks users already assigned to an operation for this event.
type claimSet map[uint]struct{}

func (s claimSet) claim(id uint) { s[id] = struct{}{} }

func (s claimSet) claimed(id uint) bool { _, ok := s[id]; return ok }

// unclaimed filters ids down to those not yet claimed, claiming them.
func (s claimSet) unclaimed(ids []uint) []uint {
	var out []uint
	for _, id := range ids {
		if !s.claimed(id) {
			out = append(out, id)
			s.claim(id)
		}
	}
	return out
}

// OnCommentAdded computes the operations for a new top-level comment or
// reply. The ordering of the steps below is load-bearing: it encodes the
// role priority that keeps overlapping roles from double-notifying.
func (e *Engine) OnCommentAdded(cc CommentContext) ([]Operation, error) {
	if err := cc.validate(); err != nil {
		return nil, err
	}

	postAuthor := cc.Post.AuthorID
	commentAuthor := cc.AuthorID
	taggedOnPost := exclude(cc.Post.Tags, postAuthor, commentAuthor)
	mentioned := exclude(cc.Tags, commentAuthor)

	claimed := claimSet{commentAuthor: struct{}{}}
	var ops []Operation

	emit := func(recipients []uint, kind EventKind, roles RoleContext) error {
		if len(recipients) == 0 {
			return nil
		}
		key, err := Resolve(kind, roles)
		if err != nil {
			return err
		}
		ops = append(ops, Operation{
			Recipients: recipients,
			Template:   key,
			TargetID:   cc.Post.PostID,
			TargetType: cc.Post.PostType,
		})
		return nil
	}

	if cc.ParentAuthorID == nil {
		// Top-level comment: only the post author has a dedicated role.
		if postAuthor != commentAuthor {
			kind := EventCommentToAuthor
			roles := RoleContext{}
			if containsID(mentioned, postAuthor) {
				kind = EventCommentMention
				roles.PostAuthor = true
			}
			if err := emit([]uint{postAuthor}, kind, roles); err != nil {
				return nil, err
			}
			claimed.claim(postAuthor)
		}
	} else {
		parentAuthor := *cc.ParentAuthorID

		// Reply, post author first.
		if postAuthor == parentAuthor && parentAuthor != commentAuthor {
			if err := emit([]uint{postAuthor}, EventReplyToParentAuthor, RoleContext{PostAuthor: true}); err != nil {
				return nil, err
			}
			claimed.claim(postAuthor)
		} else if postAuthor != commentAuthor && postAuthor != parentAuthor {
			kind := EventCommentToAuthor
			roles := RoleContext{}
			if containsID(mentioned, postAuthor) {
				kind = EventCommentMention
				roles.PostAuthor = true
			}
			if err := emit([]uint{postAuthor}, kind, roles); err != nil {
				return nil, err
			}
			claimed.claim(postAuthor)
		}

		// Parent comment author, unless already covered above. A parent
		// author who is both tagged on the post and mentioned in the reply
		// gets the single combined variant instead of the plain reply one.
		if !claimed.claimed(parentAuthor) && parentAuthor != commentAuthor {
			kind := EventReplyToParentAuthor
			roles := RoleContext{}
			if containsID(taggedOnPost, parentAuthor) && containsID(mentioned, parentAuthor) {
				kind = EventReplyTaggedAndCommented
			}
			if err := emit([]uint{parentAuthor}, kind, roles); err != nil {
				return nil, err
			}
			claimed.claim(parentAuthor)
		}
	}

	// Users tagged on the post, split by whether the comment also mentions
	// them.
	var both, tagOnly []uint
	for _, id := range taggedOnPost {
		if claimed.claimed(id) {
			continue
		}
		claimed.claim(id)
		if containsID(mentioned, id) {
			both = append(both, id)
		} else {
			tagOnly = append(tagOnly, id)
		}
	}
	if err := emit(both, EventCommentMention, RoleContext{TaggedOnPost: true}); err != nil {
		return nil, err
	}
	if err := emit(tagOnly, EventCommentToTaggedUser, RoleContext{TaggedOnPost: true}); err != nil {
		return nil, err
	}

	// Whoever the comment mentions and nothing above covered.
	if err := emit(claimed.unclaimed(mentioned), EventCommentMention, RoleContext{}); err != nil {
		return nil, err
	}

	return ops, nil
}

// OnCommentTagsUpdated fans out mentions added by editing a comment's tag
// list. Only the new tags are notified; users tagged on the post itself get
// the combined variant.
func (e *Engine) OnCommentTagsUpdated(cc CommentContext, newTags []uint) ([]Operation, error) {
	if err := cc.validate(); err != nil {
		return nil, err
	}

	taggedOnPost := exclude(cc.Post.Tags, cc.Post.AuthorID)
	claimed := claimSet{cc.AuthorID: struct{}{}}

	var onPost, plain []uint
	for _, id := range newTags {
		if claimed.claimed(id) {
			continue
		}
		claimed.claim(id)
		if containsID(taggedOnPost, id) {
			onPost = append(onPost, id)
		} else {
			plain = append(plain, id)
		}
	}

	var ops []Operation
	for _, group := range []struct {
		recipients []uint
		roles      RoleContext
	}{
		{onPost, RoleContext{TaggedOnPost: true, TagUpdate: true}},
		{plain, RoleContext{TagUpdate: true}},
	} {
		if len(group.recipients) == 0 {
			continue
		}
		key, err := Resolve(EventCommentMention, group.roles)
		if err != nil {
			return nil, err
		}
		ops = append(ops, Operation{
			Recipients: group.recipients,
			Template:   key,
			TargetID:   cc.Post.PostID,
			TargetType: cc.Post.PostType,
		})
	}
	return ops, nil
}

// OnPostCreated notifies users newly tagged on a post. ExistingTags lets tag
// edits reuse the same path without re-notifying earlier tags.
func (e *Engine) OnPostCreated(pc PostContext) ([]Operation, error) {
	if err := pc.validate(); err != nil {
		return nil, err
	}

	claimed := claimSet{pc.AuthorID: struct{}{}}
	for _, id := range pc.ExistingTags {
		claimed.claim(id)
	}
	recipients := claimed.unclaimed(pc.Tags)
	if len(recipients) == 0 {
		return nil, nil
	}

	key, err := Resolve(EventPostTag, RoleContext{})
	if err != nil {
		return nil, err
	}
	return []Operation{{
		Recipients: recipients,
		Template:   key,
		TargetID:   pc.PostID,
		TargetType: pc.PostType,
	}}, nil
}

// OnPostShared notifies the original author and anyone tagged on the share.
// An original author who is also tagged gets the single combined variant.
func (e *Engine) OnPostShared(sc ShareContext) ([]Operation, error) {
	if err := sc.validate(); err != nil {
		return nil, err
	}

	claimed := claimSet{sc.SharerID: struct{}{}}
	var ops []Operation

	authorTagged := containsID(sc.Tags, sc.OriginalAuthorID)
	if sc.OriginalAuthorID != sc.SharerID {
		kind := EventPostShare
		if authorTagged {
			kind = EventPostShareAndTag
		}
		key, err := Resolve(kind, RoleContext{})
		if err != nil {
			return nil, err
		}
		ops = append(ops, Operation{
			Recipients: []uint{sc.OriginalAuthorID},
			Template:   key,
			TargetID:   sc.PostID,
			TargetType: sc.PostType,
		})
	}
	claimed.claim(sc.OriginalAuthorID)

	if tagged := claimed.unclaimed(sc.Tags); len(tagged) > 0 {
		key, err := Resolve(EventPostTag, RoleContext{})
		if err != nil {
			return nil, err
		}
		ops = append(ops, Operation{
			Recipients: tagged,
			Template:   key,
			TargetID:   sc.PostID,
			TargetType: sc.PostType,
		})
	}
	return ops, nil
}

// OnFriendRequest covers both the send and the confirm leg.
func (e *Engine) OnFriendRequest(kind EventKind, senderID, recipientID uint) ([]Operation, error) {
	if senderID == 0 || recipientID == 0 {
		return nil, ErrInvalidEventContext
	}
	if senderID == recipientID {
		return nil, nil
	}
	key, err := Resolve(kind, RoleContext{})
	if err != nil {
		return nil, err
	}
	return []Operation{{
		Recipients: []uint{recipientID},
		Template:   key,
		TargetID:   userTargetID(senderID),
		TargetType: "user",
	}}, nil
}

func userTargetID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func exclude(ids []uint, drop ...uint) []uint {
	var out []uint
	seen := map[uint]struct{}{}
	for _, d := range drop {
		seen[d] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package notify

import "fmt"

// ErrUnknownTemplate signals an event kind the resolver has no row for.
// Unreachable through the engine; logged at error level if it ever surfaces.
var ErrUnknownTemplate = fmt.Errorf("notify: unknown template")

// EventKind identifies the role configuration a notification is emitted for.
type EventKind string

const (
	EventCommentToAuthor         EventKind = "comment_to_author"
	EventCommentToTaggedUser     EventKind = "comment_to_tagged_user"
	EventCommentMention          EventKind = "comment_mention"
	EventReplyToParentAuthor     EventKind = "reply_to_parent_author"
	EventReplyTaggedAndCommented EventKind = "reply_tagged_and_commented"
	EventPostTag                 EventKind = "post_tag"
	EventPostShare               EventKind = "post_share"
	EventPostShareAndTag         EventKind = "post_share_and_tag"
	EventFriendRequestSent       EventKind = "friend_request_sent"
	EventFriendRequestConfirmed  EventKind = "friend_request_confirmed"
)

// RoleContext qualifies how the recipient relates to the mutated entities.
// Only the combinations the decision table below names are meaningful.
type RoleContext struct {
	PostAuthor   bool // recipient authored the post
	TaggedOnPost bool // recipient is tagged on the post itself
	TagUpdate    bool // event came from a tag-list update, not a new comment
}

// TemplateKey is the resolved message variant persisted on a notification
// and sent as the real-time event name.
type TemplateKey string

const (
	TemplateCommentedOnYourPost    TemplateKey = "commented_on_your_post"
	TemplateCommentedOnTaggedPost  TemplateKey = "commented_on_post_youre_tagged_in"
	TemplateMentionedInComment     TemplateKey = "mentioned_in_comment"
	TemplateMentionedInCommentPost TemplateKey = "mentioned_in_comment_on_post"
	TemplateMentionedAndTagged     TemplateKey = "mentioned_and_tagged_on_post"
	TemplateMentionedOnPost        TemplateKey = "mentioned_on_post"
	TemplateRepliedToYourComment   TemplateKey = "replied_to_your_comment"
	TemplateRepliedOnYourPost      TemplateKey = "replied_to_your_comment_on_your_post"
	TemplateRepliedOnTaggedPost    TemplateKey = "replied_to_your_comment_on_post_youre_tagged_in"
	TemplateTaggedInPost           TemplateKey = "tagged_in_post"
	TemplateSharedYourPost         TemplateKey = "shared_your_post"
	TemplateSharedAndTaggedYou     TemplateKey = "shared_and_tagged_you"
	TemplateSentFriendRequest      TemplateKey = "sent_you_a_friend_request"
	TemplateConfirmedFriendRequest TemplateKey = "confirmed_your_friend_request"
)

// Resolve maps an event kind and role configuration to the message variant
// a recipient should see. Pure and total over the declared kinds.
func Resolve(kind EventKind, roles RoleContext) (TemplateKey, error) {
	switch kind {
	case EventCommentToAuthor:
		return TemplateCommentedOnYourPost, nil
	case EventCommentToTaggedUser:
		return TemplateCommentedOnTaggedPost, nil
	case EventCommentMention:
		switch {
		case roles.PostAuthor:
			return TemplateMentionedInComment, nil
		case roles.TaggedOnPost:
			return TemplateMentionedAndTagged, nil
		case roles.TagUpdate:
			return TemplateMentionedOnPost, nil
		default:
			return TemplateMentionedInCommentPost, nil
		}
	case EventReplyToParentAuthor:
		if roles.PostAuthor {
			return TemplateRepliedOnYourPost, nil
		}
		return TemplateRepliedToYourComment, nil
	case EventReplyTaggedAndCommented:
		return TemplateRepliedOnTaggedPost, nil
	case EventPostTag:
		return TemplateTaggedInPost, nil
	case EventPostShare:
		return TemplateSharedYourPost, nil
	case EventPostShareAndTag:
		return TemplateSharedAndTaggedYou, nil
	case EventFriendRequestSent:
		return TemplateSentFriendRequest, nil
	case EventFriendRequestConfirmed:
		return TemplateConfirmedFriendRequest, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, kind)
}

var templateTexts = map[TemplateKey]string{
	TemplateCommentedOnYourPost:    "commented on your post",
	TemplateCommentedOnTaggedPost:  "commented on a post you're tagged in",
	TemplateMentionedInComment:     "mentioned you in a comment",
	TemplateMentionedInCommentPost: "mentioned you in a comment on a post",
	TemplateMentionedAndTagged:     "mentioned you in a comment on a post you're tagged in",
	TemplateMentionedOnPost:        "mentioned you on a post",
	TemplateRepliedToYourComment:   "replied to your comment",
	TemplateRepliedOnYourPost:      "replied to a comment on your post",
	TemplateRepliedOnTaggedPost:    "replied to your comment on a post you're tagged in",
	TemplateTaggedInPost:           "tagged you in a post",
	TemplateSharedYourPost:         "shared your post",
	TemplateSharedAndTaggedYou:     "shared your post and tagged you",
	TemplateSentFriendRequest:      "sent you a friend request",
	TemplateConfirmedFriendRequest: "accepted your friend request",
}

// Text returns the human-readable body for a template key. The client
// prepends the sender's display name.
func Text(key TemplateKey) string {
	return templateTexts[key]
}

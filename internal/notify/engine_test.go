package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

// allRecipients flattens the operations into a recipient → template map and
// fails if any recipient appears twice.
func allRecipients(t *testing.T, ops []Operation) map[uint]TemplateKey {
	t.Helper()
	out := map[uint]TemplateKey{}
	for _, op := range ops {
		for _, r := range op.Recipients {
			_, dup := out[r]
			require.Falsef(t, dup, "recipient %d appears in more than one operation", r)
			out[r] = op.Template
		}
	}
	return out
}

func TestOnCommentAddedTopLevelPlainPost(t *testing.T) {
	engine := NewEngine()

	ops, err := engine.OnCommentAdded(CommentContext{
		Post:      PostContext{PostID: "p1", PostType: "post", AuthorID: 1},
		CommentID: "c1",
		AuthorID:  2,
	})
	require.NoError(t, err)
	require.Len(t, ops, 1)

	assert.Equal(t, []uint{1}, ops[0].Recipients)
	assert.Equal(t, TemplateCommentedOnYourPost, ops[0].Template)
	assert.Equal(t, "p1", ops[0].TargetID)
	assert.Equal(t, "post", ops[0].TargetType)
}

func TestOnCommentAddedSelfCommentYieldsNothing(t *testing.T) {
	engine := NewEngine()

	ops, err := engine.OnCommentAdded(CommentContext{
		Post:      PostContext{PostID: "p1", PostType: "post", AuthorID: 1},
		CommentID: "c1",
		AuthorID:  1,
	})
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestOnCommentAddedReplyCombinesTaggedAndMentionedParent(t *testing.T) {
	engine := NewEngine()

	// U1's post tags U2; U3 replies to U2's comment and mentions U2.
	ops, err := engine.OnCommentAdded(CommentContext{
		Post:           PostContext{PostID: "p1", PostType: "post", AuthorID: 1, Tags: []uint{2}},
		CommentID:      "c2",
		AuthorID:       3,
		Tags:           []uint{2},
		ParentAuthorID: uintPtr(2),
	})
	require.NoError(t, err)

	got := allRecipients(t, ops)
	require.Len(t, got, 2)
	assert.Equal(t, TemplateCommentedOnYourPost, got[1])
	assert.Equal(t, TemplateRepliedOnTaggedPost, got[2])
}

func TestOnCommentAddedReplyToPostAuthorsOwnComment(t *testing.T) {
	engine := NewEngine()

	ops, err := engine.OnCommentAdded(CommentContext{
		Post:           PostContext{PostID: "p1", PostType: "blogPost", AuthorID: 1},
		CommentID:      "c2",
		AuthorID:       2,
		ParentAuthorID: uintPtr(1),
	})
	require.NoError(t, err)

	got := allRecipients(t, ops)
	require.Len(t, got, 1)
	assert.Equal(t, TemplateRepliedOnYourPost, got[1])
}

func TestOnCommentAddedMentionOfPostAuthor(t *testing.T) {
	engine := NewEngine()

	ops, err := engine.OnCommentAdded(CommentContext{
		Post:      PostContext{PostID: "p1", PostType: "post", AuthorID: 1},
		CommentID: "c1",
		AuthorID:  2,
		Tags:      []uint{1},
	})
	require.NoError(t, err)

	got := allRecipients(t, ops)
	require.Len(t, got, 1)
	assert.Equal(t, TemplateMentionedInComment, got[1])
}

func TestOnCommentAddedTaggedUsersSplitByMention(t *testing.T) {
	engine := NewEngine()

	// U2 and U3 tagged on the post; comment by U4 mentions U3 and U5.
	ops, err := engine.OnCommentAdded(CommentContext{
		Post:      PostContext{PostID: "p1", PostType: "post", AuthorID: 1, Tags: []uint{2, 3}},
		CommentID: "c1",
		AuthorID:  4,
		Tags:      []uint{3, 5},
	})
	require.NoError(t, err)

	got := allRecipients(t, ops)
	require.Len(t, got, 4)
	assert.Equal(t, TemplateCommentedOnYourPost, got[1])
	assert.Equal(t, TemplateCommentedOnTaggedPost, got[2])
	assert.Equal(t, TemplateMentionedAndTagged, got[3])
	assert.Equal(t, TemplateMentionedInCommentPost, got[5])
}

func TestOnCommentAddedSenderNeverRecipient(t *testing.T) {
	engine := NewEngine()

	// The comment author is tagged on the post and mentions themselves.
	ops, err := engine.OnCommentAdded(CommentContext{
		Post:      PostContext{PostID: "p1", PostType: "post", AuthorID: 1, Tags: []uint{2}},
		CommentID: "c1",
		AuthorID:  2,
		Tags:      []uint{2},
	})
	require.NoError(t, err)

	got := allRecipients(t, ops)
	_, ok := got[2]
	assert.False(t, ok, "acting user must never be a recipient")
	assert.Equal(t, TemplateCommentedOnYourPost, got[1])
}

func TestOnCommentAddedRejectsMissingActors(t *testing.T) {
	engine := NewEngine()

	_, err := engine.OnCommentAdded(CommentContext{
		Post: PostContext{PostID: "p1", PostType: "post"},
	})
	assert.ErrorIs(t, err, ErrInvalidEventContext)
}

func TestOnCommentTagsUpdatedSplitsByPostTags(t *testing.T) {
	engine := NewEngine()

	ops, err := engine.OnCommentTagsUpdated(CommentContext{
		Post:      PostContext{PostID: "p1", PostType: "post", AuthorID: 1, Tags: []uint{2}},
		CommentID: "c1",
		AuthorID:  3,
	}, []uint{2, 4})
	require.NoError(t, err)

	got := allRecipients(t, ops)
	require.Len(t, got, 2)
	assert.Equal(t, TemplateMentionedAndTagged, got[2])
	assert.Equal(t, TemplateMentionedOnPost, got[4])
}

func TestOnPostCreatedNotifiesOnlyNewTags(t *testing.T) {
	engine := NewEngine()

	ops, err := engine.OnPostCreated(PostContext{
		PostID:       "p1",
		PostType:     "post",
		AuthorID:     1,
		Tags:         []uint{1, 2, 3},
		ExistingTags: []uint{2},
	})
	require.NoError(t, err)
	require.Len(t, ops, 1)

	assert.Equal(t, []uint{3}, ops[0].Recipients)
	assert.Equal(t, TemplateTaggedInPost, ops[0].Template)
}

func TestOnPostSharedCombinesAuthorAndTag(t *testing.T) {
	engine := NewEngine()

	// U2 shares U1's post and tags U1 plus U3.
	ops, err := engine.OnPostShared(ShareContext{
		PostID:           "p2",
		PostType:         "post",
		OriginalAuthorID: 1,
		SharerID:         2,
		Tags:             []uint{1, 3},
	})
	require.NoError(t, err)

	got := allRecipients(t, ops)
	require.Len(t, got, 2)
	assert.Equal(t, TemplateSharedAndTaggedYou, got[1])
	assert.Equal(t, TemplateTaggedInPost, got[3])
}

func TestOnPostSharedPlain(t *testing.T) {
	engine := NewEngine()

	ops, err := engine.OnPostShared(ShareContext{
		PostID:           "p2",
		PostType:         "post",
		OriginalAuthorID: 1,
		SharerID:         2,
	})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, TemplateSharedYourPost, ops[0].Template)
}

func TestOnPostSharedOwnPostYieldsNothingForAuthor(t *testing.T) {
	engine := NewEngine()

	ops, err := engine.OnPostShared(ShareContext{
		PostID:           "p2",
		PostType:         "post",
		OriginalAuthorID: 1,
		SharerID:         1,
		Tags:             []uint{2},
	})
	require.NoError(t, err)

	got := allRecipients(t, ops)
	require.Len(t, got, 1)
	assert.Equal(t, TemplateTaggedInPost, got[2])
}

func TestOnFriendRequest(t *testing.T) {
	engine := NewEngine()

	ops, err := engine.OnFriendRequest(EventFriendRequestSent, 1, 2)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, []uint{2}, ops[0].Recipients)
	assert.Equal(t, TemplateSentFriendRequest, ops[0].Template)
	assert.Equal(t, "1", ops[0].TargetID)
	assert.Equal(t, "user", ops[0].TargetType)

	ops, err = engine.OnFriendRequest(EventFriendRequestConfirmed, 2, 1)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, TemplateConfirmedFriendRequest, ops[0].Template)

	ops, err = engine.OnFriendRequest(EventFriendRequestSent, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMentionVariants(t *testing.T) {
	cases := []struct {
		name  string
		roles RoleContext
		want  TemplateKey
	}{
		{"post author", RoleContext{PostAuthor: true}, TemplateMentionedInComment},
		{"tagged on post", RoleContext{TaggedOnPost: true}, TemplateMentionedAndTagged},
		{"tag update", RoleContext{TagUpdate: true}, TemplateMentionedOnPost},
		{"bystander", RoleContext{}, TemplateMentionedInCommentPost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(EventCommentMention, tc.roles)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveReplyVariants(t *testing.T) {
	got, err := Resolve(EventReplyToParentAuthor, RoleContext{PostAuthor: true})
	require.NoError(t, err)
	assert.Equal(t, TemplateRepliedOnYourPost, got)

	got, err = Resolve(EventReplyToParentAuthor, RoleContext{})
	require.NoError(t, err)
	assert.Equal(t, TemplateRepliedToYourComment, got)
}

func TestResolveCoversEveryKind(t *testing.T) {
	kinds := []EventKind{
		EventCommentToAuthor,
		EventCommentToTaggedUser,
		EventCommentMention,
		EventReplyToParentAuthor,
		EventReplyTaggedAndCommented,
		EventPostTag,
		EventPostShare,
		EventPostShareAndTag,
		EventFriendRequestSent,
		EventFriendRequestConfirmed,
	}
	for _, kind := range kinds {
		key, err := Resolve(kind, RoleContext{})
		require.NoErrorf(t, err, "kind %q", kind)
		assert.NotEmptyf(t, Text(key), "template %q has no text", key)
	}
}

func TestResolveUnknownKind(t *testing.T) {
	_, err := Resolve(EventKind("poke"), RoleContext{})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

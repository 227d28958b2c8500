package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/anonto42/wavely/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	created []*models.Notification
	failFor map[uint]error
}

func (f *fakeStore) CreateNotification(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[n.RecipientID]; ok {
		return err
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeStore) forRecipient(id uint) *models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.created {
		if n.RecipientID == id {
			return n
		}
	}
	return nil
}

type fakePresence struct {
	online map[uint]string
	err    error
}

func (f *fakePresence) Lookup(_ context.Context, userID uint) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	socketID, ok := f.online[userID]
	return socketID, ok, nil
}

type fakeChannel struct {
	mu   sync.Mutex
	sent map[string][]string // socketID -> event names
	err  error
}

func (f *fakeChannel) Send(socketID, event string, _ interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.sent == nil {
		f.sent = map[string][]string{}
	}
	f.sent[socketID] = append(f.sent[socketID], event)
	return nil
}

func newTestDispatcher(store *fakeStore, presence *fakePresence, channel *fakeChannel) *Dispatcher {
	return NewDispatcher(store, presence, channel, zerolog.Nop())
}

func TestEmitPersistsAndPushesToOnlineRecipient(t *testing.T) {
	store := &fakeStore{}
	presence := &fakePresence{online: map[uint]string{1: "sock-1"}}
	channel := &fakeChannel{}
	d := newTestDispatcher(store, presence, channel)

	d.Emit(context.Background(), 2, []Operation{{
		Recipients: []uint{1},
		Template:   TemplateCommentedOnYourPost,
		TargetID:   "p1",
		TargetType: "post",
	}})

	n := store.forRecipient(1)
	require.NotNil(t, n)
	assert.Equal(t, uint(2), n.SenderID)
	assert.Equal(t, string(TemplateCommentedOnYourPost), n.Message)
	assert.Equal(t, "commented on your post", n.Text)
	assert.Equal(t, "p1", n.TargetID)
	assert.Equal(t, []string{string(TemplateCommentedOnYourPost)}, channel.sent["sock-1"])
}

func TestEmitOfflineRecipientPersistsWithoutPush(t *testing.T) {
	store := &fakeStore{}
	presence := &fakePresence{online: map[uint]string{}}
	channel := &fakeChannel{}
	d := newTestDispatcher(store, presence, channel)

	d.Emit(context.Background(), 2, []Operation{{
		Recipients: []uint{1},
		Template:   TemplateTaggedInPost,
		TargetID:   "p1",
		TargetType: "post",
	}})

	require.NotNil(t, store.forRecipient(1))
	assert.Empty(t, channel.sent)
}

func TestEmitSkipsSender(t *testing.T) {
	store := &fakeStore{}
	presence := &fakePresence{online: map[uint]string{2: "sock-2"}}
	channel := &fakeChannel{}
	d := newTestDispatcher(store, presence, channel)

	d.Emit(context.Background(), 2, []Operation{{
		Recipients: []uint{2},
		Template:   TemplateTaggedInPost,
		TargetID:   "p1",
		TargetType: "post",
	}})

	assert.Nil(t, store.forRecipient(2))
	assert.Empty(t, channel.sent)
}

func TestEmitIsolatesPerRecipientFailures(t *testing.T) {
	store := &fakeStore{failFor: map[uint]error{1: errors.New("write failed")}}
	presence := &fakePresence{online: map[uint]string{3: "sock-3"}}
	channel := &fakeChannel{}
	d := newTestDispatcher(store, presence, channel)

	d.Emit(context.Background(), 2, []Operation{{
		Recipients: []uint{1, 3},
		Template:   TemplateTaggedInPost,
		TargetID:   "p1",
		TargetType: "post",
	}})

	assert.Nil(t, store.forRecipient(1))
	require.NotNil(t, store.forRecipient(3))
	assert.Equal(t, []string{string(TemplateTaggedInPost)}, channel.sent["sock-3"])
}

func TestEmitPushFailureDoesNotLoseRecord(t *testing.T) {
	store := &fakeStore{}
	presence := &fakePresence{online: map[uint]string{1: "sock-1"}}
	channel := &fakeChannel{err: errors.New("socket gone")}
	d := newTestDispatcher(store, presence, channel)

	d.Emit(context.Background(), 2, []Operation{{
		Recipients: []uint{1},
		Template:   TemplateSharedYourPost,
		TargetID:   "p1",
		TargetType: "post",
	}})

	assert.NotNil(t, store.forRecipient(1))
}

func TestEmitPresenceErrorStillPersists(t *testing.T) {
	store := &fakeStore{}
	presence := &fakePresence{err: errors.New("registry down")}
	channel := &fakeChannel{}
	d := newTestDispatcher(store, presence, channel)

	d.Emit(context.Background(), 2, []Operation{{
		Recipients: []uint{1},
		Template:   TemplateSharedYourPost,
		TargetID:   "p1",
		TargetType: "post",
	}})

	assert.NotNil(t, store.forRecipient(1))
	assert.Empty(t, channel.sent)
}

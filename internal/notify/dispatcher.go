package notify

import (
	"context"
	"sync"
	"time"

	"github.com/anonto42/wavely/backend/internal/models"
	"github.com/rs/zerolog"
)

// Store persists generated notifications.
type Store interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
}

// Presence resolves a user to their current socket id. A missing entry is
// the normal "offline" outcome, not an error.
type Presence interface {
	Lookup(ctx context.Context, userID uint) (string, bool, error)
}

// Channel pushes an event over an open real-time connection.
type Channel interface {
	Send(socketID string, event string, payload interface{}) error
}

// Dispatcher persists each computed operation and pushes it to online
// recipients. Fan-out is best-effort: a failure for one recipient never
// aborts the others and never reaches the caller, only the log.
type Dispatcher struct {
	store    Store
	presence Presence
	channel  Channel
	log      zerolog.Logger
}

func NewDispatcher(store Store, presence Presence, channel Channel, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		presence: presence,
		channel:  channel,
		log:      log,
	}
}

// Emit fans the operations out to every recipient concurrently and waits
// for the batch to finish. Recipients equal to the sender are skipped.
func (d *Dispatcher) Emit(ctx context.Context, senderID uint, ops []Operation) {
	var wg sync.WaitGroup
	for _, op := range ops {
		for _, recipient := range op.Recipients {
			if recipient == senderID {
				continue
			}
			wg.Add(1)
			go func(op Operation, recipient uint) {
				defer wg.Done()
				d.deliver(ctx, senderID, recipient, op)
			}(op, recipient)
		}
	}
	wg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, senderID, recipientID uint, op Operation) {
	notification := &models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Message:     string(op.Template),
		Text:        Text(op.Template),
		TargetID:    op.TargetID,
		TargetType:  op.TargetType,
		CreatedAt:   time.Now(),
	}

	if err := d.store.CreateNotification(ctx, notification); err != nil {
		d.log.Error().Err(err).
			Uint("recipient_id", recipientID).
			Str("template", string(op.Template)).
			Msg("failed to persist notification")
		return
	}

	socketID, online, err := d.presence.Lookup(ctx, recipientID)
	if err != nil {
		d.log.Warn().Err(err).Uint("recipient_id", recipientID).Msg("presence lookup failed")
		return
	}
	if !online {
		return
	}

	if err := d.channel.Send(socketID, string(op.Template), notification); err != nil {
		d.log.Warn().Err(err).
			Uint("recipient_id", recipientID).
			Str("socket_id", socketID).
			Msg("realtime push failed")
	}
}

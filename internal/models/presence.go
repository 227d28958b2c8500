package models

import "time"

// PresenceEntry maps an online user to their current real-time socket.
// One entry per user: reconnects overwrite the socket id (upsert), and a
// disconnect deletes the entry. There is no referential integrity against
// the user store; a stale entry just fails silently on the next push.
type PresenceEntry struct {
	UserID      uint      `json:"user_id" bson:"user_id"`
	SocketID    string    `json:"socket_id" bson:"socket_id"`
	ConnectedAt time.Time `json:"connected_at" bson:"connected_at"`
}

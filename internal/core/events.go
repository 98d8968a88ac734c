package core

import (
	"encoding/json"

	"signalhub/internal/domain"

	"github.com/rs/zerolog/log"
)

// Outbound event discriminators. These are the client-facing wire names,
// so renaming any of them breaks deployed clients.
const (
	EventRoomCreated  = "room-created"
	EventRoomJoined   = "room-joined"
	EventError        = "error"
	EventAllUsers     = "all-users"
	EventUserJoined   = "user-joined"
	EventUserLeft     = "user-left"
	EventOffer        = "offer"
	EventAnswer       = "answer"
	EventICECandidate = "ice-candidate"
)

// RoomEvent confirms room-created / room-joined to the caller.
type RoomEvent struct {
	Type   string        `json:"type"`
	RoomID domain.RoomID `json:"roomId"`
}

// ErrorEvent carries a human-readable message, no structured code.
type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// AllUsersEvent lists the peers a freshly joined connection must send
// offers to, in room insertion order.
type AllUsersEvent struct {
	Type  string          `json:"type"`
	Users []domain.ConnID `json:"users"`
}

// PresenceEvent is user-joined / user-left, addressed to room peers.
type PresenceEvent struct {
	Type string        `json:"type"`
	ID   domain.ConnID `json:"id"`
}

// DescriptionEvent relays an offer or answer to its target. The sender id
// travels as "caller" for offers/answers but "from" for candidates; both
// shapes are kept as-is for wire compatibility.
type DescriptionEvent struct {
	Type   string          `json:"type"`
	SDP    json.RawMessage `json:"sdp"`
	Caller domain.ConnID   `json:"caller"`
}

// CandidateEvent relays an ICE candidate to its target.
type CandidateEvent struct {
	Type      string          `json:"type"`
	Candidate json.RawMessage `json:"candidate"`
	From      domain.ConnID   `json:"from"`
}

// send marshals and enqueues one event. A TrySend failure means the
// connection's send buffer is full or closed; the caller must treat that
// as connection loss, not drop the frame and move on.
func send(conn SignalConnection, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "core").Msg("event marshal")
		return nil
	}
	return conn.TrySend(b)
}

package domain

import (
	"time"
)

// CallState is the lifecycle state of a session. The string values are the
// status strings clients match on, so they are part of the wire contract.
type CallState string

const (
	StatePending    CallState = "pending"
	StateInProgress CallState = "inProgress"
	StateOnHold     CallState = "onHold"
	StateEnded      CallState = "ended"
)

// Session is one call lifecycle occupying one room. HostID is empty until a
// host joins. A session never owns a channel; it only references identities.
type Session struct {
	RoomID      RoomID
	InitiatorID ParticipantID
	HostID      ParticipantID
	State       CallState
	CreatedAt   time.Time
}

// CallEntry is the host-facing projection of one non-ended session. It is
// recomputed from the registry on demand, never stored.
type CallEntry struct {
	RoomID RoomID        `json:"roomId"`
	From   ParticipantID `json:"from"`
	Status CallState     `json:"status"`
}

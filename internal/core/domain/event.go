package domain

// EventType names a server-to-client notification.
type EventType string

const (
	EventCallInitiated  EventType = "call-initiated"
	EventCallJoined     EventType = "call-joined"
	EventCallOnHold     EventType = "call-on-hold"
	EventCallResumed    EventType = "call-resumed"
	EventCallEnded      EventType = "call-ended"
	EventCallListUpdate EventType = "call-list-update"
	EventError          EventType = "error"
)

// Event is one outbound notification addressed to a specific participant.
// To carries the counter-party identity on call-joined/call-resumed so the
// receiver can place the media call; Calls is set only on call-list-update.
type Event struct {
	Type   EventType     `json:"type"`
	RoomID RoomID        `json:"roomId,omitempty"`
	To     ParticipantID `json:"to,omitempty"`
	Calls  []CallEntry   `json:"calls,omitzero"`
	Reason string        `json:"reason,omitempty"`
}

func NewCallInitiated(roomID RoomID) Event {
	return Event{Type: EventCallInitiated, RoomID: roomID}
}

func NewCallJoined(roomID RoomID, host ParticipantID) Event {
	return Event{Type: EventCallJoined, RoomID: roomID, To: host}
}

func NewCallOnHold(roomID RoomID) Event {
	return Event{Type: EventCallOnHold, RoomID: roomID}
}

func NewCallResumed(roomID RoomID, host ParticipantID) Event {
	return Event{Type: EventCallResumed, RoomID: roomID, To: host}
}

func NewCallEnded(roomID RoomID) Event {
	return Event{Type: EventCallEnded, RoomID: roomID}
}

func NewCallListUpdate(calls []CallEntry) Event {
	if calls == nil {
		calls = []CallEntry{}
	}
	return Event{Type: EventCallListUpdate, Calls: calls}
}

func NewError(reason string) Event {
	return Event{Type: EventError, Reason: reason}
}

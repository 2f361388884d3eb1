package domain

import (
	"github.com/google/uuid"
)

// ParticipantID is the identity a client presents when its signalling
// connection is established, e.g. "Guest-42" or "Host-7".
type ParticipantID string

func (id ParticipantID) String() string {
	return string(id)
}

// RoomID is assigned by the server at initiation and stays stable for the
// session's lifetime.
type RoomID string

func NewRoomID() RoomID {
	return RoomID(uuid.NewString())
}

func (id RoomID) String() string {
	return string(id)
}

type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleHost, RoleGuest:
		return Role(s), true
	}
	return "", false
}

package port

import (
	"github.com/frontdesk/switchboard/internal/core/domain"
)

// SessionRegistry is the single source of truth for call state. All mutating
// operations are atomic per room: no read-modify-write race may expose an
// inconsistent intermediate state to a concurrent event.
type SessionRegistry interface {
	// Create assigns a fresh room ID and stores a pending session. It fails
	// with domain.ErrCallInProgress if the initiator already has a non-ended
	// session.
	Create(initiatorID domain.ParticipantID) (domain.Session, error)

	// Get returns a snapshot of the session, or domain.ErrUnknownSession.
	Get(roomID domain.RoomID) (domain.Session, error)

	// Update runs apply under the room's lock and commits the mutation it
	// makes. An error from apply aborts the update; the stored session is
	// unchanged and the error is returned as-is. Returns the post-commit
	// snapshot on success.
	Update(roomID domain.RoomID, apply func(s *domain.Session) error) (domain.Session, error)

	// Remove deletes the session. Removing an unknown room is a no-op.
	Remove(roomID domain.RoomID)

	// ListActive returns snapshots of all non-ended sessions ordered by
	// creation time.
	ListActive() []domain.Session

	// SessionsOf returns every non-ended session the participant is bound
	// to as initiator or host, in creation order. A host may be bound to
	// several rooms at once, so disconnect handling must see them all.
	SessionsOf(id domain.ParticipantID) []domain.Session
}

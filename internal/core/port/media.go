package port

import "github.com/frontdesk/switchboard/internal/core/domain"

// MediaBridge manages the media legs of a room. Both calls are
// fire-and-forget from the state machine's perspective: negotiation runs
// asynchronously and its outcome never feeds back into session state.
type MediaBridge interface {
	// Connect starts a negotiation attempt from the joining side towards the
	// counter-party, replacing any attempt already running for the room.
	Connect(roomID domain.RoomID, from, to domain.ParticipantID)

	// Disconnect cancels the room's attempt and releases any established
	// media resources. Idempotent; safe while Connect has not yet resolved.
	Disconnect(roomID domain.RoomID)
}

package domain

import "errors"

var (
	// ErrUnknownSession is returned for events referencing a room the
	// registry does not know. Dropped and logged, never broadcast.
	ErrUnknownSession = errors.New("unknown session")

	// ErrDuplicateRoom means a generated room ID collided with a live
	// session. Logged as a defect; the event is rejected.
	ErrDuplicateRoom = errors.New("duplicate room")

	// ErrInvalidTransition means the event is not legal for the session's
	// current state.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrCallInProgress means the initiator already has a non-ended session.
	ErrCallInProgress = errors.New("call already in progress")

	// ErrNotHost rejects host-only operations from guest participants.
	ErrNotHost = errors.New("requester is not a host")

	// ErrParticipantNotFound means no live channel is registered for the
	// identity. Deliveries to such participants are dropped silently.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrMediaAcquisition means local capture devices could not be acquired.
	// Surfaced to the originating client; session state is unchanged.
	ErrMediaAcquisition = errors.New("media acquisition failed")

	// ErrMediaNegotiation means the media session could not be established.
	// Not retried automatically; the user recovers via hold/resume.
	ErrMediaNegotiation = errors.New("media negotiation failed")
)

package bridge

import (
	"context"

	"github.com/frontdesk/switchboard/internal/core/domain"
)

// Stream is an opaque media stream handle owned by the transport.
type Stream interface {
	Close() error
}

// MediaSession is one established point-to-point media call.
type MediaSession interface {
	// OnRemoteStream registers the handler invoked when the counter-party's
	// stream arrives. At most one handler per session.
	OnRemoteStream(fn func(Stream))
	Close() error
}

// IncomingCall is a call placed by a remote participant, to be accepted
// with a local stream.
type IncomingCall interface {
	From() domain.ParticipantID
	Accept(local Stream) (MediaSession, error)
}

// Transport is the external peer-to-peer media plane. Its session
// description and ICE mechanics are assumed correct and out of scope here.
type Transport interface {
	PlaceCall(ctx context.Context, target domain.ParticipantID, local Stream) (MediaSession, error)
	OnIncomingCall(handler func(IncomingCall))
}

// CaptureDevice acquires local capture (camera/microphone) streams.
type CaptureDevice interface {
	Acquire(ctx context.Context) (Stream, error)
}

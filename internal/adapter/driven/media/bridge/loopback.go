package bridge

import (
	"context"
	"sync"

	"github.com/frontdesk/switchboard/internal/core/domain"
)

// LoopbackTransport is an in-process media plane used when no real
// peer-to-peer transport is wired: every placed call resolves immediately
// and echoes the local stream back as the remote one. Useful for local
// runs and tests.
type LoopbackTransport struct {
	mu       sync.Mutex
	incoming func(IncomingCall)
}

func NewLoopbackTransport() *LoopbackTransport {
	return &LoopbackTransport{}
}

func (t *LoopbackTransport) PlaceCall(ctx context.Context, target domain.ParticipantID, local Stream) (MediaSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &loopbackSession{remote: local}, nil
}

func (t *LoopbackTransport) OnIncomingCall(handler func(IncomingCall)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.incoming = handler
}

type loopbackSession struct {
	mu     sync.Mutex
	remote Stream
	closed bool
}

func (s *loopbackSession) OnRemoteStream(fn func(Stream)) {
	s.mu.Lock()
	closed := s.closed
	remote := s.remote
	s.mu.Unlock()
	if !closed {
		fn(remote)
	}
}

func (s *loopbackSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// NullCapture hands out inert streams; the signalling server itself has no
// camera to acquire.
type NullCapture struct{}

func (NullCapture) Acquire(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nullStream{}, nil
}

type nullStream struct{}

func (nullStream) Close() error { return nil }

package bridge

import (
	"context"
	"fmt"
	"sync"

	"github.com/frontdesk/switchboard/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// FailureHandler receives media-plane failures for the participant that
// originated the attempt. Failures never roll back session state.
type FailureHandler func(roomID domain.RoomID, participant domain.ParticipantID, err error)

type leg struct {
	cancel context.CancelFunc

	mu      sync.Mutex
	local   Stream
	session MediaSession
}

// release closes whatever the attempt has acquired so far. Safe to call at
// any point of the attempt's progress.
func (l *leg) release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.session != nil {
		_ = l.session.Close()
		l.session = nil
	}
	if l.local != nil {
		_ = l.local.Close()
		l.local = nil
	}
}

// Bridge owns one negotiation attempt per room. Connect launches the
// attempt asynchronously; Disconnect cancels it, even mid-negotiation, and
// a stream arriving for a cancelled attempt is discarded.
//
// Implements port.MediaBridge.
type Bridge struct {
	transport Transport
	capture   CaptureDevice
	onFailure FailureHandler

	mu   sync.Mutex
	legs map[domain.RoomID]*leg
}

func NewBridge(transport Transport, capture CaptureDevice) *Bridge {
	return &Bridge{
		transport: transport,
		capture:   capture,
		legs:      make(map[domain.RoomID]*leg),
	}
}

// SetFailureHandler wires the callback used to surface media failures to
// the originating client. Must be called before the first Connect.
func (b *Bridge) SetFailureHandler(fn FailureHandler) {
	b.onFailure = fn
}

func (b *Bridge) Connect(roomID domain.RoomID, from, to domain.ParticipantID) {
	ctx, cancel := context.WithCancel(context.Background())
	l := &leg{cancel: cancel}

	b.mu.Lock()
	if prev, ok := b.legs[roomID]; ok {
		prev.cancel()
		prev.release()
	}
	b.legs[roomID] = l
	b.mu.Unlock()

	go b.negotiate(ctx, l, roomID, from, to)
}

func (b *Bridge) Disconnect(roomID domain.RoomID) {
	b.mu.Lock()
	l, ok := b.legs[roomID]
	delete(b.legs, roomID)
	b.mu.Unlock()
	if !ok {
		return
	}
	l.cancel()
	l.release()
}

func (b *Bridge) negotiate(ctx context.Context, l *leg, roomID domain.RoomID, from, to domain.ParticipantID) {
	local, err := b.capture.Acquire(ctx)
	if err != nil {
		if ctx.Err() == nil {
			b.fail(roomID, from, fmt.Errorf("%w: %v", domain.ErrMediaAcquisition, err))
		}
		return
	}

	l.mu.Lock()
	if ctx.Err() != nil {
		l.mu.Unlock()
		_ = local.Close()
		return
	}
	l.local = local
	l.mu.Unlock()

	sess, err := b.transport.PlaceCall(ctx, to, local)
	if err != nil {
		if ctx.Err() == nil {
			b.fail(roomID, from, fmt.Errorf("%w: %v", domain.ErrMediaNegotiation, err))
		}
		l.release()
		return
	}

	l.mu.Lock()
	if ctx.Err() != nil {
		// Disconnect raced the place-call; the session must not survive.
		l.mu.Unlock()
		_ = sess.Close()
		l.release()
		return
	}
	l.session = sess
	l.mu.Unlock()

	sess.OnRemoteStream(func(remote Stream) {
		if ctx.Err() != nil {
			// Late arrival from an abandoned negotiation.
			log.Debug().Str("room_id", roomID.String()).Msg("discarding stream from cancelled negotiation")
			_ = remote.Close()
			return
		}
		log.Info().Str("room_id", roomID.String()).Str("from", from.String()).Str("to", to.String()).Msg("remote stream established")
	})
}

func (b *Bridge) fail(roomID domain.RoomID, participant domain.ParticipantID, err error) {
	log.Warn().Err(err).Str("room_id", roomID.String()).Str("participant_id", participant.String()).Msg("media negotiation failed")
	if b.onFailure != nil {
		b.onFailure(roomID, participant, err)
	}
}

package http

import (
	"errors"
	"net/http"

	"github.com/frontdesk/switchboard/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// Inbound message types. Each maps to exactly one call service method.
const (
	msgInitiateCall = "initiate-call"
	msgJoinCall     = "join-call"
	msgHoldCall     = "hold-call"
	msgResumeCall   = "resume-call"
	msgEndCall      = "end-call"
	msgGetCallList  = "get-call-list"
)

type inboundMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId,omitempty"`
}

func (h *Handler) dispatch(r *http.Request, ch *wsChannel, participantID domain.ParticipantID, req inboundMessage) {
	ctx := r.Context()
	roomID := domain.RoomID(req.RoomID)

	var err error
	switch req.Type {
	case msgInitiateCall:
		err = h.CallService.Initiate(ctx, participantID)
	case msgJoinCall:
		err = h.CallService.Join(ctx, roomID, participantID)
	case msgHoldCall:
		err = h.CallService.Hold(ctx, roomID)
	case msgResumeCall:
		err = h.CallService.Resume(ctx, roomID)
	case msgEndCall:
		err = h.CallService.End(ctx, roomID)
	case msgGetCallList:
		err = h.CallService.CallList(ctx, participantID)
	default:
		log.Warn().Str("type", req.Type).Str("participant_id", participantID.String()).Msg("unknown message type")
		return
	}

	// Rejections the sender can act on come back as error frames; the rest
	// is logged by the service and dropped.
	if errors.Is(err, domain.ErrNotHost) || errors.Is(err, domain.ErrCallInProgress) {
		if sendErr := ch.Send(domain.NewError(err.Error())); sendErr != nil {
			log.Debug().Err(sendErr).Str("participant_id", participantID.String()).Msg("could not deliver error frame")
		}
	}
}

package service

import (
	"context"
	"errors"

	"github.com/frontdesk/switchboard/internal/core/domain"
	"github.com/frontdesk/switchboard/internal/core/port"
	"github.com/rs/zerolog/log"
)

// CallService applies call lifecycle events against the session registry.
// Per room the ordering is fixed: registry commit first, media bridge
// second, notifications last. A failed commit produces no media call and no
// notification, so the registry never lags behind what participants saw.
type CallService struct {
	registry  port.SessionRegistry
	directory port.ParticipantDirectory
	media     port.MediaBridge
}

func NewCallService(registry port.SessionRegistry, directory port.ParticipantDirectory, media port.MediaBridge) *CallService {
	return &CallService{
		registry:  registry,
		directory: directory,
		media:     media,
	}
}

// Initiate creates a pending session for the guest and reports the assigned
// room ID back to them. The host side discovers it via the call-list push.
func (s *CallService) Initiate(ctx context.Context, initiatorID domain.ParticipantID) error {
	sess, err := s.registry.Create(initiatorID)
	if err != nil {
		log.Warn().Err(err).Str("initiator_id", initiatorID.String()).Msg("initiate rejected")
		return err
	}

	log.Info().Str("room_id", sess.RoomID.String()).Str("initiator_id", initiatorID.String()).Msg("Call initiated")

	s.notify(initiatorID, domain.NewCallInitiated(sess.RoomID))
	s.pushCallList()
	return nil
}

// Join binds the host to a pending or held session and triggers the media
// leg from the host towards the initiator. A second host joining a room
// already in progress is rejected.
func (s *CallService) Join(ctx context.Context, roomID domain.RoomID, hostID domain.ParticipantID) error {
	role, err := s.directory.Role(hostID)
	if err != nil || role != domain.RoleHost {
		log.Warn().Str("room_id", roomID.String()).Str("participant_id", hostID.String()).Msg("join rejected: not a host")
		return domain.ErrNotHost
	}

	sess, err := s.registry.Update(roomID, func(sess *domain.Session) error {
		if sess.State != domain.StatePending && sess.State != domain.StateOnHold {
			return domain.ErrInvalidTransition
		}
		sess.State = domain.StateInProgress
		sess.HostID = hostID
		return nil
	})
	if err != nil {
		s.logRejected("join", roomID, err)
		return err
	}

	s.media.Connect(roomID, sess.HostID, sess.InitiatorID)

	log.Info().Str("room_id", roomID.String()).Str("host_id", hostID.String()).Msg("Call joined")

	s.notify(sess.InitiatorID, domain.NewCallJoined(roomID, sess.HostID))
	s.pushCallList()
	return nil
}

// Hold pauses an in-progress call. The media legs are torn down but the
// session survives for a later resume.
func (s *CallService) Hold(ctx context.Context, roomID domain.RoomID) error {
	sess, err := s.registry.Update(roomID, func(sess *domain.Session) error {
		if sess.State != domain.StateInProgress {
			return domain.ErrInvalidTransition
		}
		sess.State = domain.StateOnHold
		return nil
	})
	if err != nil {
		s.logRejected("hold", roomID, err)
		return err
	}

	s.media.Disconnect(roomID)

	log.Info().Str("room_id", roomID.String()).Msg("Call on hold")

	s.notify(sess.InitiatorID, domain.NewCallOnHold(roomID))
	s.pushCallList()
	return nil
}

// Resume reconnects a held call with the host already bound to the session.
func (s *CallService) Resume(ctx context.Context, roomID domain.RoomID) error {
	sess, err := s.registry.Update(roomID, func(sess *domain.Session) error {
		if sess.State != domain.StateOnHold {
			return domain.ErrInvalidTransition
		}
		sess.State = domain.StateInProgress
		return nil
	})
	if err != nil {
		s.logRejected("resume", roomID, err)
		return err
	}

	s.media.Connect(roomID, sess.HostID, sess.InitiatorID)

	log.Info().Str("room_id", roomID.String()).Msg("Call resumed")

	s.notify(sess.InitiatorID, domain.NewCallResumed(roomID, sess.HostID))
	s.pushCallList()
	return nil
}

// End terminates the session from any non-ended state and removes it from
// the registry. Both bound participants are told.
func (s *CallService) End(ctx context.Context, roomID domain.RoomID) error {
	sess, err := s.registry.Update(roomID, func(sess *domain.Session) error {
		if sess.State == domain.StateEnded {
			return domain.ErrInvalidTransition
		}
		sess.State = domain.StateEnded
		return nil
	})
	if err != nil {
		s.logRejected("end", roomID, err)
		return err
	}

	s.media.Disconnect(roomID)
	s.registry.Remove(roomID)

	log.Info().Str("room_id", roomID.String()).Msg("Call ended")

	s.notify(sess.InitiatorID, domain.NewCallEnded(roomID))
	if sess.HostID != "" {
		s.notify(sess.HostID, domain.NewCallEnded(roomID))
	}
	s.pushCallList()
	return nil
}

// Disconnect maps a dropped signalling connection onto lifecycle events:
// the initiator going away ends their session, the host going away puts
// each of their in-progress calls on hold so they can reconnect and
// resume. A host may be bound to several rooms, so every bound session
// gets the mapped event.
func (s *CallService) Disconnect(ctx context.Context, participantID domain.ParticipantID) error {
	var errs []error
	for _, sess := range s.registry.SessionsOf(participantID) {
		switch participantID {
		case sess.InitiatorID:
			log.Info().Str("room_id", sess.RoomID.String()).Str("participant_id", participantID.String()).Msg("Initiator disconnected, ending call")
			errs = append(errs, s.End(ctx, sess.RoomID))
		case sess.HostID:
			if sess.State != domain.StateInProgress {
				// Already held; nothing to tear down.
				continue
			}
			log.Info().Str("room_id", sess.RoomID.String()).Str("participant_id", participantID.String()).Msg("Host disconnected, holding call")
			errs = append(errs, s.Hold(ctx, sess.RoomID))
		}
	}
	return errors.Join(errs...)
}

// CallList delivers the active-session projection to the requester. Hosts
// only.
func (s *CallService) CallList(ctx context.Context, requesterID domain.ParticipantID) error {
	role, err := s.directory.Role(requesterID)
	if err != nil || role != domain.RoleHost {
		log.Warn().Str("participant_id", requesterID.String()).Msg("call list rejected: not a host")
		return domain.ErrNotHost
	}

	s.notify(requesterID, domain.NewCallListUpdate(s.projection()))
	return nil
}

func (s *CallService) projection() []domain.CallEntry {
	active := s.registry.ListActive()
	entries := make([]domain.CallEntry, 0, len(active))
	for _, sess := range active {
		entries = append(entries, domain.CallEntry{
			RoomID: sess.RoomID,
			From:   sess.InitiatorID,
			Status: sess.State,
		})
	}
	return entries
}

// pushCallList refreshes every registered host's view after a transition,
// so the dashboard stays live without polling.
func (s *CallService) pushCallList() {
	ev := domain.NewCallListUpdate(s.projection())
	for _, ch := range s.directory.Hosts() {
		if err := ch.Send(ev); err != nil {
			log.Debug().Err(err).Str("participant_id", ch.ID().String()).Msg("dropping call list push")
		}
	}
}

func (s *CallService) notify(to domain.ParticipantID, ev domain.Event) {
	ch, err := s.directory.Lookup(to)
	if err != nil {
		// Receiver already disconnected; deliver-or-drop.
		log.Debug().Str("participant_id", to.String()).Str("event", string(ev.Type)).Msg("dropping notification, no channel")
		return
	}
	if err := ch.Send(ev); err != nil {
		log.Warn().Err(err).Str("participant_id", to.String()).Str("event", string(ev.Type)).Msg("failed to send notification")
	}
}

func (s *CallService) logRejected(event string, roomID domain.RoomID, err error) {
	if errors.Is(err, domain.ErrUnknownSession) {
		log.Warn().Str("event", event).Str("room_id", roomID.String()).Msg("event for unknown room dropped")
		return
	}
	log.Warn().Err(err).Str("event", event).Str("room_id", roomID.String()).Msg("event rejected")
}

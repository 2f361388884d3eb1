package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/frontdesk/switchboard/internal/core/domain"
	"github.com/frontdesk/switchboard/internal/core/port"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	sendBuffer   = 32
	writeTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: only for dev
	CheckOrigin: func(r *http.Request) bool { return true },
}

// registerer is the slice of the participant directory the transport needs.
type registerer interface {
	Register(id domain.ParticipantID, role domain.Role, ch port.Channel)
	Unregister(id domain.ParticipantID, ch port.Channel) bool
}

// wsChannel implements port.Channel over one websocket connection. Sends go
// through a buffered channel drained by a single write pump, since the
// service notifies from multiple goroutines.
type wsChannel struct {
	id   domain.ParticipantID
	conn *websocket.Conn
	send chan domain.Event
	done chan struct{}
}

func newWSChannel(id domain.ParticipantID, conn *websocket.Conn) *wsChannel {
	return &wsChannel{
		id:   id,
		conn: conn,
		send: make(chan domain.Event, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *wsChannel) ID() domain.ParticipantID {
	return c.id
}

func (c *wsChannel) Send(ev domain.Event) error {
	select {
	case <-c.done:
		return errors.New("channel closed")
	case c.send <- ev:
		return nil
	default:
		// A client that cannot drain its buffer is kicked rather than
		// allowed to stall the sender.
		_ = c.Close()
		return errors.New("send buffer full, dropping connection")
	}
}

func (c *wsChannel) Close() error {
	select {
	case <-c.done:
		return nil
	default:
		close(c.done)
	}
	return c.conn.Close()
}

func (c *wsChannel) writePump() {
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				log.Error().Err(err).Str("participant_id", c.id.String()).Msg("write error, dropping connection")
				_ = c.Close()
				return
			}
		}
	}
}

// HTTP handler
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	participantID := domain.ParticipantID(r.URL.Query().Get("userId"))
	if participantID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}
	role, ok := domain.ParseRole(r.URL.Query().Get("role"))
	if !ok {
		http.Error(w, "role must be host or guest", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}
	conn.SetReadLimit(h.ReadLimit)

	ch := newWSChannel(participantID, conn)

	l := log.With().Str("participant_id", participantID.String()).Str("role", string(role)).Logger()
	l.Info().Msg("New client connected")

	h.Directory.Register(participantID, role, ch)
	go ch.writePump()

	defer func() {
		l.Info().Msg("Client disconnected")
		// A connection replaced by a reconnect with the same identity does
		// not own the directory entry anymore; only the evicting teardown
		// maps to a disconnect event, or it would tear down the live
		// successor's session.
		if h.Directory.Unregister(participantID, ch) {
			if err := h.CallService.Disconnect(r.Context(), participantID); err != nil {
				l.Warn().Err(err).Msg("disconnect handling failed")
			}
		}
		_ = ch.Close()
	}()

	// listening for browser
	for {
		var req inboundMessage
		err := conn.ReadJSON(&req)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}

		h.dispatch(r, ch, participantID, req)
	}
}

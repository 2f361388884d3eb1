package port

import "github.com/frontdesk/switchboard/internal/core/domain"

// Channel is one participant's live signalling connection. Send may fail
// after disconnect; callers log and drop.
type Channel interface {
	ID() domain.ParticipantID
	Send(ev domain.Event) error
	Close() error
}

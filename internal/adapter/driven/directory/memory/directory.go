package memory

import (
	"sync"

	"github.com/frontdesk/switchboard/internal/core/domain"
	"github.com/frontdesk/switchboard/internal/core/port"
	"github.com/rs/zerolog/log"
)

type record struct {
	role    domain.Role
	channel port.Channel
}

// Directory maps participant identities to their live signalling channels.
//
// Implements port.ParticipantDirectory.
type Directory struct {
	mu      sync.RWMutex
	entries map[domain.ParticipantID]*record
}

func NewDirectory() *Directory {
	return &Directory{
		entries: make(map[domain.ParticipantID]*record),
	}
}

func (d *Directory) Register(id domain.ParticipantID, role domain.Role, ch port.Channel) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.entries[id]; ok {
		// Same identity reconnecting; the newer connection wins.
		log.Warn().Str("participant_id", id.String()).Msg("participant re-registered, replacing prior channel")
		_ = prev.channel.Close()
	}
	d.entries[id] = &record{role: role, channel: ch}
}

func (d *Directory) Unregister(id domain.ParticipantID, ch port.Channel) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.entries[id]
	if !ok || rec.channel != ch {
		// A replaced connection tearing down must not evict its successor.
		return false
	}
	delete(d.entries, id)
	return true
}

func (d *Directory) Lookup(id domain.ParticipantID) (port.Channel, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.entries[id]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	return rec.channel, nil
}

func (d *Directory) Role(id domain.ParticipantID) (domain.Role, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.entries[id]
	if !ok {
		return "", domain.ErrParticipantNotFound
	}
	return rec.role, nil
}

func (d *Directory) Hosts() []port.Channel {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]port.Channel, 0, len(d.entries))
	for _, rec := range d.entries {
		if rec.role == domain.RoleHost {
			out = append(out, rec.channel)
		}
	}
	return out
}

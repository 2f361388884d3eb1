package port

import "github.com/frontdesk/switchboard/internal/core/domain"

// ParticipantDirectory owns the identity-to-channel mapping. Sessions only
// reference identities; routing an event to a live connection goes through
// here.
type ParticipantDirectory interface {
	// Register binds an identity to its channel and role. Re-registering an
	// identity replaces the prior entry (client reconnect model).
	Register(id domain.ParticipantID, role domain.Role, ch Channel)

	// Unregister drops the entry, but only if ch is still the registered
	// channel; a connection replaced by a reconnect must not unregister its
	// successor on teardown. Reports whether an entry was actually removed,
	// so callers can tell a real disconnect from a stale teardown.
	Unregister(id domain.ParticipantID, ch Channel) bool

	// Lookup returns the live channel, or domain.ErrParticipantNotFound.
	Lookup(id domain.ParticipantID) (Channel, error)

	// Role reports the registered role for the identity.
	Role(id domain.ParticipantID) (domain.Role, error)

	// Hosts returns channels of all registered hosts, for call-list pushes.
	Hosts() []Channel
}

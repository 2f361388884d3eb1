package memory

import (
	"sync"
	"testing"

	"github.com/frontdesk/switchboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	r := NewRegistry()

	sess, err := r.Create("Guest-1")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.RoomID)
	assert.Equal(t, domain.ParticipantID("Guest-1"), sess.InitiatorID)
	assert.Equal(t, domain.StatePending, sess.State)
	assert.Empty(t, sess.HostID)
	assert.False(t, sess.CreatedAt.IsZero())

	other, err := r.Create("Guest-2")
	require.NoError(t, err)
	assert.NotEqual(t, sess.RoomID, other.RoomID)
}

func TestCreateOneCallPerInitiator(t *testing.T) {
	r := NewRegistry()

	first, err := r.Create("Guest-1")
	require.NoError(t, err)

	_, err = r.Create("Guest-1")
	assert.ErrorIs(t, err, domain.ErrCallInProgress)

	// Ending frees the initiator for a new call.
	r.Remove(first.RoomID)
	_, err = r.Create("Guest-1")
	assert.NoError(t, err)
}

func TestCreateIDCollision(t *testing.T) {
	r := NewRegistry()

	ids := []domain.RoomID{"room-a", "room-a", "room-b"}
	r.genID = func() domain.RoomID {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	first, err := r.Create("Guest-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomID("room-a"), first.RoomID)

	// First generation collides, the retry lands on a fresh ID.
	second, err := r.Create("Guest-2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomID("room-b"), second.RoomID)

	r.genID = func() domain.RoomID { return "room-a" }
	_, err = r.Create("Guest-3")
	assert.ErrorIs(t, err, domain.ErrDuplicateRoom)
}

func TestGetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	assert.ErrorIs(t, err, domain.ErrUnknownSession)
}

func TestUpdate(t *testing.T) {
	r := NewRegistry()
	sess, err := r.Create("Guest-1")
	require.NoError(t, err)

	updated, err := r.Update(sess.RoomID, func(s *domain.Session) error {
		s.State = domain.StateInProgress
		s.HostID = "Host-1"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StateInProgress, updated.State)

	stored, err := r.Get(sess.RoomID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateInProgress, stored.State)
	assert.Equal(t, domain.ParticipantID("Host-1"), stored.HostID)
}

func TestUpdateAbortsOnError(t *testing.T) {
	r := NewRegistry()
	sess, err := r.Create("Guest-1")
	require.NoError(t, err)

	_, err = r.Update(sess.RoomID, func(s *domain.Session) error {
		s.State = domain.StateEnded // mutation must not leak
		return domain.ErrInvalidTransition
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, err := r.Get(sess.RoomID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatePending, stored.State)
}

func TestUpdateUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Update("nope", func(s *domain.Session) error { return nil })
	assert.ErrorIs(t, err, domain.ErrUnknownSession)
}

func TestRemoveIdempotent(t *testing.T) {
	r := NewRegistry()
	sess, err := r.Create("Guest-1")
	require.NoError(t, err)

	r.Remove(sess.RoomID)
	r.Remove(sess.RoomID)

	_, err = r.Get(sess.RoomID)
	assert.ErrorIs(t, err, domain.ErrUnknownSession)
	assert.Empty(t, r.ListActive())
}

func TestListActiveOrder(t *testing.T) {
	r := NewRegistry()

	a, err := r.Create("Guest-1")
	require.NoError(t, err)
	b, err := r.Create("Guest-2")
	require.NoError(t, err)
	c, err := r.Create("Guest-3")
	require.NoError(t, err)

	active := r.ListActive()
	require.Len(t, active, 3)
	assert.Equal(t, a.RoomID, active[0].RoomID)
	assert.Equal(t, b.RoomID, active[1].RoomID)
	assert.Equal(t, c.RoomID, active[2].RoomID)

	// Ended sessions drop out of the projection even before removal.
	_, err = r.Update(b.RoomID, func(s *domain.Session) error {
		s.State = domain.StateEnded
		return nil
	})
	require.NoError(t, err)

	active = r.ListActive()
	require.Len(t, active, 2)
	assert.Equal(t, a.RoomID, active[0].RoomID)
	assert.Equal(t, c.RoomID, active[1].RoomID)
}

func TestSessionsOf(t *testing.T) {
	r := NewRegistry()
	sess, err := r.Create("Guest-1")
	require.NoError(t, err)

	found := r.SessionsOf("Guest-1")
	require.Len(t, found, 1)
	assert.Equal(t, sess.RoomID, found[0].RoomID)

	assert.Empty(t, r.SessionsOf("Host-1"))

	_, err = r.Update(sess.RoomID, func(s *domain.Session) error {
		s.HostID = "Host-1"
		s.State = domain.StateInProgress
		return nil
	})
	require.NoError(t, err)

	found = r.SessionsOf("Host-1")
	require.Len(t, found, 1)
	assert.Equal(t, sess.RoomID, found[0].RoomID)
}

func TestSessionsOfHostBoundToSeveralRooms(t *testing.T) {
	r := NewRegistry()

	a, err := r.Create("Guest-1")
	require.NoError(t, err)
	b, err := r.Create("Guest-2")
	require.NoError(t, err)

	for _, roomID := range []domain.RoomID{a.RoomID, b.RoomID} {
		_, err = r.Update(roomID, func(s *domain.Session) error {
			s.HostID = "Host-1"
			s.State = domain.StateInProgress
			return nil
		})
		require.NoError(t, err)
	}

	found := r.SessionsOf("Host-1")
	require.Len(t, found, 2)
	assert.Equal(t, a.RoomID, found[0].RoomID)
	assert.Equal(t, b.RoomID, found[1].RoomID)
}

func TestConcurrentTransitionsLinearized(t *testing.T) {
	r := NewRegistry()
	sess, err := r.Create("Guest-1")
	require.NoError(t, err)

	// Many racers try to claim the pending session; per-room locking must
	// let exactly one observe the pre-transition state.
	const racers = 32
	var wg sync.WaitGroup
	wins := make(chan int, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := r.Update(sess.RoomID, func(s *domain.Session) error {
				if s.State != domain.StatePending {
					return domain.ErrInvalidTransition
				}
				s.State = domain.StateInProgress
				return nil
			})
			if err == nil {
				wins <- n
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)
}

package memory

import (
	"sync"
	"time"

	"github.com/frontdesk/switchboard/internal/core/domain"
	"github.com/rs/zerolog/log"
)

type entry struct {
	mu   sync.Mutex
	sess domain.Session
}

// Registry is the in-memory session store. The map is guarded by a
// read-write lock; each session carries its own mutex so transitions for
// one room are linearized while unrelated rooms progress independently.
//
// Implements port.SessionRegistry.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*entry
	order []domain.RoomID

	genID func() domain.RoomID
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[domain.RoomID]*entry),
		genID: domain.NewRoomID,
		now:   time.Now,
	}
}

func (r *Registry) Create(initiatorID domain.ParticipantID) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.rooms {
		e.mu.Lock()
		busy := e.sess.InitiatorID == initiatorID && e.sess.State != domain.StateEnded
		e.mu.Unlock()
		if busy {
			return domain.Session{}, domain.ErrCallInProgress
		}
	}

	roomID := r.genID()
	if _, exists := r.rooms[roomID]; exists {
		// Random IDs should never collide; retry once, then treat as a defect.
		roomID = r.genID()
		if _, exists := r.rooms[roomID]; exists {
			log.Error().Str("room_id", roomID.String()).Msg("room id collision after retry")
			return domain.Session{}, domain.ErrDuplicateRoom
		}
	}

	sess := domain.Session{
		RoomID:      roomID,
		InitiatorID: initiatorID,
		State:       domain.StatePending,
		CreatedAt:   r.now(),
	}
	r.rooms[roomID] = &entry{sess: sess}
	r.order = append(r.order, roomID)
	return sess, nil
}

func (r *Registry) Get(roomID domain.RoomID) (domain.Session, error) {
	r.mu.RLock()
	e, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return domain.Session{}, domain.ErrUnknownSession
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess, nil
}

func (r *Registry) Update(roomID domain.RoomID, apply func(s *domain.Session) error) (domain.Session, error) {
	r.mu.RLock()
	e, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return domain.Session{}, domain.ErrUnknownSession
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// apply works on a copy; an error leaves the stored session untouched.
	next := e.sess
	if err := apply(&next); err != nil {
		return domain.Session{}, err
	}
	e.sess = next
	return next, nil
}

func (r *Registry) Remove(roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[roomID]; !ok {
		return
	}
	delete(r.rooms, roomID)
	for i, id := range r.order {
		if id == roomID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Registry) ListActive() []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Session, 0, len(r.order))
	for _, id := range r.order {
		e := r.rooms[id]
		e.mu.Lock()
		if e.sess.State != domain.StateEnded {
			out = append(out, e.sess)
		}
		e.mu.Unlock()
	}
	return out
}

func (r *Registry) SessionsOf(id domain.ParticipantID) []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Session
	for _, roomID := range r.order {
		e := r.rooms[roomID]
		e.mu.Lock()
		sess := e.sess
		e.mu.Unlock()
		if sess.State == domain.StateEnded {
			continue
		}
		if sess.InitiatorID == id || (sess.HostID != "" && sess.HostID == id) {
			out = append(out, sess)
		}
	}
	return out
}

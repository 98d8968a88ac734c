package core

import (
	"sync"

	"signalhub/internal/domain"

	"github.com/rs/zerolog/log"
)

type connEntry struct {
	Room domain.RoomID
	Sig  SignalConnection
}

// Registry tracks live connections and their current room assignment.
// It is the only owner of the connection→room back-reference; the room's
// member list lives in RoomTable.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnID]*connEntry)}
}

// Register adds a connection with no room. A duplicate id means the
// transport handed out the same id twice, which is a programming error;
// the caller should drop the new connection rather than the process.
func (r *Registry) Register(id domain.ConnID, sig SignalConnection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; ok {
		return domain.ErrDuplicateConnection
	}
	r.conns[id] = &connEntry{Sig: sig}
	log.Info().Str("module", "core.registry").Str("conn", string(id)).Msg("registered connection")
	return nil
}

// Unregister removes the connection entirely. The caller must already have
// removed it from any room.
func (r *Registry) Unregister(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
	log.Info().Str("module", "core.registry").Str("conn", string(id)).Msg("unregistered connection")
}

func (r *Registry) Conn(id domain.ConnID) (SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[id]; ok {
		return e.Sig, true
	}
	return nil, false
}

func (r *Registry) RoomOf(id domain.ConnID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok || e.Room == "" {
		return "", false
	}
	return e.Room, true
}

func (r *Registry) SetRoom(id domain.ConnID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.Room = room
		log.Info().Str("module", "core.registry").Str("conn", string(id)).Str("room", string(room)).Msg("updated room")
	}
}

func (r *Registry) ClearRoom(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.Room = ""
	}
}

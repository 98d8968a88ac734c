package core

import (
	"sync"

	"signalhub/internal/domain"

	"github.com/rs/zerolog/log"
)

// RoomTable owns the set of rooms. Members are kept in insertion order
// because all-users promises the join order to clients. A room entry is
// never empty: the last removal deletes it.
type RoomTable struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID][]domain.ConnID
}

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	RoomID      domain.RoomID `json:"roomId"`
	ClientCount int           `json:"clientCount"`
}

func NewRoomTable() *RoomTable {
	return &RoomTable{rooms: make(map[domain.RoomID][]domain.ConnID)}
}

func (t *RoomTable) Exists(id domain.RoomID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rooms[id]
	return ok
}

func (t *RoomTable) Create(id domain.RoomID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rooms[id]; ok {
		return domain.ErrRoomExists
	}
	t.rooms[id] = make([]domain.ConnID, 0, domain.RoomCapacity)
	log.Info().Str("module", "core.rooms").Str("room", string(id)).Msg("room created")
	return nil
}

// AddMember appends conn to the room. Returns added=false without error
// when conn is already a member (idempotent no-op).
func (t *RoomTable) AddMember(id domain.RoomID, conn domain.ConnID) (added bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	members, ok := t.rooms[id]
	if !ok {
		return false, domain.ErrRoomNotFound
	}
	if len(members) >= domain.RoomCapacity {
		return false, domain.ErrRoomFull
	}
	for _, m := range members {
		if m == conn {
			return false, nil
		}
	}
	t.rooms[id] = append(members, conn)
	log.Info().Str("module", "core.rooms").Str("room", string(id)).Str("conn", string(conn)).Int("count", len(members)+1).Msg("member added")
	return true, nil
}

// RemoveMember takes conn out of the room; the room is deleted the moment
// it becomes empty. Returns whether the room was deleted.
func (t *RoomTable) RemoveMember(id domain.RoomID, conn domain.ConnID) (deleted bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	members, ok := t.rooms[id]
	if !ok {
		return false
	}
	kept := members[:0]
	for _, m := range members {
		if m != conn {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		delete(t.rooms, id)
		log.Info().Str("module", "core.rooms").Str("room", string(id)).Msg("room deleted (empty)")
		return true
	}
	t.rooms[id] = kept
	return false
}

// Members returns a copy of the member sequence in insertion order.
func (t *RoomTable) Members(id domain.RoomID) []domain.ConnID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	members, ok := t.rooms[id]
	if !ok {
		return nil
	}
	out := make([]domain.ConnID, len(members))
	copy(out, members)
	return out
}

func (t *RoomTable) List() []RoomInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]RoomInfo, 0, len(t.rooms))
	for id, members := range t.rooms {
		out = append(out, RoomInfo{RoomID: id, ClientCount: len(members)})
	}
	return out
}

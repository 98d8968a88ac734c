package core

import (
	"fmt"
	"sync"

	"signalhub/internal/domain"

	"github.com/rs/zerolog/log"
)

// Coordinator implements the room membership transitions. All
// room-mutating transitions run under one mutex so that capacity checks,
// membership snapshots and the append/remove they guard stay atomic.
// Relay traffic never takes this lock.
//
// A connection whose send buffer overflows during a transition is kicked:
// peers rely on every user-joined/user-left reaching them, so a consumer
// that can no longer keep up is disconnected rather than left with a
// diverged view of the room.
type Coordinator struct {
	mu       sync.Mutex
	registry *Registry
	rooms    *RoomTable
}

func NewCoordinator(registry *Registry, rooms *RoomTable) *Coordinator {
	return &Coordinator{registry: registry, rooms: rooms}
}

// Create makes a new room with the caller as sole member. If the caller is
// still in another room it leaves that room first; errors are reported
// before any state changes, so a failed create leaves the old membership
// intact.
func (c *Coordinator) Create(id domain.ConnID, roomID domain.RoomID) {
	var slow []domain.ConnID
	c.create(id, roomID, &slow)
	c.kickSlow(slow)
}

func (c *Coordinator) create(id domain.ConnID, roomID domain.RoomID, slow *[]domain.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rooms.Exists(roomID) {
		c.emit(id, ErrorEvent{EventError, fmt.Sprintf("Room %s already exists. Please join the room instead.", roomID)}, slow)
		return
	}
	if prior, ok := c.registry.RoomOf(id); ok {
		c.leaveLocked(id, prior, "moved out of", slow)
	}
	if err := c.rooms.Create(roomID); err != nil {
		c.emit(id, ErrorEvent{EventError, err.Error()}, slow)
		return
	}
	if _, err := c.rooms.AddMember(roomID, id); err != nil {
		c.emit(id, ErrorEvent{EventError, err.Error()}, slow)
		return
	}
	c.registry.SetRoom(id, roomID)
	log.Info().Str("module", "core.coord").Str("conn", string(id)).Str("room", string(roomID)).Msg("created room")
	c.emit(id, RoomEvent{EventRoomCreated, roomID}, slow)
}

// Join adds the caller to an existing room. The caller is confirmed with
// room-joined before any peer learns about it, then receives all-users so
// it can initiate offers, and each prior member gets user-joined so it
// expects one.
func (c *Coordinator) Join(id domain.ConnID, roomID domain.RoomID) {
	var slow []domain.ConnID
	c.join(id, roomID, &slow)
	c.kickSlow(slow)
}

func (c *Coordinator) join(id domain.ConnID, roomID domain.RoomID, slow *[]domain.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rooms.Exists(roomID) {
		c.emit(id, ErrorEvent{EventError, fmt.Sprintf("Room %s does not exist. Please create the room first.", roomID)}, slow)
		return
	}
	existing := c.rooms.Members(roomID)
	if len(existing) >= domain.RoomCapacity {
		c.emit(id, ErrorEvent{EventError, fmt.Sprintf("Room %s is full. Please join another room.", roomID)}, slow)
		return
	}
	for _, m := range existing {
		if m == id {
			// Already a member: confirm, but no peer discovery again.
			c.emit(id, RoomEvent{EventRoomJoined, roomID}, slow)
			return
		}
	}
	if prior, ok := c.registry.RoomOf(id); ok {
		c.leaveLocked(id, prior, "moved out of", slow)
	}
	if _, err := c.rooms.AddMember(roomID, id); err != nil {
		c.emit(id, ErrorEvent{EventError, err.Error()}, slow)
		return
	}
	c.registry.SetRoom(id, roomID)
	log.Info().Str("module", "core.coord").Str("conn", string(id)).Str("room", string(roomID)).Int("peers", len(existing)).Msg("joined room")

	c.emit(id, RoomEvent{EventRoomJoined, roomID}, slow)
	if len(existing) > 0 {
		c.emit(id, AllUsersEvent{EventAllUsers, existing}, slow)
		for _, peer := range existing {
			c.emit(peer, PresenceEvent{EventUserJoined, id}, slow)
		}
	}
}

// Leave handles an explicit leave-room request. Unknown rooms and
// non-members are silent no-ops: leaving must never fail.
func (c *Coordinator) Leave(id domain.ConnID, roomID domain.RoomID) {
	var slow []domain.ConnID
	c.mu.Lock()
	c.leaveLocked(id, roomID, "left", &slow)
	c.mu.Unlock()
	c.kickSlow(slow)
}

// Disconnect is the transport telling us the connection is gone: leave
// whatever room it was in, then drop it from the registry.
func (c *Coordinator) Disconnect(id domain.ConnID) {
	var slow []domain.ConnID
	c.mu.Lock()
	if roomID, ok := c.registry.RoomOf(id); ok {
		c.leaveLocked(id, roomID, "disconnected from", &slow)
	}
	c.mu.Unlock()
	c.registry.Unregister(id)
	c.kickSlow(slow)
}

// Kick force-disconnects a connection that can no longer keep up, for
// callers outside a membership transition (the relay router).
func (c *Coordinator) Kick(id domain.ConnID) {
	c.kickSlow([]domain.ConnID{id})
}

func (c *Coordinator) leaveLocked(id domain.ConnID, roomID domain.RoomID, reason string, slow *[]domain.ConnID) {
	if roomID == "" {
		return
	}
	isMember := false
	for _, m := range c.rooms.Members(roomID) {
		if m == id {
			isMember = true
			break
		}
	}
	if !isMember {
		return
	}
	c.rooms.RemoveMember(roomID, id)
	c.registry.ClearRoom(id)
	log.Info().Str("module", "core.coord").Str("conn", string(id)).Str("room", string(roomID)).Str("reason", reason).Msg("left room")
	for _, peer := range c.rooms.Members(roomID) {
		c.emit(peer, PresenceEvent{EventUserLeft, id}, slow)
	}
}

func (c *Coordinator) emit(id domain.ConnID, v any, slow *[]domain.ConnID) {
	conn, ok := c.registry.Conn(id)
	if !ok {
		return
	}
	if err := send(conn, v); err != nil {
		log.Warn().Err(err).Str("module", "core.coord").Str("conn", string(id)).Msg("send overflow, kicking connection")
		*slow = append(*slow, id)
	}
}

// kickSlow tears down slow consumers outside the transition lock. Each
// kick emits user-left to the victim's peers, which can itself overflow
// another slow consumer, so rounds repeat until no new victims appear.
// Already-unregistered ids are skipped, so repeats terminate.
func (c *Coordinator) kickSlow(slow []domain.ConnID) {
	for len(slow) > 0 {
		var next []domain.ConnID
		for _, id := range slow {
			conn, ok := c.registry.Conn(id)
			if !ok {
				continue
			}
			log.Warn().Str("module", "core.coord").Str("conn", string(id)).Msg("disconnecting slow consumer")
			c.mu.Lock()
			if roomID, ok := c.registry.RoomOf(id); ok {
				c.leaveLocked(id, roomID, "kicked from", &next)
			}
			c.mu.Unlock()
			c.registry.Unregister(id)
			conn.Close()
		}
		slow = next
	}
}

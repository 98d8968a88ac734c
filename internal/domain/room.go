// Package domain contains entity types without logic, just meta-data.
package domain

import "errors"

type RoomID string

// RoomCapacity is the maximum number of connections a room may hold.
// Fixed by the signaling protocol, not configurable.
const RoomCapacity = 10

var (
	ErrRoomExists   = errors.New("room already exists")
	ErrRoomNotFound = errors.New("room does not exist")
	ErrRoomFull     = errors.New("room is full")
)

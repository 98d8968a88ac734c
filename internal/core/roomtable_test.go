package core

import (
	"fmt"
	"testing"

	"signalhub/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestRoomTableCreateAndExists(t *testing.T) {
	tbl := NewRoomTable()

	require.False(t, tbl.Exists("r1"))
	require.NoError(t, tbl.Create("r1"))
	require.True(t, tbl.Exists("r1"))

	err := tbl.Create("r1")
	require.ErrorIs(t, err, domain.ErrRoomExists)
}

func TestRoomTableAddMemberOrderAndIdempotence(t *testing.T) {
	tbl := NewRoomTable()
	require.NoError(t, tbl.Create("r1"))

	added, err := tbl.AddMember("r1", "a")
	require.NoError(t, err)
	require.True(t, added)

	added, err = tbl.AddMember("r1", "b")
	require.NoError(t, err)
	require.True(t, added)

	// Re-adding an existing member changes nothing.
	added, err = tbl.AddMember("r1", "a")
	require.NoError(t, err)
	require.False(t, added)

	require.Equal(t, []domain.ConnID{"a", "b"}, tbl.Members("r1"))
}

func TestRoomTableAddMemberUnknownRoom(t *testing.T) {
	tbl := NewRoomTable()
	_, err := tbl.AddMember("nope", "a")
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRoomTableCapacity(t *testing.T) {
	tbl := NewRoomTable()
	require.NoError(t, tbl.Create("r1"))

	for i := 0; i < domain.RoomCapacity; i++ {
		added, err := tbl.AddMember("r1", domain.ConnID(fmt.Sprintf("c%d", i)))
		require.NoError(t, err)
		require.True(t, added)
	}

	_, err := tbl.AddMember("r1", "overflow")
	require.ErrorIs(t, err, domain.ErrRoomFull)
	require.Len(t, tbl.Members("r1"), domain.RoomCapacity)
}

func TestRoomTableRemoveMemberDeletesEmptyRoom(t *testing.T) {
	tbl := NewRoomTable()
	require.NoError(t, tbl.Create("r1"))
	_, err := tbl.AddMember("r1", "a")
	require.NoError(t, err)
	_, err = tbl.AddMember("r1", "b")
	require.NoError(t, err)

	deleted := tbl.RemoveMember("r1", "a")
	require.False(t, deleted)
	require.Equal(t, []domain.ConnID{"b"}, tbl.Members("r1"))

	deleted = tbl.RemoveMember("r1", "b")
	require.True(t, deleted)
	require.False(t, tbl.Exists("r1"))

	// Removing from a deleted room is a no-op.
	require.False(t, tbl.RemoveMember("r1", "b"))
}

func TestRoomTableMembersReturnsCopy(t *testing.T) {
	tbl := NewRoomTable()
	require.NoError(t, tbl.Create("r1"))
	_, err := tbl.AddMember("r1", "a")
	require.NoError(t, err)
	_, err = tbl.AddMember("r1", "b")
	require.NoError(t, err)

	snapshot := tbl.Members("r1")
	snapshot[0] = "mangled"
	require.Equal(t, []domain.ConnID{"a", "b"}, tbl.Members("r1"))
}

func TestRoomTableList(t *testing.T) {
	tbl := NewRoomTable()
	require.Empty(t, tbl.List())

	require.NoError(t, tbl.Create("r1"))
	_, err := tbl.AddMember("r1", "a")
	require.NoError(t, err)

	list := tbl.List()
	require.Len(t, list, 1)
	require.Equal(t, domain.RoomID("r1"), list[0].RoomID)
	require.Equal(t, 1, list[0].ClientCount)
}

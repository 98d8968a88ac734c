package core

import (
	"encoding/json"
	"testing"

	"signalhub/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestRelayOfferCarriesCallerField(t *testing.T) {
	fx := newFixture(t, "A", "B")
	router := NewRouter(fx.registry, fx.coord)

	sdp := json.RawMessage(`{"type":"offer","sdp":"v=0..."}`)
	router.RelayDescription(EventOffer, "A", "B", sdp)

	events := fx.conns["B"].events(t)
	require.Len(t, events, 1)
	require.Equal(t, "offer", events[0]["type"])
	require.Equal(t, "A", events[0]["caller"])

	// Payload forwarded untouched.
	raw := fx.conns["B"].frames[0]
	var ev DescriptionEvent
	require.NoError(t, json.Unmarshal(raw, &ev))
	require.JSONEq(t, string(sdp), string(ev.SDP))
}

func TestRelayAnswer(t *testing.T) {
	fx := newFixture(t, "A", "B")
	router := NewRouter(fx.registry, fx.coord)

	router.RelayDescription(EventAnswer, "B", "A", json.RawMessage(`"sdp-text"`))

	events := fx.conns["A"].events(t)
	require.Len(t, events, 1)
	require.Equal(t, "answer", events[0]["type"])
	require.Equal(t, "B", events[0]["caller"])
}

func TestRelayCandidateCarriesFromField(t *testing.T) {
	fx := newFixture(t, "A", "B")
	router := NewRouter(fx.registry, fx.coord)

	router.RelayCandidate("A", "B", json.RawMessage(`{"candidate":"candidate:1"}`))

	events := fx.conns["B"].events(t)
	require.Len(t, events, 1)
	require.Equal(t, "ice-candidate", events[0]["type"])
	require.Equal(t, "A", events[0]["from"])
	_, hasCaller := events[0]["caller"]
	require.False(t, hasCaller)
}

func TestRelayToUnknownTargetIsDropped(t *testing.T) {
	fx := newFixture(t, "A")
	router := NewRouter(fx.registry, fx.coord)

	router.RelayDescription(EventOffer, "A", "ghost", json.RawMessage(`"x"`))
	router.RelayCandidate("A", "ghost", json.RawMessage(`"x"`))

	// No error back to the sender either; stale targets are a no-op.
	require.Empty(t, fx.conns["A"].events(t))
}

func TestRelaySlowTargetIsKicked(t *testing.T) {
	fx := newFixture(t, "A")
	slow := &flakyConn{}
	require.NoError(t, fx.registry.Register("slow", slow))
	fx.coord.Create("A", "r1")
	fx.coord.Join("slow", "r1")
	slow.setFail()
	fx.conns["A"].reset()

	router := NewRouter(fx.registry, fx.coord)
	router.RelayDescription(EventOffer, "A", "slow", json.RawMessage(`"x"`))

	require.True(t, slow.isClosed())
	_, ok := fx.registry.Conn("slow")
	require.False(t, ok)
	require.Equal(t, []domain.ConnID{"A"}, fx.rooms.Members("r1"))

	events := fx.conns["A"].events(t)
	require.Len(t, events, 1)
	require.Equal(t, "user-left", events[0]["type"])
	require.Equal(t, "slow", events[0]["id"])
}

func TestRelayIgnoresRoomMembership(t *testing.T) {
	fx := newFixture(t, "A", "B")
	coord := fx.coord
	coord.Create("A", "r1")
	fx.conns["A"].reset()

	// B is in no room at all; the router does not care.
	router := NewRouter(fx.registry, fx.coord)
	router.RelayDescription(EventOffer, "B", "A", json.RawMessage(`"x"`))

	events := fx.conns["A"].events(t)
	require.Len(t, events, 1)
	require.Equal(t, "offer", events[0]["type"])
	require.Equal(t, "B", events[0]["caller"])
}

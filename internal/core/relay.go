package core

import (
	"encoding/json"

	"signalhub/internal/domain"

	"github.com/rs/zerolog/log"
)

// Router forwards session-negotiation payloads to a target connection.
// It is stateless: targets are resolved by connection id alone, with no
// room membership check, and payloads are never parsed. A target whose
// send buffer overflows is handed to the coordinator for disconnection.
type Router struct {
	registry *Registry
	coord    *Coordinator
}

func NewRouter(registry *Registry, coord *Coordinator) *Router {
	return &Router{registry: registry, coord: coord}
}

// RelayDescription forwards an offer or answer. kind must be EventOffer or
// EventAnswer. Stale or unknown targets are dropped without an error:
// peers routinely race relays against disconnects.
func (r *Router) RelayDescription(kind string, from, target domain.ConnID, sdp json.RawMessage) {
	conn, ok := r.registry.Conn(target)
	if !ok {
		log.Debug().Str("module", "core.relay").Str("kind", kind).Str("from", string(from)).Str("target", string(target)).Msg("dropped relay to unknown target")
		return
	}
	log.Debug().Str("module", "core.relay").Str("kind", kind).Str("from", string(from)).Str("target", string(target)).Msg("relaying description")
	if err := send(conn, DescriptionEvent{Type: kind, SDP: sdp, Caller: from}); err != nil {
		log.Warn().Err(err).Str("module", "core.relay").Str("target", string(target)).Msg("relay overflow, kicking target")
		r.coord.Kick(target)
	}
}

// RelayCandidate forwards an ICE candidate.
func (r *Router) RelayCandidate(from, target domain.ConnID, candidate json.RawMessage) {
	conn, ok := r.registry.Conn(target)
	if !ok {
		log.Debug().Str("module", "core.relay").Str("from", string(from)).Str("target", string(target)).Msg("dropped candidate to unknown target")
		return
	}
	if err := send(conn, CandidateEvent{Type: EventICECandidate, Candidate: candidate, From: from}); err != nil {
		log.Warn().Err(err).Str("module", "core.relay").Str("target", string(target)).Msg("candidate overflow, kicking target")
		r.coord.Kick(target)
	}
}

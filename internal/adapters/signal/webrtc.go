package signal

import (
	"encoding/json"

	"signalhub/internal/core"
	"signalhub/internal/domain"

	"github.com/rs/zerolog/log"
)

// descriptionPayload carries an offer or answer. The sdp is opaque to the
// server and forwarded byte-for-byte.
type descriptionPayload struct {
	Type   string          `json:"type"`
	Target string          `json:"target"`
	SDP    json.RawMessage `json:"sdp"`
}

type candidatePayload struct {
	Type      string          `json:"type"`
	Target    string          `json:"target"`
	Candidate json.RawMessage `json:"candidate"`
}

func (ctl *SignalWSController) handleOffer(sid domain.ConnID, data []byte) {
	var p descriptionPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Target == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad offer payload")
		return
	}
	ctl.Router.RelayDescription(core.EventOffer, sid, domain.ConnID(p.Target), p.SDP)
}

func (ctl *SignalWSController) handleAnswer(sid domain.ConnID, data []byte) {
	var p descriptionPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Target == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad answer payload")
		return
	}
	ctl.Router.RelayDescription(core.EventAnswer, sid, domain.ConnID(p.Target), p.SDP)
}

func (ctl *SignalWSController) handleCandidate(sid domain.ConnID, data []byte) {
	var p candidatePayload
	if err := json.Unmarshal(data, &p); err != nil || p.Target == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad candidate payload")
		return
	}
	ctl.Router.RelayCandidate(sid, domain.ConnID(p.Target), p.Candidate)
}

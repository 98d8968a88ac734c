package signal

import (
	"encoding/json"

	"signalhub/internal/domain"

	"github.com/rs/zerolog/log"
)

type roomPayload struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

func (ctl *SignalWSController) handleCreate(
	sid domain.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	var p roomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad create payload")
		ctl.sendJSON(conn, map[string]any{
			"type":  "error",
			"error": "bad_payload",
		})
		return
	}
	if !ctl.limiter.Allow(sid) {
		ctl.sendJSON(conn, map[string]any{
			"type":  "error",
			"error": "too many room requests, slow down",
		})
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Msg("create")
	ctl.Coord.Create(sid, domain.RoomID(p.RoomID))
}

func (ctl *SignalWSController) handleJoin(
	sid domain.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	var p roomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendJSON(conn, map[string]any{
			"type":  "error",
			"error": "bad_payload",
		})
		return
	}
	if !ctl.limiter.Allow(sid) {
		ctl.sendJSON(conn, map[string]any{
			"type":  "error",
			"error": "too many room requests, slow down",
		})
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Msg("join")
	ctl.Coord.Join(sid, domain.RoomID(p.RoomID))
}

// handleLeave leaves the named room without dropping the connection.
func (ctl *SignalWSController) handleLeave(
	sid domain.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	var p roomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad leave payload")
		ctl.sendJSON(conn, map[string]any{
			"type":  "error",
			"error": "bad_payload",
		})
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Msg("leave")
	ctl.Coord.Leave(sid, domain.RoomID(p.RoomID))
}

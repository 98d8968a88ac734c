package signal

import "signalhub/internal/domain"

func (ctl *SignalWSController) handlePing(
	conn *WsSignalConn,
) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	ctl.sendJSON(conn, resp)
}

func (ctl *SignalWSController) handleWhoAmI(
	sid domain.ConnID,
	conn *WsSignalConn,
) {
	resp := struct {
		Type string        `json:"type"`
		ID   domain.ConnID `json:"id"`
	}{
		Type: "whoami",
		ID:   sid,
	}
	ctl.sendJSON(conn, resp)
}

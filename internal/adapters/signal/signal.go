package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"signalhub/internal/config"
	"signalhub/internal/core"
	"signalhub/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var ErrBackpressure = errors.New("backpressure")

type SignalWSController struct {
	Cfg      *config.Config
	Coord    *core.Coordinator
	Router   *core.Router
	Registry *core.Registry

	limiter *RoomRateLimiter
}

func NewSignalWSController(cfg *config.Config, coord *core.Coordinator, router *core.Router, registry *core.Registry) *SignalWSController {
	return &SignalWSController{
		Cfg:      cfg,
		Coord:    coord,
		Router:   router,
		Registry: registry,
		limiter:  NewRoomRateLimiter(cfg.RoomRateLimit, cfg.RoomRateInterval),
	}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and runs the connection's pumps. The
// connection id is minted here and is what peers will address relays to.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.Cfg.ReadLimit)

	sid := domain.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	if err := ctl.Registry.Register(sid, conn); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("register connection")
		conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(ctx)

	go ctl.writePump(ctx, conn)
	go func() {
		defer func() {
			cancel()
			ctl.Coord.Disconnect(sid)
			ctl.limiter.Forget(sid)
			conn.Close()
		}()
		ctl.readPump(ctx, sid, conn)
	}()

	// Clients need their own id before they can be addressed by peers.
	ctl.handleWhoAmI(sid, conn)
}

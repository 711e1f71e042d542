package gateway

import (
	"net/http"
	"sync"
	"time"

	"liars-roulette/apps/server/internal/codec"
	"liars-roulette/apps/server/internal/session"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: Restrict in production
	},
}

// Connection represents a WebSocket client. Its uuid doubles as the
// player ID for the whole lifetime of the socket: a reconnect is a new
// player.
type Connection struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan []byte
	Gateway  *Gateway
	LastPing time.Time
}

// Gateway manages WebSocket connections and feeds the session actor.
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	session     *session.Session
	log         *zap.Logger
}

// New creates a Gateway. The session is attached afterwards because it
// needs the gateway's send callbacks at construction time.
func New() *Gateway {
	return &Gateway{
		connections: make(map[string]*Connection),
		log:         zap.L().Named("gateway"),
	}
}

// AttachSession wires the session the gateway forwards commands to.
func (g *Gateway) AttachSession(s *session.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = s
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	c := &Connection{
		ID:       uuid.NewString(),
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Gateway:  g,
		LastPing: time.Now(),
	}

	g.mu.Lock()
	g.connections[c.ID] = c
	total := len(g.connections)
	g.mu.Unlock()

	g.log.Info("client connected", zap.String("id", c.ID), zap.Int("total", total))

	go c.readPump()
	go c.writePump()
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.LastPing = time.Now()
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Gateway.log.Warn("read error", zap.String("id", c.ID), zap.Error(err))
			}
			break
		}
		if messageType == websocket.TextMessage {
			c.handleMessage(message)
		}
	}
}

func (c *Connection) handleMessage(raw []byte) {
	env, err := codec.Decode(raw)
	if err != nil {
		c.Gateway.log.Debug("bad frame", zap.String("id", c.ID), zap.Error(err))
		c.sendError("invalid message format")
		return
	}

	sess := c.Gateway.currentSession()
	if sess == nil {
		c.sendError("server not ready")
		return
	}

	e := session.Event{PlayerID: c.ID}
	switch env.Cmd {
	case codec.CmdJoin:
		e.Type = session.EventJoin
		e.Name = env.Name
	case codec.CmdAddAI:
		e.Type = session.EventAddAI
		e.Difficulty = env.Difficulty
	case codec.CmdRemoveAI:
		e.Type = session.EventRemoveAI
	case codec.CmdStartGame:
		e.Type = session.EventStartGame
	case codec.CmdPlayCards:
		e.Type = session.EventPlayCards
		e.Indices = env.Indices
	case codec.CmdChallenge:
		e.Type = session.EventChallenge
	case codec.CmdKingJudgment:
		e.Type = session.EventKingJudgment
	case codec.CmdPullTrigger:
		e.Type = session.EventPullTrigger
	default:
		c.Gateway.log.Debug("unknown command", zap.String("cmd", env.Cmd))
		c.sendError("unknown command")
		return
	}

	// Rule violations are dropped silently; the session has already sent
	// user-visible errors for the cases that warrant them.
	if err := sess.SubmitEvent(e); err != nil {
		c.Gateway.log.Debug("command rejected",
			zap.String("id", c.ID), zap.String("cmd", env.Cmd), zap.Error(err))
	}
}

func (c *Connection) sendError(msg string) {
	data, err := codec.Encode(codec.MsgError, 0, map[string]string{"message": msg})
	if err != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) currentSession() *session.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	delete(g.connections, c.ID)
	total := len(g.connections)
	sess := g.session
	g.mu.Unlock()

	g.log.Info("client disconnected", zap.String("id", c.ID), zap.Int("total", total))

	// The seat leaves with the socket. Unknown IDs (never joined) are a
	// no-op inside the session.
	if sess != nil {
		_ = sess.SubmitEvent(session.Event{Type: session.EventLeave, PlayerID: c.ID})
	}
}

// SendTo delivers a frame to one connection; unknown IDs are dropped.
func (g *Gateway) SendTo(playerID string, data []byte) {
	g.mu.RLock()
	c := g.connections[playerID]
	g.mu.RUnlock()

	if c != nil {
		select {
		case c.Send <- data:
		default:
			// Drop if buffer full
		}
	}
}

// Broadcast sends a frame to all connections.
func (g *Gateway) Broadcast(data []byte) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, c := range g.connections {
		select {
		case c.Send <- data:
		default:
			// Drop message if buffer full
		}
	}
}

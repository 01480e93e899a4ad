package care

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pet-companion/internal/domain/activity"
	"pet-companion/internal/platform/logger"

	"github.com/gorilla/websocket"
)

const (
	// Tiempo máximo para escribir un mensaje.
	writeWait = 10 * time.Second
	// Tiempo máximo sin recibir pong.
	pongWait = 60 * time.Second
	// Debe ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Los mensajes entrantes son solo {"action": "..."}.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Los clientes son headsets/apps nativas, no browsers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamCommand es lo que el cliente puede mandar por el socket.
type streamCommand struct {
	Action string `json:"action"`
}

// streamError se envía cuando un comando no se pudo aplicar.
type streamError struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
}

type streamClient struct {
	conn    *websocket.Conn
	engine  *Engine
	updates <-chan Snapshot
	replies chan []byte
	done    chan struct{}
	log     logger.Logger
}

// streamHandler godoc
// @Summary Stream de snapshots
// @Description WebSocket. Envía el snapshot actual al conectar y luego cada cambio (tick, acción, select, close). Acepta comandos {"action":"feed"}.
// @Tags session
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 101 {object} snapshotResponse
// @Failure 401 {string} string "unauthorized"
// @Router /session/stream [get]
func streamHandler(mgr *Manager, activitySvc *activity.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		// unsubscribe también libera el engine si quedó inactivo.
		e, updates, unsubscribe, err := mgr.Subscribe(userID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			unsubscribe()
			log.Warn("websocket upgrade failed", map[string]any{"user": userID, "error": err})
			return
		}

		c := &streamClient{
			conn:    conn,
			engine:  e,
			updates: updates,
			replies: make(chan []byte, 8),
			done:    make(chan struct{}),
			log:     log.With(map[string]any{"user": userID}),
		}

		go c.writePump(unsubscribe)
		c.readPump(func(a Action) error {
			_, err := applyAction(context.Background(), mgr, activitySvc, log, userID, a)
			return err
		})
	}
}

// readPump procesa pongs y comandos hasta que el cliente se desconecta.
func (c *streamClient) readPump(act func(Action) error) {
	defer func() {
		close(c.done)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read failed", map[string]any{"error": err})
			}
			return
		}

		var cmd streamCommand
		if err := json.Unmarshal(msg, &cmd); err != nil {
			c.reply(streamError{Error: "invalid json"})
			continue
		}

		a, err := ParseAction(cmd.Action)
		if err != nil {
			c.reply(streamError{Error: "unknown action", Action: cmd.Action})
			continue
		}
		// El snapshot resultante llega por la suscripción.
		if err := act(a); err != nil {
			c.reply(streamError{Error: err.Error(), Action: cmd.Action})
		}
	}
}

func (c *streamClient) reply(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.replies <- b:
	default:
		// cliente que no lee: se pierde la respuesta, no el stream
	}
}

// writePump es el único que escribe en la conexión.
func (c *streamClient) writePump(unsubscribe func()) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		unsubscribe()
		c.conn.Close()
	}()

	if err := c.writeSnapshot(c.engine.Snapshot()); err != nil {
		return
	}

	for {
		select {
		case <-c.done:
			return
		case s, ok := <-c.updates:
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.writeSnapshot(s); err != nil {
				return
			}
		case b := <-c.replies:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *streamClient) writeSnapshot(s Snapshot) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(toSnapshotResponse(s))
}

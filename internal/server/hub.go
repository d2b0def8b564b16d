package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hexcardgame/hexcard-server-go/internal/game"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/watchers"
	"go.uber.org/zap"
)

const (
	sendBuffer = 256
	writeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // observers are served from any origin
	},
}

// Client is one websocket connection.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans journal entries out to every connected client and applies the
// commands clients send through the manager.
type Hub struct {
	manager *game.Manager
	journal *watchers.Journal
	logger  *zap.Logger

	clients    map[*Client]bool
	broadcast  chan []byte
	replies    chan reply
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// reply is a frame for a single client. It goes through Run so it is never
// sent on a channel the hub already closed.
type reply struct {
	client *Client
	data   []byte
}

// NewHub creates a hub that follows journal. Run must be called for
// anything to be delivered.
func NewHub(manager *game.Manager, journal *watchers.Journal, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		manager:    manager,
		journal:    journal,
		logger:     logger,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, sendBuffer),
		replies:    make(chan reply, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
	return h
}

// Run delivers broadcasts until ctx is cancelled, then disconnects every
// client.
func (h *Hub) Run(ctx context.Context) {
	cancel := h.journal.Follow(h.publish)
	defer cancel()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("websocket client registered", zap.Int("clients", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("websocket client unregistered", zap.Int("clients", len(h.clients)))
			}

		case r := <-h.replies:
			if h.clients[r.client] {
				select {
				case r.client.send <- r.data:
				default:
					h.logger.Warn("websocket client send buffer full")
				}
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.logger.Warn("dropping slow websocket client")
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// publish runs on the goroutine that mutated the game.
func (h *Hub) publish(entry watchers.Entry) {
	message, err := json.Marshal(WSMessage{Type: MessageEvent, SessionID: entry.Session, Data: entry})
	if err != nil {
		h.logger.Error("failed to encode journal entry", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// ServeWS upgrades the request and attaches the connection to the hub. The
// client first receives the retained history and a state snapshot.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{conn: conn, send: make(chan []byte, sendBuffer)}

	// the snapshot is queued before the client is registered, so no event
	// can overtake it
	registered := true
	h.manager.Do(func(g *game.Game) {
		client.send <- h.encode(WSMessage{Type: MessageHistory, SessionID: g.ID(), Data: h.journal.Entries()})
		client.send <- h.encode(WSMessage{Type: MessageState, SessionID: g.ID(), Data: NewStateView(g)})
		select {
		case h.register <- client:
		case <-h.done:
			registered = false
		}
	})
	if !registered {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (h *Hub) encode(msg WSMessage) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to encode websocket message", zap.String("type", msg.Type), zap.Error(err))
		data, _ = json.Marshal(WSMessage{Type: MessageError, Data: "encoding failed"})
	}
	return data
}

func (h *Hub) sendTo(client *Client, msg WSMessage) {
	select {
	case h.replies <- reply{client: client, data: h.encode(msg)}:
	case <-h.done:
	}
}

var errUnknownCommand = errors.New("unknown command")

func (h *Hub) handleMessage(client *Client, msg WSMessage) {
	h.logger.Debug("websocket message received",
		zap.String("type", msg.Type),
		zap.String("player_id", msg.PlayerID),
	)

	var (
		result  CommandResult
		state   StateView
		session string
		err     error
	)
	h.manager.Do(func(g *game.Game) {
		session = g.ID()
		if msg.Type == MessageState {
			state = NewStateView(g)
			return
		}
		result.Command = msg.Type
		result.Applied, err = applyCommand(g, msg)
	})

	switch {
	case err != nil:
		h.sendTo(client, WSMessage{Type: MessageError, SessionID: session, Data: err.Error()})
	case msg.Type == MessageState:
		h.sendTo(client, WSMessage{Type: MessageState, SessionID: session, Data: state})
	default:
		h.sendTo(client, WSMessage{Type: MessageResult, SessionID: session, Data: result})
	}
}

// applyCommand maps a client frame to a guarded game operation. Malformed
// frames are reported as errors and never reach the game.
func applyCommand(g *game.Game, msg WSMessage) (bool, error) {
	switch msg.Type {
	case "pre_start":
		return g.PreStart(), nil
	case "start":
		return g.Start(), nil
	case "start_turn":
		return g.StartPlayerTurn(), nil
	case "finish_turn":
		return g.FinishPlayerTurn(), nil
	}

	id, err := card.ParsePlayerID(msg.PlayerID)
	if err != nil {
		if msg.Type == "draw" || msg.Type == "play" || msg.Type == "ai_turn" {
			return false, err
		}
		return false, fmt.Errorf("%w %q", errUnknownCommand, msg.Type)
	}

	switch msg.Type {
	case "draw":
		return g.DrawCard(id), nil
	case "play":
		for _, c := range g.Hand(id).Cards() {
			if c.ID.String() == msg.CardID {
				return g.PlayCard(id, c), nil
			}
		}
		return false, nil
	case "ai_turn":
		return g.ExecuteAiTurn(id), nil
	}
	return false, fmt.Errorf("%w %q", errUnknownCommand, msg.Type)
}

func (c *Client) readPump(hub *Hub) {
	defer func() {
		select {
		case hub.unregister <- c:
		case <-hub.done:
		}
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			hub.logger.Debug("invalid websocket frame", zap.Error(err))
			hub.sendTo(c, WSMessage{Type: MessageError, Data: "invalid frame"})
			continue
		}

		hub.handleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

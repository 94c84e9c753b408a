package server

import (
	"net/http"
	"time"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/engine/handlers"
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и игровым циклом.
// Одному соединению соответствует один UserID.
type Client struct {
	Game     Game
	Conn     *websocket.Conn
	Commands *handlers.Registry
	User     domain.UserID
	Send     <-chan api.ServerMessage
}

func NewClient(game Game, conn *websocket.Conn, commands *handlers.Registry, user domain.UserID, send <-chan api.ServerMessage) *Client {
	return &Client{
		Game:     game,
		Conn:     conn,
		Commands: commands,
		User:     user,
		Send:     send,
	}
}

func (c *Client) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "ws_client",
		"user":      c.User,
	})
}

// readPump читает команды клиента и передает их в цикл.
// onClose вызывается один раз после закрытия соединения.
func (c *Client) readPump(onClose func()) {
	defer func() {
		// Движок сам уберет игрока с карты, даже если клиент не прислал DISCONNECT
		c.Game.Submit(domain.Command{Actor: c.User, Kind: domain.CommandDisconnect})
		onClose()
		if err := c.Conn.Close(); err != nil {
			c.log().WithError(err).Debug("failed to close websocket connection")
		}
		c.log().Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log().WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log().WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log().WithError(err).Error("WS read error")
			}
			return
		}

		msg, err := api.DecodeCommand(raw)
		if err != nil {
			c.log().WithError(err).Warn("Rejected client message")
			continue
		}
		cmd, err := c.Commands.Decode(c.User, msg)
		if err != nil {
			c.log().WithError(err).Warn("Rejected client command")
			continue
		}
		if !c.Game.Submit(cmd) {
			c.log().Warn("Game loop stopped, closing connection")
			return
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log().WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log().WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				// Broadcaster закрыл канал
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log().WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log().WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log().WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log().WithError(err).Debug("ping failed")
				return
			}
		}
	}
}

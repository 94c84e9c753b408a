package engine

import (
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
)

// broadcastLog - строка игрового лога всем клиентам (log, damage, death, tileClick).
// Та же строка уходит в лог сервера.
func (s *GameService) broadcastLog(t api.MessageType, text string) {
	s.outbox.Broadcast(api.NewMessage(t, text))
	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"tick":      s.tick,
		"type":      t,
	}).Info(text)
}

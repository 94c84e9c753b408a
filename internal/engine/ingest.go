package engine

import (
	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
)

// pendingCommand - команда, которую можно отложить (нет свободной клетки)
type pendingCommand struct {
	cmd      domain.Command
	attempts int
}

// tickQueues - команды тика, разложенные по видам
type tickQueues struct {
	// moves: первая стрелка каждого пользователя за тик, остальные отбрасываются
	moves     map[domain.UserID]domain.Direction
	moveOrder []domain.UserID

	hovers      []domain.Command
	clicks      []domain.Command
	connects    []pendingCommand
	disconnects []domain.Command
	spawns      []pendingCommand
}

func newTickQueues() tickQueues {
	return tickQueues{moves: make(map[domain.UserID]domain.Direction)}
}

func (q *tickQueues) reset() {
	clear(q.moves)
	q.moveOrder = q.moveOrder[:0]
	q.hovers = q.hovers[:0]
	q.clicks = q.clicks[:0]
	q.connects = q.connects[:0]
	q.disconnects = q.disconnects[:0]
	q.spawns = q.spawns[:0]
}

// ingest неблокирующе вычитывает все накопившиеся команды и ответы хранилища
func (s *GameService) ingest() {
	s.queues.reset()

	// Отложенные с прошлого тика идут первыми
	for _, p := range s.deferred {
		switch p.cmd.Kind {
		case domain.CommandConnect:
			s.queues.connects = append(s.queues.connects, p)
		case domain.CommandSpawn:
			s.queues.spawns = append(s.queues.spawns, p)
		}
	}
	s.deferred = s.deferred[:0]

drain:
	for {
		select {
		case cmd := <-s.commands:
			s.enqueue(cmd)
		default:
			break drain
		}
	}

	// Из ответов хранилища важен только последний
	latest, ok := 0, false
countLoop:
	for {
		select {
		case n := <-s.moveCounts:
			latest, ok = n, true
		default:
			break countLoop
		}
	}
	if ok {
		s.outbox.Broadcast(api.NewMessage(api.TypeMoveCount, latest))
	}
}

func (s *GameService) enqueue(cmd domain.Command) {
	s.journal.Append(s.tick, cmd)
	s.metrics.RecordCommand(cmd.Kind.String())

	q := &s.queues
	switch cmd.Kind {
	case domain.CommandMove:
		if cmd.Direction == domain.DirectionNone {
			return
		}
		if _, seen := q.moves[cmd.Actor]; seen {
			return
		}
		q.moveOrder = append(q.moveOrder, cmd.Actor)
		q.moves[cmd.Actor] = cmd.Direction
	case domain.CommandHover:
		q.hovers = append(q.hovers, cmd)
	case domain.CommandClick:
		q.clicks = append(q.clicks, cmd)
	case domain.CommandConnect:
		q.connects = append(q.connects, pendingCommand{cmd: cmd})
	case domain.CommandDisconnect:
		q.disconnects = append(q.disconnects, cmd)
	case domain.CommandSpawn:
		q.spawns = append(q.spawns, pendingCommand{cmd: cmd})
	case domain.CommandKeepAlive:
	default:
		logger.Log.WithFields(logrus.Fields{
			"component": "ingest",
			"actor":     cmd.Actor,
			"kind":      cmd.Kind,
		}).Warn("Dropped unknown command")
	}
}

// deferPlacement откладывает команду до следующего тика или сбрасывает после лимита попыток
func (s *GameService) deferPlacement(p pendingCommand, err error) {
	p.attempts++
	fields := logrus.Fields{
		"component": "placement",
		"actor":     p.cmd.Actor,
		"kind":      p.cmd.Kind,
		"attempts":  p.attempts,
		"error":     err,
	}
	if p.attempts > s.cfg.SpawnRetryLimit {
		logger.Log.WithFields(fields).Warn("Placement retries exhausted, command dropped")
		return
	}
	logger.Log.WithFields(fields).Debug("Placement deferred")
	s.deferred = append(s.deferred, p)
}

package engine

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexeagleson/goblin-boys/internal/data"
	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/systems"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MoveRecorder - асинхронная запись успешных ходов пользователей
type MoveRecorder interface {
	RecordMove(user domain.UserID)
}

// Journal - журнал всех принятых команд (для реплея)
type Journal interface {
	Append(tick uint64, cmd domain.Command)
}

// Metrics - метрики цикла
type Metrics interface {
	RecordTick(d time.Duration)
	RecordCommand(kind string)
	SetPopulation(users, entities int)
}

type nopMoveRecorder struct{}

func (nopMoveRecorder) RecordMove(domain.UserID) {}

type nopJournal struct{}

func (nopJournal) Append(uint64, domain.Command) {}

type nopMetrics struct{}

func (nopMetrics) RecordTick(time.Duration) {}
func (nopMetrics) RecordCommand(string) {}
func (nopMetrics) SetPopulation(_, _ int) {}

// Option настраивает GameService
type Option func(*GameService)

// WithSink подключает рассылку сообщений клиентам
func WithSink(sink Sink) Option {
	return func(s *GameService) { s.sink = sink }
}

// WithMoveRecorder подключает учет ходов
func WithMoveRecorder(r MoveRecorder) Option {
	return func(s *GameService) { s.moves = r }
}

// WithJournal подключает журнал команд
func WithJournal(j Journal) Option {
	return func(s *GameService) { s.journal = j }
}

// WithMetrics подключает метрики
func WithMetrics(m Metrics) Option {
	return func(s *GameService) { s.metrics = m }
}

// WithBonusRoller подменяет бонус к урону (тесты, реплеи)
func WithBonusRoller(b systems.BonusRoller) Option {
	return func(s *GameService) { s.bonus = b }
}

// GameService - симуляция всего мира. Один тик - один проход конвейера стадий.
type GameService struct {
	cfg    Config
	tables *data.Tables
	World  *WorldState

	rng      *rand.Rand
	bonus    systems.BonusRoller
	pathOpts systems.PathOptions
	enemyMap domain.MapID

	commands   chan domain.Command
	moveCounts chan int
	done       chan struct{}
	stopOnce   sync.Once

	sink    Sink
	moves   MoveRecorder
	journal Journal
	metrics Metrics

	// Состояние одного тика
	tick    uint64
	queues  tickQueues
	intents *domain.IntentTable
	outbox  *Outbox
	claimed map[domain.MapPosition]bool
	sighted []domain.EntityID
	movers  []domain.EntityID

	// Отложенные команды без свободной клетки
	deferred []pendingCommand

	spawnTimer float64
	debugTimer float64

	snapshot atomic.Pointer[WorldSnapshot]
}

// NewService строит мир из таблиц и готовит конвейер
func NewService(cfg Config, tables *data.Tables, opts ...Option) (*GameService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	world, err := buildWorld(tables)
	if err != nil {
		return nil, err
	}

	s := &GameService{
		cfg:        cfg,
		tables:     tables,
		World:      world,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		pathOpts:   systems.PathOptions{Diagonals: cfg.Diagonals, AllowBlockedGoal: true},
		enemyMap:   enemyMapID(tables, world),
		commands:   make(chan domain.Command, 256),
		moveCounts: make(chan int, 64),
		done:       make(chan struct{}),
		sink:       nopSink{},
		moves:      nopMoveRecorder{},
		journal:    nopJournal{},
		metrics:    nopMetrics{},
		queues:     newTickQueues(),
		intents:    domain.NewIntentTable(),
		outbox:     NewOutbox(),
		claimed:    make(map[domain.MapPosition]bool),
	}
	s.bonus = systems.RandomBonus(s.rng, cfg.AttackBonusMax)
	for _, opt := range opts {
		opt(s)
	}
	s.publishSnapshot()

	logger.Log.WithFields(logrus.Fields{
		"component": "game_service",
		"maps":      len(world.Maps()),
		"entities":  world.Entities.Len(),
		"enemy_map": s.enemyMap,
		"seed":      cfg.Seed,
	}).Info("World built")
	return s, nil
}

// Submit ставит команду клиента в очередь цикла.
// false, если цикл уже остановлен.
func (s *GameService) Submit(cmd domain.Command) bool {
	select {
	case s.commands <- cmd:
		return true
	case <-s.done:
		return false
	}
}

// ReportMoveCount - ответ хранилища с общим числом ходов.
// Не блокирует писателя: при переполнении значение теряется, следующее его заменит.
func (s *GameService) ReportMoveCount(n int) {
	select {
	case s.moveCounts <- n:
	default:
	}
}

// Run крутит тики с частотой cfg.TickRate до отмены контекста
func (s *GameService) Run(ctx context.Context) error {
	defer s.stop()

	ticker := time.NewTicker(s.cfg.TickInterval())
	defer ticker.Stop()

	logger.Log.WithFields(logrus.Fields{
		"component": "game_service",
		"tick_rate": s.cfg.TickRate,
	}).Info("Game loop started")

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			logger.Log.WithField("component", "game_service").Info("Game loop stopped")
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Tick(dt)
		}
	}
}

func (s *GameService) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Tick - один проход конвейера. dt - прошедшее время в секундах.
func (s *GameService) Tick(dt float64) {
	start := time.Now()
	s.tick++

	s.tickCooldowns(dt)

	// 1. Прием команд
	s.ingest()
	// 2. Подключения и отключения
	s.resolveSessions()
	// Спавн врагов (по запросу и по таймеру)
	s.resolveSpawns(dt)
	// Наведение и клики
	s.resolveInteractions()
	// 3. Намерения игроков, затем ИИ
	s.attachPlayerIntents()
	s.attachAIIntents()
	// 4. Движение и переходы между картами
	s.resolveMoves()
	s.resolveWarps()
	// 5. Атака, поедание, речь
	s.resolveMeleeAttacks()
	s.resolveConsumes()
	s.resolveSpeech()
	// 6. Смерть
	s.resolveDeaths()
	// 7. Перестройка карт
	s.rebuildMaps()
	// Отладочная статистика
	s.debugStopwatch(dt)
	// 8. Синхронизация клиентов
	s.outbox.Flush(s.sink, s.BuildFullMap)

	s.endTick()
	s.publishSnapshot()

	s.metrics.RecordTick(time.Since(start))
	s.metrics.SetPopulation(len(s.World.Users()), s.World.Entities.Len())
}

// tickCooldowns уменьшает таймеры действий и паузы ИИ
func (s *GameService) tickCooldowns(dt float64) {
	s.World.Entities.Each(func(e *domain.Entity) {
		if e.Cooldown != nil {
			e.Cooldown.Tick(dt)
		}
		if e.AI != nil && e.AI.Cooldown > 0 {
			e.AI.Cooldown -= dt
		}
	})
}

// endTick очищает состояние, живущее один тик
func (s *GameService) endTick() {
	clear(s.claimed)
	s.sighted = s.sighted[:0]
	s.movers = s.movers[:0]
	if n := s.intents.Len(); n > 0 {
		logger.Log.WithFields(logrus.Fields{
			"component": "game_service",
			"tick":      s.tick,
			"left":      n,
		}).Warn("Intents left after pipeline")
	}
}

// CurrentTick - номер последнего выполненного тика
func (s *GameService) CurrentTick() uint64 {
	return s.tick
}

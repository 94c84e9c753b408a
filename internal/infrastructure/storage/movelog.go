package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// MoveLogBuffer - сколько ходов может ждать записи
const MoveLogBuffer = 4096

type moveRow struct {
	user domain.UserID
	at   time.Time
}

// MoveLog пишет каждый успешный ход игрока в SQLite.
// Запись идет в отдельной горутине (Run).
type MoveLog struct {
	db *sql.DB

	ch     chan moveRow
	once   sync.Once
	closed atomic.Bool

	dropped atomic.Int64
}

// OpenMoveLog открывает (или создает) базу и схему
func OpenMoveLog(path string) (*MoveLog, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &MoveLog{
		db: db,
		ch: make(chan moveRow, MoveLogBuffer),
	}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS moves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_moves_user ON moves(user_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// RecordMove ставит ход в очередь записи. Не блокирует игровой цикл:
// если писатель отстал, ход теряется.
func (m *MoveLog) RecordMove(user domain.UserID) {
	if m == nil || m.closed.Load() {
		return
	}
	select {
	case m.ch <- moveRow{user: user, at: time.Now().UTC()}:
	default:
		m.dropped.Add(1)
	}
}

// Dropped - сколько ходов потеряно из-за переполнения очереди
func (m *MoveLog) Dropped() int64 {
	return m.dropped.Load()
}

// Count - общее число записанных ходов
func (m *MoveLog) Count(ctx context.Context) (int, error) {
	var n int
	if err := m.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM moves`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count moves: %w", err)
	}
	return n, nil
}

// Run - горутина писателя. После каждой вставки report получает общее число ходов.
// Возвращается после отмены контекста, дописав то, что уже лежит в очереди, и закрыв базу.
func (m *MoveLog) Run(ctx context.Context, report func(n int)) error {
	defer m.Close()

	log := logger.Log.WithField("component", "move_log")
	insert, err := m.db.Prepare(`INSERT INTO moves(user_id, recorded_at) VALUES(?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	// Счетчик читается из базы один раз, дальше растет с каждой вставкой
	total, err := m.Count(context.Background())
	if err != nil {
		return err
	}

	write := func(row moveRow) {
		if _, err := insert.Exec(int64(row.user), row.at.Format(time.RFC3339Nano)); err != nil {
			log.WithError(err).WithField("user", row.user).Warn("Failed to record move")
			return
		}
		total++
		if report != nil {
			report(total)
		}
	}

	log.WithField("moves", total).Info("Move log writer started")
	for {
		select {
		case row := <-m.ch:
			write(row)
		case <-ctx.Done():
			m.closed.Store(true)
			for {
				select {
				case row := <-m.ch:
					write(row)
				default:
					log.WithFields(logrus.Fields{"dropped": m.Dropped()}).Info("Move log writer stopped")
					return nil
				}
			}
		}
	}
}

// Close закрывает базу. Повторный вызов безопасен.
func (m *MoveLog) Close() error {
	var err error
	m.once.Do(func() {
		m.closed.Store(true)
		err = m.db.Close()
	})
	return err
}

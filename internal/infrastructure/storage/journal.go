package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
)

const (
	// JournalBuffer - сколько команд может ждать записи
	JournalBuffer = 8192
	journalPrefix = "commands"
	journalExt    = ".jsonl.zst"
)

// JournalEntry - одна принятая циклом команда
type JournalEntry struct {
	Tick       uint64           `json:"tick"`
	Actor      domain.UserID    `json:"actor"`
	Kind       string           `json:"kind"`
	Direction  string           `json:"direction,omitempty"`
	Pos        *domain.Position `json:"pos,omitempty"`
	Name       string           `json:"name,omitempty"`
	Appearance string           `json:"appearance,omitempty"`
	Enemy      string           `json:"enemy,omitempty"`
}

// NewJournalEntry снимает с команды только поля, относящиеся к ее виду
func NewJournalEntry(tick uint64, cmd domain.Command) JournalEntry {
	e := JournalEntry{Tick: tick, Actor: cmd.Actor, Kind: cmd.Kind.String()}
	switch cmd.Kind {
	case domain.CommandMove:
		e.Direction = cmd.Direction.String()
	case domain.CommandHover, domain.CommandClick:
		pos := cmd.Pos
		e.Pos = &pos
	case domain.CommandConnect:
		e.Name = cmd.Name
		e.Appearance = cmd.Appearance
	case domain.CommandSpawn:
		e.Enemy = cmd.Enemy.String()
	}
	return e
}

// Command восстанавливает доменную команду
func (e JournalEntry) Command() domain.Command {
	cmd := domain.Command{
		Actor:      e.Actor,
		Kind:       domain.ParseCommand(e.Kind),
		Direction:  domain.ParseDirection(e.Direction),
		Name:       e.Name,
		Appearance: e.Appearance,
		Enemy:      domain.ParseEnemyKind(e.Enemy),
	}
	if e.Pos != nil {
		cmd.Pos = *e.Pos
	}
	return cmd
}

// JSONLZstdWriter пишет JSON-строки в zstd-файлы, новый файл каждый час
type JSONLZstdWriter struct {
	baseDir string
	prefix  string
	now     func() time.Time

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewJSONLZstdWriter(baseDir, prefix string) *JSONLZstdWriter {
	return &JSONLZstdWriter{
		baseDir: baseDir,
		prefix:  prefix,
		now:     time.Now,
	}
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

// Write добавляет строку в буфер. Flush сбрасывает буфер в файл.
func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := w.now().UTC().Format("2006-01-02-15")
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *JSONLZstdWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

func (w *JSONLZstdWriter) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.pathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curHour = hour
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	w.curHour = ""
	return err1
}

func (w *JSONLZstdWriter) pathForHour(hour string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s%s", w.prefix, hour, journalExt))
}

// Journal - журнал всех принятых команд.
// Append вызывается из игрового цикла, запись идет в Run.
type Journal struct {
	w      *JSONLZstdWriter
	ch     chan JournalEntry
	closed atomic.Bool

	dropped atomic.Int64
}

func NewJournal(dir string) *Journal {
	return &Journal{
		w:  NewJSONLZstdWriter(dir, journalPrefix),
		ch: make(chan JournalEntry, JournalBuffer),
	}
}

// Append ставит команду в очередь записи, не блокируя цикл
func (j *Journal) Append(tick uint64, cmd domain.Command) {
	if j == nil || j.closed.Load() {
		return
	}
	select {
	case j.ch <- NewJournalEntry(tick, cmd):
	default:
		j.dropped.Add(1)
	}
}

// Dropped - сколько команд потеряно из-за переполнения очереди
func (j *Journal) Dropped() int64 {
	return j.dropped.Load()
}

// Run пишет журнал до отмены контекста, сбрасывая буфер раз в flushEvery
func (j *Journal) Run(ctx context.Context, flushEvery time.Duration) error {
	log := logger.Log.WithField("component", "journal")
	ticker := time.NewTicker(flushEvery)
	defer ticker.Stop()

	write := func(e JournalEntry) {
		if err := j.w.Write(e); err != nil {
			log.WithError(err).WithField("tick", e.Tick).Warn("Failed to journal command")
		}
	}

	log.WithField("dir", j.w.baseDir).Info("Command journal started")
	for {
		select {
		case e := <-j.ch:
			write(e)
		case <-ticker.C:
			if err := j.w.Flush(); err != nil {
				log.WithError(err).Warn("Failed to flush journal")
			}
		case <-ctx.Done():
			j.closed.Store(true)
			for {
				select {
				case e := <-j.ch:
					write(e)
				default:
					log.WithFields(logrus.Fields{"dropped": j.Dropped()}).Info("Command journal stopped")
					if err := j.w.Close(); err != nil {
						return fmt.Errorf("close journal: %w", err)
					}
					return nil
				}
			}
		}
	}
}

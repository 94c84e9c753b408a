package network

import (
	"sync"
	"sync/atomic"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SubscriberBuffer - размер личного канала клиента
const SubscriberBuffer = 100

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Он же выдает UserID новым подключениям.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: UserID -> Личный канал
	subscribers map[domain.UserID]chan api.ServerMessage

	lastUserID atomic.Int64
	dropped    atomic.Int64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[domain.UserID]chan api.ServerMessage),
	}
}

// NextUserID выдает новый уникальный id клиента (начиная с 1)
func (b *Broadcaster) NextUserID() domain.UserID {
	return domain.UserID(b.lastUserID.Add(1))
}

// Register создает личный канал для клиента (игрока или бота)
func (b *Broadcaster) Register(user domain.UserID) <-chan api.ServerMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[user]; ok {
		close(old)
	}

	ch := make(chan api.ServerMessage, SubscriberBuffer)
	b.subscribers[user] = ch
	return ch
}

// Unregister удаляет подписчика. Повторный вызов безопасен.
func (b *Broadcaster) Unregister(user domain.UserID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[user]; ok {
		close(ch)
		delete(b.subscribers, user)
	}
}

// SendTo отправляет сообщение конкретному клиенту (Unicast).
// Отключенный клиент молча игнорируется, переполненный теряет сообщение.
func (b *Broadcaster) SendTo(user domain.UserID, msg api.ServerMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[user]; ok {
		b.push(user, ch, msg)
	}
}

// Broadcast отправляет всем
func (b *Broadcaster) Broadcast(msg api.ServerMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for user, ch := range b.subscribers {
		b.push(user, ch, msg)
	}
}

func (b *Broadcaster) push(user domain.UserID, ch chan api.ServerMessage, msg api.ServerMessage) {
	select {
	case ch <- msg:
	default:
		b.dropped.Add(1)
		logger.Log.WithFields(logrus.Fields{
			"component": "broadcaster",
			"user":      user,
			"type":      msg.Type,
		}).Warn("Client channel full, message dropped")
	}
}

// HasSubscriber проверяет, подключен ли клиент
func (b *Broadcaster) HasSubscriber(user domain.UserID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[user]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Dropped - сколько сообщений потеряно из-за переполненных каналов
func (b *Broadcaster) Dropped() int64 {
	return b.dropped.Load()
}

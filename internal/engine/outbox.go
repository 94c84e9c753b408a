package engine

import (
	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/api"
)

// Sink - получатель сообщений тика (сетевой Broadcaster).
// Отправка отключенному клиенту молча игнорируется.
type Sink interface {
	Broadcast(msg api.ServerMessage)
	SendTo(user domain.UserID, msg api.ServerMessage)
}

type nopSink struct{}

func (nopSink) Broadcast(api.ServerMessage) {}
func (nopSink) SendTo(domain.UserID, api.ServerMessage) {}

type targetedMessage struct {
	user domain.UserID
	msg  api.ServerMessage
}

// Outbox копит сообщения стадий за тик и отдает их на стадии синхронизации
type Outbox struct {
	broadcasts []api.ServerMessage
	targeted   []targetedMessage

	refresh      map[domain.UserID]bool
	refreshOrder []domain.UserID
}

func NewOutbox() *Outbox {
	return &Outbox{refresh: make(map[domain.UserID]bool)}
}

// Broadcast - сообщение всем клиентам
func (o *Outbox) Broadcast(msg api.ServerMessage) {
	o.broadcasts = append(o.broadcasts, msg)
}

// SendTo - сообщение одному клиенту
func (o *Outbox) SendTo(user domain.UserID, msg api.ServerMessage) {
	o.targeted = append(o.targeted, targetedMessage{user: user, msg: msg})
}

// SendToMany - одно и то же сообщение каждому из users
func (o *Outbox) SendToMany(users []domain.UserID, msg api.ServerMessage) {
	for _, u := range users {
		o.SendTo(u, msg)
	}
}

// RequestRefresh - событие "клиенту нужен полный снимок карты"
func (o *Outbox) RequestRefresh(user domain.UserID) {
	if o.refresh[user] {
		return
	}
	o.refresh[user] = true
	o.refreshOrder = append(o.refreshOrder, user)
}

// Pending - сколько сообщений накоплено
func (o *Outbox) Pending() int {
	return len(o.broadcasts) + len(o.targeted) + len(o.refreshOrder)
}

// spriteMessage - сообщения, которые покрывает полный снимок карты
func spriteMessage(t api.MessageType) bool {
	switch t {
	case api.TypeAddSprite, api.TypeEntityPositionChange, api.TypeRemoveSprite, api.TypeCentreCamera:
		return true
	}
	return false
}

// Flush отправляет все накопленное и очищает буферы.
// Пользователь со снимком получает его первым, а спрайтовые инкременты для него
// отбрасываются: снимок уже отражает состояние конца тика.
func (o *Outbox) Flush(sink Sink, snapshot func(user domain.UserID) (api.ServerMessage, bool)) {
	for _, msg := range o.broadcasts {
		sink.Broadcast(msg)
	}

	refreshed := make(map[domain.UserID]bool, len(o.refreshOrder))
	for _, user := range o.refreshOrder {
		msg, ok := snapshot(user)
		if !ok {
			continue
		}
		sink.SendTo(user, msg)
		refreshed[user] = true
	}

	for _, t := range o.targeted {
		if refreshed[t.user] && spriteMessage(t.msg.Type) {
			continue
		}
		sink.SendTo(t.user, t.msg)
	}

	o.broadcasts = o.broadcasts[:0]
	o.targeted = o.targeted[:0]
	o.refreshOrder = o.refreshOrder[:0]
	clear(o.refresh)
}

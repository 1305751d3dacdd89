// Package events 把记录和存储对象的变化通知给索引/缓存等下游
package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

type Kind string

const (
	RecordCreated   Kind = "record.created"
	RecordRemoved   Kind = "record.removed"
	ObjectReclaimed Kind = "object.reclaimed"
	ObjectMigrated  Kind = "object.migrated"
)

// Event 是一次变化的快照，字段按 Kind 选择性填充
type Event struct {
	Kind     Kind      `cbor:"kind"`
	RecordID string    `cbor:"record_id,omitempty"`
	ObjectID string    `cbor:"object_id,omitempty"`
	Digest   string    `cbor:"digest,omitempty"`
	Filename string    `cbor:"filename,omitempty"`
	FileType string    `cbor:"file_type,omitempty"`
	Size     int64     `cbor:"size,omitempty"`
	Location string    `cbor:"location,omitempty"`
	At       time.Time `cbor:"at"`
}

// Publisher 是索引/搜索协作方的入口
// 发布失败只记录日志，从不影响触发它的操作
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Fanout 把事件依次发给多个 Publisher
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard 丢弃所有事件
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }

// Bus 是进程内的扇出，订阅者各自持有一个带缓冲的 channel
// 订阅者消费太慢时事件被丢弃，发布方从不阻塞
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Event
	log    *slog.Logger
}

func NewBus(log *slog.Logger) *Bus {
	if log == nil {
		log = slog.Default()
	}
	return &Bus{subs: make(map[int]chan Event), log: log}
}

// Subscribe 返回事件 channel 和取消函数
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan Event, buffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Bus) Publish(ctx context.Context, ev Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.log.Warn("event subscriber is full, dropping event",
				slog.Int("subscriber", id), slog.String("kind", string(ev.Kind)))
		}
	}
	return nil
}

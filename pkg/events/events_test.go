package events

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_FanOut(t *testing.T) {
	bus := NewBus(nil)
	a, cancelA := bus.Subscribe(4)
	b, cancelB := bus.Subscribe(4)
	defer cancelA()
	defer cancelB()

	ev := Event{Kind: RecordCreated, RecordID: "r1", At: time.Now()}
	require.NoError(t, bus.Publish(context.Background(), ev))

	assert.Equal(t, "r1", (<-a).RecordID)
	assert.Equal(t, "r1", (<-b).RecordID)
}

func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus(nil)
	ch, cancel := bus.Subscribe(1)
	defer cancel()

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, Event{Kind: RecordCreated, RecordID: "1"}))
	// 缓冲已满：第二个事件被丢弃，而不是阻塞
	require.NoError(t, bus.Publish(ctx, Event{Kind: RecordCreated, RecordID: "2"}))

	assert.Equal(t, "1", (<-ch).RecordID)
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)
	ch, cancel := bus.Subscribe(1)
	cancel()
	cancel() // 幂等

	_, ok := <-ch
	assert.False(t, ok, "channel is closed after cancel")
	assert.NoError(t, bus.Publish(context.Background(), Event{Kind: RecordRemoved}))
}

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, Event) error { return f.err }

func TestFanout(t *testing.T) {
	bus := NewBus(nil)
	ch, cancel := bus.Subscribe(1)
	defer cancel()

	boom := errors.New("boom")
	f := Fanout{failingPublisher{err: boom}, bus, Discard{}}

	err := f.Publish(context.Background(), Event{Kind: ObjectReclaimed, ObjectID: "o1"})
	assert.ErrorIs(t, err, boom)
	// 前一个失败不影响后面的发布者
	assert.Equal(t, "o1", (<-ch).ObjectID)
}

func TestRedisPublisher_Integration(t *testing.T) {
	redisAddr := "localhost:6379"
	conn, err := net.DialTimeout("tcp", redisAddr, 1*time.Second)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	conn.Close()

	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer client.Close()
	pub := NewRedisPublisher(client, "filevault:test:"+t.Name())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan Event, 1)
	ready := make(chan struct{})
	go func() {
		close(ready)
		_ = pub.Subscribe(ctx, func(ev Event) { received <- ev })
	}()
	<-ready

	at := time.Now().UTC()
	// 订阅建立是异步的，重复发布直到收到
	require.Eventually(t, func() bool {
		if err := pub.Publish(ctx, Event{Kind: ObjectMigrated, ObjectID: "o9", Location: "ab/cd", At: at}); err != nil {
			return false
		}
		select {
		case ev := <-received:
			return ev.ObjectID == "o9" && ev.Kind == ObjectMigrated && ev.At.Equal(at)
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 4*time.Second, 10*time.Millisecond)
}

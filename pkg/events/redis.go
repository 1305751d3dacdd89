package events

import (
	"context"
	"fmt"
	"log/slog"

	"filevault/pkg/codec"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "filevault:events"

// RedisPublisher 通过 Redis pub/sub 广播事件，载荷为 CBOR
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := codec.Marshal(ev)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Subscribe 阻塞消费频道里的事件直到 ctx 取消
// 无法解码的消息被跳过
func (p *RedisPublisher) Subscribe(ctx context.Context, fn func(Event)) error {
	sub := p.client.Subscribe(ctx, p.channel)
	defer sub.Close()

	// 等待订阅确认，保证返回前已经在收消息
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev Event
			if err := codec.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				slog.Warn("skipping undecodable event", slog.String("channel", msg.Channel), slog.Any("err", err))
				continue
			}
			fn(ev)
		}
	}
}

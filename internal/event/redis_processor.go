package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blues/rfs/internal/model"
	"github.com/redis/go-redis/v9"
)

// Notification 推送到 redis 频道的事件消息
type Notification struct {
	Id        int64           `json:"id"`
	ProjectId uint64          `json:"projectId"`
	EventType string          `json:"eventType"`
	Topic     string          `json:"topic"`
	CreatedAt time.Time       `json:"createdAt"`
	Data      json.RawMessage `json:"data"`
}

// RedisProcessor 把事件发布到 redis 频道，供外部订阅
type RedisProcessor struct {
	client  redis.Cmdable
	channel string
	timeout time.Duration
}

// NewRedisProcessor 创建 redis 发布处理器
func NewRedisProcessor(client redis.Cmdable, channel string) *RedisProcessor {
	return &RedisProcessor{client: client, channel: channel, timeout: 5 * time.Second}
}

func (p *RedisProcessor) GetEventTypes() []string {
	return []string{AllEvents}
}

func (p *RedisProcessor) Process(event *model.EventModel, eventData map[string]interface{}) error {
	message, err := json.Marshal(Notification{
		Id:        event.Id,
		ProjectId: event.ProjectId,
		EventType: event.EventType,
		Topic:     event.Topic,
		CreatedAt: event.CreatedAt,
		Data:      json.RawMessage(event.Data),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.client.Publish(ctx, p.channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.channel, err)
	}
	return nil
}

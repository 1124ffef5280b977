package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher 메시지 발행 인터페이스
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// redisPublisher Redis Pub/Sub 기반 Publisher 구현체
type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher 이미 연결된 Redis 클라이언트로 Publisher를 생성합니다.
// 클라이언트의 수명은 호출자가 관리합니다.
func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

// Publish 메시지를 JSON으로 직렬화하여 발행합니다.
func (r *redisPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("메시지 직렬화 실패: %w", err)
	}

	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("메시지 발행 실패 (channel=%s): %w", channel, err)
	}
	return nil
}

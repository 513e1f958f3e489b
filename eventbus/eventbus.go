package eventbus

import (
	"context"
	"encoding/json"
	"errors"
)

// Topic 은 케이스 이벤트가 발행되는 기본 토픽 이름이다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// Publisher 는 이벤트 발행만 담당한다. 구독자는 이 저장소 밖에 있다.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}

// ErrPublishFailed 는 브로커가 메시지 전달을 거부했을 때 감싸서 반환된다.
var ErrPublishFailed = errors.New("event publish failed")

// NopPublisher 는 이벤트가 비활성화된 배포에서 쓰인다.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }

func (NopPublisher) Close() {}

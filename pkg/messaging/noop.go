package messaging

import "context"

// NoopBroker discards everything. Used when eventing is disabled and in tests.
type NoopBroker struct{}

func NewNoopBroker() *NoopBroker { return &NoopBroker{} }

func (NoopBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	return nil
}

func (NoopBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	ch := make(chan []byte)
	close(ch)
	return ch, nil
}

func (NoopBroker) Close() error { return nil }

package messaging

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitConsumers(t *testing.T, m *Memory, topic string, groups int) {
	t.Helper()
	require.Eventually(t, func() bool {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return len(m.groups[topic]) == groups
	}, time.Second, 5*time.Millisecond)
}

func TestMemory_PublishConsume(t *testing.T) {
	m := NewMemory(MemoryConfig{})
	t.Cleanup(func() { _ = m.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Message, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Consume(ctx, "records", func(_ context.Context, msg Message) error {
			got <- msg
			return nil
		}, WithGroup("cache"), WithAutoAck(true))
	}()
	waitConsumers(t, m, "records", 1)

	res, err := m.Publish(ctx, "records", OutgoingMessage{
		Body:    []byte(`{"id":"1"}`),
		Key:     []byte("departments"),
		Headers: []Header{{Key: "cID", Value: []byte("abc")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "records", res.Topic)
	assert.Equal(t, "1", res.MessageID)

	select {
	case msg := <-got:
		assert.Equal(t, `{"id":"1"}`, string(msg.Body()))
		assert.Equal(t, "departments", string(msg.Key()))
		assert.Equal(t, "abc", HeaderValue(msg.Headers(), "cID"))
		assert.Equal(t, "records", msg.Topic())
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestMemory_FanOutPerGroup(t *testing.T) {
	m := NewMemory(MemoryConfig{})
	t.Cleanup(func() { _ = m.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	seen := map[string]int{}
	var wg sync.WaitGroup
	wg.Add(2)

	for _, group := range []string{"a", "b"} {
		go func() {
			//nolint:errcheck // stopped by cancel
			_ = m.Consume(ctx, "t", func(context.Context, Message) error {
				mu.Lock()
				seen[group]++
				mu.Unlock()
				wg.Done()
				return nil
			}, WithGroup(group))
		}()
	}
	waitConsumers(t, m, "t", 2)

	_, err := m.Publish(ctx, "t", OutgoingMessage{Body: []byte("x")})
	require.NoError(t, err)

	wg.Wait()
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, seen)
}

func TestMemory_NackRedelivers(t *testing.T) {
	m := NewMemory(MemoryConfig{})
	t.Cleanup(func() { _ = m.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	attempts := make(chan struct{}, maxMemoryRedelivery+1)
	go func() {
		//nolint:errcheck // stopped by cancel
		_ = m.Consume(ctx, "t", func(context.Context, Message) error {
			attempts <- struct{}{}
			return errors.New("boom")
		}, WithAutoAck(true))
	}()
	waitConsumers(t, m, "t", 1)

	_, err := m.Publish(ctx, "t", OutgoingMessage{Body: []byte("x")})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(attempts) == maxMemoryRedelivery
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, attempts, maxMemoryRedelivery)
}

func TestMemory_PanicIsRecovered(t *testing.T) {
	m := NewMemory(MemoryConfig{})
	t.Cleanup(func() { _ = m.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan string, 4)
	go func() {
		//nolint:errcheck // stopped by cancel
		_ = m.Consume(ctx, "t", func(_ context.Context, msg Message) error {
			calls <- string(msg.Body())
			if string(msg.Body()) == "panic" {
				panic("handler exploded")
			}
			return nil
		}, WithGroup("g"))
	}()
	waitConsumers(t, m, "t", 1)

	_, err := m.Publish(ctx, "t", OutgoingMessage{Body: []byte("panic")})
	require.NoError(t, err)
	_, err = m.Publish(ctx, "t", OutgoingMessage{Body: []byte("ok")})
	require.NoError(t, err)

	assert.Equal(t, "panic", <-calls)
	assert.Equal(t, "ok", <-calls)
}

func TestMemory_Validation(t *testing.T) {
	m := NewMemory(MemoryConfig{Buffer: 1})
	ctx := context.Background()

	_, err := m.Publish(ctx, "", OutgoingMessage{})
	assert.ErrorIs(t, err, ErrTopicRequired)
	assert.ErrorIs(t, m.Consume(ctx, "", func(context.Context, Message) error { return nil }), ErrTopicRequired)
	assert.ErrorIs(t, m.Consume(ctx, "t", nil), ErrHandlerRequired)

	res, err := m.Publish(ctx, "nobody", OutgoingMessage{Body: []byte("dropped")})
	require.NoError(t, err)
	assert.Equal(t, "nobody", res.Topic)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, err = m.Publish(ctx, "t", OutgoingMessage{})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.ErrorIs(t, m.Consume(ctx, "t", func(context.Context, Message) error { return nil }), io.ErrClosedPipe)
}

func TestMemory_CloseStopsConsumers(t *testing.T) {
	m := NewMemory(MemoryConfig{})

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Consume(context.Background(), "t", func(context.Context, Message) error { return nil })
	}()
	waitConsumers(t, m, "t", 1)

	require.NoError(t, m.Close())

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestNewFromDriver(t *testing.T) {
	msg, err := NewFromDriver(context.Background(), " memory ", FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, msg)
	require.NoError(t, msg.Close())

	_, err = NewFromDriver(context.Background(), "carrier-pigeon", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)

	_, err = NewFromDriver(context.Background(), DriverKafka, FactoryOptions{})
	assert.ErrorIs(t, err, ErrKafkaBrokersRequired)

	_, err = NewFromDriver(context.Background(), DriverNATS, FactoryOptions{})
	assert.ErrorIs(t, err, ErrNATSURLRequired)
}

func TestConsumeOptions(t *testing.T) {
	co := newConsumeOptions(WithGroup("g"), WithConcurrency(0), WithChannel("ch"), nil)
	assert.Equal(t, 1, co.concurrency)
	assert.Equal(t, "ch", co.pick(co.channel))
	assert.Equal(t, "g", co.pick(co.queueGroup))
}

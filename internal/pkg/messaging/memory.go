package messaging

import (
	"context"
	"io"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
)

const (
	defaultMemoryBuffer  = 256
	maxMemoryRedelivery  = 3
	memoryDefaultGroupID = "default"
)

// MemoryConfig configures the in-process broker.
type MemoryConfig struct {
	// Buffer is the per consumer group queue length. Publish blocks when full.
	Buffer int
}

// Memory is an in-process broker. Every consumer group of a topic receives
// each message once; consumers sharing a group compete for messages.
type Memory struct {
	buffer int
	seq    *atomic.Uint64
	closed *atomic.Bool

	mu     sync.RWMutex
	groups map[string]map[string]*memoryGroup
}

type memoryGroup struct {
	ch    chan *memoryMessage
	done  chan struct{}
	users int
}

// NewMemory constructs an in-process broker.
func NewMemory(cfg MemoryConfig) *Memory {
	if cfg.Buffer <= 0 {
		cfg.Buffer = defaultMemoryBuffer
	}

	return &Memory{
		buffer: cfg.Buffer,
		seq:    atomic.NewUint64(0),
		closed: atomic.NewBool(false),
		groups: map[string]map[string]*memoryGroup{},
	}
}

// Close stops every consumer. Further calls are no-ops.
func (m *Memory) Close() error {
	if m.closed.Swap(true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, byGroup := range m.groups {
		for _, g := range byGroup {
			close(g.done)
		}
	}
	m.groups = map[string]map[string]*memoryGroup{}

	return nil
}

// Publish fans msg out to every consumer group of topic. Messages published
// while a topic has no consumers are dropped.
func (m *Memory) Publish(ctx context.Context, topic string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if topic == "" {
		return PublishResult{}, ErrTopicRequired
	}
	if m.closed.Load() {
		return PublishResult{}, io.ErrClosedPipe
	}

	now := time.Now()
	id := strconv.FormatUint(m.seq.Inc(), 10)

	m.mu.RLock()
	targets := make([]*memoryGroup, 0, len(m.groups[topic]))
	for _, g := range m.groups[topic] {
		targets = append(targets, g)
	}
	m.mu.RUnlock()

	for _, g := range targets {
		mm := &memoryMessage{
			id:        id,
			topic:     topic,
			body:      append([]byte(nil), msg.Body...),
			key:       append([]byte(nil), msg.Key...),
			headers:   append([]Header(nil), msg.Headers...),
			timestamp: now,
			group:     g,
			responded: atomic.NewBool(false),
		}

		select {
		case g.ch <- mm:
		case <-g.done:
		case <-ctx.Done():
			return PublishResult{}, ctx.Err()
		}
	}

	return PublishResult{MessageID: id, Topic: topic, Timestamp: now}, nil
}

// Consume delivers messages of topic to handler until ctx is done or the
// broker is closed.
func (m *Memory) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}

	co := newConsumeOptions(opts...)
	group := co.group
	if group == "" {
		group = memoryDefaultGroupID
	}

	g, err := m.join(topic, group)
	if err != nil {
		return err
	}
	defer m.leave(topic, group, g)

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-g.done:
					return
				case msg := <-g.ch:
					//nolint:errcheck // failures are logged and nacked by deliver
					_ = deliver(ctx, "memory", msg, handler, co.autoAck)
				}
			}
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

func (m *Memory) join(topic, group string) (*memoryGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed.Load() {
		return nil, io.ErrClosedPipe
	}

	byGroup, ok := m.groups[topic]
	if !ok {
		byGroup = map[string]*memoryGroup{}
		m.groups[topic] = byGroup
	}

	g, ok := byGroup[group]
	if !ok {
		g = &memoryGroup{
			ch:   make(chan *memoryMessage, m.buffer),
			done: make(chan struct{}),
		}
		byGroup[group] = g
	}
	g.users++

	return g, nil
}

func (m *Memory) leave(topic, group string, g *memoryGroup) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g.users--
	if g.users > 0 {
		return
	}

	if byGroup, ok := m.groups[topic]; ok && byGroup[group] == g {
		delete(byGroup, group)
		close(g.done)
		if len(byGroup) == 0 {
			delete(m.groups, topic)
		}
	}
}

type memoryMessage struct {
	id        string
	topic     string
	body      []byte
	key       []byte
	headers   []Header
	timestamp time.Time
	attempts  int

	group     *memoryGroup
	responded *atomic.Bool
}

func (m *memoryMessage) Body() []byte         { return m.body }
func (m *memoryMessage) Key() []byte          { return m.key }
func (m *memoryMessage) Headers() []Header    { return m.headers }
func (m *memoryMessage) ID() string           { return m.id }
func (m *memoryMessage) Topic() string        { return m.topic }
func (m *memoryMessage) Timestamp() time.Time { return m.timestamp }

func (m *memoryMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.responded.Store(true)
	return nil
}

// Nack requeues the message until it was attempted maxMemoryRedelivery times.
func (m *memoryMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) || m.attempts+1 >= maxMemoryRedelivery {
		return nil
	}

	retry := *m
	retry.attempts++
	retry.responded = atomic.NewBool(false)

	go func() {
		select {
		case m.group.ch <- &retry:
		case <-m.group.done:
		}
	}()

	return nil
}

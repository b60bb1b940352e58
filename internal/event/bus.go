package event

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"modconsole.com/internal/model"
)

// Event 是控制台转发出去的一次写操作
type Event struct {
	Type   string
	Action model.ModerationAction
	At     time.Time
}

// Handler 在后台协程中处理事件
type Handler func(ctx context.Context, ev Event) error

// Bus 把请求路径上的写操作移交给后台（审计落库），请求不等待处理结果。
// 队列有界：满了就丢弃，关闭后不再接收。
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	closed   bool

	queue   chan Event
	done    chan struct{}
	dropped atomic.Uint64
}

func NewBus(bufferSize int) *Bus {
	b := &Bus{
		handlers: make(map[string][]Handler),
		queue:    make(chan Event, bufferSize),
		done:     make(chan struct{}),
	}
	go b.run()
	return b
}

// Subscribe 注册某一事件类型的处理函数
func (b *Bus) Subscribe(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
	log.Printf("EventBus: Subscribed to %s", eventType)
}

// Publish 非阻塞入队，被丢弃时返回 false
func (b *Bus) Publish(ev Event) bool {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.drop(ev, "bus closed")
		return false
	}
	select {
	case b.queue <- ev:
		return true
	default:
		b.drop(ev, "queue full")
		return false
	}
}

func (b *Bus) drop(ev Event, reason string) {
	b.dropped.Add(1)
	log.Printf("EventBus: Dropping %s on %s/%d (%s)", ev.Type, ev.Action.Resource, ev.Action.RecordID, reason)
}

// run 顺序消费队列，直到 Shutdown 关闭队列并且剩余事件处理完毕
func (b *Bus) run() {
	defer close(b.done)
	for ev := range b.queue {
		b.dispatch(ev)
	}
}

func (b *Bus) dispatch(ev Event) {
	b.mu.RLock()
	handlers := b.handlers[ev.Type]
	b.mu.RUnlock()

	for _, h := range handlers {
		b.invoke(h, ev)
	}
}

// invoke 隔离单个处理函数的错误和 panic
func (b *Bus) invoke(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("EventBus: Handler panic on %s: %v", ev.Type, r)
		}
	}()
	if err := h(context.Background(), ev); err != nil {
		log.Printf("EventBus: Handler error on %s: %v", ev.Type, err)
	}
}

// Shutdown 停止接收新事件，并等待已入队的事件处理完。可重复调用。
func (b *Bus) Shutdown() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.queue)
		log.Println("EventBus: Shutting down, draining queue")
	}
	b.mu.Unlock()

	<-b.done
}

// Dropped 返回因队列满或已关闭而丢弃的事件数
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Bus) SubscriberCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

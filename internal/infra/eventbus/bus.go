package eventbus

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"example.com/aquapure-store/internal/domain/event"
)

type Handler func(event.Event)

// Bus fans events out to subscribers synchronously, in subscription order.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
	order    []int
	now      func() time.Time
}

func New() *Bus {
	return &Bus{
		handlers: make(map[int]Handler),
		now:      time.Now,
	}
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

func (b *Bus) Publish(e event.Event) {
	if e.At.IsZero() {
		e.At = b.now()
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}

// LogEvents writes every event to logger at a level matching the event level.
func LogEvents(logger *zap.Logger) Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(e event.Event) {
		fields := []zap.Field{
			zap.String("kind", string(e.Kind)),
			zap.String("level", string(e.Level)),
		}
		switch e.Level {
		case event.LevelError:
			logger.Error(e.Message, fields...)
		case event.LevelWarning:
			logger.Warn(e.Message, fields...)
		default:
			logger.Info(e.Message, fields...)
		}
	}
}

var _ event.Publisher = (*Bus)(nil)

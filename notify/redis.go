package notify

import (
	"context"
	"strings"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

// RedisListener receives change events over redis pub/sub, one channel per
// table (prefix + table name). The publishing side lives in the cache
// service; a fleet of storefront instances converges without DB triggers.
type RedisListener struct {
	logger *gecho.Logger
	prefix string

	sub    *redis.PubSub
	events chan Event
	cancel context.CancelFunc
	done   chan struct{}

	closeOnce sync.Once
}

func NewRedisListener(ctx context.Context, client *redis.Client, prefix string, tables []string, logger *gecho.Logger) (*RedisListener, error) {
	channels := make([]string, len(tables))
	for i, table := range tables {
		channels[i] = prefix + table
	}

	runCtx, cancel := context.WithCancel(ctx)
	sub := client.Subscribe(runCtx, channels...)

	// Force the subscribe round trip so setup failures surface here
	// instead of as a silent dead stream.
	if _, err := sub.Receive(runCtx); err != nil {
		cancel()
		_ = sub.Close()
		return nil, err
	}

	l := &RedisListener{
		logger: logger,
		prefix: prefix,
		sub:    sub,
		events: make(chan Event, 16),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go l.run(runCtx)
	return l, nil
}

func (l *RedisListener) Events() <-chan Event {
	return l.events
}

func (l *RedisListener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.cancel()
		err = l.sub.Close()
		<-l.done
	})
	return err
}

func (l *RedisListener) run(ctx context.Context) {
	defer close(l.done)
	defer close(l.events)

	ch := l.sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			table := strings.TrimPrefix(msg.Channel, l.prefix)
			select {
			case l.events <- Event{Table: table}:
			default:
				// Reloads are coalesced downstream; drop when saturated.
			}
		}
	}
}

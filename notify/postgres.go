package notify

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/jackc/pgx/v5"
)

const (
	pgChannelSuffix    = "_changes"
	reconnectBaseDelay = 1 * time.Second
	reconnectMaxDelay  = 30 * time.Second
)

// PostgresListener receives change events over LISTEN/NOTIFY on a
// dedicated connection. NOTIFY is raised by schema triggers and by this
// service's own write path (pg_notify), one channel per table.
type PostgresListener struct {
	logger *gecho.Logger
	dsn    string
	tables []string

	events chan Event
	cancel context.CancelFunc
	done   chan struct{}

	mu   sync.Mutex
	conn *pgx.Conn

	closeOnce sync.Once
}

// NewPostgresListener connects and subscribes to every table's channel.
// The initial connect is synchronous so a misconfigured DSN surfaces to
// the caller; later connection drops are retried internally.
func NewPostgresListener(ctx context.Context, dsn string, tables []string, logger *gecho.Logger) (*PostgresListener, error) {
	runCtx, cancel := context.WithCancel(ctx)

	l := &PostgresListener{
		logger: logger,
		dsn:    dsn,
		tables: tables,
		events: make(chan Event, 16),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	conn, err := l.connect(runCtx)
	if err != nil {
		cancel()
		return nil, err
	}
	l.setConn(conn)

	go l.run(runCtx)
	return l, nil
}

func (l *PostgresListener) Events() <-chan Event {
	return l.events
}

func (l *PostgresListener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.cancel()
		<-l.done

		l.mu.Lock()
		conn := l.conn
		l.conn = nil
		l.mu.Unlock()

		if conn != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			err = conn.Close(ctx)
		}
	})
	return err
}

func (l *PostgresListener) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return nil, err
	}

	for _, table := range l.tables {
		channel := pgx.Identifier{table + pgChannelSuffix}.Sanitize()
		if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
			_ = conn.Close(ctx)
			return nil, err
		}
	}

	return conn, nil
}

func (l *PostgresListener) setConn(conn *pgx.Conn) {
	l.mu.Lock()
	l.conn = conn
	l.mu.Unlock()
}

func (l *PostgresListener) run(ctx context.Context) {
	defer close(l.done)
	defer close(l.events)

	delay := reconnectBaseDelay

	for {
		l.mu.Lock()
		conn := l.conn
		l.mu.Unlock()

		notification, err := conn.WaitForNotification(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			l.logger.Warn("Notification connection lost, reconnecting",
				gecho.Field("error", err),
				gecho.Field("delay", delay),
			)

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay = min(delay*2, reconnectMaxDelay)

			next, connErr := l.connect(ctx)
			if connErr != nil {
				l.logger.Warn("Reconnect failed", gecho.Field("error", connErr))
				continue
			}
			l.setConn(next)
			delay = reconnectBaseDelay
			continue
		}

		table := strings.TrimSuffix(notification.Channel, pgChannelSuffix)
		select {
		case l.events <- Event{Table: table}:
		default:
			// The store coalesces reloads; a full buffer means a reload
			// is already pending, so dropping is harmless.
		}
	}
}

package feed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"

	"content_hub/internal/domain"
)

const (
	minReconnectInterval = 2 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// PGListener delivers change notifications straight from the data store via
// LISTEN/NOTIFY. The notify triggers installed by the migrations emit one
// JSON payload per row change on a single channel; subscribers get only the
// changes for their table. After a dropped connection is re-established a
// synthetic resync change is broadcast to every subscriber, since
// notifications sent in the gap are lost.
type PGListener struct {
	listener *pq.Listener
	channel  string
	logger   *slog.Logger
	done     chan struct{}

	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
	closed bool
}

type subscriber struct {
	table string
	ch    chan domain.Change
}

func NewPGListener(dsn, channel string, logger *slog.Logger) (*PGListener, error) {
	listener := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, nil)
	if err := listener.Listen(channel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("listen on %s: %w", channel, err)
	}

	p := &PGListener{
		listener: listener,
		channel:  channel,
		logger:   logger.With("feed", "postgres"),
		done:     make(chan struct{}),
		subs:     make(map[int]*subscriber),
	}

	go p.run()
	go p.ping()

	p.logger.Info("listening for change notifications", "channel", channel)
	return p, nil
}

func (p *PGListener) Subscribe(table string) (<-chan domain.Change, func(), error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, nil, fmt.Errorf("subscribe to %s: feed closed", table)
	}

	id := p.nextID
	p.nextID++
	sub := &subscriber{table: table, ch: make(chan domain.Change, 1)}
	p.subs[id] = sub

	release := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if s, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(s.ch)
		}
	}
	return sub.ch, release, nil
}

func (p *PGListener) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.done)
	for id, sub := range p.subs {
		delete(p.subs, id)
		close(sub.ch)
	}
	p.mu.Unlock()

	return p.listener.Close()
}

func (p *PGListener) run() {
	for n := range p.listener.Notify {
		if n == nil {
			// connection re-established, anything sent in between is gone
			p.logger.Warn("feed connection re-established, forcing resync")
			p.deliver(domain.Change{Action: domain.ActionResync, SentAt: time.Now().UTC()})
			continue
		}

		var change domain.Change
		if err := json.Unmarshal([]byte(n.Extra), &change); err != nil {
			p.logger.Warn("discarding malformed change notification",
				"payload", n.Extra,
				"error", err,
			)
			continue
		}
		p.deliver(change)
	}
}

// deliver forwards a change to matching subscribers. Resync changes go to
// everyone. The send never blocks: a subscriber with a pending change will
// refresh anyway, so collapsing bursts is harmless.
func (p *PGListener) deliver(change domain.Change) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, sub := range p.subs {
		if change.Action != domain.ActionResync && sub.table != change.Table {
			continue
		}
		select {
		case sub.ch <- change:
		default:
		}
	}
}

func (p *PGListener) ping() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			if err := p.listener.Ping(); err != nil {
				p.logger.Warn("feed ping failed", "error", err)
			}
		}
	}
}

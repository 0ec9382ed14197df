package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/metrics"
)

const (
	DefaultWorkers     = 4
	DefaultQueueSize   = 256
	DefaultSendTimeout = 15 * time.Second
)

// Stats is a snapshot of dispatcher counters since Start.
type Stats struct {
	Sent    int64
	Failed  int64
	Dropped int64
}

// Dispatcher is a fixed pool of workers draining a bounded queue of messages.
// Submit never blocks; a full queue drops the message.
type Dispatcher struct {
	Sender      Sender
	Logger      *slog.Logger
	Workers     int
	QueueSize   int
	SendTimeout time.Duration

	queue chan Message
	wg    sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool

	sent    atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64
}

// NewDispatcher applies defaults for zero values.
func NewDispatcher(sender Sender, logger *slog.Logger, workers, queueSize int, timeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		Sender:      sender,
		Logger:      logger,
		Workers:     workers,
		QueueSize:   queueSize,
		SendTimeout: timeout,
		queue:       make(chan Message, queueSize),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	for i := range d.Workers {
		d.wg.Add(1)
		go d.work(i)
	}
	d.Logger.Info("notification dispatcher started", slog.Int("workers", d.Workers), slog.Int("queue_size", d.QueueSize))
}

// Submit queues msg for delivery and reports whether it was accepted. Callers
// get no delivery guarantee: a false return has already been logged.
func (d *Dispatcher) Submit(msg Message) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.drop(msg, "dispatcher stopped")
		return false
	}

	select {
	case d.queue <- msg:
		metrics.NotifyQueueDepth.Set(float64(len(d.queue)))
		return true
	default:
		d.drop(msg, "queue full")
		return false
	}
}

// Stop closes the queue, lets the workers drain what is left and waits for
// them. Messages submitted afterwards are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		// Nobody will drain the queue; count what is discarded.
		for msg := range d.queue {
			d.drop(msg, "dispatcher never started")
		}
		return
	}

	d.wg.Wait()
	metrics.NotifyQueueDepth.Set(0)
	d.Logger.Info("notification dispatcher stopped",
		slog.Int64("sent", d.sent.Load()),
		slog.Int64("failed", d.failed.Load()),
		slog.Int64("dropped", d.dropped.Load()),
	)
}

// QueueDepth reports how many messages are waiting.
func (d *Dispatcher) QueueDepth() int { return len(d.queue) }

func (d *Dispatcher) Stats() Stats {
	return Stats{
		Sent:    d.sent.Load(),
		Failed:  d.failed.Load(),
		Dropped: d.dropped.Load(),
	}
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()

	for msg := range d.queue {
		metrics.NotifyQueueDepth.Set(float64(len(d.queue)))
		d.deliver(id, msg)
	}
}

func (d *Dispatcher) deliver(worker int, msg Message) {
	logger := d.Logger.With(slog.Int("worker", worker), slog.String("kind", msg.Kind), slog.String("to", msg.To))

	ctx, cancel := context.WithTimeout(context.Background(), d.SendTimeout)
	defer cancel()

	if msg.To == "" {
		d.failed.Add(1)
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		logger.Error("notification not sent", slog.Any("error", ErrNoRecipient))
		return
	}

	if err := d.Sender.Send(ctx, msg); err != nil {
		d.failed.Add(1)
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		logger.Error("notification not sent", slog.Any("error", err))
		return
	}

	d.sent.Add(1)
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	logger.Debug("notification sent")
}

func (d *Dispatcher) drop(msg Message, reason string) {
	d.dropped.Add(1)
	metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
	d.Logger.Warn("notification dropped",
		slog.String("reason", reason),
		slog.String("kind", msg.Kind),
		slog.String("to", msg.To))
}

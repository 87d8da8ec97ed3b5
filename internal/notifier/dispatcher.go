package notifier

import (
	"context"
	"log/slog"
	"sync"

	"github.com/complyops/task-assigner/internal/config"
	"github.com/complyops/task-assigner/pkg/logger/sl"
)

// Dispatcher queues notifications on a buffered channel and delivers them
// from a single worker goroutine. A full queue drops the notification with a
// warning instead of blocking the assignment path.
type Dispatcher struct {
	log   *slog.Logger
	sink  Sink
	cfg   config.Notifier
	queue chan AssignmentNotification

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(log *slog.Logger, sink Sink, cfg config.Notifier) *Dispatcher {
	d := &Dispatcher{
		log:   log,
		sink:  sink,
		cfg:   cfg,
		queue: make(chan AssignmentNotification, cfg.QueueSize),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *Dispatcher) Notify(n AssignmentNotification) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.log.Warn("notifier closed, dropping notification",
			slog.String("task_id", n.TaskID),
			slog.String("user_id", n.UserID),
		)

		return
	}

	select {
	case d.queue <- n:
	default:
		d.log.Warn("notification queue full, dropping notification",
			slog.String("task_id", n.TaskID),
			slog.String("user_id", n.UserID),
		)
	}
}

// Close stops accepting notifications, drains the queue and waits for the
// worker to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}

	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.DeliverTimeout)

		if err := d.sink.Deliver(ctx, n); err != nil {
			d.log.Error("failed to deliver notification",
				sl.Err(err),
				slog.String("task_id", n.TaskID),
				slog.String("user_id", n.UserID),
			)
		}

		cancel()
	}
}

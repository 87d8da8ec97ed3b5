// package notifier carries assignment notifications out of the engine.
// The engine hands a notification to a Notifier after its transaction has
// committed; delivery is fully decoupled and can never roll back or fail an
// assignment.
package notifier

import (
	"context"
	"log/slog"
	"time"
)

// AssignmentNotification tells a team member they now own a task.
type AssignmentNotification struct {
	UserID     string
	TaskID     string
	TaskTitle  string
	Rerouted   bool
	OccurredAt time.Time
}

// Notifier accepts a notification without blocking the caller. Implementations
// must swallow their own failures; Notify has no error return on purpose.
type Notifier interface {
	Notify(n AssignmentNotification)
}

// Sink delivers a single notification to its transport (in-app feed, push,
// email). Transports live outside this service; LogSink is the in-process
// default.
type Sink interface {
	Deliver(ctx context.Context, n AssignmentNotification) error
}

// LogSink writes notifications to the structured log.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Deliver(_ context.Context, n AssignmentNotification) error {
	s.log.Info("task assigned",
		slog.String("user_id", n.UserID),
		slog.String("task_id", n.TaskID),
		slog.String("task_title", n.TaskTitle),
		slog.Bool("rerouted", n.Rerouted),
	)

	return nil
}

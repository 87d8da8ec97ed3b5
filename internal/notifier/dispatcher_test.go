package notifier

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/complyops/task-assigner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu        sync.Mutex
	delivered []AssignmentNotification
	err       error
}

func (s *recordingSink) Deliver(_ context.Context, n AssignmentNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	s.delivered = append(s.delivered, n)

	return nil
}

func (s *recordingSink) all() []AssignmentNotification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]AssignmentNotification, len(s.delivered))
	copy(out, s.delivered)

	return out
}

func testConfig() config.Notifier {
	return config.Notifier{QueueSize: 8, DeliverTimeout: time.Second}
}

func TestDispatcher_DeliversQueuedNotifications(t *testing.T) {
	sink := &recordingSink{}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	d := NewDispatcher(logger, sink, testConfig())

	d.Notify(AssignmentNotification{UserID: "u1", TaskID: "task-1"})
	d.Notify(AssignmentNotification{UserID: "u2", TaskID: "task-2", Rerouted: true})

	// Close drains the queue before returning.
	d.Close()

	delivered := sink.all()
	require.Len(t, delivered, 2)
	assert.Equal(t, "u1", delivered[0].UserID)
	assert.Equal(t, "task-2", delivered[1].TaskID)
	assert.True(t, delivered[1].Rerouted)
}

func TestDispatcher_NotifyAfterCloseIsDropped(t *testing.T) {
	sink := &recordingSink{}
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, nil))

	d := NewDispatcher(logger, sink, testConfig())
	d.Close()

	// Must not panic on the closed channel, only log and drop.
	d.Notify(AssignmentNotification{UserID: "u1", TaskID: "task-1"})

	assert.Empty(t, sink.all())
	assert.Contains(t, logBuffer.String(), "notifier closed")
}

func TestDispatcher_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	block := make(chan struct{})
	sink := &blockingSink{release: block}
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, nil))

	d := NewDispatcher(logger, sink, config.Notifier{QueueSize: 1, DeliverTimeout: time.Second})

	// First notification occupies the worker, second fills the queue, third
	// must be dropped without blocking the caller.
	d.Notify(AssignmentNotification{TaskID: "task-1"})
	d.Notify(AssignmentNotification{TaskID: "task-2"})

	done := make(chan struct{})
	go func() {
		d.Notify(AssignmentNotification{TaskID: "task-3"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}

	close(block)
	d.Close()
}

func TestDispatcher_SinkErrorIsLoggedNotFatal(t *testing.T) {
	sink := &recordingSink{err: errors.New("transport down")}
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, nil))

	d := NewDispatcher(logger, sink, testConfig())
	d.Notify(AssignmentNotification{UserID: "u1", TaskID: "task-1"})
	d.Close()

	assert.Contains(t, logBuffer.String(), "failed to deliver notification")
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	sink := &recordingSink{}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	d := NewDispatcher(logger, sink, testConfig())
	d.Close()
	d.Close()
}

type blockingSink struct {
	release chan struct{}
}

func (s *blockingSink) Deliver(_ context.Context, _ AssignmentNotification) error {
	<-s.release
	return nil
}

func TestLogSink_Deliver(t *testing.T) {
	var logBuffer bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewTextHandler(&logBuffer, nil)))

	err := sink.Deliver(context.Background(), AssignmentNotification{
		UserID:    "u1",
		TaskID:    "task-1",
		TaskTitle: "Quarterly audit",
		Rerouted:  true,
	})
	require.NoError(t, err)

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "task assigned")
	assert.Contains(t, logOutput, "u1")
	assert.Contains(t, logOutput, "rerouted=true")
}

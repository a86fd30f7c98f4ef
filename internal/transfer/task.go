/*
Package transfer implements the client-side upload orchestrator: it drives a
file through one of the upload paths (gateway multipart, direct-to-relay, or
presigned URL), tracks byte-level progress, and supports cooperative
cancellation.

Each upload is an independent Task state machine; no ordering or
serialization exists between concurrent tasks.
*/
package transfer

import (
	"context"
	"math"
	"sync"

	"rdrive/internal/pkg/errs"
)

// State is the lifecycle state of an upload task.
type State int

const (
	StateIdle State = iota
	StateUploading
	StateSucceeded
	StateFailed
	StateCancelled
)

// String returns the state name for logs and tests.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUploading:
		return "uploading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is one of the three terminal states.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateCancelled
}

// Task represents one in-flight transfer. A task reaches exactly one
// terminal state; whichever settlement is observed first wins and every
// later attempt is a no-op, including a cancel that races completion.
type Task struct {
	mu      sync.Mutex
	key     string
	total   int64
	sent    int64
	percent int
	state   State
	err     *errs.Error

	cancel     context.CancelFunc
	done       chan struct{}
	settleOnce sync.Once

	// onProgress receives integer percent updates while uploading.
	onProgress func(percent int)
}

func newTask(total int64, cancel context.CancelFunc, onProgress func(int)) *Task {
	return &Task{
		total:      total,
		state:      StateIdle,
		cancel:     cancel,
		done:       make(chan struct{}),
		onProgress: onProgress,
	}
}

// Key returns the object key this task uploads to. For the multipart path
// the key is server-assigned and only known after completion.
func (t *Task) Key() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.key
}

func (t *Task) setKey(key string) {
	t.mu.Lock()
	t.key = key
	t.mu.Unlock()
}

// State returns the task's current state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Err returns the failure that settled the task, if any.
func (t *Task) Err() *errs.Error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Progress returns the last reported integer percent.
func (t *Task) Progress() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.percent
}

// Done is closed when the task reaches its terminal state.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel aborts an in-flight transfer. The transport handle is released via
// context cancellation, so the abort takes effect at the next transport
// checkpoint; bytes already queued cannot be un-sent. Cancelling a task
// that has already settled is a no-op.
func (t *Task) Cancel() {
	t.cancel()
	t.settle(StateCancelled, nil)
}

// report records bytes sent and emits a monotonically non-decreasing
// integer percent. Reporting stops once the task has settled.
func (t *Task) report(sent int64) {
	t.mu.Lock()
	if t.state != StateUploading {
		t.mu.Unlock()
		return
	}

	t.sent = sent
	percent := 100
	if t.total > 0 {
		percent = int(math.Round(float64(sent) / float64(t.total) * 100))
	}
	if percent > 100 {
		percent = 100
	}
	if percent < t.percent {
		percent = t.percent
	}
	changed := percent != t.percent
	t.percent = percent
	callback := t.onProgress
	t.mu.Unlock()

	if changed && callback != nil {
		callback(percent)
	}
}

// start moves an idle task to uploading. A cancel can land between the
// Start* call returning and the transfer goroutine being scheduled; a task
// that has already settled stays in its terminal state.
func (t *Task) start() {
	t.mu.Lock()
	if t.state == StateIdle {
		t.state = StateUploading
	}
	t.mu.Unlock()
}

// settle moves the task to a terminal state. It returns true only for the
// single winning settlement.
func (t *Task) settle(state State, err *errs.Error) bool {
	won := false
	t.settleOnce.Do(func() {
		t.mu.Lock()
		t.state = state
		t.err = err
		if state == StateSucceeded {
			t.percent = 100
		}
		t.mu.Unlock()

		close(t.done)
		won = true
	})
	return won
}

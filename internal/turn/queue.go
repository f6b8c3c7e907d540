package turn

import (
	"sort"
	"sync"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// Task is a handle to queued work.
type Task struct {
	id       uint64
	due      time.Time
	timed    bool
	fn       func()
	canceled bool
	done     bool
}

// Cancel prevents the task from running. It returns false if the task has
// already run or was already canceled.
func (t *Task) Cancel() bool {
	if t == nil || t.done || t.canceled {
		return false
	}
	t.canceled = true
	return true
}

// Pending returns true if the task is still waiting to run.
func (t *Task) Pending() bool {
	return t != nil && !t.done && !t.canceled
}

// Queue holds deferred and timed tasks.
type Queue struct {
	mu     sync.Mutex
	clock  Clock
	tasks  []*Task
	nextID uint64
	wake   func(time.Time)
}

// Option configures a Queue.
type Option func(*Queue)

// WithClock sets the clock used for timed tasks.
func WithClock(clock Clock) Option {
	return func(q *Queue) {
		if clock != nil {
			q.clock = clock
		}
	}
}

// WithWakeup registers a callback invoked whenever a timed task is queued.
// Event loops blocked on input use it to schedule a wakeup for the task's
// deadline.
func WithWakeup(fn func(due time.Time)) Option {
	return func(q *Queue) {
		q.wake = fn
	}
}

// New creates a queue.
func New(opts ...Option) *Queue {
	q := &Queue{clock: time.Now}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Now returns the queue's current time.
func (q *Queue) Now() time.Time {
	return q.clock()
}

// Defer queues fn for the next turn.
func (q *Queue) Defer(fn func()) *Task {
	return q.add(&Task{fn: fn})
}

// After queues fn to run on the first turn at least d from now.
func (q *Queue) After(d time.Duration, fn func()) *Task {
	t := q.add(&Task{fn: fn, due: q.clock().Add(d), timed: true})
	if q.wake != nil {
		q.wake(t.due)
	}
	return t
}

func (q *Queue) add(t *Task) *Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	t.id = q.nextID
	q.tasks = append(q.tasks, t)
	return t
}

// Run executes every task that is due at now and returns how many ran.
// Tasks run in the order they were queued.
func (q *Queue) Run(now time.Time) int {
	q.mu.Lock()
	var due, keep []*Task
	for _, t := range q.tasks {
		switch {
		case t.canceled:
		case !t.timed || !now.Before(t.due):
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	q.tasks = keep
	q.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].id < due[j].id })

	ran := 0
	for _, t := range due {
		if t.canceled {
			continue
		}
		t.done = true
		t.fn()
		ran++
	}
	return ran
}

// RunPending runs every task due at the queue's current time.
func (q *Queue) RunPending() int {
	return q.Run(q.clock())
}

// Len returns the number of tasks waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, t := range q.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

// NextDeadline returns the earliest time at which a task becomes due.
// Untimed tasks are due immediately. ok is false when the queue is empty.
func (q *Queue) NextDeadline() (deadline time.Time, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, t := range q.tasks {
		if t.canceled {
			continue
		}
		due := t.due
		if !t.timed {
			due = q.clock()
		}
		if !ok || due.Before(deadline) {
			deadline, ok = due, true
		}
	}
	return deadline, ok
}

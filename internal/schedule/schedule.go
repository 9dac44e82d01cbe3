// Package schedule provides cancellable delayed tasks for round advancement
// and PIN confirmation. Tasks belong to a Group owned by a single game or
// session instance so teardown can cancel everything that instance started.
package schedule

import (
	"sync"
	"time"
)

// Task is a pending delayed call.
type Task interface {
	// Stop cancels the task. It reports whether the call was prevented.
	Stop() bool
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// Timers schedules tasks on the runtime timer heap.
type Timers struct{}

// AfterFunc implements Scheduler using time.AfterFunc.
func (Timers) AfterFunc(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}

// Group tracks the tasks started by one owner.
type Group struct {
	scheduler Scheduler
	mu        sync.Mutex
	nextID    uint64
	pending   map[uint64]*entry
}

type entry struct {
	task Task
}

// NewGroup creates an empty task group backed by scheduler.
func NewGroup(scheduler Scheduler) *Group {
	if scheduler == nil {
		scheduler = Timers{}
	}
	return &Group{
		scheduler: scheduler,
		pending:   make(map[uint64]*entry),
	}
}

// After schedules fn and tracks it until it fires or is cancelled.
func (g *Group) After(d time.Duration, fn func()) {
	e := &entry{}
	g.mu.Lock()
	g.nextID++
	id := g.nextID
	g.pending[id] = e
	g.mu.Unlock()

	task := g.scheduler.AfterFunc(d, func() {
		g.mu.Lock()
		_, live := g.pending[id]
		delete(g.pending, id)
		g.mu.Unlock()
		if live {
			fn()
		}
	})

	g.mu.Lock()
	e.task = task
	g.mu.Unlock()
}

// Pending returns the number of tasks that have neither fired nor been cancelled.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

// CancelAll stops every pending task in the group.
func (g *Group) CancelAll() int {
	g.mu.Lock()
	tasks := g.pending
	g.pending = make(map[uint64]*entry)
	g.mu.Unlock()

	for _, e := range tasks {
		g.mu.Lock()
		task := e.task
		g.mu.Unlock()
		if task != nil {
			task.Stop()
		}
	}
	return len(tasks)
}

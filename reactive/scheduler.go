package reactive

import (
	"sync"

	"github.com/vireact/core/internal/warn"
)

// DefaultMaxUpdateCount bounds re-enqueue depth per watcher id within a
// single flush before the scheduler aborts with a dev warning (spec §4.4
// "In development only, keep a per-id re-enqueue counter").
const DefaultMaxUpdateCount = 100

// Scheduler batches watcher invalidations into a single flush with the
// ordering guarantees of spec §4.4/§5. A process has exactly one default
// Scheduler (DefaultScheduler), matching the teacher's single
// process-global renderer queue; tests may construct independent
// Schedulers to avoid cross-test interference.
type Scheduler struct {
	mu           sync.Mutex
	queue        []*Watcher
	has          map[uint64]bool
	flushing     bool
	waiting      bool
	index        int
	circular     map[uint64]int
	maxUpdate    int
	syncMode     bool
	microtask    func(func())
	nextTickCBs  []func()
	afterFlushCB []func(flushed []*Watcher)
}

// NewScheduler builds a Scheduler. microtask is the host deferral primitive
// (spec §5 "the host's finest-grained deferral primitive"); pass nil to run
// each scheduled flush on a new goroutine — see scheduleFlush, and FlushNow
// for draining the queue synchronously.
func NewScheduler(microtask func(func())) *Scheduler {
	return &Scheduler{
		has:       make(map[uint64]bool),
		circular:  make(map[uint64]int),
		maxUpdate: DefaultMaxUpdateCount,
		microtask: microtask,
	}
}

// DefaultScheduler is the process-wide scheduler used by Watcher.Update
// when no explicit scheduler is threaded through (spec §4.4 "a single
// process-wide queue of Watchers").
var DefaultScheduler = NewScheduler(nil)

// SetSyncMode forces Queue to flush immediately, matching spec §4.4
// "Synchronous mode" (used by tests for deterministic assertions).
func (s *Scheduler) SetSyncMode(v bool) {
	s.mu.Lock()
	s.syncMode = v
	s.mu.Unlock()
}

// SetMaxUpdateCount overrides the cycle-guard threshold.
func (s *Scheduler) SetMaxUpdateCount(n int) {
	s.mu.Lock()
	s.maxUpdate = n
	s.mu.Unlock()
}

// OnAfterFlush registers a callback invoked after each flush completes with
// the snapshot of watchers that ran, used by component package to fire
// "updated"/"activated" hooks (spec §4.4 "After flush").
func (s *Scheduler) OnAfterFlush(cb func(flushed []*Watcher)) {
	s.mu.Lock()
	s.afterFlushCB = append(s.afterFlushCB, cb)
	s.mu.Unlock()
}

// Queue enqueues w, deduplicating by id (spec §4.4 "queueWatcher(w) is a
// no-op if w.id is already present"). While not flushing, append; while
// flushing, insert keeping the queue non-decreasing by id past the current
// cursor, so a watcher triggered by an earlier watcher in the same flush
// still runs in the correct position.
func (s *Scheduler) Queue(w *Watcher) {
	s.mu.Lock()
	if s.has[w.id] {
		s.mu.Unlock()
		return
	}
	s.has[w.id] = true

	if !s.flushing {
		s.queue = append(s.queue, w)
	} else {
		// Insert into position keeping queue sorted by id from the cursor
		// onward; items before the cursor have already run.
		i := len(s.queue)
		for i > s.index && s.queue[i-1].id > w.id {
			i--
		}
		s.queue = append(s.queue, nil)
		copy(s.queue[i+1:], s.queue[i:])
		s.queue[i] = w
	}

	sync := s.syncMode
	if !s.waiting && !sync {
		s.waiting = true
		s.scheduleFlush()
	}
	s.mu.Unlock()

	if sync {
		s.flush()
	}
}

func (s *Scheduler) scheduleFlush() {
	if s.microtask != nil {
		s.microtask(s.flush)
		return
	}
	// No host microtask primitive configured: flush on a new goroutine. This
	// keeps the scheduler usable in plain Go code and tests without requiring
	// an event loop; FlushNow drains the queue synchronously for callers that
	// need a deterministic point to wait on.
	go s.flush()
}

// FlushNow synchronously drains the queue, for callers (tests, non-UI
// hosts) that don't want to wait on a goroutine-scheduled microtask.
func (s *Scheduler) FlushNow() {
	s.flush()
}

// flush implements spec §4.4 "Flush": sort ascending by id, iterate with a
// moving cursor, run before()+clear-presence+Run() for each, skipping
// destroyed owners; then the "After flush" snapshot + hook dispatch.
func (s *Scheduler) flush() {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.waiting = false
		cbs := s.nextTickCBs
		s.nextTickCBs = nil
		s.mu.Unlock()
		for _, cb := range cbs {
			cb()
		}
		return
	}
	s.flushing = true
	stableSortByID(s.queue)
	s.mu.Unlock()

	var ran []*Watcher
	for {
		s.mu.Lock()
		if s.index >= len(s.queue) {
			s.mu.Unlock()
			break
		}
		w := s.queue[s.index]
		s.index++
		delete(s.has, w.id)
		s.circular[w.id]++
		count := s.circular[w.id]
		maxUpdate := s.maxUpdate
		s.mu.Unlock()

		if count > maxUpdate {
			warn.Warnf("scheduler", "infinite update loop detected for watcher id %d, aborting flush", w.id)
			break
		}

		if w.opts.Owner != nil && w.opts.Owner.Destroyed() {
			continue
		}
		if before := w.Before(); before != nil {
			before()
		}
		w.Run()
		ran = append(ran, w)
	}

	s.mu.Lock()
	s.queue = nil
	s.has = make(map[uint64]bool)
	s.circular = make(map[uint64]int)
	s.index = 0
	s.flushing = false
	s.waiting = false
	cbs := s.nextTickCBs
	s.nextTickCBs = nil
	afterCBs := append([]func(flushed []*Watcher){}, s.afterFlushCB...)
	s.mu.Unlock()

	for _, cb := range afterCBs {
		cb(ran)
	}
	for _, cb := range cbs {
		cb()
	}
}

// NextTick registers fn to run after the current (or next, if none is in
// progress) flush completes, per spec §5 "a user-level 'next tick' hook is
// exposed that fires after the current flush." If fn is nil, NextTick
// returns a channel closed once the tick fires (SPEC_FULL.md supplemented
// feature).
func (s *Scheduler) NextTick(fn func()) <-chan struct{} {
	ch := make(chan struct{})
	cb := func() {
		if fn != nil {
			fn()
		}
		close(ch)
	}
	s.mu.Lock()
	s.nextTickCBs = append(s.nextTickCBs, cb)
	needsKick := !s.waiting && !s.flushing
	if needsKick {
		s.waiting = true
	}
	s.mu.Unlock()
	if needsKick {
		s.scheduleFlush()
	}
	return ch
}

// NextTick is the package-level convenience wrapping DefaultScheduler.
func NextTick(fn func()) <-chan struct{} {
	return DefaultScheduler.NextTick(fn)
}

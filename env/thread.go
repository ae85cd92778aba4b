package env

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ivanprosh/Mod-Petri/petrinet"
)

// LongJob is the work a long transition runs in the background. Run takes no
// arguments, returns nothing, and declares no failure — the engine offers no
// error channel back from it (spec: user-callable failure is out of scope).
// A panic inside Run propagates out of the owning goroutine and crashes the
// process, which is this implementation's choice for "terminating the
// process" from the two options the contract allows.
type LongJob interface {
	Run()
}

// LongJobFunc adapts a plain func() to LongJob.
type LongJobFunc func()

// Run implements LongJob.
func (f LongJobFunc) Run() { f() }

// jobRecord is one long job's bookkeeping: its two-place mini-net, the user's
// callable, and completion state. Records are allocated as *jobRecord and
// only ever appended to ThreadEnvironment.jobs — growing that slice may
// relocate the slice header, but never the heap-allocated jobRecord a
// pointer refers to, so a *jobRecord handed out at allocation time stays
// valid for the environment's lifetime.
type jobRecord struct {
	id      int
	started *petrinet.Place
	stopped *petrinet.Place
	stop    *petrinet.AtomicTransition
	job     LongJob
	done    atomic.Bool
}

// ThreadEnvironment is the thread-backed environment (component C9): it owns
// per-long-job worker records, allocates long transitions on request, and
// performs a wait-any over unfinished workers only when no synchronous
// choice exists. Every worker it ever spawns is tracked in one shared
// errgroup.Group, so WaitAll gives a single join point over the whole
// environment's lifetime instead of per-job bookkeeping.
type ThreadEnvironment struct {
	mu       sync.Mutex
	jobs     []*jobRecord
	notifyCh chan struct{}
	group    errgroup.Group

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewThreadEnvironment returns an environment seeded deterministically for
// its random tie-breaks within each selection bucket.
func NewThreadEnvironment(seed int64) *ThreadEnvironment {
	return &ThreadEnvironment{
		notifyCh: make(chan struct{}),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// NewLongTransition builds a long transition running job in the background.
// Its sub-net is exactly the mini-net described in the engine's design: one
// "started" place seeded with a token, one "stopped" place, and one
// completion-tag transition wired started→stop→stopped. Firing the returned
// transition (i.e. entering it from the enclosing net) spawns the worker via
// its on-activate hook; the completion-tag transition is enabled as soon as
// the sub-net is entered, but Wait only selects it once the worker has
// exited, and reaping happens via its on-passivate hook once the enclosing
// net consumes that completion.
func (e *ThreadEnvironment) NewLongTransition(id, name string, job LongJob) *petrinet.CompoundTransition {
	jobID, rec := e.allocateLongJob(id, job)

	content := petrinet.NewContent()
	must(content.AddPlace(rec.started))
	must(content.AddPlace(rec.stopped))
	must(content.AddTransition(rec.stop))
	must(content.AddInputArc(rec.started, rec.stop))
	must(content.AddOutputArc(rec.stop, rec.stopped))
	must(content.AddToken(rec.started))

	ct := petrinet.FromContent(id, name, content)
	ct.OnActivateFunc = func() { e.spawn(jobID) }
	ct.OnPassivateFunc = func() { e.reap(jobID) }
	return ct
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("petrinet/env: building long-job mini-net: %v", err))
	}
}

// allocateLongJob assigns the next job-record index and appends a fresh
// record. Stability of the returned *jobRecord is required: the long
// transition's hooks close over jobID, not the pointer, but every other
// caller that needs the record looks it up by index under e.mu.
func (e *ThreadEnvironment) allocateLongJob(id string, job LongJob) (int, *jobRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	jobID := len(e.jobs)
	rec := &jobRecord{
		id:      jobID,
		started: petrinet.NewPlace(id+"/started", id+" started"),
		stopped: petrinet.NewPlace(id+"/stopped", id+" stopped"),
		job:     job,
	}
	rec.stop = petrinet.NewCompletionTagTransition(id+"/stop", id+" stop", jobID)
	e.jobs = append(e.jobs, rec)
	return jobID, rec
}

// spawn forks the background worker for job jobID onto the environment's
// shared errgroup.Group. Spawning a goroutine cannot fail in Go, so the
// "spawn failure is fatal" clause of the engine's contract has no reachable
// branch here (see DESIGN.md). A panic inside rec.job.Run() is not recovered
// by errgroup.Go — it propagates out of the worker goroutine and crashes the
// process like any other unrecovered panic, independent of the group.
func (e *ThreadEnvironment) spawn(jobID int) {
	e.mu.Lock()
	rec := e.jobs[jobID]
	e.mu.Unlock()

	petrinet.Logger.Debug().Str("job", rec.started.String()).Msg("spawning long job")

	e.group.Go(func() error {
		rec.job.Run()
		rec.done.Store(true)
		e.signal()
		return nil
	})
}

// WaitAll blocks until every worker spawned by this environment, past and
// future-scheduled-so-far, has returned, aggregating the first non-nil error
// across all of them — the real payoff of sharing one errgroup.Group across
// spawns rather than building a fresh single-task group per job. No LongJob
// currently returns an error, so this only ever surfaces nil, but it gives
// callers (notably cmd/petrisim) a genuine join point for graceful shutdown.
func (e *ThreadEnvironment) WaitAll() error {
	return e.group.Wait()
}

// reap is called once the net has consumed the completion-tag entry for
// jobID. The worker is already finished by construction (the selection
// policy only ever offers a completion-tag entry once its worker has
// exited), so there is nothing left to release beyond bookkeeping.
func (e *ThreadEnvironment) reap(jobID int) {
	petrinet.Logger.Debug().Int("job", jobID).Msg("reaped long job")
}

// signal wakes every goroutine currently blocked in Wait. It implements the
// "shared completion channel" emulation of wait-any the design notes call
// for: close-and-replace under the lock so a waiter that captured the old
// channel before the close is guaranteed to observe it.
func (e *ThreadEnvironment) signal() {
	e.mu.Lock()
	close(e.notifyCh)
	e.notifyCh = make(chan struct{})
	e.mu.Unlock()
}

// Wait implements the selection policy described in the engine's design:
// partition enabled into free/finished/busy completion-tag buckets, prefer
// releasing finished work, then free synchronous choice, and only block —
// via the shared completion channel — when every enabled entry is a busy
// completion-tag.
func (e *ThreadEnvironment) Wait(enabled []petrinet.Transition, marked petrinet.Marking) int {
	for {
		var free, finished, busy []int

		e.mu.Lock()
		for idx, t := range enabled {
			at, ok := t.(*petrinet.AtomicTransition)
			if !ok {
				free = append(free, idx)
				continue
			}
			jobID, isTag := at.CompletionTag()
			if !isTag {
				free = append(free, idx)
				continue
			}
			if e.jobs[jobID].done.Load() {
				finished = append(finished, idx)
			} else {
				busy = append(busy, idx)
			}
		}
		ch := e.notifyCh
		e.mu.Unlock()

		if len(finished) > 0 {
			return finished[e.randIntn(len(finished))]
		}
		if len(free) > 0 {
			return free[e.randIntn(len(free))]
		}
		// every enabled entry is a busy completion-tag (len(busy) ==
		// len(enabled)): block until some worker finishes, then rescan
		// rather than trying to identify exactly which one woke us — a
		// fresh scan is cheap and avoids a second synchronization
		// primitive per worker.
		<-ch
	}
}

func (e *ThreadEnvironment) randIntn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}

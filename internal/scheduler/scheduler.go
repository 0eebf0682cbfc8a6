// file: internal/scheduler/scheduler.go
// version: 1.3.0
// guid: 0b1c2d3e-4f5a-6b7c-8d9e-0f1a2b3c4d5e

package scheduler

import (
	"fmt"
	"log"
	"sync"

	ulid "github.com/oklog/ulid/v2"

	"github.com/jdfalk/booksearch/internal/dataset"
	"github.com/jdfalk/booksearch/internal/metrics"
	"github.com/jdfalk/booksearch/internal/ranker"
)

// Outcome is the single result of one submission: either a ranking
// result with its elapsed duration, or a failure. Exactly one Outcome
// per submission reaches the delivery gate; superseded ones are dropped
// there and never seen by the sink.
type Outcome struct {
	ID     string        `json:"id"`
	Seq    uint64        `json:"seq"`
	Query  string        `json:"query"`
	Result ranker.Result `json:"result"`
	Err    error         `json:"-"`
}

// Failed reports whether the unit of work failed.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Sink receives delivered outcomes on the completing submission's
// goroutine. Sinks decide their own execution context (typically by
// pushing into a channel) and must not call Submit reentrantly.
type Sink func(Outcome)

// Submission is the handle returned by Submit.
type Submission struct {
	ID    string
	Seq   uint64
	Query string
	done  chan struct{}
}

// Done is closed once the submission's unit of work has finished,
// whether its outcome was delivered or dropped.
func (s *Submission) Done() <-chan struct{} {
	return s.done
}

// Scheduler runs ranking invocations off the caller's execution context
// and guarantees last-query-wins delivery: a completed unit of work is
// delivered only if no newer submission has been issued since.
// Superseded work is not interrupted; its outcome is discarded at the
// delivery gate.
type Scheduler struct {
	mu     sync.Mutex
	rnk    *ranker.Ranker
	sink   Sink
	source string
	k      int
	issued uint64
	wg     sync.WaitGroup
}

// New creates a Scheduler delivering outcomes to sink. source labels
// the scheduler's metrics (e.g. "api", "sse", "cli"); k is the result
// count per query (<= 0 means ranker.DefaultK).
func New(rnk *ranker.Ranker, k int, source string, sink Sink) *Scheduler {
	if rnk == nil {
		rnk = ranker.New()
	}
	return &Scheduler{rnk: rnk, sink: sink, source: source, k: k}
}

// Submit starts an independent unit of work ranking query against the
// snapshot and returns immediately. Submissions never block on earlier
// ones still running.
func (s *Scheduler) Submit(query string, snapshot *dataset.Snapshot) *Submission {
	s.mu.Lock()
	s.issued++
	sub := &Submission{
		ID:    ulid.Make().String(),
		Seq:   s.issued,
		Query: query,
		done:  make(chan struct{}),
	}
	s.mu.Unlock()

	metrics.IncQueryStarted(s.source)

	s.wg.Add(1)
	go s.run(sub, snapshot)
	return sub
}

// run executes one unit of work and hands its outcome to the delivery
// gate. Failures, including panics, become failed outcomes rather than
// crashing the scheduler or other in-flight submissions.
func (s *Scheduler) run(sub *Submission, snapshot *dataset.Snapshot) {
	defer s.wg.Done()
	defer close(sub.done)

	outcome := Outcome{ID: sub.ID, Seq: sub.Seq, Query: sub.Query}

	func() {
		defer func() {
			if r := recover(); r != nil {
				outcome.Err = fmt.Errorf("computation failed: %v", r)
			}
		}()
		res, err := s.rnk.Rank(sub.Query, snapshot.Titles(), s.k)
		outcome.Result = res
		outcome.Err = err
	}()

	s.deliver(outcome)
}

// deliver applies the supersession rule. The issuance check and the
// sink call happen under one lock so a stale outcome can never slip out
// after a newer submission was issued.
func (s *Scheduler) deliver(o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.Seq != s.issued {
		metrics.IncQuerySuperseded(s.source)
		log.Printf("[DEBUG] Dropping superseded query %s (seq %d, newest %d)", o.ID, o.Seq, s.issued)
		return
	}

	if o.Err != nil {
		metrics.IncQueryFailed(s.source)
		log.Printf("[WARN] Query %s failed: %v", o.ID, o.Err)
	} else {
		metrics.IncQueryCompleted(s.source)
		metrics.ObserveQueryDuration(s.source, o.Result.Elapsed)
	}

	if s.sink != nil {
		s.sink(o)
	}
}

// Wait blocks until every submitted unit of work has finished. Used by
// shutdown paths and tests.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

package battle

import (
	"cmp"
	"slices"
)

// queued pairs an Action with its enqueue sequence number.
type queued struct {
	action Action
	seq    uint64
}

// compareQueued orders by priority descending, then by enqueue order.
func compareQueued(a, b queued) int {
	if c := cmp.Compare(b.action.priority, a.action.priority); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

// Scheduler holds pending actions in enqueue order until they are drained
// for a resolution pass. It has no notion of battle state.
type Scheduler struct {
	pending []queued
	nextSeq uint64
}

// NewScheduler returns an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Enqueue appends a.
func (s *Scheduler) Enqueue(a Action) {
	s.pending = append(s.pending, queued{action: a, seq: s.nextSeq})
	s.nextSeq++
}

// Len returns the number of pending actions.
func (s *Scheduler) Len() int { return len(s.pending) }

// Peek returns the oldest pending action without removing it.
func (s *Scheduler) Peek() (Action, bool) {
	if len(s.pending) == 0 {
		return Action{}, false
	}
	return s.pending[0].action, true
}

// Snapshot returns the pending actions in enqueue order.
func (s *Scheduler) Snapshot() []Action {
	out := make([]Action, len(s.pending))
	for i, q := range s.pending {
		out[i] = q.action
	}
	return out
}

// DrainOrdered removes and returns every pending action sorted by priority
// descending. Equal priorities keep enqueue order.
//
// Postcondition: Len() == 0.
func (s *Scheduler) DrainOrdered() []Action {
	batch := s.pending
	s.pending = nil
	slices.SortStableFunc(batch, compareQueued)
	out := make([]Action, len(batch))
	for i, q := range batch {
		out[i] = q.action
	}
	return out
}

package event

// Queue holds the events produced by one poll cycle in the order they
// occurred.
type Queue struct {
	events []Event
}

// Push appends ev. Nil events are ignored.
func (q *Queue) Push(ev Event) {
	if ev == nil {
		return
	}
	q.events = append(q.events, ev)
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Events returns the queued events. The slice is only valid until the next
// Push, Clear or Drain.
func (q *Queue) Events() []Event {
	return q.events
}

// Clear removes every queued event.
func (q *Queue) Clear() {
	clear(q.events)
	q.events = q.events[:0]
}

// Drain calls fn for each queued event in order, then empties the queue.
// The queue is emptied even if fn panics. Events pushed from inside fn are
// discarded with the rest.
func (q *Queue) Drain(fn func(Event)) {
	defer q.Clear()
	for _, ev := range q.events {
		fn(ev)
	}
}

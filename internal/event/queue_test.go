package event

import "testing"

func TestQueueDrainOrderAndClear(t *testing.T) {
	var q Queue
	first := NewKeyPressed(KeyA, ModNone)
	second := NewMouseMove(1, 1)
	third := NewKeyReleased(KeyA, ModNone)

	q.Push(first)
	q.Push(nil)
	q.Push(second)
	q.Push(third)

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", q.Len())
	}

	var seen []Event
	q.Drain(func(ev Event) {
		seen = append(seen, ev)
	})

	if len(seen) != 3 || seen[0] != first || seen[1] != second || seen[2] != third {
		t.Errorf("Drain visited %v, expected insertion order", seen)
	}
	if q.Len() != 0 {
		t.Errorf("queue should be empty after Drain, got %d", q.Len())
	}
}

func TestQueueDrainClearsOnPanic(t *testing.T) {
	var q Queue
	q.Push(NewTextInput("x"))

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected the panic to propagate")
			}
		}()
		q.Drain(func(Event) { panic("boom") })
	}()

	if q.Len() != 0 {
		t.Errorf("queue should be empty after a panicking Drain, got %d", q.Len())
	}
}

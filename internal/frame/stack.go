package frame

import (
	"errors"
	"slices"
	"time"
)

// record is the scheduler's bookkeeping for one layer.
type record struct {
	layer       Layer
	accumulator time.Duration
	alpha       float64
}

// Stack is an ordered set of layers. The most recently pushed layer is the
// top: it sees events and updates first and is drawn last.
type Stack struct {
	records []*record // index 0 is the bottom
}

var (
	errNilLayer     = errors.New("frame: nil layer")
	errLayerInStack = errors.New("frame: layer already in stack")
)

// Push places l on top of the stack and calls its Attach hook.
func (s *Stack) Push(l Layer) error {
	if l == nil {
		return errNilLayer
	}
	if s.find(l) != nil {
		return errLayerInStack
	}
	s.records = append(s.records, &record{layer: l})
	if a, ok := l.(Attacher); ok {
		a.Attach()
	}
	return nil
}

// Remove takes l out of the stack, calls its Detach hook and reports
// whether it was present.
func (s *Stack) Remove(l Layer) bool {
	for i, r := range s.records {
		if r.layer != l {
			continue
		}
		s.records = slices.Delete(s.records, i, i+1)
		if d, ok := l.(Detacher); ok {
			d.Detach()
		}
		return true
	}
	return false
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	return len(s.records)
}

// Layers returns the layers from top to bottom.
func (s *Stack) Layers() []Layer {
	out := make([]Layer, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, s.records[i].layer)
	}
	return out
}

func (s *Stack) find(l Layer) *record {
	for _, r := range s.records {
		if r.layer == l {
			return r
		}
	}
	return nil
}

// topDown visits records from the top until fn returns false.
func (s *Stack) topDown(fn func(*record) bool) {
	for i := len(s.records) - 1; i >= 0; i-- {
		if !fn(s.records[i]) {
			return
		}
	}
}

// bottomUp visits every record from the bottom.
func (s *Stack) bottomUp(fn func(*record)) {
	for _, r := range s.records {
		fn(r)
	}
}

package geometry

import "sync"

// Signal identifies one of the measured inputs.
type Signal int

const (
	// SignalTop is the measured height of the top region.
	SignalTop Signal = iota
	// SignalBottom is the measured height of the bottom region.
	SignalBottom
	// SignalViewport is the window height.
	SignalViewport
)

// Observer recomputes the image height whenever one of its inputs changes
// and pushes the result to subscribers. Every push is computed from the
// latest snapshot of all inputs.
type Observer struct {
	mu     sync.Mutex
	input  Input
	height float64
	nextID int
	subs   map[int]func(float64)
}

// NewObserver creates an observer for the given presentation mode.
func NewObserver(mode Mode) *Observer {
	o := &Observer{
		input: Input{Mode: mode},
		subs:  make(map[int]func(float64)),
	}
	o.height = o.input.Resolve()
	return o
}

// Set updates one input and notifies subscribers with the recomputed height.
func (o *Observer) Set(sig Signal, value float64) {
	o.update(func(in *Input) {
		switch sig {
		case SignalTop:
			in.TopHeight = value
		case SignalBottom:
			in.BottomHeight = value
		case SignalViewport:
			in.ViewportHeight = value
		}
	})
}

// Height returns the most recently computed height.
func (o *Observer) Height() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.height
}

// Subscribe registers fn and immediately calls it with the current height.
// The first call happens under the lock, so a concurrent Set is delivered
// after it. fn must not call back into the observer from the same goroutine.
// The returned function removes the subscription.
func (o *Observer) Subscribe(fn func(height float64)) (cancel func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	fn(o.height)
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}

// update applies mutate and notifies subscribers while holding the lock, so
// concurrent setters deliver results in the order their snapshots were taken.
// Subscribers must not call back into the observer.
func (o *Observer) update(mutate func(*Input)) {
	o.mu.Lock()
	defer o.mu.Unlock()

	mutate(&o.input)
	o.height = o.input.Resolve()
	for _, fn := range o.subs {
		fn(o.height)
	}
}

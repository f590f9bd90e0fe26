package router

import "sync"

type listener struct {
	id int
	fn func()
}

// Navigator is a route stack with a one-shot readiness signal.
// Listeners run in subscription order after every change, outside the lock.
type Navigator struct {
	mu        sync.Mutex
	stack     []string
	ready     bool
	listeners []listener
	nextID    int
}

func NewNavigator(initial string) *Navigator {
	return &Navigator{stack: []string{initial}}
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

func (n *Navigator) Segments() []string {
	return Segments(n.Current())
}

func (n *Navigator) Push(route string) {
	n.mu.Lock()
	n.stack = append(n.stack, route)
	n.mu.Unlock()
	n.notify()
}

// Replace swaps the whole history for route, the way a redirect does.
func (n *Navigator) Replace(route string) {
	n.mu.Lock()
	n.stack = []string{route}
	n.mu.Unlock()
	n.notify()
}

// Back pops one route. It returns false at the root.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	if len(n.stack) == 1 {
		n.mu.Unlock()
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	n.mu.Unlock()
	n.notify()
	return true
}

func (n *Navigator) Ready() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ready
}

// MarkReady signals that the navigation surface is up. Later calls are no-ops.
func (n *Navigator) MarkReady() {
	n.mu.Lock()
	if n.ready {
		n.mu.Unlock()
		return
	}
	n.ready = true
	n.mu.Unlock()
	n.notify()
}

func (n *Navigator) Subscribe(fn func()) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners = append(n.listeners, listener{id: id, fn: fn})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, l := range n.listeners {
			if l.id == id {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

func (n *Navigator) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.listeners))
	for _, l := range n.listeners {
		fns = append(fns, l.fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

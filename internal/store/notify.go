package store

import "sync"

// notifier fans out change signals to subscribers.  Signals carry no
// payload; subscribers re-read a snapshot when woken.  Sends never
// block: each subscriber channel holds one pending signal and further
// notifications coalesce into it.
type notifier struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

// subscribe registers a listener.  The returned cancel func must be
// called when the listener goes away.
func (n *notifier) subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]chan struct{})
	}
	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	n.subs[id] = ch
	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// notify signals every subscriber.
func (n *notifier) notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

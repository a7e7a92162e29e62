// Package queue provides the FIFO work queue driving the traversal engine.
package queue

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrDrained is returned by Pop once every pushed item has been
	// popped and marked done. It is the traversal's normal
	// termination signal.
	ErrDrained = errors.New("queue drained")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("queue is closed")
)

// Item is one unit of crawl work.
type Item struct {
	URL       string
	Depth     int
	ParentURL string
	Timestamp time.Time
}

// WorkQueue is a thread-safe FIFO queue that tracks outstanding work.
// Pop blocks while the queue is empty but items are still being
// processed, because an in-flight item may push children. Once the
// queue is empty and nothing is in flight, Pop returns ErrDrained on
// every worker, letting them all exit.
type WorkQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []*Item
	inFlight int
	closed   bool
}

// New creates a new work queue.
func New() *WorkQueue {
	wq := &WorkQueue{
		items: make([]*Item, 0, 64),
	}
	wq.cond = sync.NewCond(&wq.mu)
	return wq
}

// Push appends an item to the tail of the queue.
func (wq *WorkQueue) Push(item *Item) error {
	wq.mu.Lock()
	defer wq.mu.Unlock()

	if wq.closed {
		return ErrClosed
	}

	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now()
	}
	wq.items = append(wq.items, item)
	wq.cond.Signal()
	return nil
}

// Pop removes and returns the head of the queue. The caller must call
// Done once it has finished processing the item, including pushing
// any children.
func (wq *WorkQueue) Pop() (*Item, error) {
	wq.mu.Lock()
	defer wq.mu.Unlock()

	for {
		if wq.closed {
			return nil, ErrClosed
		}
		if len(wq.items) > 0 {
			item := wq.items[0]
			wq.items[0] = nil
			wq.items = wq.items[1:]
			wq.inFlight++
			return item, nil
		}
		if wq.inFlight == 0 {
			return nil, ErrDrained
		}
		wq.cond.Wait()
	}
}

// Done marks one popped item as fully processed.
func (wq *WorkQueue) Done() {
	wq.mu.Lock()
	defer wq.mu.Unlock()

	if wq.inFlight > 0 {
		wq.inFlight--
	}
	if wq.inFlight == 0 && len(wq.items) == 0 {
		// Wake all blocked workers so they can observe the drain.
		wq.cond.Broadcast()
	}
}

// Len returns the number of queued items.
func (wq *WorkQueue) Len() int {
	wq.mu.Lock()
	defer wq.mu.Unlock()
	return len(wq.items)
}

// IsEmpty reports whether the queue holds no items.
func (wq *WorkQueue) IsEmpty() bool {
	return wq.Len() == 0
}

// Close closes the queue and unblocks any waiting workers.
func (wq *WorkQueue) Close() error {
	wq.mu.Lock()
	defer wq.mu.Unlock()

	wq.closed = true
	wq.items = nil
	wq.cond.Broadcast()
	return nil
}

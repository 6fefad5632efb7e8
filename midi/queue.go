package midi

import "sync"

// Queue is an unbounded in-memory message queue. Push may be called from any
// goroutine; Next drains in arrival order without blocking.
type Queue struct {
	mu   sync.Mutex
	msgs [][]byte
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a copy of msg
func (q *Queue) Push(msg []byte) {
	if len(msg) == 0 {
		return
	}
	c := make([]byte, len(msg))
	copy(c, msg)

	q.mu.Lock()
	q.msgs = append(q.msgs, c)
	q.mu.Unlock()
}

// Next pops the oldest message
func (q *Queue) Next() ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.msgs) == 0 {
		return nil, false
	}
	msg := q.msgs[0]
	q.msgs[0] = nil
	q.msgs = q.msgs[1:]
	if len(q.msgs) == 0 {
		q.msgs = nil // let the backing array go
	}
	return msg, true
}

// Len returns the number of pending messages
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}

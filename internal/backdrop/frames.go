package backdrop

// FrameID identifies one requested frame callback.
type FrameID uint64

// Scheduler delivers frame callbacks in step with the display refresh.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn func()
}

// FrameQueue is a single-threaded Scheduler. The host calls Pump once per
// display refresh; callbacks requested while pumping run on the next Pump.
type FrameQueue struct {
	next    FrameID
	pending []frameRequest
	running []frameRequest
}

var _ Scheduler = (*FrameQueue)(nil)

// RequestFrame queues fn for the next Pump.
func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.next++
	q.pending = append(q.pending, frameRequest{id: q.next, fn: fn})
	return q.next
}

// CancelFrame drops a queued callback. Unknown or already-run ids are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, req := range q.pending {
		if req.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pump runs every callback queued before the call and returns how many ran.
func (q *FrameQueue) Pump() int {
	q.running, q.pending = q.pending, q.running[:0]
	for _, req := range q.running {
		req.fn()
	}
	n := len(q.running)
	clear(q.running)
	q.running = q.running[:0]
	return n
}

// Len returns the number of queued callbacks.
func (q *FrameQueue) Len() int { return len(q.pending) }
